package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/yanqian/uv-exposure/internal/infra/config"
)

// New builds the process wide JSON logger from the logging config.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.Log)
}

func newWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	service := strings.TrimSpace(cfg.Service)
	if service == "" {
		service = "uv-exposure"
	}
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
