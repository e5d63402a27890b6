package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/uv-exposure/internal/infra/config"
)

// MetricsExporter records request metrics and serves the scrape endpoint.
type MetricsExporter interface {
	RequestRecorder
	Handler() http.Handler
}

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, metrics MetricsExporter) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger, metrics),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api/v1/uv", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.GET("/exposure", handler.Exposure)
		api.POST("/exposure", handler.Exposure)
		api.GET("/plot", handler.Plot)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
