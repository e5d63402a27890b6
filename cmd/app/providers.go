package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
	"github.com/yanqian/uv-exposure/internal/infra/config"
	"github.com/yanqian/uv-exposure/internal/infra/geocache"
	"github.com/yanqian/uv-exposure/internal/infra/openweather"
	"github.com/yanqian/uv-exposure/internal/infra/plot"
)

func provideExposureConfig(cfg *config.Config) uvexposure.Config {
	return uvexposure.Config{
		DefaultCity:      cfg.UVExposure.DefaultCity,
		SampleCount:      cfg.UVExposure.SampleCount,
		SpreadDivisor:    cfg.UVExposure.SpreadDivisor,
		EstimateSunTimes: cfg.UVExposure.EstimateSunTimes,
		IncludeForecast:  cfg.UVExposure.IncludeForecast,
	}
}

func provideOpenWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	if strings.TrimSpace(cfg.OpenWeather.APIKey) == "" {
		logger.Warn("openweather api key not set, upstream calls will fail")
	}
	return openweather.NewClient(openweather.Options{
		APIKey:      cfg.OpenWeather.APIKey,
		BaseURL:     cfg.OpenWeather.BaseURL,
		Language:    cfg.OpenWeather.Language,
		Units:       cfg.OpenWeather.Units,
		Timeout:     cfg.OpenWeather.Timeout,
		MaxAttempts: cfg.OpenWeather.Retry.MaxAttempts,
		BaseBackoff: cfg.OpenWeather.Retry.BaseBackoff,
	}, logger)
}

func provideGeoStore(cfg *config.Config, logger *slog.Logger) (geocache.Store, func()) {
	noop := func() {}
	if !cfg.GeoCache.Valkey.Enabled {
		return geocache.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.GeoCache.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return geocache.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return geocache.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return geocache.NewMemoryStore(), noop
	}
	logger.Info("geocache valkey store enabled", "addr", cfg.GeoCache.Valkey.Addr)
	return geocache.NewValkeyStore(client, cfg.GeoCache.Valkey.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideLocationResolver(cfg *config.Config, client *openweather.Client, store geocache.Store, logger *slog.Logger) uvexposure.LocationResolver {
	return geocache.NewResolver(client, store, cfg.GeoCache.TTL, logger)
}

func provideRenderer(cfg *config.Config) *plot.Renderer {
	return plot.NewRenderer(cfg.Plot.WidthInches, cfg.Plot.HeightInches)
}
