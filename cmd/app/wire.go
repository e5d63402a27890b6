//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/uv-exposure/internal/bootstrap"
	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
	"github.com/yanqian/uv-exposure/internal/infra/config"
	"github.com/yanqian/uv-exposure/internal/infra/openweather"
	"github.com/yanqian/uv-exposure/internal/infra/plot"
	"github.com/yanqian/uv-exposure/internal/infra/suntimes"
	"github.com/yanqian/uv-exposure/internal/infra/timezone"
	httpiface "github.com/yanqian/uv-exposure/internal/interface/http"
	"github.com/yanqian/uv-exposure/pkg/logger"
	"github.com/yanqian/uv-exposure/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewCollector,
		provideExposureConfig,
		provideOpenWeatherClient,
		provideGeoStore,
		provideLocationResolver,
		provideRenderer,
		timezone.NewFinder,
		timezone.NewConverter,
		suntimes.NewEstimator,
		uvexposure.NewService,
		wire.Bind(new(uvexposure.WeatherSource), new(*openweather.Client)),
		wire.Bind(new(uvexposure.ZoneFinder), new(*timezone.Finder)),
		wire.Bind(new(uvexposure.TimeConverter), new(*timezone.Converter)),
		wire.Bind(new(uvexposure.SunTimesEstimator), new(*suntimes.Estimator)),
		wire.Bind(new(uvexposure.Renderer), new(*plot.Renderer)),
		wire.Bind(new(uvexposure.Recorder), new(*metrics.Collector)),
		wire.Bind(new(httpiface.MetricsExporter), new(*metrics.Collector)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
