//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-advisor/internal/bootstrap"
	"github.com/yanqian/weather-advisor/internal/domain/advisor"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-advisor/internal/infra/weather/visualcrossing"
	httpiface "github.com/yanqian/weather-advisor/internal/interface/http"
	"github.com/yanqian/weather-advisor/pkg/logger"
	"github.com/yanqian/weather-advisor/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAdvisorConfig,
		provideChatGPTClient,
		provideWeatherClient,
		metrics.NewTokenCounter,
		advisor.NewRecommender,
		advisor.NewService,
		wire.Bind(new(advisor.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(advisor.WeatherClient), new(*visualcrossing.Client)),
		wire.Bind(new(advisor.TokenCounter), new(*metrics.TokenCounter)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
