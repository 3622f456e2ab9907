package main

import (
	"github.com/yanqian/weather-advisor/internal/domain/advisor"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-advisor/internal/infra/weather/visualcrossing"
)

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Token:       cfg.Auth.Token.Unmask(),
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey.Unmask(), cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideWeatherClient(cfg *config.Config) *visualcrossing.Client {
	return visualcrossing.NewClient(cfg.Weather.APIKey.Unmask(), cfg.Weather.BaseURL, cfg.Weather.Timeout)
}
