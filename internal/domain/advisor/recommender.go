package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/yanqian/weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-advisor/pkg/metrics"
)

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// TokenCounter estimates prompt sizes for logging.
type TokenCounter interface {
	Count(model, text string) (int, error)
}

// Recommender turns a weather record into clothing and health advice.
// It never fails: provider problems resolve to a degraded Recommendation.
type Recommender interface {
	Recommend(ctx context.Context, record WeatherRecord, location string) Recommendation
}

var errNoChoices = errors.New("chatgpt returned no choices")

type recommender struct {
	cfg    Config
	client ChatClient
	tokens TokenCounter
	logger *slog.Logger
}

// NewRecommender wires the generation step. tokens may be nil.
func NewRecommender(cfg Config, client ChatClient, tokens TokenCounter, logger *slog.Logger) Recommender {
	return &recommender{
		cfg:    cfg,
		client: client,
		tokens: tokens,
		logger: logger.With("component", "advisor.recommender"),
	}
}

func (r *recommender) Recommend(ctx context.Context, record WeatherRecord, location string) Recommendation {
	prompt := buildPrompt(record, location)
	r.logPromptSize(ctx, prompt)

	completion, err := r.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       r.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		r.logger.Warn("recommendation degraded", "location", location, "error", err)
		return Degraded(err)
	}
	if len(completion.Choices) == 0 {
		r.logger.Warn("recommendation degraded", "location", location, "error", errNoChoices)
		return Degraded(errNoChoices)
	}
	if completion.Usage != nil {
		usage := metrics.TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
		if !usage.IsZero() {
			r.logger.Info("chatgpt usage", usage.LogAttrs()...)
		}
	}

	content := completion.Choices[0].Message.Content
	r.logger.Debug("chatgpt response received", "content", content)

	result := parseRecommendation(content)
	if result.Kind == KindRawText {
		r.logger.Warn("chatgpt reply is not structured json, returning raw text", "location", location)
	}
	return result
}

func (r *recommender) logPromptSize(ctx context.Context, prompt string) {
	if r.tokens == nil || !r.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	count, err := r.tokens.Count(r.cfg.Model, prompt)
	if err != nil {
		r.logger.Debug("prompt token estimate unavailable", "error", err)
		return
	}
	r.logger.Debug("prompt built", "model", r.cfg.Model, "estimated_tokens", count)
}

// parseRecommendation keeps any reply that parses as JSON exactly as the model
// wrote it, minus a surrounding markdown fence. Everything else is raw text.
func parseRecommendation(content string) Recommendation {
	sanitized := stripCodeFence(content)
	if !json.Valid([]byte(sanitized)) {
		return RawText(content)
	}
	return Structured(json.RawMessage(sanitized))
}

func stripCodeFence(raw string) string {
	sanitized := strings.TrimSpace(raw)
	if !strings.HasPrefix(sanitized, "```") {
		return sanitized
	}
	sanitized = strings.TrimPrefix(sanitized, "```")
	sanitized = strings.TrimPrefix(sanitized, "json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	return strings.TrimSpace(sanitized)
}
