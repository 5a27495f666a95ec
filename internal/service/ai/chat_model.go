package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/zhouzirui/flight-insights/backend/internal/config"
)

// NewChatModel 根据配置的 provider 创建模型实例。
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.ChatModel, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("credentials missing for llm provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderArk:
		return newArkChatModel(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAIChatModel(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.CompatModel(),
		}), nil
	case config.ProviderGroq:
		return NewOpenAIChatModel(OpenAIConfig{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.CompatModel(),
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedProvider, cfg.Provider)
	}
}

func newArkChatModel(ctx context.Context, c config.LLMConfig) (model.ChatModel, error) {
	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}
