package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

var errToolsUnsupported = errors.New("tool calling is not supported by this chat model")

// OpenAIConfig configures an OpenAI-compatible chat model. Groq is reached
// the same way with its own base URL.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// OpenAIChatModel adapts go-openai to eino's chat model interface.
type OpenAIChatModel struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ model.ChatModel = (*OpenAIChatModel)(nil)

// NewOpenAIChatModel creates the adapter.
func NewOpenAIChatModel(cfg OpenAIConfig) *OpenAIChatModel {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIChatModel{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Generate sends one chat completion request.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
	}, opts...)

	req := openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(input)),
	}
	if options.Model != nil && *options.Model != "" {
		req.Model = *options.Model
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		req.MaxTokens = *options.MaxTokens
	}

	for _, msg := range input {
		if msg == nil {
			continue
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion returned no choices")
	}

	choice := resp.Choices[0]
	out := schema.AssistantMessage(choice.Message.Content, nil)
	out.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(choice.FinishReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	return out, nil
}

// Stream yields the full completion as a single chunk.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// BindTools is not supported; insights answers are plain text.
func (m *OpenAIChatModel) BindTools(tools []*schema.ToolInfo) error {
	if len(tools) == 0 {
		return nil
	}
	return errToolsUnsupported
}
