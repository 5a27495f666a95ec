package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

// Service answers insights queries with a chat model: the query is first
// rephrased into a standalone question, then answered.
type Service struct {
	chatModel model.ChatModel
	rephrase  compose.Runnable[map[string]any, *schema.Message]
	answer    compose.Runnable[map[string]any, *schema.Message]
	logger    *zap.Logger
}

// NewService compiles the rephrase and answer chains over chatModel.
func NewService(ctx context.Context, chatModel model.ChatModel, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rephrase, err := compileChain(ctx, chatModel, rephraseSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rephrase chain: %w", err)
	}

	answer, err := compileChain(ctx, chatModel, answerSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile answer chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		rephrase:  rephrase,
		answer:    answer,
		logger:    logger,
	}, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel, system string) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	return chain.Compile(ctx)
}

// Rephrase returns a clearer version of query, or query itself when the
// model fails or returns nothing.
func (s *Service) Rephrase(ctx context.Context, query string) string {
	msg, err := s.rephrase.Invoke(ctx, map[string]any{"query": query})
	if err != nil {
		s.logger.Warn("rephrase failed, using raw query", zap.Error(err))
		return query
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return query
	}

	rephrased := strings.TrimSpace(msg.Content)
	s.logger.Debug("rephrased query", zap.String("query", query), zap.String("rephrased", rephrased))
	return rephrased
}

// Answer implements the insights answerer.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	question := s.Rephrase(ctx, query)

	msg, err := s.answer.Invoke(ctx, map[string]any{"query": question})
	if err != nil {
		return "", fmt.Errorf("failed to run answer chain: %w", err)
	}
	if msg == nil {
		return "", fmt.Errorf("answer chain returned no message")
	}

	s.logger.Info("generated answer", zap.Int("length", len(msg.Content)))
	return msg.Content, nil
}
