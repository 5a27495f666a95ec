package insights

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/flight-insights/backend/internal/config"
	"github.com/zhouzirui/flight-insights/backend/internal/service/ai"
	insightsclient "github.com/zhouzirui/flight-insights/backend/pkg/insights"
)

const maxInitAttempts = 5

// ErrNoAnswerer means neither an upstream service nor an LLM is configured.
var ErrNoAnswerer = errors.New("no insights backend configured")

// retryDelay is a var so tests can shorten it.
var retryDelay = 2 * time.Second

// Answerer produces the answer_fetched text for a query. Implementations
// must be safe for concurrent use.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Upstream forwards queries to an external insights service.
type Upstream struct {
	client *insightsclient.Client
}

// NewUpstream targets endpoint with a client bounded by timeout.
func NewUpstream(endpoint string, timeout time.Duration) *Upstream {
	return &Upstream{client: insightsclient.NewClient(endpoint, &http.Client{Timeout: timeout})}
}

// Answer implements Answerer.
func (u *Upstream) Answer(ctx context.Context, query string) (string, error) {
	resp, err := u.client.Ask(ctx, query)
	if err != nil {
		return "", fmt.Errorf("upstream insights: %w", err)
	}
	return resp.Text(), nil
}

// New picks the answerer described by cfg. The upstream service wins over
// an LLM; LLM construction is retried because model endpoints can be slow
// to come up alongside the service.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Answerer, error) {
	if cfg.Insights.Enabled() {
		logger.Info("using upstream insights service", zap.String("url", cfg.Insights.UpstreamURL))
		return NewUpstream(cfg.Insights.UpstreamURL, cfg.Insights.Timeout), nil
	}

	if !cfg.LLM.Enabled() {
		return nil, ErrNoAnswerer
	}

	return withRetry(ctx, logger, maxInitAttempts, func() (Answerer, error) {
		chatModel, err := ai.NewChatModel(ctx, cfg.LLM)
		if err != nil {
			return nil, err
		}
		svc, err := ai.NewService(ctx, chatModel, logger.Named("ai"))
		if err != nil {
			return nil, err
		}
		logger.Info("llm answerer ready", zap.String("provider", cfg.LLM.Provider))
		return svc, nil
	})
}

func withRetry(ctx context.Context, logger *zap.Logger, attempts int, build func() (Answerer, error)) (Answerer, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		answerer, err := build()
		if err == nil {
			return answerer, nil
		}
		lastErr = err
		logger.Error("answerer init failed, retrying", zap.Int("attempt", attempt), zap.Error(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("answerer init failed after %d attempts: %w", attempts, lastErr)
}
