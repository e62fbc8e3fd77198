package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	pkgRetry "github.com/futig/legaldoc-assistant/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// provider sends one chat completion to a concrete backend
type provider interface {
	complete(ctx context.Context, system string, turns []entity.Turn) (string, error)
	name() string
}

type Connector struct {
	config   config.LLMConnectorConfig
	provider provider
	logger   *zap.Logger
}

func NewConnector(
	ctx context.Context,
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) (*Connector, error) {
	p, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Connector{
		config:   cfg,
		provider: p,
		logger:   logger,
	}, nil
}

func newProvider(ctx context.Context, cfg config.LLMConnectorConfig, logger *zap.Logger) (provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAIProvider(ctx, cfg)
	case config.ProviderAnthropic:
		return newAnthropicProvider(cfg), nil
	case config.ProviderGemini:
		return newGeminiProvider(ctx, cfg)
	case config.ProviderHTTP:
		return newHTTPProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Generate produces the assistant reply for one conversation turn
func (c *Connector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "generating reply via LLM",
		zap.String("provider", c.provider.name()),
		zap.String("purpose", string(req.Purpose)),
		zap.Int("history_len", len(req.History)),
	)

	system := SystemPrompt(req)
	turns := conversation(req)

	text, err := pkgRetry.DoWithData(ctx, &c.config.Retry,
		func(ctx context.Context) (string, error) {
			out, err := c.provider.complete(ctx, system, turns)
			if err != nil {
				return "", err
			}
			if strings.TrimSpace(out) == "" {
				return "", retry.Unrecoverable(entity.ErrEmptyCompletion)
			}
			return out, nil
		},
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "LLM call failed, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return "", fmt.Errorf("generate reply failed: %w", err)
	}

	ctxzap.Info(ctx, "reply generated successfully", zap.Int("result_length", len(text)))

	return text, nil
}
