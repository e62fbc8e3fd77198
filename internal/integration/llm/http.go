package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/integration/common"
	pkghttp "github.com/futig/legaldoc-assistant/pkg/http"
	"go.uber.org/zap"
)

// httpProvider talks to a completion service speaking LLMCompletionRequest
type httpProvider struct {
	connector *pkghttp.Connector
	endpoint  string
	model     string
	temp      float32
	maxTokens int64
}

func newHTTPProvider(cfg config.LLMConnectorConfig, logger *zap.Logger) *httpProvider {
	return &httpProvider{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		endpoint:  cfg.CompletionEndpoint,
		model:     cfg.Model,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *httpProvider) name() string { return config.ProviderHTTP }

func (p *httpProvider) complete(ctx context.Context, system string, turns []entity.Turn) (string, error) {
	req := &entity.LLMCompletionRequest{
		System:      system,
		Messages:    turns,
		Model:       p.model,
		Temperature: p.temp,
		MaxTokens:   p.maxTokens,
	}

	var resp entity.LLMCompletionResponse
	if err := p.connector.DoRequest(ctx, http.MethodPost, p.endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	return resp.Result, nil
}
