package llm

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/rotisserie/eris"
)

type anthropicProvider struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

func newAnthropicProvider(cfg config.LLMConnectorConfig, opts ...option.RequestOption) *anthropicProvider {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.RequestTimeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	// retries are handled by the connector
	reqOpts = append(reqOpts, option.WithMaxRetries(0))
	reqOpts = append(reqOpts, opts...)

	return &anthropicProvider{
		client:      sdk.NewClient(reqOpts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float64(cfg.Temperature),
	}
}

func (p *anthropicProvider) name() string { return config.ProviderAnthropic }

func (p *anthropicProvider) complete(ctx context.Context, system string, turns []entity.Turn) (string, error) {
	msgs := make([]sdk.MessageParam, len(turns))
	for i, t := range turns {
		block := sdk.NewTextBlock(t.Text)
		if t.Role == entity.RoleAssistant {
			msgs[i] = sdk.NewAssistantMessage(block)
		} else {
			msgs[i] = sdk.NewUserMessage(block)
		}
	}

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(p.model),
		MaxTokens:   p.maxTokens,
		Messages:    msgs,
		System:      []sdk.TextBlockParam{{Text: system}},
		Temperature: sdk.Float(p.temperature),
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
