package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
)

type openAIProvider struct {
	model *openai.ChatModel
}

func newOpenAIProvider(ctx context.Context, cfg config.LLMConnectorConfig) (*openAIProvider, error) {
	temperature := cfg.Temperature
	maxTokens := int(cfg.MaxTokens)

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.RequestTimeout,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}

	return &openAIProvider{model: cm}, nil
}

func (p *openAIProvider) name() string { return config.ProviderOpenAI }

func (p *openAIProvider) complete(ctx context.Context, system string, turns []entity.Turn) (string, error) {
	msgs := make([]*schema.Message, 0, len(turns)+1)
	msgs = append(msgs, schema.SystemMessage(system))
	for _, t := range turns {
		if t.Role == entity.RoleAssistant {
			msgs = append(msgs, schema.AssistantMessage(t.Text, nil))
			continue
		}
		msgs = append(msgs, schema.UserMessage(t.Text))
	}

	resp, err := p.model.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("openai: generate: %w", err)
	}

	return resp.Content, nil
}
