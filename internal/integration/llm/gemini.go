package llm

import (
	"context"
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func newGeminiProvider(ctx context.Context, cfg config.LLMConnectorConfig) (*geminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &geminiProvider{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.Temperature),
			MaxOutputTokens: int32(cfg.MaxTokens),
		},
	}, nil
}

func (p *geminiProvider) name() string { return config.ProviderGemini }

func (p *geminiProvider) complete(ctx context.Context, system string, turns []entity.Turn) (string, error) {
	contents := make([]*genai.Content, len(turns))
	for i, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == entity.RoleAssistant {
			role = genai.RoleModel
		}
		contents[i] = genai.NewContentFromText(t.Text, role)
	}

	cfg := *p.config
	cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	return resp.Text(), nil
}
