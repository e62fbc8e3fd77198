package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	pkgRetry "github.com/futig/legaldoc-assistant/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.LLMConnectorConfig {
	cfg := config.LLMConnectorConfig{
		Provider:           config.ProviderHTTP,
		Model:              "test-model",
		Temperature:        0.7,
		MaxTokens:          100,
		CompletionEndpoint: "/v1/complete",
		Retry: pkgRetry.RetryConfig{
			Attempts: 3,
			Delay:    time.Millisecond,
			MaxDelay: 5 * time.Millisecond,
		},
	}
	cfg.Url = url
	cfg.Token = "secret"
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func TestConnector_HTTPProvider(t *testing.T) {
	var got entity.LLMCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/complete", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entity.LLMCompletionResponse{Result: "Which document?"}) //nolint:errcheck
	}))
	defer ts.Close()

	c, err := NewConnector(context.Background(), testConfig(ts.URL), zap.NewNop())
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), &entity.GenerationRequest{
		Purpose:  entity.PromptDocumentSelection,
		Language: entity.LanguageEN,
		History:  []entity.Turn{{Role: entity.RoleAssistant, Text: "Welcome"}},
		Message:  "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Which document?", out)

	assert.Equal(t, "test-model", got.Model)
	assert.Contains(t, got.System, "select a legal document type")
	require.Len(t, got.Messages, 2)
	assert.Equal(t, entity.RoleAssistant, got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Text)
}

func TestConnector_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(entity.LLMCompletionResponse{Result: "ok"}) //nolint:errcheck
	}))
	defer ts.Close()

	c, err := NewConnector(context.Background(), testConfig(ts.URL), zap.NewNop())
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), &entity.GenerationRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestConnector_EmptyCompletion(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(entity.LLMCompletionResponse{Result: "  "}) //nolint:errcheck
	}))
	defer ts.Close()

	c, err := NewConnector(context.Background(), testConfig(ts.URL), zap.NewNop())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), &entity.GenerationRequest{Message: "hi"})
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewConnector_UnknownProvider(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Provider = "carrier-pigeon"

	_, err := NewConnector(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestAnthropicProvider_Complete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/messages")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Guten Tag"},
			},
			"model":       "claude-test",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer ts.Close()

	cfg := testConfig("")
	cfg.Provider = config.ProviderAnthropic
	cfg.APIKey = "test-key"
	p := newAnthropicProvider(cfg, option.WithBaseURL(ts.URL))

	out, err := p.complete(context.Background(), "be brief", []entity.Turn{
		{Role: entity.RoleUser, Text: "Hallo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Guten Tag", out)

	system, ok := body["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "be brief", system[0].(map[string]any)["text"])
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	out, err := m.Generate(context.Background(), &entity.GenerationRequest{
		Purpose:  entity.PromptDocumentSelection,
		Language: entity.LanguageDE,
		Context: &entity.GenerationContext{DocumentTypes: []entity.DocumentTypeSummary{
			{Name: "Vollmacht", Description: "Vertretung"},
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "- Vollmacht: Vertretung")

	out, err = m.Generate(context.Background(), &entity.GenerationRequest{
		Purpose: entity.PromptDocumentGeneration,
		Context: &entity.GenerationContext{
			DocumentType:    entity.DocumentMeetingMinutes,
			CollectedFields: []entity.Field{{ID: "chair", Value: "Kim"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "MEETING MINUTES")
	assert.Contains(t, out, "1. chair: Kim")
}
