package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without a model, used when mocks are enabled
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating reply via LLM", zap.String("purpose", string(req.Purpose)))

	de := req.Language.OrDefault() == entity.LanguageDE

	switch req.Purpose {
	case entity.PromptDocumentSelection:
		var b strings.Builder
		if de {
			b.WriteString("Ich kann Ihnen bei folgenden Dokumenten helfen:\n")
		} else {
			b.WriteString("I can help you with the following documents:\n")
		}
		if req.Context != nil {
			for _, t := range req.Context.DocumentTypes {
				fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
			}
		}
		if de {
			b.WriteString("\nWelches Dokument möchten Sie erstellen?")
		} else {
			b.WriteString("\nWhich document would you like to create?")
		}
		return b.String(), nil

	case entity.PromptDocumentGeneration:
		var b strings.Builder
		docType := entity.DocumentTypeID("document")
		var fields []entity.Field
		if req.Context != nil {
			docType = req.Context.DocumentType
			fields = req.Context.CollectedFields
		}
		fmt.Fprintf(&b, "%s\n\n", strings.ToUpper(strings.ReplaceAll(string(docType), "_", " ")))
		for i, f := range fields {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, f.ID, f.Value)
		}
		return b.String(), nil

	default:
		if de {
			return "Wie kann ich Ihnen bei Ihrem Dokument helfen?", nil
		}
		return "How can I help you with your document?", nil
	}
}
