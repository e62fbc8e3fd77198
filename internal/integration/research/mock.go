package research

import (
	"context"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockResearcher returns a canned record without network access
type MockResearcher struct {
	logger *zap.Logger
}

func NewMockResearcher(logger *zap.Logger) *MockResearcher {
	return &MockResearcher{logger: logger}
}

func (m *MockResearcher) Research(ctx context.Context, docType entity.DocumentTypeID, country string) (*entity.ResearchRecord, error) {
	ctxzap.Info(ctx, "[MOCK] researching localization requirements", zap.String("country", country))

	return &entity.ResearchRecord{
		Country:      country,
		DocumentType: docType,
		LegalRequirements: []string{
			"The agreement must include the full legal names of all parties",
		},
		TemplateStructure: []string{
			"Each section should be numbered and titled",
		},
		KeyClauses: []string{
			"A governing law clause naming the jurisdiction is recommended",
		},
		ComplianceNotes: []string{},
		Sources: []entity.Source{
			{URL: "https://example.com/legal-guide", Title: "Legal guide", Snippet: "Sample guidance..."},
		},
		LastUpdated: time.Now(),
	}, nil
}

func (m *MockResearcher) Guidance(ctx context.Context, docType entity.DocumentTypeID, country string) (string, error) {
	r, err := m.Research(ctx, docType, country)
	if err != nil {
		return "", err
	}
	return FormatGuidance(r), nil
}
