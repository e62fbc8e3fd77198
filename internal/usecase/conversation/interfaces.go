package conversation

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type Catalog interface {
	Lookup(id entity.DocumentTypeID) (*entity.DocumentType, bool)
	DisplayName(id entity.DocumentTypeID, lang entity.Language) string
	Summaries(lang entity.Language) []entity.DocumentTypeSummary
}

type Classifier interface {
	Classify(message string, lang entity.Language) (entity.DocumentTypeID, bool)
}

type AnswerValidator interface {
	ValidateAnswer(raw string, kind entity.ValueKind, lang entity.Language) (bool, string)
}

// TextGenerator produces free text from a prompt purpose and conversation context
type TextGenerator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (string, error)
}

// Researcher returns jurisdiction guidance for a document type
type Researcher interface {
	Guidance(ctx context.Context, docType entity.DocumentTypeID, country string) (string, error)
}

type Renderer interface {
	Render(docType entity.DocumentTypeID, fields []entity.Field, lang entity.Language) (string, error)
}

// Dependencies are shared by every machine. Researcher may be nil.
type Dependencies struct {
	Catalog    Catalog
	Classifier Classifier
	Validator  AnswerValidator
	Generator  TextGenerator
	Researcher Researcher
	Renderer   Renderer
}
