package session

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/formatter"
)

type SessionStore interface {
	Save(ctx context.Context, id string, s *Conversation) error
	Get(ctx context.Context, id string) (*Conversation, error)
	Delete(ctx context.Context, id string) error
}

type Catalog interface {
	Types() []entity.DocumentType
	Title(id entity.DocumentTypeID, lang entity.Language) string
}

type DocumentBuilder interface {
	Build(req *formatter.ExportRequest) (*entity.ExportedDocument, error)
}
