package session

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context, lang entity.Language) (*entity.SessionDTO, string, error)
	SubmitMessage(ctx context.Context, sessionID, text string) (*entity.MessageResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, string, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ExportDocument(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error)
	ListDocumentTypes(lang entity.Language) []entity.DocumentTypeDTO
}

type RequestValidator interface {
	ValidateStartSession(req *entity.StartSessionRequest) (entity.Language, error)
	ValidateSubmitMessage(req *entity.SubmitMessageRequest) error
	ValidateExportFormat(raw string) (entity.ResultFormat, error)
}
