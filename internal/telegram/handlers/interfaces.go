package handlers

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SessionUsecase is the conversation API the bot drives
type SessionUsecase interface {
	StartSession(ctx context.Context, lang entity.Language) (*entity.SessionDTO, string, error)
	SubmitMessage(ctx context.Context, sessionID, text string) (*entity.MessageResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, string, error)
	ChangeLanguage(ctx context.Context, sessionID string, lang entity.Language) (*entity.SessionDTO, string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ExportDocument(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}

// StateManager maps telegram users to conversations
type StateManager interface {
	GetSession(ctx context.Context, userID int64) (*state.ChatSession, error)
	Bind(ctx context.Context, userID, chatID int64, sessionID string, lang entity.Language) (*state.ChatSession, error)
	SetLanguage(ctx context.Context, userID int64, lang entity.Language) error
	Touch(ctx context.Context, session *state.ChatSession) error
	DeleteSession(ctx context.Context, userID int64) error
}

// BotAPI is the part of the Telegram client the handlers use
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
