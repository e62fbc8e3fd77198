package state

import (
	"context"
	"errors"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

var ErrNoChatSession = errors.New("no conversation bound to telegram user")

// ChatSession maps a telegram user to a conversation
type ChatSession struct {
	UserID    int64           `json:"user_id"`
	ChatID    int64           `json:"chat_id"`
	SessionID string          `json:"session_id,omitempty"`
	Language  entity.Language `json:"language"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Storage keeps chat sessions keyed by user id
type Storage interface {
	Save(ctx context.Context, id string, session *ChatSession) error
	Get(ctx context.Context, id string) (*ChatSession, error)
	Delete(ctx context.Context, id string) error
}
