package state

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

// Manager manages telegram sessions
type Manager struct {
	storage Storage
	now     func() time.Time
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		now:     time.Now,
	}
}

// GetSession retrieves telegram session from storage
func (m *Manager) GetSession(ctx context.Context, userID int64) (*ChatSession, error) {
	session, err := m.storage.Get(ctx, key(userID))
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// Bind attaches a conversation to the user, replacing any previous one
func (m *Manager) Bind(ctx context.Context, userID, chatID int64, sessionID string, lang entity.Language) (*ChatSession, error) {
	now := m.now()

	session, err := m.storage.Get(ctx, key(userID))
	if err != nil {
		session = &ChatSession{
			UserID:    userID,
			CreatedAt: now,
		}
	}

	session.ChatID = chatID
	session.SessionID = sessionID
	session.Language = lang
	session.UpdatedAt = now

	if err := m.storage.Save(ctx, key(userID), session); err != nil {
		return nil, fmt.Errorf("save telegram session to storage: %w", err)
	}

	return session, nil
}

// SetLanguage records the language the user switched to
func (m *Manager) SetLanguage(ctx context.Context, userID int64, lang entity.Language) error {
	session, err := m.GetSession(ctx, userID)
	if err != nil {
		return err
	}

	session.Language = lang
	session.UpdatedAt = m.now()

	if err := m.storage.Save(ctx, key(userID), session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}

	return nil
}

// Touch refreshes the expiry of the mapping
func (m *Manager) Touch(ctx context.Context, session *ChatSession) error {
	session.UpdatedAt = m.now()
	if err := m.storage.Save(ctx, key(session.UserID), session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}
	return nil
}

// DeleteSession removes telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, key(userID)); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
