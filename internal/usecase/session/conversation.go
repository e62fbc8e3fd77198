package session

import (
	"sync"
	"time"

	"github.com/futig/legaldoc-assistant/internal/usecase/conversation"
)

// Conversation is a stored session. mu serialises turns of one session,
// different sessions proceed concurrently. deleted is set under mu.
type Conversation struct {
	mu        sync.Mutex
	deleted   bool
	ID        string
	machine   *conversation.Machine
	CreatedAt time.Time
	UpdatedAt time.Time
}
