package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/keyboard"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler routing keys
const (
	HandlerStateCommand      = "COMMAND"
	HandlerStateCallback     = "CALLBACK"
	HandlerStateConversation = "CONVERSATION"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Command      string
	Arguments    string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string
}

// Deps are shared by all handlers
type Deps struct {
	API             BotAPI
	Sessions        SessionUsecase
	States          StateManager
	Keyboard        *keyboard.Builder
	DefaultLanguage entity.Language
	Logger          *zap.Logger
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     string
	deps          Deps
	messageSender *MessageSender
}

func newBaseHandler(stateName string, deps Deps) BaseHandler {
	return BaseHandler{
		stateName:     stateName,
		deps:          deps,
		messageSender: NewMessageSender(deps.API, deps.Logger),
	}
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

// sendMessage is a convenience wrapper for messageSender.Send
func (h *BaseHandler) sendMessage(chatID int64, text string, markup interface{}) {
	if h.messageSender != nil {
		_ = h.messageSender.Send(chatID, text, markup)
	}
}

// chatSession returns the bound conversation, nil when there is none
func (h *BaseHandler) chatSession(ctx context.Context, userID int64) (*state.ChatSession, error) {
	chat, err := h.deps.States.GetSession(ctx, userID)
	if errors.Is(err, state.ErrNoChatSession) {
		return nil, nil
	}
	return chat, err
}

// language of the user, the configured default when nothing is bound
func (h *BaseHandler) language(chat *state.ChatSession) entity.Language {
	if chat != nil && chat.Language != "" {
		return chat.Language
	}
	return h.deps.DefaultLanguage.OrDefault()
}

// startConversation replaces any running conversation of the user with a
// fresh one and sends its greeting
func (h *BaseHandler) startConversation(ctx context.Context, msg *Message, lang entity.Language) (*state.ChatSession, error) {
	previous, err := h.chatSession(ctx, msg.UserID)
	if err != nil {
		return nil, err
	}
	if previous != nil && previous.SessionID != "" {
		if err := h.deps.Sessions.DeleteSession(ctx, previous.SessionID); err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
			ctxzap.Warn(ctx, "failed to delete previous session",
				zap.Error(err),
				zap.String("session_id", previous.SessionID),
			)
		}
	}

	session, greeting, err := h.deps.Sessions.StartSession(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	chat, err := h.deps.States.Bind(ctx, msg.UserID, msg.ChatID, session.ID, session.Language)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "telegram conversation started",
		zap.String("session_id", session.ID),
		zap.Int64("user_id", msg.UserID),
	)

	h.sendMessage(msg.ChatID, greeting, nil)
	return chat, nil
}

// submit forwards one user message to the conversation and sends the reply
func (h *BaseHandler) submit(ctx context.Context, msg *Message, chat *state.ChatSession) error {
	stopTyping := startTyping(ctx, h.deps.API, msg.ChatID, h.deps.Logger)
	resp, err := h.deps.Sessions.SubmitMessage(ctx, chat.SessionID, msg.Text)
	stopTyping()

	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			_ = h.deps.States.DeleteSession(ctx, msg.UserID)
		}
		return err
	}

	if err := h.deps.States.Touch(ctx, chat); err != nil {
		ctxzap.Warn(ctx, "failed to refresh telegram session", zap.Error(err))
	}

	h.sendMessage(msg.ChatID, resp.Reply, nil)

	if resp.IsComplete {
		lang := h.language(chat)
		h.sendMessage(msg.ChatID, render.For(lang).DocumentReady, h.deps.Keyboard.ExportKeyboard(lang))
	}

	return nil
}

// export sends the finished document as a file
func (h *BaseHandler) export(ctx context.Context, chatID int64, chat *state.ChatSession, format entity.ResultFormat) error {
	doc, err := h.deps.Sessions.ExportDocument(ctx, chat.SessionID, format)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf(render.For(h.language(chat)).ExportCaption, doc.FileName)

	return deliver(ctx, chatID, func() error {
		return h.messageSender.SendDocument(chatID, doc.FileName, doc.Data, caption)
	})
}
