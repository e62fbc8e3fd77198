package handlers

import (
	"context"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ConversationHandler forwards plain text to the conversation
type ConversationHandler struct {
	BaseHandler
}

func NewConversationHandler(deps Deps) *ConversationHandler {
	return &ConversationHandler{BaseHandler: newBaseHandler(HandlerStateConversation, deps)}
}

func (h *ConversationHandler) Handle(ctx context.Context, msg *Message) error {
	chat, err := h.chatSession(ctx, msg.UserID)
	if err != nil {
		return err
	}
	lang := h.language(chat)

	if strings.TrimSpace(msg.Text) == "" {
		h.sendMessage(msg.ChatID, render.For(lang).TextOnly, nil)
		return nil
	}

	// the first message without /start opens a conversation implicitly
	if chat == nil || chat.SessionID == "" {
		ctxzap.Debug(ctx, "no conversation bound, starting one", zap.Int64("user_id", msg.UserID))
		chat, err = h.startConversation(ctx, msg, lang)
		if err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
			return nil
		}
	}

	if err := h.submit(ctx, msg, chat); err != nil {
		h.HandleError(ctx, msg.ChatID, lang, err)
	}
	return nil
}
