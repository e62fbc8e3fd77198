package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CommandHandler handles slash commands
type CommandHandler struct {
	BaseHandler
}

func NewCommandHandler(deps Deps) *CommandHandler {
	return &CommandHandler{BaseHandler: newBaseHandler(HandlerStateCommand, deps)}
}

func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	chat, err := h.chatSession(ctx, msg.UserID)
	if err != nil {
		return err
	}
	lang := h.language(chat)
	args := strings.TrimSpace(msg.Arguments)

	ctxzap.Info(ctx, "command received",
		zap.String("command", msg.Command),
		zap.Int64("user_id", msg.UserID),
	)

	switch msg.Command {
	case "start":
		if args != "" {
			parsed, err := entity.ParseLanguage(args)
			if err != nil {
				h.sendMessage(msg.ChatID, render.For(lang).UnknownLanguage, nil)
				return nil
			}
			lang = parsed
		}
		if _, err := h.startConversation(ctx, msg, lang); err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}

	case "reset":
		h.reset(ctx, msg, chat, lang)

	case "language":
		if args == "" {
			h.sendMessage(msg.ChatID, render.For(lang).ChooseLanguage, h.deps.Keyboard.LanguageKeyboard())
			return nil
		}
		parsed, err := entity.ParseLanguage(args)
		if err != nil {
			h.sendMessage(msg.ChatID, render.For(lang).UnknownLanguage, nil)
			return nil
		}
		h.changeLanguage(ctx, msg, chat, parsed)

	case "export":
		if chat == nil {
			h.sendMessage(msg.ChatID, render.For(lang).NoSession, nil)
			return nil
		}
		format := entity.FormatDOCX
		if args != "" {
			format = entity.ResultFormat(strings.ToLower(args))
			if !format.IsValid() {
				h.sendMessage(msg.ChatID, render.For(lang).ErrInvalidFormat, nil)
				return nil
			}
		}
		if err := h.export(ctx, msg.ChatID, chat, format); err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}

	case "cancel":
		h.cancel(ctx, msg, chat, lang)

	case "help":
		h.sendMessage(msg.ChatID, render.For(lang).Help, nil)

	default:
		h.sendMessage(msg.ChatID, render.For(lang).UnknownCommand, nil)
	}

	return nil
}

func (h *BaseHandler) reset(ctx context.Context, msg *Message, chat *state.ChatSession, lang entity.Language) {
	if chat == nil {
		if _, err := h.startConversation(ctx, msg, lang); err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}
		return
	}

	_, greeting, err := h.deps.Sessions.ResetSession(ctx, chat.SessionID)
	if errors.Is(err, entity.ErrSessionNotFound) {
		// expired, a new conversation is the same as a reset
		_, err = h.startConversation(ctx, msg, lang)
		if err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}
		return
	}
	if err != nil {
		h.HandleError(ctx, msg.ChatID, lang, err)
		return
	}

	h.sendMessage(msg.ChatID, greeting, nil)
}

func (h *BaseHandler) changeLanguage(ctx context.Context, msg *Message, chat *state.ChatSession, lang entity.Language) {
	if chat == nil {
		if _, err := h.startConversation(ctx, msg, lang); err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}
		return
	}

	_, greeting, err := h.deps.Sessions.ChangeLanguage(ctx, chat.SessionID, lang)
	if errors.Is(err, entity.ErrSessionNotFound) {
		_, err = h.startConversation(ctx, msg, lang)
		if err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}
		return
	}
	if err != nil {
		h.HandleError(ctx, msg.ChatID, lang, err)
		return
	}

	if err := h.deps.States.SetLanguage(ctx, msg.UserID, lang); err != nil {
		ctxzap.Warn(ctx, "failed to store language", zap.Error(err))
	}

	h.sendMessage(msg.ChatID, render.For(lang).LanguageChanged, nil)
	h.sendMessage(msg.ChatID, greeting, nil)
}

func (h *BaseHandler) cancel(ctx context.Context, msg *Message, chat *state.ChatSession, lang entity.Language) {
	if chat == nil {
		h.sendMessage(msg.ChatID, render.For(lang).NoSession, nil)
		return
	}

	if err := h.deps.Sessions.DeleteSession(ctx, chat.SessionID); err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		ctxzap.Error(ctx, "failed to delete session",
			zap.Error(err),
			zap.String("session_id", chat.SessionID),
		)
	}

	if err := h.deps.States.DeleteSession(ctx, msg.UserID); err != nil {
		ctxzap.Error(ctx, "failed to delete telegram session",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
	}

	h.sendMessage(msg.ChatID, render.For(lang).SessionFinished, nil)
}
