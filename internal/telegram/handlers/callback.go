package handlers

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/keyboard"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline button presses
type CallbackHandler struct {
	BaseHandler
}

func NewCallbackHandler(deps Deps) *CallbackHandler {
	return &CallbackHandler{BaseHandler: newBaseHandler(HandlerStateCallback, deps)}
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	chat, err := h.chatSession(ctx, msg.UserID)
	if err != nil {
		return err
	}
	lang := h.language(chat)

	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", msg.CallbackData),
		)
		h.messageSender.AnswerCallback(msg.CallbackID, render.For(lang).ErrInvalidInput)
		return nil
	}

	switch data.Action {
	case keyboard.ActionDownload:
		h.messageSender.AnswerCallback(msg.CallbackID, render.For(lang).Exporting)
		if chat == nil {
			h.sendMessage(msg.ChatID, render.For(lang).NoSession, nil)
			return nil
		}
		if err := h.export(ctx, msg.ChatID, chat, entity.ResultFormat(data.Value)); err != nil {
			h.HandleError(ctx, msg.ChatID, lang, err)
		}

	case keyboard.ActionLanguage:
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		parsed, err := entity.ParseLanguage(data.Value)
		if err != nil {
			h.sendMessage(msg.ChatID, render.For(lang).UnknownLanguage, nil)
			return nil
		}
		h.changeLanguage(ctx, msg, chat, parsed)

	case keyboard.ActionCommand:
		h.messageSender.AnswerCallback(msg.CallbackID, "")
		if data.Value == keyboard.ValueReset {
			h.reset(ctx, msg, chat, lang)
		}

	default:
		h.messageSender.AnswerCallback(msg.CallbackID, render.For(lang).ErrInvalidInput)
	}

	return nil
}
