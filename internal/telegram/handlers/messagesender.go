package handlers

import (
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot    BotAPI
	logger *zap.Logger
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot BotAPI, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send sends a message to the specified chat. Long texts are split, the
// markup goes with the last chunk.
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) error {
	chunks := render.Split(text, render.MaxMessageLength)

	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if markup != nil && i == len(chunks)-1 {
			msg.ReplyMarkup = markup
		}

		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error("failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
			return err
		}
	}

	return nil
}

// SendDocument uploads a file to the chat
func (s *MessageSender) SendDocument(chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	doc.Caption = caption

	if _, err := s.bot.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

// AnswerCallback acknowledges a button press
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
