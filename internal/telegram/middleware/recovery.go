package middleware

import (
	"runtime/debug"

	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into an apology in the user's language
type RecoveryMiddleware struct {
	logger   *zap.Logger
	bot      Sender
	language LanguageFunc
}

func NewRecoveryMiddleware(logger *zap.Logger, bot Sender, language LanguageFunc) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger:   logger,
		bot:      bot,
		language: language,
	}
}

func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		userID, chatID, _ := participants(update)
		m.logger.Error("panic recovered in telegram handler",
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
			zap.Int("update_id", update.UpdateID),
			zap.Int64("user_id", userID),
		)

		if chatID == 0 {
			return
		}

		text := render.For(m.language(userID)).ErrGeneric
		if _, err := m.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			m.logger.Error("failed to send error message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}()

	next(update)
}
