package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram shows a chat action for about five seconds
const typingInterval = 4 * time.Second

// startTyping keeps the "typing…" indicator visible until the returned stop is called.
// A drafting turn may wait on the model for a while, so the action is repeated.
func startTyping(ctx context.Context, api BotAPI, chatID int64, logger *zap.Logger) (stop func()) {
	send := func() {
		if _, err := api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
			logger.Warn("failed to send typing action",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}
	send()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				send()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}
