package telegram

import (
	"context"
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/bot"
	"github.com/futig/legaldoc-assistant/internal/telegram/handlers"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	defaultLang entity.Language,
	storage state.Storage,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, defaultLang, stateManager, sessionUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	deps := b.Deps()

	b.RegisterHandler(handlers.NewCommandHandler(deps))
	b.RegisterHandler(handlers.NewCallbackHandler(deps))
	b.RegisterHandler(handlers.NewConversationHandler(deps))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}
