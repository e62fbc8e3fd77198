package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/handlers"
	"github.com/futig/legaldoc-assistant/internal/telegram/keyboard"
	"github.com/futig/legaldoc-assistant/internal/telegram/middleware"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	deps         handlers.Deps
	logger       *zap.Logger
	loggingMW    *middleware.LoggingMiddleware
	recoveryMW   *middleware.RecoveryMiddleware
	rateLimitMW  *middleware.RateLimiterMiddleware
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	defaultLang entity.Language,
	stateManager *state.Manager,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		deps: handlers.Deps{
			API:             api,
			Sessions:        sessionUC,
			States:          stateManager,
			Keyboard:        keyboard.NewBuilder(),
			DefaultLanguage: defaultLang,
			Logger:          logger,
		},
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api, bot.userLanguage)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		bot.userLanguage,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg, key, ok := normalize(update)
	if !ok {
		return
	}

	ctx = ctxzap.ToContext(ctx, b.logger.With(
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
	))

	handler, exists := b.handlers[key]
	if !exists {
		ctxzap.Warn(ctx, "no handler registered", zap.String("state", key))
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", key),
		)
		b.sendError(msg.ChatID, render.For(b.userLanguage(msg.UserID)).ErrGeneric)
	}
}

// normalize turns an update into a handler message and its routing key
func normalize(update tgbotapi.Update) (*handlers.Message, string, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		query := update.CallbackQuery
		return &handlers.Message{
			ChatID:       query.Message.Chat.ID,
			UserID:       query.From.ID,
			MessageID:    query.Message.MessageID,
			CallbackData: query.Data,
			CallbackID:   query.ID,
		}, handlers.HandlerStateCallback, true

	case update.Message != nil && update.Message.From != nil:
		message := update.Message
		msg := &handlers.Message{
			ChatID:    message.Chat.ID,
			UserID:    message.From.ID,
			MessageID: message.MessageID,
			Text:      message.Text,
		}
		if message.IsCommand() {
			msg.Command = message.Command()
			msg.Arguments = message.CommandArguments()
			return msg, handlers.HandlerStateCommand, true
		}
		return msg, handlers.HandlerStateConversation, true

	default:
		return nil, "", false
	}
}

// userLanguage is the language of the user's conversation, English otherwise
func (b *Bot) userLanguage(userID int64) entity.Language {
	chat, err := b.stateManager.GetSession(context.Background(), userID)
	if err != nil || chat.Language == "" {
		return b.deps.DefaultLanguage.OrDefault()
	}
	return chat.Language
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	b.handlers[handler.GetState()] = handler
	b.logger.Info("handler registered",
		zap.String("state", handler.GetState()),
	)
}

// Deps returns the dependencies handlers are built from
func (b *Bot) Deps() handlers.Deps {
	return b.deps
}
