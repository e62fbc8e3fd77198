package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/legaldoc-assistant/internal/api"
	sessionapi "github.com/futig/legaldoc-assistant/internal/api/session"
	"github.com/futig/legaldoc-assistant/internal/catalog"
	"github.com/futig/legaldoc-assistant/internal/classifier"
	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/integration/llm"
	"github.com/futig/legaldoc-assistant/internal/integration/research"
	"github.com/futig/legaldoc-assistant/internal/pkg/formatter"
	"github.com/futig/legaldoc-assistant/internal/pkg/validator"
	"github.com/futig/legaldoc-assistant/internal/renderer"
	"github.com/futig/legaldoc-assistant/internal/repository/memory"
	"github.com/futig/legaldoc-assistant/internal/telegram"
	"github.com/futig/legaldoc-assistant/internal/telegram/state"
	"github.com/futig/legaldoc-assistant/internal/usecase/conversation"
	"github.com/futig/legaldoc-assistant/internal/usecase/session"
	"go.uber.org/zap"
)

// Researcher is the jurisdiction research used by the conversation and the CLI
type Researcher interface {
	Research(ctx context.Context, docType entity.DocumentTypeID, country string) (*entity.ResearchRecord, error)
	Guidance(ctx context.Context, docType entity.DocumentTypeID, country string) (string, error)
}

// Components are the collaborators shared by every entry point
type Components struct {
	Config     *config.Config
	Logger     *zap.Logger
	Catalog    *catalog.Catalog
	Validator  *validator.Validator
	Researcher Researcher
	Exporter   *formatter.Exporter
	Sessions   *session.SessionUsecase
	Store      *memory.Store[*session.Conversation]
}

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.LogFile, true)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	c, err := NewComponents(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	sessionHandler := sessionapi.NewHandler(c.Sessions, c.Validator, cfg.ExportCfg.DefaultFormat)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(sessionHandler, logger)
	logger.Info("HTTP router configured")

	// generation can take a while, the write timeout covers one LLM turn with retries
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:   server,
		sessions: c.Store,
		logger:   logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.LogFile, true)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	c, err := NewComponents(context.Background(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	chats := memory.NewStore[*state.ChatSession](
		cfg.SessionStoreCfg.TTL,
		cfg.SessionStoreCfg.CleanupInterval,
		state.ErrNoChatSession,
	)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, cfg.ConversationCfg.DefaultLanguage, chats, c.Sessions, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// BuildCLI wires the components for the terminal client. Console logging is
// off unless verbose is set, the chat owns the terminal.
func BuildCLI(environment string, verbose bool) (*Components, error) {
	cfg, err := config.Load(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.LogFile, verbose)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return NewComponents(context.Background(), cfg, logger)
}

// NewComponents builds everything below the transport layer
func NewComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("Catalog loaded", zap.Int("document_types", len(cat.Types())))

	render, err := renderer.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	answerValidator := validator.NewValidator(cfg.ConversationCfg)

	var generator conversation.TextGenerator
	var researcher Researcher

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		generator = llm.NewMockConnector(logger)
		researcher = research.NewMockResearcher(logger)
	} else {
		logger.Info("Using real connectors for external services",
			zap.String("llm_provider", cfg.LLMConnectorCfg.Provider),
		)
		connector, err := llm.NewConnector(ctx, cfg.LLMConnectorCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create llm connector: %w", err)
		}
		generator = connector

		searcher := research.NewDuckDuckGoSearcher(cfg.ResearchCfg, logger)
		researcher = research.NewEngine(cfg.ResearchCfg, searcher, logger)
	}

	deps := conversation.Dependencies{
		Catalog:    cat,
		Classifier: classifier.New(cat),
		Validator:  answerValidator,
		Generator:  generator,
		Renderer:   render,
	}
	if cfg.ConversationCfg.LocalizationResearch {
		deps.Researcher = researcher
	}

	opts := []conversation.Option{
		conversation.WithHistoryWindow(cfg.ConversationCfg.HistoryWindow),
		conversation.WithLocalizationResearch(cfg.ConversationCfg.LocalizationResearch),
	}

	store := memory.NewStore[*session.Conversation](
		cfg.SessionStoreCfg.TTL,
		cfg.SessionStoreCfg.CleanupInterval,
		entity.ErrSessionNotFound,
	)
	store.OnEvicted(func(id string, _ *session.Conversation) {
		logger.Debug("session expired", zap.String("session_id", id))
	})

	exporter := formatter.NewExporter(cfg.ExportCfg.Folder)

	sessionUC := session.NewUsecase(store, deps, opts, cat, exporter, logger)
	logger.Info("Use cases initialized")

	return &Components{
		Config:     cfg,
		Logger:     logger,
		Catalog:    cat,
		Validator:  answerValidator,
		Researcher: researcher,
		Exporter:   exporter,
		Sessions:   sessionUC,
		Store:      store,
	}, nil
}
