package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/legaldoc-assistant/internal/entity"
	pkgRetry "github.com/futig/legaldoc-assistant/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Logging configuration
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  LogFileConfig `envPrefix:"LOG_FILE_"`

	// Conversation behaviour
	ConversationCfg ConversationConfig `envPrefix:"CONVERSATION_"`

	// In-memory session store
	SessionStoreCfg SessionStoreConfig `envPrefix:"SESSION_"`

	// Optional catalog override, the embedded catalog is used when empty
	CatalogPath string `env:"CATALOG_PATH"`

	// External service configurations
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	ResearchCfg     ResearchConfig     `envPrefix:"RESEARCH_"`

	// Document export
	ExportCfg ExportConfig `envPrefix:"EXPORT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LogFileConfig struct {
	Path       string `env:"PATH"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"30"`
	Compress   bool   `env:"COMPRESS" envDefault:"true"`
}

type ConversationConfig struct {
	DefaultLanguage      entity.Language `env:"DEFAULT_LANGUAGE" envDefault:"EN"`
	HistoryWindow        int             `env:"HISTORY_WINDOW" envDefault:"10"`
	LocalizationResearch bool            `env:"LOCALIZATION_RESEARCH" envDefault:"false"`
	MaxMessageLength     int             `env:"MAX_MESSAGE_LENGTH" envDefault:"4000"`
}

type SessionStoreConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderHTTP      = "http"
)

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider           string               `env:"PROVIDER" envDefault:"openai"`
	Model              string               `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	APIKey             string               `env:"API_KEY"`
	BaseURL            string               `env:"BASE_URL"`
	Temperature        float32              `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens          int64                `env:"MAX_TOKENS" envDefault:"2000"`
	CompletionEndpoint string               `env:"COMPLETION_ENDPOINT" envDefault:"/v1/complete"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ResearchConfig struct {
	HTTPClientConfig
	SearchEndpoint    string        `env:"SEARCH_ENDPOINT" envDefault:"/html/"`
	MaxResults        int           `env:"MAX_RESULTS" envDefault:"5"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND" envDefault:"1"`
	Burst             int           `env:"BURST" envDefault:"1"`
	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	OutputDir         string        `env:"OUTPUT_DIR"`
}

type ExportConfig struct {
	Folder        string              `env:"FOLDER" envDefault:"exports"`
	DefaultFormat entity.ResultFormat `env:"DEFAULT_FORMAT" envDefault:"docx"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// LoadConfig reads the -env flag and loads the matching configuration
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load loads .env.<environment> if present, then parses the process environment
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.ConversationCfg.DefaultLanguage = entity.Language(strings.ToUpper(string(cfg.ConversationCfg.DefaultLanguage)))
	cfg.LLMConnectorCfg.Provider = strings.ToLower(cfg.LLMConnectorCfg.Provider)

	if cfg.ResearchCfg.Url == "" {
		cfg.ResearchCfg.Url = "https://html.duckduckgo.com"
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.ConversationCfg.DefaultLanguage {
	case entity.LanguageEN, entity.LanguageDE:
	default:
		errors = append(errors, fmt.Sprintf("CONVERSATION_DEFAULT_LANGUAGE must be EN or DE, got %q", cfg.ConversationCfg.DefaultLanguage))
	}

	if cfg.ConversationCfg.HistoryWindow < 1 || cfg.ConversationCfg.HistoryWindow > 100 {
		errors = append(errors, fmt.Sprintf("CONVERSATION_HISTORY_WINDOW must be between 1 and 100, got %d", cfg.ConversationCfg.HistoryWindow))
	}

	if !cfg.EnableMocks {
		switch cfg.LLMConnectorCfg.Provider {
		case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
			if cfg.LLMConnectorCfg.APIKey == "" {
				errors = append(errors, fmt.Sprintf("LLM_API_KEY is required for provider %s", cfg.LLMConnectorCfg.Provider))
			}
		case ProviderHTTP:
			if cfg.LLMConnectorCfg.Url == "" {
				errors = append(errors, "LLM_SERVICE_URL is required for provider http")
			}
		default:
			errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of openai, anthropic, gemini, http, got %q", cfg.LLMConnectorCfg.Provider))
		}
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMConnectorCfg.Temperature))
	}

	if cfg.ResearchCfg.RequestsPerSecond <= 0 {
		errors = append(errors, fmt.Sprintf("RESEARCH_REQUESTS_PER_SECOND must be positive, got %v", cfg.ResearchCfg.RequestsPerSecond))
	}

	if cfg.ResearchCfg.Burst < 1 {
		errors = append(errors, fmt.Sprintf("RESEARCH_BURST must be at least 1, got %d", cfg.ResearchCfg.Burst))
	}

	if !cfg.ExportCfg.DefaultFormat.IsValid() {
		errors = append(errors, fmt.Sprintf("EXPORT_DEFAULT_FORMAT must be markdown, docx or pdf, got %q", cfg.ExportCfg.DefaultFormat))
	}

	// Validate Telegram configuration
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
