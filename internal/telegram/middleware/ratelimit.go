package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender delivers messages to Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// LanguageFunc resolves the conversation language of a user
type LanguageFunc func(userID int64) entity.Language

// userLimit tracks rate limit state for a single user
type userLimit struct {
	limiter       *rate.Limiter
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// Users idle for an hour are forgotten.
type RateLimiterMiddleware struct {
	limits          *cache.Cache
	mu              sync.Mutex
	limit           rate.Limit
	burst           int
	warningInterval time.Duration
	language        LanguageFunc
	now             func() time.Time
	logger          *zap.Logger
	api             Sender
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	language LanguageFunc,
	logger *zap.Logger,
	api Sender,
) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:          cache.New(time.Hour, 10*time.Minute),
		limit:           rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:           burstSize,
		warningInterval: 30 * time.Second,
		language:        language,
		now:             time.Now,
		logger:          logger,
		api:             api,
	}
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := participants(update)
	if !ok {
		// Unknown update type, allow it
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// allowRequest checks if request is allowed under rate limit
func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	limit := rl.userLimit(userID)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()
	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now

		rl.sendRateLimitWarning(userID, chatID, limit.warningsSent)
	}

	return false
}

func (rl *RateLimiterMiddleware) userLimit(userID int64) *userLimit {
	key := userKey(userID)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limits.Get(key); ok {
		limit := v.(*userLimit)
		// sliding expiry
		rl.limits.SetDefault(key, limit)
		return limit
	}

	limit := &userLimit{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	rl.limits.SetDefault(key, limit)
	return limit
}

// sendRateLimitWarning sends a warning message to the user
func (rl *RateLimiterMiddleware) sendRateLimitWarning(userID, chatID int64, warningCount int) {
	lang := entity.LanguageEN
	if rl.language != nil {
		lang = rl.language(userID)
	}
	msg := render.For(lang)

	var text string
	switch {
	case warningCount == 1:
		text = msg.RateLimitFirst
	case warningCount == 2:
		text = msg.RateLimitSecond
	default:
		text = msg.RateLimitRepeated
	}

	if _, err := rl.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// participants extracts user and chat of a message or callback update
func participants(update tgbotapi.Update) (userID, chatID int64, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.From.ID, update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, 0, false
	}
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
