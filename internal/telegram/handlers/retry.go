package handlers

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/legaldoc-assistant/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var deliveryRetry = &pkgRetry.RetryConfig{
	Attempts: 3,
	Delay:    time.Second,
	MaxDelay: 3 * time.Second,
}

// deliver retries a send that must reach the user, e.g. a generated document
func deliver(ctx context.Context, chatID int64, send func() error) error {
	_, err := pkgRetry.DoWithData(ctx, deliveryRetry, func(context.Context) (struct{}, error) {
		return struct{}{}, send()
	}, retry.OnRetry(func(n uint, err error) {
		ctxzap.Warn(ctx, "failed to deliver message, retrying",
			zap.Error(err),
			zap.Uint("attempt", n+1),
			zap.Int64("chat_id", chatID),
		)
	}))
	if err != nil {
		ctxzap.Error(ctx, "failed to deliver message after all retries",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
	return err
}
