package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 100 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
	// Timeout bounds a single attempt, zero disables it
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return []retry.Option{
		retry.Attempts(attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// DoWithData runs fn under the retry policy. Retrying stops when ctx is done.
func DoWithData[T any](ctx context.Context, rc *RetryConfig, fn func(ctx context.Context) (T, error), opts ...retry.Option) (T, error) {
	options := append(rc.ToRetryOptions(), retry.Context(ctx))
	options = append(options, opts...)

	return retry.DoWithData(func() (T, error) {
		attemptCtx := ctx
		if rc.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, rc.Timeout)
			defer cancel()
		}
		return fn(attemptCtx)
	}, options...)
}
