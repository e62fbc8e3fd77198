package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryConfig(t *testing.T) {
	rc := DefaultRetryConfig()

	assert.Equal(t, uint(3), rc.Attempts)
	assert.Less(t, rc.Delay, rc.MaxDelay)
}

func TestDoWithData_RetriesUntilSuccess(t *testing.T) {
	rc := &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	got, err := DoWithData(context.Background(), rc, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoWithData_Unrecoverable(t *testing.T) {
	rc := &RetryConfig{Attempts: 5, Delay: time.Millisecond, MaxDelay: time.Millisecond}
	sentinel := errors.New("bad request")

	calls := 0
	_, err := DoWithData(context.Background(), rc, func(ctx context.Context) (int, error) {
		calls++
		return 0, retry.Unrecoverable(sentinel)
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestDoWithData_AttemptTimeout(t *testing.T) {
	rc := &RetryConfig{Attempts: 1, Timeout: 10 * time.Millisecond}

	_, err := DoWithData(context.Background(), rc, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
