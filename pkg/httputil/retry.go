package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults used by [RetryWithBackoff], tuned for fetching from a local
// skein serve instance: three quick attempts spanning under a second.
const (
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
)

// RetryableError marks an error as transient so [Retry] attempts the
// operation again. The export command wraps connection failures and 5xx
// responses from the snapshot server in this type; anything else (a
// 404, a malformed URL) aborts immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each
// failed attempt. Only errors wrapped in [RetryableError] are retried;
// other errors return immediately. Returns the last error when every
// attempt fails, or ctx.Err() if the context is cancelled while
// waiting between attempts.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff retries fn with the default snapshot-fetch tuning:
// three attempts starting at 200ms, doubling each retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, defaultAttempts, defaultDelay, fn)
}
