package httputil

import (
	"context"
	"errors"
	"time"
)

// Schedule used by [RetryWithBackoff].
const (
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// RetryableError marks a failure as transient. Registry clients wrap
// network errors and 5xx responses in it; any other error aborts the
// retry loop on the first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries.
// Only errors marked with [RetryableError] are retried. Cancelling ctx
// interrupts the backoff sleep and returns ctx.Err(); an exhausted
// schedule returns the last retryable error.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		if attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff runs fn on the default schedule: three attempts
// starting at a one second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, defaultAttempts, defaultDelay, fn)
}
