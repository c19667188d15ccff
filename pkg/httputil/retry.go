package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. A nil err returns nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// BackoffPolicy computes the delay before the next attempt.
// attempt is 1-based: the value passed after the first failed attempt is 1.
type BackoffPolicy func(attempt int) time.Duration

// Linear returns a policy where the delay grows linearly: base * attempt.
func Linear(base time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Exponential returns a policy where the delay doubles each attempt:
// base, 2*base, 4*base, ...
func Exponential(base time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}

// Retry executes fn up to attempts times, sleeping backoff(n) between
// attempts. It only retries errors wrapped with [RetryableError]; other
// errors are returned immediately. The context is checked between attempts,
// so a caller can abort a unit of work without waiting out the full backoff
// schedule. Returns the last error if all attempts fail, or ctx.Err() if
// cancelled.
func Retry(ctx context.Context, attempts int, backoff BackoffPolicy, fn func() error) error {
	attempts = max(attempts, 1)
	if backoff == nil {
		backoff = Exponential(time.Second)
	}
	var lastErr error

	for i := 1; i <= attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(i)):
			}
		}
	}
	return lastErr
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
