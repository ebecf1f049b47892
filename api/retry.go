package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RetryPolicy describes how a failing call is repeated. Backoff[i] is the wait
// before attempt i+2; when attempts outnumber the schedule the last entry is
// reused.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     []time.Duration
	Retryable   func(error) bool
	// OnRetry, when set, observes every attempt that is about to be repeated.
	OnRetry func(attempt int, err error)
}

// DefaultRetryPolicy retries maxRetries times with the given backoff and
// never retries client errors.
func DefaultRetryPolicy(maxRetries int, backoff []time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxRetries + 1,
		Backoff:     backoff,
		Retryable:   IsRetryable,
	}
}

// IsRetryable rejects 4xx failures (a timeout counts as 408) and caller
// cancellation.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if status := StatusCodeOf(err); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return false
	}
	return true
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	if attempt-1 < len(p.Backoff) {
		return p.Backoff[attempt-1]
	}
	return p.Backoff[len(p.Backoff)-1]
}

// Retry runs fn under the policy and returns the first success or the last error.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
		if attempt == attempts || (p.Retryable != nil && !p.Retryable(err)) {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return result, err
}
