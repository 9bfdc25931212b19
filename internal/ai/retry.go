package ai

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/thomas-vilte/matereview/internal/errors"
)

// Retryable reports whether a model call failure is worth repeating. Quota
// and rate limit responses clear on their own and per-call timeouts are
// transient; bad credentials and malformed output never recover by retrying.
func Retryable(err error) bool {
	return errors.Is(err, apperrors.ErrGeminiQuotaExceeded) ||
		errors.Is(err, context.DeadlineExceeded)
}

// RetryWithBackoff runs fn up to maxRetries+1 times with exponential backoff
// (1s, 2s, 4s...). Non-retryable failures return immediately; cancelling ctx
// cuts the wait short.
func RetryWithBackoff(ctx context.Context, maxRetries int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !Retryable(lastErr) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
