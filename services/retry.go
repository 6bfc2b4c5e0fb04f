package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	storageTimeout = 5 * time.Second
	maxAttempts    = 3
	baseBackoff    = 50 * time.Millisecond
)

// withRetry runs fn under a bounded timeout and retries transient storage
// failures with exponential backoff, up to maxAttempts. Anything still failing
// after that surfaces as ErrStorageUnavailable. fn must be safe to re-run:
// callers only pass reads or operations that roll back fully on error.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	backoff := baseBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, storageTimeout)
		err = fn(attemptCtx)
		cancel()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func isTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
