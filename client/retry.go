package client

import "context"

// MaxManualRetries caps a user-requested retry of a failed call.
const MaxManualRetries = 3

// Retry runs fn once plus up to retries more times while it fails with a
// network error. Server-returned errors are never retried. fn always runs
// at least once.
func Retry(ctx context.Context, retries int, fn func(context.Context) error) error {
	retries = min(max(retries, 0), MaxManualRetries)
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if err = fn(ctx); err == nil || !IsNetworkError(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
