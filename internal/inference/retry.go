package inference

import (
	"context"
	"time"
)

// Retry policy for transport-level failures inside a single Analyze call.
// Zero retries is the default; when an operator opts in, only attempts that
// never reached the service are re-issued. A parsed answer, even a bad one,
// is final.
const (
	retryBaseDelay = 200 * time.Millisecond
	retryMaxDelay  = 2 * time.Second
)

// retryDelay returns the backoff before retry attempt n (0-based), doubling
// from the base and capped at the max.
func retryDelay(attempt int) time.Duration {
	delay := retryBaseDelay << attempt
	if delay > retryMaxDelay || delay <= 0 {
		delay = retryMaxDelay
	}
	return delay
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
// Returns false if the context won.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
