package crawl

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff schedule between whole discovery
// attempts: 1s, 2s, 4s (base delay doubled per attempt).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// sleepCtx waits for d or until the context ends, whichever comes first.
// It reports whether the full delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
