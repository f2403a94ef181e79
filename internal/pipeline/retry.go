package pipeline

import (
	"context"
	"fmt"
	"time"

	"BitcoinTracker/internal/runlog"
)

// RetryPolicy re-runs a failed attempt a fixed number of times with a fixed delay.
type RetryPolicy struct {
	Retries int
	Delay   time.Duration
}

// DefaultRetry matches the tracker's schedule defaults: 3 retries, 5 minutes apart.
var DefaultRetry = RetryPolicy{Retries: 3, Delay: 5 * time.Minute}

// Do calls fn until it succeeds or Retries+1 attempts have failed.
// fn receives the 1-based attempt number. Cancelling ctx stops the wait between attempts.
func (p RetryPolicy) Do(ctx context.Context, rl *runlog.Logger, fn func(attempt int) error) (int, error) {
	attempts := p.Retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		lastErr = fn(i)
		if lastErr == nil {
			return i, nil
		}
		if i == attempts {
			return i, fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
		}

		rl.Warnf("attempt %d/%d failed: %v, retrying in %v", i, attempts, lastErr, p.Delay)
		select {
		case <-ctx.Done():
			return i, fmt.Errorf("retry aborted after attempt %d: %w (last error: %v)", i, ctx.Err(), lastErr)
		case <-time.After(p.Delay):
		}
	}
	return attempts, lastErr
}
