package retry

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// Policy retries an operation with exponential backoff. It knows
// nothing about transcription or summarization; it only looks at the
// failure kind of the returned error.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      bool

	// sleep is replaced in tests to record delays instead of waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy builds a Policy, falling back to defaults for zero values.
func NewPolicy(maxAttempts int, baseDelay time.Duration) Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return Policy{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
}

// Do invokes op until it succeeds, fails permanently, or attempts are
// exhausted. Backoff before attempt n+1 is BaseDelay * 2^(n-1), plus up
// to 10% jitter when enabled. Exhaustion returns an ExhaustedError
// wrapping the last failure.
func (p Policy) Do(ctx context.Context, op func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.delay(attempt-1)); err != nil {
				return err
			}
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !KindOf(lastErr).Retryable() {
			return lastErr
		}
	}

	return &ExhaustedError{Attempts: p.MaxAttempts, Err: lastErr}
}

// delay computes the backoff after the given failed attempt (1-based).
func (p Policy) delay(failed int) time.Duration {
	d := p.BaseDelay << (failed - 1)
	if p.Jitter {
		d += time.Duration(rand.Int63n(int64(d)/10 + 1))
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
