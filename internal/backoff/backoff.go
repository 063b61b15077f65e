// Package backoff provides exponential backoff with jitter.
package backoff

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	DefaultInitial = 200 * time.Millisecond
	DefaultMax     = 30 * time.Second
)

// Backoff doubles its delay after every attempt, up to a cap. It is not safe
// for concurrent use.
type Backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// New creates a Backoff. Non-positive durations fall back to the defaults.
func New(initialDelay, maxDelay time.Duration) *Backoff {
	if initialDelay <= 0 {
		initialDelay = DefaultInitial
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMax
	}
	if maxDelay < initialDelay {
		maxDelay = initialDelay
	}
	return &Backoff{initial: initialDelay, max: maxDelay, current: initialDelay}
}

// Next returns the next delay and advances the backoff. Up to half of the
// current delay is added as jitter.
func (b *Backoff) Next() time.Duration {
	d := b.current + time.Duration(rand.Int64N(int64(b.current/2)+1))

	if b.current < b.max {
		b.current = min(b.current*2, b.max)
	}
	return d
}

// Reset returns the backoff to its initial delay.
func (b *Backoff) Reset() {
	b.current = b.initial
}

// Wait sleeps for the next delay or until ctx is done, returning ctx.Err() in
// the latter case.
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
