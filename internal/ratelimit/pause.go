package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// PauseFunc waits a random duration in [min, max]
type PauseFunc func(ctx context.Context, min, max time.Duration) error

// Sleep waits for d, returning early with ctx.Err() if the context ends first
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jitter returns a uniformly random duration in [min, max]
func Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// RandomPause sleeps for a jittered duration in [min, max]
func RandomPause(ctx context.Context, min, max time.Duration) error {
	return Sleep(ctx, Jitter(min, max))
}
