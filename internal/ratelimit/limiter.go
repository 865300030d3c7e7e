package ratelimit

import (
	"context"
	"sync"
	"time"

	"bid-reconciler/utils"
)

// Default window settings for outbound auction-site requests
const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 20
)

// SleepFunc suspends the caller for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter is a fixed-window gate: up to max requests per window, then the caller
// stalls until the window is over.
type Limiter struct {
	mu          sync.Mutex
	window      time.Duration
	max         int
	count       int
	windowStart time.Time

	now   func() time.Time
	sleep SleepFunc
}

// New creates a limiter; non-positive arguments fall back to the defaults
func New(window time.Duration, max int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	return &Limiter{
		window: window,
		max:    max,
		now:    time.Now,
		sleep:  Sleep,
	}
}

// WithClock replaces the time source and the sleep function, for tests
func (l *Limiter) WithClock(now func() time.Time, sleep SleepFunc) *Limiter {
	l.now = now
	l.sleep = sleep
	return l
}

// Admit blocks until one more request may be issued, then records it.
// The only error is the context's, when it ends during a stall.
func (l *Limiter) Admit(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= l.window {
		l.count = 0
		l.windowStart = now
	}

	if l.count >= l.max {
		wait := l.window - now.Sub(l.windowStart)
		utils.Warn("rate limit reached, waiting", map[string]any{
			"wait":         wait.String(),
			"max_requests": l.max,
		})
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
		l.count = 0
		l.windowStart = l.now()
	}

	l.count++
	return nil
}

// Count returns the number of requests recorded in the current window
func (l *Limiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
