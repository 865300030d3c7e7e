// Package scheduler periodically selects bids due for reconciliation and checks
// them one at a time.
package scheduler

//go:generate mockgen -source=scheduler.go -destination=mock_scheduler.go -package=scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/ratelimit"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"

	"github.com/robfig/cron/v3"
)

// BidChecker reconciles a single bid
type BidChecker interface {
	Check(ctx context.Context, bid *models.Bid) error
}

// BidSource selects the bids due for a check
type BidSource interface {
	FindEligibleBids(ctx context.Context, filter models.EligibilityFilter) ([]models.Bid, error)
}

// Config controls how often ticks fire and which bids they pick up
type Config struct {
	Interval    time.Duration
	BatchSize   int
	Lookback    time.Duration
	Lookahead   time.Duration
	MinCheckAge time.Duration
	PauseMin    time.Duration
	PauseMax    time.Duration
}

// DefaultConfig returns the production cadence
func DefaultConfig() Config {
	return Config{
		Interval:    10 * time.Minute,
		BatchSize:   50,
		Lookback:    time.Hour,
		Lookahead:   24 * time.Hour,
		MinCheckAge: 10 * time.Minute,
		PauseMin:    5 * time.Second,
		PauseMax:    10 * time.Second,
	}
}

// Scheduler runs reconciliation ticks. At most one tick is in progress at a time;
// a tick fired while another runs is skipped, not queued.
type Scheduler struct {
	cfg     Config
	bids    BidSource
	checker BidChecker
	pause   ratelimit.PauseFunc
	now     func() time.Time

	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool

	mu      sync.RWMutex
	lastRun *time.Time
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithPause replaces the inter-check pause
func WithPause(p ratelimit.PauseFunc) Option {
	return func(s *Scheduler) { s.pause = p }
}

// WithClock replaces the clock used for the eligibility window
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler
func New(cfg Config, bids BidSource, checker BidChecker, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cfg:     cfg,
		bids:    bids,
		checker: checker,
		pause:   ratelimit.RandomPause,
		now:     time.Now,
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules a tick every cfg.Interval
func (s *Scheduler) Start() error {
	if s.cfg.Interval <= 0 {
		return fmt.Errorf("scheduler: interval must be positive, got %s", s.cfg.Interval)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.cfg.Interval), func() { s.Tick(s.ctx) }); err != nil {
		return fmt.Errorf("scheduler: register tick: %w", err)
	}
	s.cron.Start()
	utils.Info("reconciliation scheduler started", map[string]any{"interval": s.cfg.Interval.String()})
	return nil
}

// Stop cancels any running tick and waits for it to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	utils.Info("reconciliation scheduler stopped", nil)
}

// Status reports whether a tick is in progress and when the last one started
func (s *Scheduler) Status() (running bool, lastRun *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun != nil {
		t := *s.lastRun
		lastRun = &t
	}
	return s.running.Load(), lastRun
}

// Tick runs one reconciliation pass. It returns false when skipped because another
// pass is still running.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		utils.Info("previous reconciliation pass still running, skipping tick", nil)
		return false
	}
	defer s.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			utils.Error("reconciliation pass aborted", map[string]any{"panic": fmt.Sprint(r)})
		}
	}()

	started := s.now().UTC()
	s.mu.Lock()
	s.lastRun = &started
	s.mu.Unlock()

	filter := models.EligibilityFilter{
		Now:         started,
		Lookback:    s.cfg.Lookback,
		Lookahead:   s.cfg.Lookahead,
		MinCheckAge: s.cfg.MinCheckAge,
		Limit:       s.cfg.BatchSize,
	}
	bids, err := s.bids.FindEligibleBids(ctx, filter)
	if err != nil {
		utils.Error("failed to select eligible bids", map[string]any{"error": err.Error()})
		return true
	}
	utils.Info("reconciliation pass started", map[string]any{"eligible": len(bids)})

	failed := 0
	for i := range bids {
		bid := &bids[i]
		if err := s.checker.Check(ctx, bid); err != nil {
			if skipped(err) {
				continue
			}
			failed++
			utils.Warn("bid check did not complete", map[string]any{
				"bid_id": bid.ID,
				"status": bid.Status,
				"error":  err.Error(),
			})
		}
		if err := s.pause(ctx, s.cfg.PauseMin, s.cfg.PauseMax); err != nil {
			utils.Warn("reconciliation pass interrupted", map[string]any{"checked": i + 1, "error": err.Error()})
			break
		}
	}

	utils.Info("reconciliation pass finished", map[string]any{
		"eligible": len(bids),
		"failed":   failed,
		"duration": s.now().UTC().Sub(started).String(),
	})
	return true
}

// skipped reports whether a check ended before any site contact
func skipped(err error) bool {
	return errors.Is(err, trackingerrors.ErrAutoCheckDisabled) || errors.Is(err, trackingerrors.ErrBidSettled)
}
