// Package checker reconciles one bid against its auction site and records the verdict
package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bid-reconciler/internal/auctionsite"
	"bid-reconciler/internal/models"
	"bid-reconciler/internal/notify"
	"bid-reconciler/internal/repository"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"
)

// MaxCheckAttempts is the attempt ceiling; past it a bid is closed as lost
const MaxCheckAttempts = 5

// MaxAttemptsMessage is recorded on bids closed by the attempt ceiling
const MaxAttemptsMessage = "Max check attempts exceeded"

const (
	saveTimeout   = 5 * time.Second
	notifyTimeout = 10 * time.Second
)

// Decrypter recovers stored auction-site secrets
type Decrypter interface {
	Decrypt(encrypted string) (string, error)
}

// Runner performs the reconciliation of a single bid
type Runner struct {
	store    repository.Store
	sites    auctionsite.Registry
	vault    Decrypter
	notifier notify.Notifier
	now      func() time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithClock replaces the clock used to stamp checks
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a check runner
func NewRunner(store repository.Store, sites auctionsite.Registry, vault Decrypter, notifier notify.Notifier, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		sites:    sites,
		vault:    vault,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckByID loads a bid and checks it, returning the bid as recorded afterwards
func (r *Runner) CheckByID(ctx context.Context, bidID string) (models.Bid, error) {
	bid, err := r.store.GetBid(ctx, bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("checker: %w", err)
	}
	checkErr := r.Check(ctx, &bid)
	return bid, checkErr
}

// Check reconciles bid with its auction site and persists the outcome on bid.
// Failures are recorded on the bid (pending + error message); the returned error is
// the same failure, for callers that want to surface it. Won and lost bids are left
// untouched and reported as ErrBidSettled.
func (r *Runner) Check(ctx context.Context, bid *models.Bid) error {
	started := r.now().UTC()
	fields := map[string]any{
		"bid_id":     bid.ID,
		"lot_number": bid.LotNumber,
		"auction":    bid.Auction,
	}

	if bid.Status.IsTerminal() {
		return fmt.Errorf("checker: bid %s is %s: %w", bid.ID, bid.Status, trackingerrors.ErrBidSettled)
	}

	company, companyErr := r.store.GetCompany(ctx, bid.CompanyID)
	if companyErr == nil && !company.AutoCheckEnabled {
		utils.Info("auto-checking disabled for company, skipping", map[string]any{
			"bid_id": bid.ID, "company_id": company.ID,
		})
		// checkedAt moves so the bid yields its batch slot; attempts stay as they are
		bid.Status = models.StatusPending
		bid.CheckedAt = &started
		if err := r.persist(ctx, *bid); err != nil {
			return fmt.Errorf("checker: save skipped bid: %w", err)
		}
		return trackingerrors.ErrAutoCheckDisabled
	}

	priorAttempts := bid.CheckAttempts
	bid.Status = models.StatusChecking
	bid.CheckAttempts++
	bid.CheckedAt = &started
	if err := r.store.SaveBid(ctx, *bid); err != nil {
		return fmt.Errorf("checker: mark checking: %w", err)
	}
	fields["attempts"] = bid.CheckAttempts
	utils.Info("checking bid", fields)

	if priorAttempts > MaxCheckAttempts {
		bid.Status = models.StatusLost
		bid.ErrorMessage = MaxAttemptsMessage
		utils.Warn("attempt ceiling reached, closing bid as lost", fields)
		if err := r.persist(ctx, *bid); err != nil {
			return fmt.Errorf("checker: close bid: %w", err)
		}
		return nil
	}

	result, err := r.inspect(ctx, bid, company, companyErr)
	if err != nil {
		return r.recordFailure(ctx, bid, err, fields)
	}

	applyResult(bid, result)
	if err := r.persist(ctx, *bid); err != nil {
		return fmt.Errorf("checker: save result: %w", err)
	}
	fields["status"] = bid.Status
	utils.Info("bid checked", fields)

	if bid.Status == models.StatusWon {
		r.notifyWin(ctx, company, *bid)
	}
	return nil
}

func (r *Runner) inspect(ctx context.Context, bid *models.Bid, company models.Company, companyErr error) (models.CheckResult, error) {
	if companyErr != nil {
		return models.CheckResult{}, companyErr
	}

	username, secret, ok := company.Credentials(bid.Auction)
	if !ok {
		return models.CheckResult{}, fmt.Errorf("%s: %w", bid.Auction, trackingerrors.ErrMissingCredentials)
	}
	client, err := r.sites.Lookup(bid.Auction)
	if err != nil {
		return models.CheckResult{}, err
	}
	password, err := r.vault.Decrypt(secret)
	if err != nil {
		return models.CheckResult{}, err
	}

	session, err := client.Authenticate(ctx, username, password)
	if err != nil {
		return models.CheckResult{}, err
	}
	if session != nil {
		defer session.Close()
	}

	if client.DetectChallenge(session) {
		return models.CheckResult{}, fmt.Errorf("%s: after login: %w", bid.Auction, trackingerrors.ErrChallengeDetected)
	}
	return client.InspectLot(ctx, session, bid.LotNumber, bid.BidAmount)
}

func (r *Runner) recordFailure(ctx context.Context, bid *models.Bid, cause error, fields map[string]any) error {
	bid.Status = models.StatusPending
	bid.ErrorMessage = cause.Error()
	if bid.CheckAttempts > MaxCheckAttempts {
		bid.Status = models.StatusLost
		bid.ErrorMessage = MaxAttemptsMessage
	}

	fields["error"] = cause.Error()
	fields["status"] = bid.Status
	utils.Error("bid check failed", fields)

	if err := r.persist(ctx, *bid); err != nil {
		return errors.Join(cause, fmt.Errorf("checker: save failure: %w", err))
	}
	return cause
}

func (r *Runner) notifyWin(ctx context.Context, company models.Company, bid models.Bid) {
	if r.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := r.notifier.Notify(ctx, company, bid); err != nil {
		utils.Warn("win notification failed", map[string]any{
			"bid_id": bid.ID,
			"error":  err.Error(),
		})
	}
}

// persist saves bid on a context that outlives ctx's cancellation
func (r *Runner) persist(ctx context.Context, bid models.Bid) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	return r.store.SaveBid(ctx, bid)
}

// applyResult moves a checked bid to the state the site reported
func applyResult(bid *models.Bid, result models.CheckResult) {
	bid.ErrorMessage = ""
	if !result.AuctionEnded {
		bid.Status = models.StatusActive
		return
	}

	switch result.Outcome {
	case models.OutcomeWon:
		bid.Status = models.StatusWon
	case models.OutcomeLost:
		bid.Status = models.StatusLost
	default:
		bid.Status = models.StatusActive
		return
	}
	if result.FinalPrice != nil {
		price := *result.FinalPrice
		bid.FinalPrice = &price
	}
}
