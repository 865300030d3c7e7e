package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/repository"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"
)

// Pagination bounds for company bid listings
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// BidChecker runs an on-demand reconciliation of one bid
type BidChecker interface {
	CheckByID(ctx context.Context, bidID string) (models.Bid, error)
}

// PassStatus reports on the reconciliation scheduler
type PassStatus interface {
	Status() (running bool, lastRun *time.Time)
}

// LogBidInput is a bid as reported by a buyer
type LogBidInput struct {
	UserID         string
	CompanyID      string
	Auction        models.AuctionSource
	LotNumber      string
	VIN            string
	BidAmount      float64
	BidType        string
	IsPreBid       bool
	AuctionDate    *time.Time
	AuctionEndTime *time.Time
}

// TrackingService logs bids and exposes the reconciliation engine to callers
type TrackingService struct {
	repo    repository.Store
	checker BidChecker
	status  PassStatus
	now     func() time.Time
}

// NewTrackingService creates a new TrackingService. status may be nil when the
// scheduler is disabled.
func NewTrackingService(repo repository.Store, checker BidChecker, status PassStatus) *TrackingService {
	return &TrackingService{
		repo:    repo,
		checker: checker,
		status:  status,
		now:     time.Now,
	}
}

// LogBid validates and records a new bid in pending state
func (s *TrackingService) LogBid(ctx context.Context, in LogBidInput) (models.Bid, error) {
	if err := validateBid(in); err != nil {
		return models.Bid{}, err
	}
	if _, err := s.repo.GetCompany(ctx, in.CompanyID); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to load company %s: %w", in.CompanyID, err)
	}

	now := s.now().UTC()
	bid := models.Bid{
		ID:             utils.GenerateID(),
		UserID:         in.UserID,
		CompanyID:      in.CompanyID,
		Auction:        in.Auction,
		LotNumber:      strings.TrimSpace(in.LotNumber),
		VIN:            strings.TrimSpace(in.VIN),
		BidAmount:      in.BidAmount,
		BidType:        in.BidType,
		IsPreBid:       in.IsPreBid,
		AuctionDate:    in.AuctionDate,
		AuctionEndTime: in.AuctionEndTime,
		Status:         models.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if bid.AuctionEndTime == nil {
		bid.AuctionEndTime = bid.AuctionDate
	}

	if err := s.repo.CreateBid(ctx, bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for lot %s: %w", bid.LotNumber, err)
	}
	return bid, nil
}

func validateBid(in LogBidInput) error {
	if in.UserID == "" || in.CompanyID == "" {
		return fmt.Errorf("service: %w - missing userID or companyID", trackingerrors.ErrInvalidBid)
	}
	if !in.Auction.Valid() {
		return fmt.Errorf("service: %w - unsupported auction %q", trackingerrors.ErrInvalidBid, in.Auction)
	}
	if strings.TrimSpace(in.LotNumber) == "" {
		return fmt.Errorf("service: %w - empty lot number", trackingerrors.ErrInvalidBid)
	}
	if in.BidAmount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", trackingerrors.ErrInvalidBid)
	}
	if strings.TrimSpace(in.BidType) == "" {
		return fmt.Errorf("service: %w - empty bid type", trackingerrors.ErrInvalidBid)
	}
	return nil
}

// ListBidsByCompany returns one page of a company's bids, newest first, with the total count
func (s *TrackingService) ListBidsByCompany(ctx context.Context, companyID string, page, limit int) ([]models.Bid, int, error) {
	if companyID == "" {
		return nil, 0, fmt.Errorf("service: %w - empty company ID", trackingerrors.ErrInvalidBid)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	bids, total, err := s.repo.ListBidsByCompany(ctx, companyID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to list bids for company %s: %w", companyID, err)
	}
	return bids, total, nil
}

// CheckBid reconciles one bid now, outside the schedule. The bid is returned as
// recorded after the check, even when the check failed.
func (s *TrackingService) CheckBid(ctx context.Context, bidID string) (models.Bid, error) {
	if bidID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty bid ID", trackingerrors.ErrInvalidBid)
	}

	bid, err := s.checker.CheckByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, trackingerrors.ErrBidNotFound) {
			return models.Bid{}, fmt.Errorf("service: %w", err)
		}
		return bid, fmt.Errorf("service: check of bid %s failed: %w", bidID, err)
	}
	return bid, nil
}

// Health reports whether a pass is running, when the last one started and how
// many bids were checked since midnight UTC
func (s *TrackingService) Health(ctx context.Context) (models.Health, error) {
	running, lastRun := s.passStatus()

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	checks, err := s.repo.CountCheckedSince(ctx, midnight)
	if err != nil {
		return models.Health{}, fmt.Errorf("service: failed to count today's checks: %w", err)
	}

	return models.Health{
		Status:      "ok",
		IsRunning:   running,
		LastRun:     lastRun,
		ChecksToday: checks,
	}, nil
}

// Stats aggregates bid counts per status
func (s *TrackingService) Stats(ctx context.Context) (models.BidStats, error) {
	perStatus, err := s.repo.CountBidsByStatus(ctx)
	if err != nil {
		return models.BidStats{}, fmt.Errorf("service: failed to count bids by status: %w", err)
	}
	errored, err := s.repo.CountErroredBids(ctx)
	if err != nil {
		return models.BidStats{}, fmt.Errorf("service: failed to count errored bids: %w", err)
	}

	total := 0
	for _, n := range perStatus {
		total += n
	}
	running, lastRun := s.passStatus()

	return models.BidStats{
		Total:     total,
		PerStatus: perStatus,
		Errored:   errored,
		LastRun:   lastRun,
		IsRunning: running,
	}, nil
}

func (s *TrackingService) passStatus() (bool, *time.Time) {
	if s.status == nil {
		return false, nil
	}
	return s.status.Status()
}
