package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store defines bid and company persistence for the reconciliation engine
type Store interface {
	CreateBid(ctx context.Context, bid models.Bid) error
	GetBid(ctx context.Context, bidID string) (models.Bid, error)
	SaveBid(ctx context.Context, bid models.Bid) error
	FindEligibleBids(ctx context.Context, filter models.EligibilityFilter) ([]models.Bid, error)
	ListBidsByCompany(ctx context.Context, companyID string, limit, offset int) ([]models.Bid, int, error)
	CountBidsByStatus(ctx context.Context) (map[models.BidStatus]int, error)
	CountErroredBids(ctx context.Context) (int, error)
	CountCheckedSince(ctx context.Context, since time.Time) (int, error)
	AddCompany(ctx context.Context, company models.Company) error
	GetCompany(ctx context.Context, companyID string) (models.Company, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of Store
type MemoryRepo struct {
	mu        sync.RWMutex
	bids      map[string]models.Bid     // key: bidID -> value: bid
	companies map[string]models.Company // key: companyID -> value: company
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		bids:      make(map[string]models.Bid),
		companies: make(map[string]models.Company),
	}
}

// CreateBid stores a newly logged bid
func (r *MemoryRepo) CreateBid(_ context.Context, bid models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bid.ID == "" {
		return fmt.Errorf("create bid: %w - empty bid ID", trackingerrors.ErrInvalidBid)
	}
	if _, exists := r.bids[bid.ID]; exists {
		return fmt.Errorf("create bid %s: %w - duplicate ID", bid.ID, trackingerrors.ErrInvalidBid)
	}
	r.bids[bid.ID] = cloneBid(bid)
	return nil
}

// GetBid returns a bid by ID
func (r *MemoryRepo) GetBid(_ context.Context, bidID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return models.Bid{}, fmt.Errorf("get bid %s: %w", bidID, trackingerrors.ErrBidNotFound)
	}
	return cloneBid(bid), nil
}

// SaveBid overwrites an existing bid
func (r *MemoryRepo) SaveBid(_ context.Context, bid models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bids[bid.ID]; !ok {
		return fmt.Errorf("save bid %s: %w", bid.ID, trackingerrors.ErrBidNotFound)
	}
	bid.UpdatedAt = time.Now().UTC()
	r.bids[bid.ID] = cloneBid(bid)
	return nil
}

// FindEligibleBids returns up to filter.Limit bids due for checking, oldest-checked first
func (r *MemoryRepo) FindEligibleBids(_ context.Context, filter models.EligibilityFilter) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eligible := make([]models.Bid, 0)
	for _, bid := range r.bids {
		if filter.Matches(bid) {
			eligible = append(eligible, cloneBid(bid))
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i].CheckedAt, eligible[j].CheckedAt
		switch {
		case a == nil && b == nil:
			return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	if filter.Limit > 0 && len(eligible) > filter.Limit {
		eligible = eligible[:filter.Limit]
	}
	return eligible, nil
}

// ListBidsByCompany returns one page of a company's bids, newest first, and the total count
func (r *MemoryRepo) ListBidsByCompany(_ context.Context, companyID string, limit, offset int) ([]models.Bid, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Bid, 0)
	for _, bid := range r.bids {
		if bid.CompanyID == companyID {
			all = append(all, cloneBid(bid))
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return []models.Bid{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// CountBidsByStatus returns the number of bids in every status
func (r *MemoryRepo) CountBidsByStatus(_ context.Context) (map[models.BidStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.BidStatus]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, bid := range r.bids {
		counts[bid.Status]++
	}
	return counts, nil
}

// CountErroredBids returns the number of bids carrying an error message
func (r *MemoryRepo) CountErroredBids(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, bid := range r.bids {
		if bid.ErrorMessage != "" {
			n++
		}
	}
	return n, nil
}

// CountCheckedSince returns the number of bids last checked at or after since
func (r *MemoryRepo) CountCheckedSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, bid := range r.bids {
		if bid.CheckedAt != nil && !bid.CheckedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// AddCompany adds or replaces a company. Companies are managed outside the tracker;
// this exists for seeding and tests.
func (r *MemoryRepo) AddCompany(_ context.Context, company models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if company.ID == "" {
		return fmt.Errorf("add company: empty company ID")
	}
	r.companies[company.ID] = company
	return nil
}

// GetCompany returns a company by ID
func (r *MemoryRepo) GetCompany(_ context.Context, companyID string) (models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, ok := r.companies[companyID]
	if !ok {
		return models.Company{}, fmt.Errorf("get company %s: %w", companyID, trackingerrors.ErrCompanyNotFound)
	}
	return company, nil
}

// cloneBid copies the pointer fields so callers never share state with the store
func cloneBid(b models.Bid) models.Bid {
	if b.AuctionDate != nil {
		v := *b.AuctionDate
		b.AuctionDate = &v
	}
	if b.AuctionEndTime != nil {
		v := *b.AuctionEndTime
		b.AuctionEndTime = &v
	}
	if b.CheckedAt != nil {
		v := *b.CheckedAt
		b.CheckedAt = &v
	}
	if b.FinalPrice != nil {
		v := *b.FinalPrice
		b.FinalPrice = &v
	}
	return b
}
