package perftests

import (
	"context"
	"fmt"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/repository"
	tracking "bid-reconciler/internal/trackingService"
)

// setupService creates a memory-backed tracking service with numCompanies companies.
// Checks and scheduler status are not exercised by the benchmarks.
func setupService(numCompanies int) (*repository.MemoryRepo, *tracking.TrackingService) {
	repo := repository.NewMemoryRepo()
	svc := tracking.NewTrackingService(repo, nil, nil)
	for i := 0; i < numCompanies; i++ {
		_ = repo.AddCompany(context.Background(), models.Company{
			ID:               companyID(i),
			Name:             fmt.Sprintf("Company %d", i),
			IsActive:         true,
			AutoCheckEnabled: true,
		})
	}
	return repo, svc
}

func companyID(i int) string { return fmt.Sprintf("company_%d", i) }

func bidInput(company, lot int, amount float64, endsAt time.Time) tracking.LogBidInput {
	return tracking.LogBidInput{
		UserID:         fmt.Sprintf("user_%d", lot%97),
		CompanyID:      companyID(company),
		Auction:        models.AuctionCopart,
		LotNumber:      fmt.Sprintf("%08d", lot),
		BidAmount:      amount,
		BidType:        "max",
		AuctionEndTime: &endsAt,
	}
}
