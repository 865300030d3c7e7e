package perftests

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"bid-reconciler/internal/auctionsite"
	"bid-reconciler/internal/models"
	"bid-reconciler/internal/ratelimit"
)

// Benchmark 1: LogBid - one company per bid (Low Contention)
func Benchmark_LogBid_Isolated(b *testing.B) {
	_, svc := setupService(b.N)
	ends := time.Now().Add(time.Hour)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.LogBid(context.Background(), bidInput(i, i, float64(100+rand.Intn(1000)), ends)); err != nil {
			b.Fatalf("failed to log bid: %v", err)
		}
	}
}

// Benchmark 2: LogBid - every writer on the same company (High Contention)
func Benchmark_LogBid_ConcurrentSharedCompany(b *testing.B) {
	_, svc := setupService(1)
	ends := time.Now().Add(time.Hour)

	b.ReportAllocs()
	b.ResetTimer()

	var lot int64
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n := int(atomic.AddInt64(&lot, 1))
			if _, err := svc.LogBid(context.Background(), bidInput(0, n, 500, ends)); err != nil {
				b.Errorf("failed to log bid: %v", err)
			}
		}
	})
}

// Benchmark 3: FindEligibleBids - scheduler selection over a large backlog
func Benchmark_FindEligibleBids(b *testing.B) {
	repo, svc := setupService(10)
	now := time.Now().UTC()
	for i := 0; i < 10000; i++ {
		// spread end times from 12h ago to 36h ahead so roughly half are eligible
		ends := now.Add(time.Duration(rand.Intn(48*60)-12*60) * time.Minute)
		if _, err := svc.LogBid(context.Background(), bidInput(i%10, i, 1000, ends)); err != nil {
			b.Fatalf("failed to seed bid: %v", err)
		}
	}
	filter := models.EligibilityFilter{
		Now:         now,
		Lookback:    time.Hour,
		Lookahead:   24 * time.Hour,
		MinCheckAge: 10 * time.Minute,
		Limit:       50,
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bids, err := repo.FindEligibleBids(context.Background(), filter)
		if err != nil {
			b.Fatalf("failed to select bids: %v", err)
		}
		if len(bids) == 0 {
			b.Fatal("expected eligible bids")
		}
	}
}

// Benchmark 4: ListBidsByCompany + Stats - concurrent readers
func Benchmark_Reads_Concurrent(b *testing.B) {
	_, svc := setupService(5)
	ends := time.Now().Add(time.Hour)
	for i := 0; i < 2000; i++ {
		_, _ = svc.LogBid(context.Background(), bidInput(i%5, i, 1000, ends))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(4) == 0 {
				if _, err := svc.Stats(context.Background()); err != nil {
					b.Errorf("stats failed: %v", err)
				}
				continue
			}
			if _, _, err := svc.ListBidsByCompany(context.Background(), companyID(rnd.Intn(5)), rnd.Intn(8)+1, 50); err != nil {
				b.Errorf("list failed: %v", err)
			}
		}
	})
}

// Benchmark 5: lot page extraction
func Benchmark_ParseLotPage(b *testing.B) {
	page, err := os.ReadFile(filepath.Join("..", "..", "internal", "auctionsite", "testdata", "lot_sold.html"))
	if err != nil {
		b.Fatalf("failed to read fixture: %v", err)
	}
	profile := auctionsite.CopartProfile()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lot, err := auctionsite.ParseLotPage(http.StatusOK, page, profile)
		if err != nil {
			b.Fatalf("failed to parse lot: %v", err)
		}
		if lot.FinalPrice == nil {
			b.Fatal("expected a sale price")
		}
	}
}

// Benchmark 6: limiter admission under contention (window never fills)
func Benchmark_Limiter_Admit_Concurrent(b *testing.B) {
	limiter := ratelimit.New(time.Hour, 1<<30)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := limiter.Admit(context.Background()); err != nil {
				b.Errorf("admit failed: %v", err)
			}
		}
	})
}
