package checker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bid-reconciler/internal/auctionsite"
	"bid-reconciler/internal/models"
	"bid-reconciler/internal/notify"
	"bid-reconciler/internal/repository"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/internal/vault"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

type fixture struct {
	runner   *Runner
	repo     *repository.MemoryRepo
	client   *auctionsite.MockClient
	notifier *notify.MockNotifier
	now      time.Time
}

func newFixture(t *testing.T, company func(*models.Company), bid models.Bid) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	v, err := vault.New(testKey)
	require.NoError(t, err)
	secret, err := v.Encrypt("s3cret")
	require.NoError(t, err)

	c := models.Company{
		ID:               "company-1",
		Name:             "Acme Motors",
		IsActive:         true,
		AutoCheckEnabled: true,
		CopartUsername:   "buyer@acme.test",
		CopartPassword:   secret,
	}
	if company != nil {
		company(&c)
	}

	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.AddCompany(context.Background(), c))
	require.NoError(t, repo.CreateBid(context.Background(), bid))

	client := auctionsite.NewMockClient(ctrl)
	notifier := notify.NewMockNotifier(ctrl)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	runner := NewRunner(repo, auctionsite.Registry{models.AuctionCopart: client}, v, notifier,
		WithClock(func() time.Time { return now }))

	return fixture{runner: runner, repo: repo, client: client, notifier: notifier, now: now}
}

func pendingBid(now time.Time) models.Bid {
	end := now.Add(2 * time.Hour)
	return models.Bid{
		ID:             "bid-1",
		UserID:         "user-1",
		CompanyID:      "company-1",
		Auction:        models.AuctionCopart,
		LotNumber:      "10000001",
		BidAmount:      4500,
		BidType:        "max",
		AuctionEndTime: &end,
		Status:         models.StatusPending,
		CreatedAt:      now.Add(-time.Hour),
	}
}

func price(v float64) *float64 { return &v }

func expectLogin(f fixture) {
	f.client.EXPECT().Authenticate(gomock.Any(), "buyer@acme.test", "s3cret").Return(&auctionsite.Session{}, nil)
	f.client.EXPECT().DetectChallenge(gomock.Any()).Return(false)
}

func TestRunner_Check(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		bid         func(*models.Bid)
		company     func(*models.Company)
		mockSetup   func(f fixture)
		expectedErr error
		verify      func(t *testing.T, bid models.Bid)
	}{
		{
			name: "auction_still_running",
			bid:  func(b *models.Bid) { b.ErrorMessage = "previous failure" },
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{LotNumber: "10000001", Outcome: models.OutcomeActive}, nil)
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusActive, bid.Status)
				require.Equal(t, 1, bid.CheckAttempts)
				require.Equal(t, now, *bid.CheckedAt)
				require.Empty(t, bid.ErrorMessage)
				require.Nil(t, bid.FinalPrice)
			},
		},
		{
			name: "lot_unknown_stays_recheckable",
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{LotNumber: "10000001", Outcome: models.OutcomeUnknown}, nil)
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusActive, bid.Status)
				require.Empty(t, bid.ErrorMessage)
			},
		},
		{
			name: "won_at_bid_price_notifies",
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{LotNumber: "10000001", Outcome: models.OutcomeWon, FinalPrice: price(4500), AuctionEnded: true}, nil)
				f.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, c models.Company, b models.Bid) error {
						if _, ok := ctx.Deadline(); !ok {
							return errors.New("notification without deadline")
						}
						if c.ID != "company-1" || b.Status != models.StatusWon {
							return fmt.Errorf("unexpected notification for %s/%s", c.ID, b.Status)
						}
						return nil
					})
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusWon, bid.Status)
				require.Equal(t, 4500.0, *bid.FinalPrice)
				require.Equal(t, 1, bid.CheckAttempts)
			},
		},
		{
			name: "won_even_if_notification_fails",
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{LotNumber: "10000001", Outcome: models.OutcomeWon, AuctionEnded: true}, nil)
				f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusWon, bid.Status)
				require.Nil(t, bid.FinalPrice)
				require.Empty(t, bid.ErrorMessage)
			},
		},
		{
			name: "lost_to_higher_bid",
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{LotNumber: "10000001", Outcome: models.OutcomeLost, FinalPrice: price(5200), AuctionEnded: true}, nil)
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusLost, bid.Status)
				require.Equal(t, 5200.0, *bid.FinalPrice)
			},
		},
		{
			name: "network_timeout_reverts_to_pending",
			bid:  func(b *models.Bid) { b.Status = models.StatusActive; b.CheckAttempts = 2 },
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
					Return(models.CheckResult{}, fmt.Errorf("load lot: timeout: %w", trackingerrors.ErrTransientNetwork))
			},
			expectedErr: trackingerrors.ErrTransientNetwork,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 3, bid.CheckAttempts)
				require.Contains(t, bid.ErrorMessage, "timeout")
				require.Nil(t, bid.FinalPrice)
				require.Equal(t, now, *bid.CheckedAt)
			},
		},
		{
			name: "login_rejected",
			mockSetup: func(f fixture) {
				f.client.EXPECT().Authenticate(gomock.Any(), "buyer@acme.test", "s3cret").
					Return(nil, trackingerrors.ErrAuthenticationFailed)
			},
			expectedErr: trackingerrors.ErrAuthenticationFailed,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 1, bid.CheckAttempts)
				require.Equal(t, trackingerrors.ErrAuthenticationFailed.Error(), bid.ErrorMessage)
			},
		},
		{
			name: "challenge_after_login_abandons_session",
			mockSetup: func(f fixture) {
				f.client.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(&auctionsite.Session{}, nil)
				f.client.EXPECT().DetectChallenge(gomock.Any()).Return(true)
			},
			expectedErr: trackingerrors.ErrChallengeDetected,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.NotEmpty(t, bid.ErrorMessage)
			},
		},
		{
			name:        "auto_check_disabled_is_noop",
			bid:         func(b *models.Bid) { b.Status = models.StatusActive; b.CheckAttempts = 2 },
			company:     func(c *models.Company) { c.AutoCheckEnabled = false },
			expectedErr: trackingerrors.ErrAutoCheckDisabled,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 2, bid.CheckAttempts)
				require.Equal(t, now, *bid.CheckedAt)
				require.Empty(t, bid.ErrorMessage)
			},
		},
		{
			name: "won_bid_is_settled",
			bid: func(b *models.Bid) {
				b.Status = models.StatusWon
				b.CheckAttempts = 6
				b.FinalPrice = price(4500)
			},
			expectedErr: trackingerrors.ErrBidSettled,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusWon, bid.Status)
				require.Equal(t, 6, bid.CheckAttempts)
				require.Equal(t, 4500.0, *bid.FinalPrice)
				require.Empty(t, bid.ErrorMessage)
				require.Nil(t, bid.CheckedAt)
			},
		},
		{
			name:        "lost_bid_is_settled",
			bid:         func(b *models.Bid) { b.Status = models.StatusLost; b.CheckAttempts = 2 },
			expectedErr: trackingerrors.ErrBidSettled,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusLost, bid.Status)
				require.Equal(t, 2, bid.CheckAttempts)
			},
		},
		{
			name:        "missing_credentials",
			company:     func(c *models.Company) { c.CopartPassword = "" },
			expectedErr: trackingerrors.ErrMissingCredentials,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 1, bid.CheckAttempts)
				require.NotEmpty(t, bid.ErrorMessage)
			},
		},
		{
			name:        "undecryptable_secret",
			company:     func(c *models.Company) { c.CopartPassword = "not:a:ciphertext" },
			expectedErr: trackingerrors.ErrDecryptionFailed,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.NotContains(t, bid.ErrorMessage, "not:a:ciphertext")
			},
		},
		{
			name: "unsupported_auction",
			bid:  func(b *models.Bid) { b.Auction = models.AuctionIAAI },
			company: func(c *models.Company) {
				c.IAAIUsername = "buyer@acme.test"
				c.IAAIPassword = c.CopartPassword
			},
			expectedErr: trackingerrors.ErrUnsupportedAuction,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 1, bid.CheckAttempts)
			},
		},
		{
			name:        "company_missing",
			bid:         func(b *models.Bid) { b.CompanyID = "company-unknown" },
			expectedErr: trackingerrors.ErrCompanyNotFound,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusPending, bid.Status)
				require.Equal(t, 1, bid.CheckAttempts)
			},
		},
		{
			name: "ceiling_exceeded_forces_lost_without_site_contact",
			bid:  func(b *models.Bid) { b.Status = models.StatusActive; b.CheckAttempts = 6 },
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusLost, bid.Status)
				require.Equal(t, MaxAttemptsMessage, bid.ErrorMessage)
				require.Equal(t, 7, bid.CheckAttempts)
				require.Nil(t, bid.FinalPrice)
			},
		},
		{
			name: "failure_past_ceiling_forces_lost",
			bid:  func(b *models.Bid) { b.CheckAttempts = 5 },
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.CheckResult{}, trackingerrors.ErrTransientNetwork)
			},
			expectedErr: trackingerrors.ErrTransientNetwork,
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusLost, bid.Status)
				require.Equal(t, MaxAttemptsMessage, bid.ErrorMessage)
				require.Equal(t, 6, bid.CheckAttempts)
			},
		},
		{
			name: "success_at_ceiling_is_recorded",
			bid:  func(b *models.Bid) { b.CheckAttempts = 5 },
			mockSetup: func(f fixture) {
				expectLogin(f)
				f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(models.CheckResult{Outcome: models.OutcomeActive}, nil)
			},
			verify: func(t *testing.T, bid models.Bid) {
				require.Equal(t, models.StatusActive, bid.Status)
				require.Equal(t, 6, bid.CheckAttempts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bid := pendingBid(now)
			if tt.bid != nil {
				tt.bid(&bid)
			}
			f := newFixture(t, tt.company, bid)
			if tt.mockSetup != nil {
				tt.mockSetup(f)
			}

			err := f.runner.Check(context.Background(), &bid)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			stored, err := f.repo.GetBid(context.Background(), bid.ID)
			require.NoError(t, err)
			require.Equal(t, bid.Status, stored.Status)
			require.Equal(t, bid.CheckAttempts, stored.CheckAttempts)
			tt.verify(t, stored)
		})
	}
}

func TestRunner_CheckByID(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, pendingBid(now))
	expectLogin(f)
	f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
		Return(models.CheckResult{Outcome: models.OutcomeLost, FinalPrice: price(4700), AuctionEnded: true}, nil)

	bid, err := f.runner.CheckByID(context.Background(), "bid-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusLost, bid.Status)
	require.Equal(t, 4700.0, *bid.FinalPrice)

	_, err = f.runner.CheckByID(context.Background(), "bid-404")
	require.ErrorIs(t, err, trackingerrors.ErrBidNotFound)
}

func TestRunner_AttemptsNeverDecrease(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, pendingBid(now))

	f.client.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, trackingerrors.ErrTransientNetwork).Times(2)
	expectLogin(f)
	f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckResult{Outcome: models.OutcomeActive}, nil)

	bid, err := f.repo.GetBid(context.Background(), "bid-1")
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_ = f.runner.Check(context.Background(), &bid)
		require.Equal(t, i, bid.CheckAttempts)
	}
	require.Equal(t, models.StatusActive, bid.Status)
	require.Empty(t, bid.ErrorMessage)
}

// cancelAwareStore rejects writes on a finished context, as pgx does
type cancelAwareStore struct {
	*repository.MemoryRepo
}

func (s cancelAwareStore) SaveBid(ctx context.Context, bid models.Bid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryRepo.SaveBid(ctx, bid)
}

func TestRunner_Check_CancelledMidCheckStillRecordsFailure(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, nil, pendingBid(now))
	store := cancelAwareStore{f.repo}
	v, err := vault.New(testKey)
	require.NoError(t, err)
	runner := NewRunner(store, auctionsite.Registry{models.AuctionCopart: f.client}, v, f.notifier,
		WithClock(func() time.Time { return now }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expectLogin(f)
	f.client.EXPECT().InspectLot(gomock.Any(), gomock.Any(), "10000001", 4500.0).
		DoAndReturn(func(context.Context, *auctionsite.Session, string, float64) (models.CheckResult, error) {
			cancel()
			return models.CheckResult{}, fmt.Errorf("load lot: %w", trackingerrors.ErrTransientNetwork)
		})

	bid, err := f.repo.GetBid(context.Background(), "bid-1")
	require.NoError(t, err)
	err = runner.Check(ctx, &bid)
	require.ErrorIs(t, err, trackingerrors.ErrTransientNetwork)

	stored, err := f.repo.GetBid(context.Background(), "bid-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, stored.Status)
	require.Equal(t, 1, stored.CheckAttempts)
	require.NotEmpty(t, stored.ErrorMessage)

	eligible, err := f.repo.FindEligibleBids(context.Background(), models.EligibilityFilter{
		Now:         now.Add(15 * time.Minute),
		Lookback:    time.Hour,
		Lookahead:   24 * time.Hour,
		MinCheckAge: 10 * time.Minute,
		Limit:       50,
	})
	require.NoError(t, err)
	require.Len(t, eligible, 1)
}

func TestRunner_CheckByID_SettledBidUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	bid := pendingBid(now)
	bid.Status = models.StatusWon
	bid.CheckAttempts = 6
	bid.FinalPrice = price(4500)
	f := newFixture(t, nil, bid)

	got, err := f.runner.CheckByID(context.Background(), "bid-1")
	require.ErrorIs(t, err, trackingerrors.ErrBidSettled)
	require.Equal(t, models.StatusWon, got.Status)
	require.Equal(t, 6, got.CheckAttempts)
	require.Equal(t, 4500.0, *got.FinalPrice)
}
