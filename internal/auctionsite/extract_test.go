package auctionsite

import (
	"os"
	"path/filepath"
	"testing"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"

	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return body
}

func ptr(v float64) *float64 { return &v }

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected float64
		ok       bool
	}{
		{name: "dollar_and_commas", text: "Sale Price: $12,500 USD", expected: 12500, ok: true},
		{name: "cents_ignored", text: "$1,250.50", expected: 1250, ok: true},
		{name: "bare_number", text: "8900", expected: 8900, ok: true},
		{name: "first_number_wins", text: "$700 then $900", expected: 700, ok: true},
		{name: "no_digits", text: "Final price available to bidders only", ok: false},
		{name: "empty", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ParsePrice(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.expected, price)
			}
		})
	}
}

func TestParseLotPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		file     string
		expected LotPage
	}{
		{
			name:     "active_lot",
			status:   200,
			file:     "lot_active.html",
			expected: LotPage{StatusText: "upcoming auction"},
		},
		{
			name:     "sold_with_price",
			status:   200,
			file:     "lot_sold.html",
			expected: LotPage{StatusText: "sold", Ended: true, FinalPrice: ptr(12500)},
		},
		{
			name:     "ended_without_price",
			status:   200,
			file:     "lot_sold_no_price.html",
			expected: LotPage{StatusText: "sale ended", Ended: true},
		},
		{
			name:     "not_found_marker",
			status:   200,
			file:     "lot_not_found.html",
			expected: LotPage{NotFound: true},
		},
		{
			name:     "http_404",
			status:   404,
			file:     "lot_sold.html",
			expected: LotPage{NotFound: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParseLotPage(tt.status, fixture(t, tt.file), CopartProfile())
			require.NoError(t, err)
			require.Equal(t, tt.expected, page)
		})
	}
}

func TestParseLotPage_404Title(t *testing.T) {
	body := []byte(`<html><head><title>404 | Page Missing</title></head><body><p>Oops</p></body></html>`)

	page, err := ParseLotPage(200, body, CopartProfile())
	require.NoError(t, err)
	require.True(t, page.NotFound)
}

func TestParseLotPage_IAAIProfile(t *testing.T) {
	body := []byte(`<html><body><div class="sale-status">Auction Completed</div><span class="sale-price">$3,050</span></body></html>`)

	page, err := ParseLotPage(200, body, IAAIProfile())
	require.NoError(t, err)
	require.True(t, page.Ended)
	require.NotNil(t, page.FinalPrice)
	require.Equal(t, 3050.0, *page.FinalPrice)
}

func TestParseWonBids(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		lot      string
		expected bool
	}{
		{name: "listed_in_won_section", file: "won_bids.html", lot: "10000006", expected: true},
		{name: "only_in_open_section", file: "won_bids.html", lot: "10000002", expected: false},
		{name: "absent", file: "won_bids.html", lot: "10000009", expected: false},
		{name: "fallback_page_mentions_lot_and_won", file: "won_bids_plain.html", lot: "10000006", expected: true},
		{name: "fallback_lot_absent", file: "won_bids_plain.html", lot: "10000009", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won, err := ParseWonBids(fixture(t, tt.file), tt.lot, CopartProfile())
			require.NoError(t, err)
			require.Equal(t, tt.expected, won)
		})
	}
}

func TestClassifyLot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      LotPage
		bid       float64
		confirmed bool
		expected  models.CheckResult
	}{
		{
			name:     "not_found_is_unknown",
			page:     LotPage{NotFound: true},
			bid:      5000,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeUnknown},
		},
		{
			name:     "running_is_active",
			page:     LotPage{StatusText: "live"},
			bid:      5000,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeActive},
		},
		{
			name:     "price_equals_bid_is_won",
			page:     LotPage{Ended: true, FinalPrice: ptr(5000)},
			bid:      5000,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeWon, FinalPrice: ptr(5000), AuctionEnded: true},
		},
		{
			name:     "price_differs_is_lost",
			page:     LotPage{Ended: true, FinalPrice: ptr(5100)},
			bid:      5000,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeLost, FinalPrice: ptr(5100), AuctionEnded: true},
		},
		{
			name:      "confirmed_on_won_page_is_won",
			page:      LotPage{Ended: true, FinalPrice: ptr(5100)},
			bid:       5000,
			confirmed: true,
			expected:  models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeWon, FinalPrice: ptr(5100), AuctionEnded: true},
		},
		{
			name:     "zero_price_never_matches",
			page:     LotPage{Ended: true, FinalPrice: ptr(0)},
			bid:      0,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeLost, FinalPrice: ptr(0), AuctionEnded: true},
		},
		{
			name:     "no_price_unconfirmed_is_lost",
			page:     LotPage{Ended: true},
			bid:      5000,
			expected: models.CheckResult{LotNumber: "L1", Outcome: models.OutcomeLost, AuctionEnded: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ClassifyLot("L1", tt.page, tt.bid, tt.confirmed))
		})
	}
}

func TestParseLoginForm(t *testing.T) {
	form, err := ParseLoginForm(fixture(t, "login.html"), CopartProfile())
	require.NoError(t, err)
	require.Equal(t, "/processLogin", form.Action)
	require.Equal(t, "b1c7e0d2", form.Fields.Get("_csrf"))
	require.Equal(t, "/dashboard", form.Fields.Get("returnUrl"))
	require.Empty(t, form.Fields.Get("username"))

	_, err = ParseLoginForm(fixture(t, "lot_active.html"), CopartProfile())
	require.ErrorIs(t, err, trackingerrors.ErrExtractionAmbiguous)
}

func TestHasChallenge(t *testing.T) {
	require.True(t, HasChallenge(fixture(t, "captcha.html")))
	require.True(t, HasChallenge([]byte(`<html><body><form id="challenge-form"></form></body></html>`)))
	require.False(t, HasChallenge(fixture(t, "lot_sold.html")))
	require.False(t, HasChallenge(nil))
}
