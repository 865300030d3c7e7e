package models

import "time"

// AuctionSource identifies a supported auction house
type AuctionSource string

const (
	AuctionCopart AuctionSource = "copart"
	AuctionIAAI   AuctionSource = "iaai"
)

// Valid reports whether the source is one of the supported auction houses
func (a AuctionSource) Valid() bool {
	switch a {
	case AuctionCopart, AuctionIAAI:
		return true
	default:
		return false
	}
}

// BidStatus is the reconciliation state of a bid
type BidStatus string

const (
	StatusPending  BidStatus = "pending"
	StatusChecking BidStatus = "checking"
	StatusActive   BidStatus = "active"
	StatusWon      BidStatus = "won"
	StatusLost     BidStatus = "lost"
)

// AllStatuses lists every bid status in lifecycle order
var AllStatuses = []BidStatus{StatusPending, StatusChecking, StatusActive, StatusWon, StatusLost}

// IsTerminal reports whether no further automatic transition happens from this status
func (s BidStatus) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

// Recheckable reports whether the scheduler may select a bid in this status
func (s BidStatus) Recheckable() bool {
	return s == StatusPending || s == StatusActive
}

// Bid is a buyer's bid on an auction lot, tracked until it is won or lost
type Bid struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	CompanyID      string        `json:"company_id"`
	Auction        AuctionSource `json:"auction"`
	LotNumber      string        `json:"lot_number"`
	VIN            string        `json:"vin,omitempty"`
	BidAmount      float64       `json:"bid_amount"`
	BidType        string        `json:"bid_type"`
	IsPreBid       bool          `json:"is_pre_bid"`
	AuctionDate    *time.Time    `json:"auction_date,omitempty"`
	AuctionEndTime *time.Time    `json:"auction_end_time,omitempty"`
	Status         BidStatus     `json:"status"`
	FinalPrice     *float64      `json:"final_price,omitempty"`
	CheckedAt      *time.Time    `json:"checked_at,omitempty"`
	CheckAttempts  int           `json:"check_attempts"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Company owns bids and supplies the auction-site credentials used to check them
type Company struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	IsActive         bool   `json:"is_active"`
	AutoCheckEnabled bool   `json:"auto_check_enabled"`
	CopartUsername   string `json:"-"`
	CopartPassword   string `json:"-"` // vault ciphertext
	IAAIUsername     string `json:"-"`
	IAAIPassword     string `json:"-"` // vault ciphertext
}

// Credentials returns the username and encrypted secret stored for an auction source.
// ok is false when either value is missing.
func (c Company) Credentials(source AuctionSource) (username, secret string, ok bool) {
	switch source {
	case AuctionCopart:
		username, secret = c.CopartUsername, c.CopartPassword
	case AuctionIAAI:
		username, secret = c.IAAIUsername, c.IAAIPassword
	}
	return username, secret, username != "" && secret != ""
}

// Outcome is the auction site's verdict for a lot
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeActive  Outcome = "active"
	OutcomeUnknown Outcome = "unknown"
)

// CheckResult is the verdict produced by inspecting one lot
type CheckResult struct {
	LotNumber    string   `json:"lot_number"`
	Outcome      Outcome  `json:"outcome"`
	FinalPrice   *float64 `json:"final_price,omitempty"`
	AuctionEnded bool     `json:"auction_ended"`
}

// EligibilityFilter selects bids due for a reconciliation check
type EligibilityFilter struct {
	Now         time.Time
	Lookback    time.Duration
	Lookahead   time.Duration
	MinCheckAge time.Duration
	Limit       int
}

// Matches reports whether a bid satisfies the filter
func (f EligibilityFilter) Matches(b Bid) bool {
	if !b.Status.Recheckable() || b.AuctionEndTime == nil {
		return false
	}
	end := *b.AuctionEndTime
	if end.Before(f.Now.Add(-f.Lookback)) || end.After(f.Now.Add(f.Lookahead)) {
		return false
	}
	return b.CheckedAt == nil || !b.CheckedAt.After(f.Now.Add(-f.MinCheckAge))
}

// BidStats aggregates bid counts for the operational status endpoint
type BidStats struct {
	Total     int               `json:"total"`
	PerStatus map[BidStatus]int `json:"per_status"`
	Errored   int               `json:"errored"`
	LastRun   *time.Time        `json:"last_run,omitempty"`
	IsRunning bool              `json:"is_running"`
}

// Health is the read-only reconciliation health snapshot
type Health struct {
	Status      string     `json:"status"`
	IsRunning   bool       `json:"is_running"`
	LastRun     *time.Time `json:"last_run,omitempty"`
	ChecksToday int        `json:"checks_today"`
}
