package helpers

import (
	"time"

	"bid-reconciler/internal/models"
)

// Request/Response DTOs
type LogBidRequest struct {
	UserID         string     `json:"user_id" binding:"required"`
	CompanyID      string     `json:"company_id" binding:"required"`
	Auction        string     `json:"auction" binding:"required,oneof=copart iaai"`
	LotNumber      string     `json:"lot_number" binding:"required"`
	VIN            string     `json:"vin"`
	BidAmount      float64    `json:"bid_amount" binding:"required,gt=0"`
	BidType        string     `json:"bid_type" binding:"required"`
	IsPreBid       bool       `json:"is_pre_bid"`
	AuctionDate    *time.Time `json:"auction_date"`
	AuctionEndTime *time.Time `json:"auction_end_time"`
}

type BidResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	CompanyID      string   `json:"company_id"`
	Auction        string   `json:"auction"`
	LotNumber      string   `json:"lot_number"`
	VIN            string   `json:"vin,omitempty"`
	BidAmount      float64  `json:"bid_amount"`
	BidType        string   `json:"bid_type"`
	IsPreBid       bool     `json:"is_pre_bid"`
	AuctionDate    string   `json:"auction_date,omitempty"`
	AuctionEndTime string   `json:"auction_end_time,omitempty"`
	Status         string   `json:"status"`
	FinalPrice     *float64 `json:"final_price,omitempty"`
	CheckedAt      string   `json:"checked_at,omitempty"`
	CheckAttempts  int      `json:"check_attempts"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// NewBidResponse converts a bid for the wire, timestamps in RFC3339 UTC
func NewBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		CompanyID:      b.CompanyID,
		Auction:        string(b.Auction),
		LotNumber:      b.LotNumber,
		VIN:            b.VIN,
		BidAmount:      b.BidAmount,
		BidType:        b.BidType,
		IsPreBid:       b.IsPreBid,
		AuctionDate:    formatTime(b.AuctionDate),
		AuctionEndTime: formatTime(b.AuctionEndTime),
		Status:         string(b.Status),
		FinalPrice:     b.FinalPrice,
		CheckedAt:      formatTime(b.CheckedAt),
		CheckAttempts:  b.CheckAttempts,
		ErrorMessage:   b.ErrorMessage,
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBidResponses converts a listing, never returning nil
func NewBidResponses(bids []models.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, NewBidResponse(b))
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
