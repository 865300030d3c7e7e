// Package notify tells interested parties that a company won a lot
package notify

//go:generate mockgen -source=notify.go -destination=mock_notifier.go -package=notify

import (
	"context"
	"errors"
	"fmt"

	"bid-reconciler/internal/models"
	"bid-reconciler/utils"
)

// Notifier delivers a won-bid notification
type Notifier interface {
	Notify(ctx context.Context, company models.Company, bid models.Bid) error
}

// Message is the payload sent to every sink
type Message struct {
	BidID       string               `json:"bid_id"`
	CompanyID   string               `json:"company_id"`
	CompanyName string               `json:"company_name"`
	LotNumber   string               `json:"lot_number"`
	Auction     models.AuctionSource `json:"auction"`
	FinalPrice  *float64             `json:"final_price,omitempty"`
	BidAmount   float64              `json:"bid_amount"`
	Message     string               `json:"message"`
}

// NewMessage builds the won-bid message for bid
func NewMessage(company models.Company, bid models.Bid) Message {
	price := bid.BidAmount
	if bid.FinalPrice != nil {
		price = *bid.FinalPrice
	}
	return Message{
		BidID:       bid.ID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		LotNumber:   bid.LotNumber,
		Auction:     bid.Auction,
		FinalPrice:  bid.FinalPrice,
		BidAmount:   bid.BidAmount,
		Message:     fmt.Sprintf("Congratulations! You won lot %s on %s for $%.2f", bid.LotNumber, bid.Auction, price),
	}
}

// LogNotifier writes the notification to the application log
type LogNotifier struct{}

// Notify logs the win
func (LogNotifier) Notify(_ context.Context, company models.Company, bid models.Bid) error {
	msg := NewMessage(company, bid)
	utils.Info("bid won", map[string]any{
		"bid_id":     msg.BidID,
		"company_id": msg.CompanyID,
		"lot_number": msg.LotNumber,
		"auction":    msg.Auction,
		"message":    msg.Message,
	})
	return nil
}

// Multi fans a notification out to every sink. All sinks are attempted; failures are joined.
type Multi []Notifier

// Notify delivers to every sink
func (m Multi) Notify(ctx context.Context, company models.Company, bid models.Bid) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, company, bid); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
