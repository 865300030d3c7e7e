// Package auctionsite drives authenticated visits to auction-house websites and
// turns the pages it sees into CheckResults.
//
// All page interpretation lives in extract.go as pure functions over raw HTML, so
// layout changes can be reproduced with recorded fixture pages.
package auctionsite

//go:generate mockgen -source=client.go -destination=mock_client.go -package=auctionsite

import (
	"context"
	"errors"
	"fmt"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"
)

// Client is the capability the check runner needs from one auction house
type Client interface {
	// Authenticate logs in and returns a session carrying the site cookies
	Authenticate(ctx context.Context, username, secret string) (*Session, error)
	// InspectLot reports whether the lot's auction ended and whether the bid won it
	InspectLot(ctx context.Context, session *Session, lotNumber string, expectedBid float64) (models.CheckResult, error)
	// DetectChallenge reports whether the last page seen by session is a bot challenge
	DetectChallenge(session *Session) bool
	// Close releases the shared transport; it is safe to call more than once
	Close() error
}

// Admitter gates outbound requests
type Admitter interface {
	Admit(ctx context.Context) error
}

// Registry maps each supported auction house to its client
type Registry map[models.AuctionSource]Client

// Lookup returns the client for source
func (r Registry) Lookup(source models.AuctionSource) (Client, error) {
	c, ok := r[source]
	if !ok || c == nil {
		return nil, fmt.Errorf("auction %q: %w", source, trackingerrors.ErrUnsupportedAuction)
	}
	return c, nil
}

// Close closes every registered client
func (r Registry) Close() error {
	var errs []error
	for source, c := range r {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s client: %w", source, err))
		}
	}
	return errors.Join(errs...)
}
