package trackingerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrBidNotFound     = errors.New("bid not found")
	ErrCompanyNotFound = errors.New("company not found")
)

// business logic errors
var (
	ErrInvalidBid = errors.New("invalid bid")
	ErrBidSettled = errors.New("bid already won or lost")
)

// reconciliation errors
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrChallengeDetected    = errors.New("bot challenge detected, manual intervention required")
	ErrExtractionAmbiguous  = errors.New("page layout did not match expected markers")
	ErrTransientNetwork     = errors.New("transient network failure")
	ErrConfiguration        = errors.New("configuration error")
	ErrDecryptionFailed     = errors.New("decryption failed")
)

// configuration errors surfaced by the check runner
var (
	ErrAutoCheckDisabled  = fmt.Errorf("%w: auto-checking disabled for company", ErrConfiguration)
	ErrMissingCredentials = fmt.Errorf("%w: auction credentials not set for company", ErrConfiguration)
	ErrUnsupportedAuction = fmt.Errorf("%w: unsupported auction source", ErrConfiguration)
)
