package auctionsite

import (
	"fmt"
	"net/url"
	"strings"

	"bid-reconciler/internal/models"
)

// Profile describes where things live on one auction house's website
type Profile struct {
	Source  models.AuctionSource
	BaseURL string

	LoginPath     string
	UsernameField string
	PasswordField string
	// a post-login URL containing any of these means the login was rejected
	LoginFailureMarkers []string

	LotPathTemplate string
	WonBidsPath     string

	StatusSelectors     []string
	PriceSelectors      []string
	WonSectionSelectors []string
	NotFoundMarkers     []string
}

// CopartProfile targets www.copart.com
func CopartProfile() Profile {
	return Profile{
		Source:              models.AuctionCopart,
		BaseURL:             "https://www.copart.com",
		LoginPath:           "/login/",
		UsernameField:       "username",
		PasswordField:       "password",
		LoginFailureMarkers: []string{"/login", "/error"},
		LotPathTemplate:     "/lot/%s",
		WonBidsPath:         "/myAccount/myBids",
		StatusSelectors:     []string{`[class*="auction-status"]`, `[class*="status"]`},
		PriceSelectors: []string{
			`[class*="sold-price"]`,
			`[class*="final-price"]`,
			`[class*="winning-bid"]`,
			`[data-test*="price"]`,
		},
		WonSectionSelectors: []string{`[class*="won-bids"]`, `[data-test*="won-bids"]`, `[id*="won"]`},
		NotFoundMarkers:     []string{"not found"},
	}
}

// IAAIProfile targets www.iaai.com
func IAAIProfile() Profile {
	return Profile{
		Source:              models.AuctionIAAI,
		BaseURL:             "https://www.iaai.com",
		LoginPath:           "/Login",
		UsernameField:       "Email",
		PasswordField:       "Password",
		LoginFailureMarkers: []string{"/login", "/error"},
		LotPathTemplate:     "/VehicleDetail/%s~US",
		WonBidsPath:         "/MyAccount/WonVehicles",
		StatusSelectors:     []string{`[class*="auction-status"]`, `[class*="sale-status"]`, `[class*="status"]`},
		PriceSelectors: []string{
			`[class*="sold-price"]`,
			`[class*="sale-price"]`,
			`[class*="winning-bid"]`,
			`[data-test*="price"]`,
		},
		WonSectionSelectors: []string{`[class*="won-vehicles"]`, `[data-test*="won"]`, `[id*="won"]`},
		NotFoundMarkers:     []string{"not found", "no longer available"},
	}
}

// WithBaseURL returns a copy of the profile pointed at another host
func (p Profile) WithBaseURL(base string) Profile {
	p.BaseURL = strings.TrimRight(base, "/")
	return p
}

// LoginURL is the absolute login page URL
func (p Profile) LoginURL() string { return p.BaseURL + p.LoginPath }

// LotURL is the absolute detail page URL for a lot; the lot number is path-escaped
func (p Profile) LotURL(lotNumber string) string {
	return p.BaseURL + fmt.Sprintf(p.LotPathTemplate, url.PathEscape(lotNumber))
}

// WonBidsURL is the absolute "my bids / won" page URL
func (p Profile) WonBidsURL() string { return p.BaseURL + p.WonBidsPath }

// loginRejected reports whether a post-login URL still points at a login or error page
func (p Profile) loginRejected(finalURL string) bool {
	lower := strings.ToLower(finalURL)
	for _, marker := range p.LoginFailureMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
