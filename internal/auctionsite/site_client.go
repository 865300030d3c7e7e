package auctionsite

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/ratelimit"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"
)

// jitter ranges applied after sensitive transitions
const (
	loginPauseMin = 2 * time.Second
	loginPauseMax = 4 * time.Second
	pagePauseMin  = time.Second
	pagePauseMax  = 2 * time.Second
)

// SiteClient implements Client for any auction house described by a Profile
type SiteClient struct {
	profile     Profile
	browser     *Browser
	limiter     Admitter
	pause       ratelimit.PauseFunc
	snapshotDir string
}

// Option configures a SiteClient
type Option func(*SiteClient)

// WithPause replaces the jitter function
func WithPause(p ratelimit.PauseFunc) Option {
	return func(c *SiteClient) { c.pause = p }
}

// WithSnapshotDir saves challenge pages under dir for later inspection
func WithSnapshotDir(dir string) Option {
	return func(c *SiteClient) { c.snapshotDir = dir }
}

// NewSiteClient creates a client for profile. All clients sharing a browser and
// limiter share one connection pool and one request budget.
func NewSiteClient(profile Profile, browser *Browser, limiter Admitter, opts ...Option) *SiteClient {
	c := &SiteClient{
		profile: profile,
		browser: browser,
		limiter: limiter,
		pause:   ratelimit.RandomPause,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate submits the login form and confirms the site let the user in
func (c *SiteClient) Authenticate(ctx context.Context, username, secret string) (*Session, error) {
	session, err := c.browser.NewSession(c.profile.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: open session: %w", c.profile.Source, err)
	}

	utils.Debug("navigating to login page", map[string]any{"auction": c.profile.Source})
	if err := c.limiter.Admit(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %v: %w", c.profile.Source, err, trackingerrors.ErrTransientNetwork)
	}
	if _, err := session.get(ctx, c.profile.LoginURL()); err != nil {
		return nil, fmt.Errorf("%s: load login page: %w", c.profile.Source, err)
	}
	if c.DetectChallenge(session) {
		return nil, fmt.Errorf("%s: login page: %w", c.profile.Source, trackingerrors.ErrChallengeDetected)
	}

	form, err := ParseLoginForm(session.LastPage(), c.profile)
	if err != nil {
		return nil, fmt.Errorf("%s: login form: %v: %w", c.profile.Source, err, trackingerrors.ErrAuthenticationFailed)
	}
	action, err := resolveAction(session.LastURL(), form.Action)
	if err != nil {
		return nil, fmt.Errorf("%s: login form action: %v: %w", c.profile.Source, err, trackingerrors.ErrAuthenticationFailed)
	}

	values := form.Fields
	values.Set(c.profile.UsernameField, username)
	values.Set(c.profile.PasswordField, secret)

	if err := c.limiter.Admit(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %v: %w", c.profile.Source, err, trackingerrors.ErrTransientNetwork)
	}
	if _, err := session.postForm(ctx, action, values); err != nil {
		return nil, fmt.Errorf("%s: submit login: %w", c.profile.Source, err)
	}

	if c.profile.loginRejected(session.LastURL()) {
		session.Close()
		return nil, fmt.Errorf("%s: login failed, incorrect credentials or blocked: %w", c.profile.Source, trackingerrors.ErrAuthenticationFailed)
	}

	utils.Info("login successful", map[string]any{"auction": c.profile.Source})
	if err := c.pause(ctx, loginPauseMin, loginPauseMax); err != nil {
		return nil, err
	}
	return session, nil
}

// InspectLot visits the lot page and, when the auction is over, the won-bids page.
// Navigation failures are returned; page-interpretation failures become an unknown,
// not-ended result.
func (c *SiteClient) InspectLot(ctx context.Context, session *Session, lotNumber string, expectedBid float64) (models.CheckResult, error) {
	unknown := models.CheckResult{LotNumber: lotNumber, Outcome: models.OutcomeUnknown}
	fields := map[string]any{"auction": c.profile.Source, "lot_number": lotNumber}

	utils.Debug("checking lot status", fields)
	if err := c.limiter.Admit(ctx); err != nil {
		return unknown, fmt.Errorf("%s: rate limiter: %v: %w", c.profile.Source, err, trackingerrors.ErrTransientNetwork)
	}
	if _, err := session.get(ctx, c.profile.LotURL(lotNumber)); err != nil {
		return unknown, fmt.Errorf("%s: load lot %s: %w", c.profile.Source, lotNumber, err)
	}
	if err := c.pause(ctx, pagePauseMin, pagePauseMax); err != nil {
		return unknown, err
	}
	if c.DetectChallenge(session) {
		return unknown, fmt.Errorf("%s: lot %s: %w", c.profile.Source, lotNumber, trackingerrors.ErrChallengeDetected)
	}

	page, err := safeParseLot(session.lastStatus, session.LastPage(), c.profile)
	if err != nil {
		utils.Warn("lot page not understood, reporting unknown", map[string]any{
			"auction": c.profile.Source, "lot_number": lotNumber, "error": err.Error(),
		})
		return unknown, nil
	}
	if page.NotFound || !page.Ended {
		return ClassifyLot(lotNumber, page, expectedBid, false), nil
	}

	confirmed := c.confirmWin(ctx, session, lotNumber)
	return ClassifyLot(lotNumber, page, expectedBid, confirmed), nil
}

// confirmWin scans the won-bids page for the lot. Any failure counts as unconfirmed.
func (c *SiteClient) confirmWin(ctx context.Context, session *Session, lotNumber string) bool {
	utils.Debug("confirming win on won bids page", map[string]any{"auction": c.profile.Source, "lot_number": lotNumber})
	if err := c.limiter.Admit(ctx); err != nil {
		return false
	}
	if _, err := session.get(ctx, c.profile.WonBidsURL()); err != nil {
		utils.Warn("won bids page unavailable", map[string]any{"auction": c.profile.Source, "error": err.Error()})
		return false
	}
	if err := c.pause(ctx, pagePauseMin, pagePauseMax); err != nil {
		return false
	}

	won, err := ParseWonBids(session.LastPage(), lotNumber, c.profile)
	if err != nil {
		utils.Warn("won bids page not understood", map[string]any{"auction": c.profile.Source, "error": err.Error()})
		return false
	}
	return won
}

// DetectChallenge reports whether the session's last page is a bot challenge
func (c *SiteClient) DetectChallenge(session *Session) bool {
	if session == nil || !HasChallenge(session.LastPage()) {
		return false
	}
	utils.Warn("bot challenge detected, manual intervention required", map[string]any{
		"auction": c.profile.Source,
		"url":     redact(session.LastURL()),
	})
	c.snapshot(session)
	return true
}

// Close shuts the shared browser down
func (c *SiteClient) Close() error {
	return c.browser.Close()
}

func (c *SiteClient) snapshot(session *Session) {
	if c.snapshotDir == "" {
		return
	}
	if err := os.MkdirAll(c.snapshotDir, 0o755); err != nil {
		utils.Error("snapshot directory unavailable", map[string]any{"dir": c.snapshotDir, "error": err.Error()})
		return
	}
	name := fmt.Sprintf("challenge-%s-%d.html", c.profile.Source, time.Now().UnixNano())
	path := filepath.Join(c.snapshotDir, name)
	if err := os.WriteFile(path, session.LastPage(), 0o600); err != nil {
		utils.Error("failed to save challenge snapshot", map[string]any{"path": path, "error": err.Error()})
		return
	}
	utils.Info("challenge snapshot saved", map[string]any{"path": path})
}

// safeParseLot shields the check from panics in page interpretation
func safeParseLot(status int, body []byte, p Profile) (page LotPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while parsing lot page: %v: %w", r, trackingerrors.ErrExtractionAmbiguous)
		}
	}()
	return ParseLotPage(status, body, p)
}

func resolveAction(pageURL, action string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	if action == "" {
		return base.String(), nil
	}
	ref, err := url.Parse(action)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

