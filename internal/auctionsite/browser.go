package auctionsite

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"
	"bid-reconciler/utils"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout   = 30 * time.Second
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Browser owns the long-lived connection pool shared by every session.
// It is created lazily on the first session and torn down by Close; a later
// session starts it again.
type Browser struct {
	mu        sync.Mutex
	transport *http.Transport
	timeout   time.Duration
	userAgent string
}

// NewBrowser creates a browser whose requests time out after timeout
func NewBrowser(timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Browser{timeout: timeout, userAgent: desktopUserAgent}
}

// Started reports whether the shared transport is currently open
func (b *Browser) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transport != nil
}

func (b *Browser) sharedTransport() *http.Transport {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.transport == nil {
		utils.Info("starting shared site transport", map[string]any{"timeout": b.timeout.String()})
		b.transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   b.timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: time.Second,
		}
	}
	return b.transport
}

// NewSession opens a fresh cookie session on the shared transport
func (b *Browser) NewSession(source models.AuctionSource) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	client := resty.New().
		SetTransport(b.sharedTransport()).
		SetCookieJar(jar).
		SetTimeout(b.timeout).
		SetHeader("User-Agent", b.userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Session{Source: source, http: client}, nil
}

// Close shuts the shared transport down. Calling it again is a no-op.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.transport == nil {
		return nil
	}
	b.transport.CloseIdleConnections()
	b.transport = nil
	utils.Info("shared site transport closed", nil)
	return nil
}

// Session is one authenticated visit to an auction site
type Session struct {
	Source models.AuctionSource

	http       *resty.Client
	lastURL    string
	lastStatus int
	lastBody   []byte
}

// LastURL returns the final URL of the last page loaded, after redirects
func (s *Session) LastURL() string { return s.lastURL }

// LastPage returns the body of the last page loaded
func (s *Session) LastPage() []byte { return s.lastBody }

// Close drops the session's cookies and page state
func (s *Session) Close() {
	s.http = nil
	s.lastBody = nil
}

func (s *Session) get(ctx context.Context, target string) (*resty.Response, error) {
	if s.http == nil {
		return nil, fmt.Errorf("session closed: %w", trackingerrors.ErrTransientNetwork)
	}
	resp, err := s.http.R().SetContext(ctx).Get(target)
	return s.record(target, resp, err)
}

func (s *Session) postForm(ctx context.Context, target string, form url.Values) (*resty.Response, error) {
	if s.http == nil {
		return nil, fmt.Errorf("session closed: %w", trackingerrors.ErrTransientNetwork)
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(target)
	return s.record(target, resp, err)
}

func (s *Session) record(target string, resp *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return nil, fmt.Errorf("request %s: %v: %w", redact(target), err, trackingerrors.ErrTransientNetwork)
	}

	s.lastURL = target
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		s.lastURL = resp.RawResponse.Request.URL.String()
	}
	s.lastStatus = resp.StatusCode()
	s.lastBody = resp.Body()

	if resp.StatusCode() >= http.StatusInternalServerError {
		return resp, fmt.Errorf("request %s: server returned %d: %w", redact(target), resp.StatusCode(), trackingerrors.ErrTransientNetwork)
	}
	return resp, nil
}

// redact strips the query string so tokens never reach the logs
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	return u.String()
}
