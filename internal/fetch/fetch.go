package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	UserAgent = "plaintext-sports-bot/1.0 (github.com/pfrederiksen/plaintext-sports)"

	// PageTimeout applies to schedule and team pages.
	PageTimeout = 10 * time.Second
	// WeatherTimeout applies to wttr.in lookups.
	WeatherTimeout = 30 * time.Second

	maxBodyBytes = 8 << 20
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindUnreachable Kind = "unreachable"
	KindStatus      Kind = "status"
)

// Error is returned for every failed Get.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.Status)
	case KindTimeout:
		return fmt.Sprintf("fetching %s: timed out", e.URL)
	default:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError unwraps err into a *Error.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsTransport reports whether err came from the network layer or a non-200 response.
func IsTransport(err error) bool {
	_, ok := AsError(err)
	return ok
}

// Getter is the subset of Client the scrapers depend on.
type Getter interface {
	Get(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// Client handles fetching pages
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with its own connection pool.
func New() *Client {
	return &Client{
		http:      &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		userAgent: UserAgent,
	}
}

// NewWithHTTPClient wraps an existing *http.Client. Close still releases its idle connections.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{http: hc, userAgent: UserAgent}
}

// Get fetches url and returns the body as a string. The request is bounded by
// timeout in addition to any deadline already on ctx.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classify(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Kind: KindStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classify(ctx, url, err)
	}

	return string(body), nil
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func classify(ctx context.Context, url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	return &Error{Kind: KindUnreachable, URL: url, Err: err}
}
