// Package weather fetches plain-text forecasts from wttr.in.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/plaintext-sports/internal/fetch"
	"github.com/pfrederiksen/plaintext-sports/internal/logger"
)

const (
	// BaseURL is the forecast service.
	BaseURL = "https://wttr.in"

	// MaxLength keeps a forecast inside one chat message with its code fence.
	MaxLength = 1990

	// DefaultRegion is appended to bare city names that do not resolve.
	DefaultRegion = "NY"
)

// ErrUnknownLocation is returned when wttr.in cannot resolve a location.
var ErrUnknownLocation = errors.New("unknown location")

// Report is a resolved forecast.
type Report struct {
	Query    string // location as typed
	Location string // location that resolved, possibly with DefaultRegion
	Text     string
}

// Client fetches forecasts.
type Client struct {
	fetcher fetch.Getter
	baseURL string
	log     *logger.Logger
}

// New creates a Client against wttr.in.
func New(fetcher fetch.Getter, log *logger.Logger) *Client {
	return NewWithBaseURL(fetcher, BaseURL, log)
}

// NewWithBaseURL creates a Client against another host.
func NewWithBaseURL(fetcher fetch.Getter, baseURL string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{fetcher: fetcher, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// URL builds the condensed, colorless forecast URL for location.
func (c *Client) URL(location string) string {
	return fmt.Sprintf("%s/%s?T&F&n", c.baseURL, strings.ReplaceAll(location, " ", "+"))
}

// Fetch returns the forecast text for exactly location.
func (c *Client) Fetch(ctx context.Context, location string) (string, error) {
	body, err := c.fetcher.Get(ctx, c.URL(location), fetch.WeatherTimeout)
	if err != nil {
		if fe, ok := fetch.AsError(err); ok && fe.Kind == fetch.KindStatus {
			return "", fmt.Errorf("%q: %w: %w", location, ErrUnknownLocation, err)
		}
		return "", fmt.Errorf("fetching weather for %q: %w", location, err)
	}
	if strings.Contains(body, "Unknown location") || strings.Contains(body, "ERROR") {
		return "", fmt.Errorf("%q: %w", location, ErrUnknownLocation)
	}
	return strings.TrimSpace(body), nil
}

// Lookup fetches location, retrying a short bare name once with
// ",NY" appended. The text is cut to MaxLength, never split.
func (c *Client) Lookup(ctx context.Context, location string) (Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Report{}, ErrUnknownLocation
	}

	report := Report{Query: location, Location: location}
	text, err := c.Fetch(ctx, location)
	if err != nil && retryable(location) {
		c.log.Debug("Retrying weather with default region", logger.Fields{
			"location": location,
			"error":    err.Error(),
		})
		report.Location = location + "," + DefaultRegion
		text, err = c.Fetch(ctx, report.Location)
	}
	if err != nil {
		return Report{}, err
	}

	report.Text = truncate(text, MaxLength)
	return report, nil
}

func retryable(location string) bool {
	return !strings.Contains(location, ",") && len(strings.Fields(location)) < 3
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
