// Package nbacdn fetches the league schedule from the NBA's public static CDN.
package nbacdn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

const (
	providerName       = "nbacdn"
	DefaultScheduleURL = "https://cdn.nba.com/static/json/staticData/scheduleLeagueV2_1.json"
	defaultHTTPTimeout = 15 * time.Second
	maxPayloadBytes    = 32 << 20
	errorBodyLimit     = 512
)

// Config controls how the schedule is fetched.
type Config struct {
	URL        string
	HTTPClient *http.Client
}

// Client implements providers.ScheduleProvider against the CDN schedule JSON.
type Client struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient builds a CDN schedule client.
func NewClient(cfg Config) *Client {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = DefaultScheduleURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{url: url, httpClient: httpClient, now: time.Now}
}

// FetchSchedule returns the raw schedule payload.
func (c *Client) FetchSchedule(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("nbacdn: read schedule: %w", err)
	}
	return payload, nil
}
