// Package api implements the HTTP client for the remote timing service.
// The service is treated as an opaque data source: this package owns only
// the wire decoding into f1 domain types, no caching and no retries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/smileynet/pitwall/internal/f1"
)

// ErrNotFound indicates the requested session or schedule does not exist
// upstream (unknown event, unscheduled round, or a session that has not
// been run yet).
var ErrNotFound = errors.New("api: session not found")

// ErrUnavailable indicates the timing service could not be reached or
// returned an unexpected response.
var ErrUnavailable = errors.New("api: timing service unavailable")

// DefaultBaseURL is the production timing service endpoint.
const DefaultBaseURL = "https://api.pitwall.dev/v1"

// defaultTimeout bounds a single request; the dashboard has no retry loop,
// so a hung request would otherwise block a render pass indefinitely.
const defaultTimeout = 30 * time.Second

// Client fetches session data and schedules from the timing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Client for the given base URL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scheduleResponse is the wire shape of GET /schedule/{year}.
type scheduleResponse struct {
	Season int        `json:"season"`
	Events []f1.Event `json:"events"`
}

// GetSchedule returns the season calendar for a year, excluding testing.
func (c *Client) GetSchedule(ctx context.Context, year int) ([]f1.Event, error) {
	u := fmt.Sprintf("%s/schedule/%d", c.baseURL, year)

	var resp scheduleResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if len(resp.Events) == 0 {
		return nil, fmt.Errorf("%w: no events scheduled for %d", ErrNotFound, year)
	}
	return resp.Events, nil
}

// GetSession returns the full session data for an identifier. The event may
// be a grand prix name or a round number; resolution happens server-side.
// Sessions that do not exist (unknown event, future date) yield ErrNotFound.
func (c *Client) GetSession(ctx context.Context, id f1.SessionID) (*f1.SessionData, error) {
	u := fmt.Sprintf("%s/session/%d/%s/%s",
		c.baseURL, id.Year, url.PathEscape(id.Event), url.PathEscape(string(id.Type)))

	var data f1.SessionData
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}
	if len(data.Results) == 0 {
		return nil, fmt.Errorf("%w: %s has no classified results", ErrNotFound, id)
	}

	// The wire omits the identifier; stamp the requested one so cache keys
	// and display labels stay consistent with what the user asked for.
	data.ID = id
	return &data, nil
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %d from %s", ErrUnavailable, resp.StatusCode, rawURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decoding response from %s: %w", rawURL, err)
	}
	return nil
}
