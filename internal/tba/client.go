// Package tba is a minimal client for The Blue Alliance v3 read API.
package tba

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/frc"
	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultBaseURL = "https://www.thebluealliance.com/api/v3"
	AuthHeader     = "X-TBA-Auth-Key"

	endpointEventMatches = "event_matches"
	endpointEvent        = "event"

	// error bodies are only kept for logging
	maxErrorBody = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Observer receives one call per upstream request.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string, time.Duration) {}

type ClientConfig struct {
	// HTTPClient defaults to a client without a timeout; callers bound
	// requests through the context.
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Logger     *slog.Logger
	Observer   Observer
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
	observer   Observer
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
		observer:   observer,
	}
}

// FetchTeamMatches returns the event's matches that have teamKey on either
// alliance, in provider order. teamKey must already be canonical.
func (c *Client) FetchTeamMatches(ctx context.Context, eventKey, teamKey string) ([]frc.Match, error) {
	var matches []frc.Match
	path := fmt.Sprintf("/event/%s/matches", url.PathEscape(eventKey))
	if err := c.getJSON(ctx, endpointEventMatches, path, &matches); err != nil {
		c.logger.Debug("Error fetching alliance matches", "event_key", eventKey, "error", err)
		return nil, err
	}

	teamMatches := make([]frc.Match, 0, len(matches))
	for _, m := range matches {
		if m.Involves(teamKey) {
			teamMatches = append(teamMatches, m)
		}
	}
	return teamMatches, nil
}

func (c *Client) FetchEventDetails(ctx context.Context, eventKey string) (frc.Event, error) {
	var event frc.Event
	path := fmt.Sprintf("/event/%s", url.PathEscape(eventKey))
	if err := c.getJSON(ctx, endpointEvent, path, &event); err != nil {
		c.logger.Debug("Error fetching event details", "event_key", eventKey, "error", err)
		return frc.Event{}, err
	}
	return event, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		c.observer.ObserveUpstream(endpoint, outcome, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		outcome = "request_error"
		return &UpstreamError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set(AuthHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		return &UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = "decode_error"
		return &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
