// Package history fetches NAV time series for resolved tickers. Resolution
// never depends on this succeeding; it is a downstream convenience.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
)

// DefaultBaseURL is the public NAV history endpoint.
const DefaultBaseURL = "https://api.mfapi.in"

// Client fetches NAV history for a scheme code.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NAVPoint is one day's net asset value.
type NAVPoint struct {
	Date time.Time
	NAV  float64
}

// Series is a scheme's NAV history, oldest first.
type Series struct {
	SchemeName string
	Points     []NAVPoint
}

// navResponse matches the history API payload.
type navResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
}

// NewClient creates a history client. baseURL is overridable for tests;
// empty selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the NAV series for a ticker, oldest point first.
func (c *Client) Fetch(ctx context.Context, ticker string) (*Series, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is empty")
	}

	historyURL := fmt.Sprintf("%s/mf/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, historyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NAV history: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("history API error: %d - %s", resp.StatusCode, string(body))
	}

	var payload navResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode NAV history: %w", err)
	}

	if len(payload.Data) == 0 {
		return nil, common.ErrNoHistory
	}

	points := make([]NAVPoint, 0, len(payload.Data))
	for _, row := range payload.Data {
		date, err := time.Parse("02-01-2006", row.Date)
		if err != nil {
			slog.Debug("Skipping unparsable NAV row", "date", row.Date)
			continue
		}
		nav, err := strconv.ParseFloat(row.NAV, 64)
		if err != nil || nav <= 0 {
			continue
		}
		points = append(points, NAVPoint{Date: date, NAV: nav})
	}

	if len(points) == 0 {
		return nil, common.ErrNoHistory
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return &Series{
		SchemeName: payload.Meta.SchemeName,
		Points:     points,
	}, nil
}
