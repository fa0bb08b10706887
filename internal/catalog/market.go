package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// DefaultMarketBaseURL is the public scheme-search endpoint.
const DefaultMarketBaseURL = "https://api.mfapi.in"

// DefaultTimeout bounds each catalog request. Exceeding it counts as the
// source being unavailable.
const DefaultTimeout = 10 * time.Second

// MarketSource queries the market-wide fund lookup API.
type MarketSource struct {
	baseURL    string
	httpClient *http.Client
}

// marketScheme matches one item of the search API response.
type marketScheme struct {
	SchemeCode json.Number `json:"schemeCode"`
	SchemeName string      `json:"schemeName"`
}

// NewMarketSource creates a market lookup source with the fixed request
// timeout. baseURL is overridable for tests; empty selects the default.
func NewMarketSource(baseURL string, timeout time.Duration) *MarketSource {
	if baseURL == "" {
		baseURL = DefaultMarketBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &MarketSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ID implements Source.ID.
func (s *MarketSource) ID() string {
	return "market"
}

// Search implements Source.Search against the /mf/search endpoint.
func (s *MarketSource) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	searchURL := fmt.Sprintf("%s/mf/search?q=%s", s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", common.ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	slog.Debug("Querying market catalog", "query", query)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: market API error: %d - %s", common.ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var schemes []marketScheme
	if err := json.NewDecoder(resp.Body).Decode(&schemes); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrSourceUnavailable, err)
	}

	candidates := make([]model.Candidate, 0, len(schemes))
	for _, scheme := range schemes {
		if scheme.SchemeName == "" || scheme.SchemeCode.String() == "" {
			continue
		}
		candidates = append(candidates, model.Candidate{
			DisplayName: scheme.SchemeName,
			Ticker:      scheme.SchemeCode.String(),
			SourceID:    s.ID(),
		})
	}

	return candidates, nil
}
