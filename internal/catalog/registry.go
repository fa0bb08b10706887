package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// DefaultRegistryURL is the national registry's daily NAV-all feed, the
// bulk source for the master list.
const DefaultRegistryURL = "https://www.amfiindia.com/spages/NAVAll.txt"

// RegistryClient downloads and parses the registry bulk feed. It is used by
// the one-time master-list build, not during interactive resolution.
type RegistryClient struct {
	feedURL    string
	httpClient *http.Client
}

// NewRegistryClient creates a registry feed client. feedURL is overridable
// for tests; empty selects the default.
func NewRegistryClient(feedURL string, timeout time.Duration) *RegistryClient {
	if feedURL == "" {
		feedURL = DefaultRegistryURL
	}
	if timeout <= 0 {
		// The bulk feed is a few MB; give it more room than a search call.
		timeout = 60 * time.Second
	}

	return &RegistryClient{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAll downloads the full feed and returns every scheme in it.
func (c *RegistryClient) FetchAll(ctx context.Context) ([]model.Scheme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", common.ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	slog.Info("Downloading registry feed", "url", c.feedURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: registry feed error: %d", common.ErrSourceUnavailable, resp.StatusCode)
	}

	schemes := parseFeed(resp.Body)
	if len(schemes) == 0 {
		return nil, fmt.Errorf("%w: registry feed contained no schemes", common.ErrSourceUnavailable)
	}

	slog.Info("Parsed registry feed", "schemes", len(schemes))
	return schemes, nil
}

// parseFeed reads the semicolon-delimited feed. Scheme rows are
// "code;isin;isin;name;nav;date"; bare lines in between are section headers
// and fund-house names.
func parseFeed(r io.Reader) []model.Scheme {
	var schemes []model.Scheme
	var fundHouse string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.Contains(line, ";") {
			// Section headers look like "Open Ended Schemes(...)"; anything
			// else standing alone is the current fund house.
			if !strings.Contains(line, "Schemes(") {
				fundHouse = line
			}
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 5 {
			continue
		}

		code := strings.TrimSpace(fields[0])
		name := strings.TrimSpace(fields[3])
		if code == "" || name == "" || code == "Scheme Code" {
			continue
		}

		schemes = append(schemes, model.Scheme{
			Code:      code,
			Name:      name,
			FundHouse: fundHouse,
		})
	}

	return schemes
}
