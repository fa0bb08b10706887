package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/match"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/storage"
)

// MasterListSource serves candidates from the locally built registry
// snapshot. It is the highest-priority source: local, fast, and curated.
type MasterListSource struct {
	store         *storage.SchemeStore
	maxResults    int
	minSimilarity float64
}

// NewMasterListSource creates a source over the scheme store. maxResults
// caps both the substring and the fuzzy pass; minSimilarity gates the fuzzy
// pass only.
func NewMasterListSource(store *storage.SchemeStore, maxResults int, minSimilarity float64) *MasterListSource {
	if maxResults <= 0 {
		maxResults = 10
	}

	return &MasterListSource{
		store:         store,
		maxResults:    maxResults,
		minSimilarity: minSimilarity,
	}
}

// ID implements Source.ID.
func (s *MasterListSource) ID() string {
	return "masterlist"
}

// Search implements Source.Search. An unbuilt master list is reported as
// unavailable so resolution falls through to the market lookup.
func (s *MasterListSource) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	count, err := s.store.CountSchemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: run a master-list build first", common.ErrMasterListEmpty)
	}

	schemes, err := s.store.SearchSchemes(ctx, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	if len(schemes) > 0 {
		return s.toCandidates(schemes), nil
	}

	// No substring hit; fall back to a case-insensitive fuzzy pass over the
	// whole list, the same way a catalog's own search tolerates typos.
	names, err := s.store.AllSchemeNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	lowered := make([]string, len(ordered))
	original := make(map[string]string, len(ordered))
	for i, name := range ordered {
		lower := strings.ToLower(name)
		lowered[i] = lower
		if _, ok := original[lower]; !ok {
			original[lower] = name
		}
	}

	ranked := match.Rank(strings.ToLower(query), lowered, s.maxResults, s.minSimilarity)
	slog.Debug("Master-list fuzzy fallback", "query", query, "matches", len(ranked))

	candidates := make([]model.Candidate, 0, len(ranked))
	seen := make(map[string]bool, len(ranked))
	for _, lower := range ranked {
		name := original[lower]
		if seen[name] {
			continue
		}
		seen[name] = true
		candidates = append(candidates, model.Candidate{
			DisplayName: name,
			Ticker:      names[name],
			SourceID:    s.ID(),
		})
	}

	return candidates, nil
}

func (s *MasterListSource) toCandidates(schemes []model.Scheme) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(schemes))
	for _, scheme := range schemes {
		candidates = append(candidates, model.Candidate{
			DisplayName: scheme.Name,
			Ticker:      scheme.Code,
			SourceID:    s.ID(),
		})
	}
	return candidates
}
