// Package resolver implements the fund identity resolution engine: it maps
// free-text fund names to canonical tickers using the identity cache, the
// priority-ordered catalog sources and fuzzy matching.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/catalog"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/match"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/storage"
)

// Config holds the resolution tunables.
type Config struct {
	// MaxCandidates caps the blended match pool.
	MaxCandidates int
	// MinSimilarity excludes fuzzy matches below this ratio.
	MinSimilarity float64
	// MinNarrowWords is the shortest query the narrowing fallback will try.
	MinNarrowWords int
}

// DefaultConfig returns the default configuration. The similarity cutoff
// matches the suggestion cutoff the dashboard has always used.
func DefaultConfig() Config {
	return Config{
		MaxCandidates:  5,
		MinSimilarity:  0.4,
		MinNarrowWords: 2,
	}
}

// Engine orchestrates one resolution attempt. It owns the identity cache:
// no other component writes to it.
type Engine struct {
	cache   storage.IdentityStore
	sources []catalog.Source
	config  Config
}

// New creates a resolution engine over the given cache and priority-ordered
// catalog sources.
func New(cache storage.IdentityStore, sources []catalog.Source, config Config) *Engine {
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = DefaultConfig().MaxCandidates
	}
	if config.MinSimilarity <= 0 {
		config.MinSimilarity = DefaultConfig().MinSimilarity
	}
	if config.MinNarrowWords <= 0 {
		config.MinNarrowWords = DefaultConfig().MinNarrowWords
	}

	return &Engine{
		cache:   cache,
		sources: sources,
		config:  config,
	}
}

// Resolve maps a raw fund name to a ticker. The only hard error is
// common.ErrInvalidQuery; source outages degrade the result instead of
// failing it.
func (e *Engine) Resolve(ctx context.Context, rawQuery string) (model.Resolution, error) {
	query := model.NewQuery(rawQuery)
	if query.IsEmpty() {
		return model.Resolution{}, common.ErrInvalidQuery
	}

	// Cache hit short-circuits everything: no network call is made.
	if ticker, ok := e.cache.Get(query.Normalized); ok {
		slog.Debug("Identity cache hit", "query", query.Normalized, "ticker", ticker)
		return model.Resolution{State: model.StateResolved, Ticker: ticker}, nil
	}

	candidates, degraded := e.gather(ctx, query)

	pool := e.scorePool(query.Normalized, candidates)

	switch len(pool) {
	case 0:
		slog.Info("No candidates matched", "query", query.Normalized, "degraded", degraded)
		return model.Resolution{State: model.StateNotFound, Degraded: degraded}, nil
	case 1:
		winner := pool[0]
		if err := e.cache.Put(query.Normalized, winner.Ticker); err != nil {
			return model.Resolution{}, fmt.Errorf("failed to cache resolution: %w", err)
		}
		slog.Info("Resolved fund",
			"query", query.Normalized,
			"ticker", winner.Ticker,
			"source", winner.SourceID)
		return model.Resolution{State: model.StateResolved, Ticker: winner.Ticker, Degraded: degraded}, nil
	default:
		slog.Info("Ambiguous resolution, deferring to caller",
			"query", query.Normalized,
			"candidates", len(pool))
		return model.Resolution{State: model.StateAmbiguous, Candidates: pool, Degraded: degraded}, nil
	}
}

// Commit writes an explicit user choice to the cache, bypassing matching.
// It is the only way an ambiguous result becomes cached.
func (e *Engine) Commit(_ context.Context, normalized, ticker string) error {
	normalized = model.Normalize(normalized)
	if normalized == "" {
		return common.ErrInvalidQuery
	}
	if ticker == "" {
		return fmt.Errorf("ticker is empty")
	}

	if err := e.cache.Put(normalized, ticker); err != nil {
		return fmt.Errorf("failed to commit resolution: %w", err)
	}

	slog.Info("Committed user selection", "query", normalized, "ticker", ticker)
	return nil
}

// gather queries the sources in priority order, narrowing the query word by
// word when every source comes up empty. Catalogs index short canonical
// names while users type plan/option suffixes, so dropping trailing words
// is what makes "Quant Mid Cap Fund Direct Growth" find "Quant Mid Cap
// Fund". Sources are never called in parallel: narrowing is conditional on
// the previous form's outcome.
func (e *Engine) gather(ctx context.Context, query model.Query) ([]model.Candidate, bool) {
	degraded := false

	// Catalogs may be case-sensitive in their own search, so the first form
	// keeps the user's casing; narrowed forms derive from the normalized
	// text.
	words := query.Words()
	forms := []string{strings.Join(strings.Fields(query.Raw), " ")}
	for n := len(words) - 1; n >= e.config.MinNarrowWords; n-- {
		forms = append(forms, strings.Join(words[:n], " "))
	}

	for _, form := range forms {
		for _, source := range e.sources {
			if ctx.Err() != nil {
				return nil, degraded
			}

			candidates, err := source.Search(ctx, form)
			if err != nil {
				degraded = true
				slog.Warn("Catalog source unavailable",
					"source", source.ID(),
					"query", form,
					"error", err)
				continue
			}
			if len(candidates) > 0 {
				if form != forms[0] {
					slog.Debug("Narrowed query matched",
						"source", source.ID(),
						"original", query.Normalized,
						"narrowed", form)
				}
				return candidates, degraded
			}
		}
	}

	return nil, degraded
}

// scorePool blends substring containment and fuzzy similarity into one
// ordered pool. Substring containment scores a flat 1.0 and a fuzzy ratio
// is strictly below 1.0 for non-identical names, so exact-style matches
// always rank ahead. The sort is stable, keeping first-occurrence order on
// ties.
func (e *Engine) scorePool(normalized string, candidates []model.Candidate) []model.Candidate {
	type scored struct {
		candidate model.Candidate
		score     float64
	}

	seen := make(map[string]bool, len(candidates))
	pool := make([]scored, 0, len(candidates))

	for _, candidate := range candidates {
		key := candidate.DisplayName + "\x00" + candidate.Ticker
		if seen[key] {
			continue
		}
		seen[key] = true

		name := strings.ToLower(candidate.DisplayName)
		var score float64
		if strings.Contains(name, normalized) {
			score = 1.0
		} else {
			score = match.Ratio(normalized, name)
		}

		if score < e.config.MinSimilarity {
			continue
		}
		pool = append(pool, scored{candidate: candidate, score: score})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})

	if len(pool) > e.config.MaxCandidates {
		pool = pool[:e.config.MaxCandidates]
	}

	result := make([]model.Candidate, len(pool))
	for i, s := range pool {
		result[i] = s.candidate
	}
	return result
}
