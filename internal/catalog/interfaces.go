// Package catalog provides candidate source adapters over external fund
// catalogs: a market-wide search API and the locally built master list.
package catalog

import (
	"context"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// Source is one catalog queried by text search. A nil error with an empty
// slice means the catalog genuinely had no match; a non-nil error means the
// source was unavailable. The engine treats the two differently (outage is
// logged and marks the resolution degraded), so adapters must not collapse
// failures into empty results themselves.
type Source interface {
	// ID identifies the catalog for candidate attribution and logging.
	ID() string

	// Search returns candidates for a non-empty free-text query. The
	// original-case query is passed through to the catalog, which may be
	// case-sensitive in its own search.
	Search(ctx context.Context, query string) ([]model.Candidate, error)
}
