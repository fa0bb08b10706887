package catalog

import (
	"context"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// MockSource is a mock implementation of Source for testing.
type MockSource struct {
	// SearchFn can be set by tests to control behavior.
	SearchFn func(ctx context.Context, query string) ([]model.Candidate, error)

	// SearchCalls records every query passed to Search.
	SearchCalls []string

	// SourceID is returned by ID; defaults to "mock".
	SourceID string
}

// NewMockSource creates a new mock catalog source.
func NewMockSource() *MockSource {
	return &MockSource{
		SearchCalls: []string{},
		SourceID:    "mock",
	}
}

// ID implements Source.ID.
func (m *MockSource) ID() string {
	return m.SourceID
}

// Search implements Source.Search.
func (m *MockSource) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	m.SearchCalls = append(m.SearchCalls, query)

	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}

	// Default behavior: no matches
	return []model.Candidate{}, nil
}
