// Package model defines the core types shared across the resolution pipeline.
package model

import "strings"

// Query is a user-entered fund name in both its raw and normalized forms.
// Normalized is the sole cache and matching key: two queries with the same
// normalized form must resolve identically.
type Query struct {
	Raw        string
	Normalized string
}

// NewQuery builds a Query from raw user input.
func NewQuery(raw string) Query {
	return Query{
		Raw:        raw,
		Normalized: Normalize(raw),
	}
}

// IsEmpty reports whether the query normalized to nothing.
func (q Query) IsEmpty() bool {
	return q.Normalized == ""
}

// Words returns the whitespace-separated tokens of the normalized query.
func (q Query) Words() []string {
	return strings.Fields(q.Normalized)
}

// Normalize trims, lower-cases and collapses internal whitespace so that
// cosmetic differences in user input map to one stable key.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
