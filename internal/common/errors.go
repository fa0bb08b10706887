// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrInvalidQuery means the input was empty after normalization. It is
	// the only resolution failure surfaced to callers as a hard error.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrSourceUnavailable wraps transport or parse failures from a catalog.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrCacheCorrupt marks an unreadable identity cache file. It is logged
	// and recovered from, never fatal.
	ErrCacheCorrupt = errors.New("identity cache corrupt")

	// ErrNotFound indicates a missing record in durable storage.
	ErrNotFound = errors.New("not found")

	// ErrMasterListEmpty means the scheme store has never been built.
	ErrMasterListEmpty = errors.New("master list empty")

	// ErrNoHistory means the quote service returned no NAV points.
	ErrNoHistory = errors.New("no NAV history")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
