// Package storage implements the durable stores backing resolution: the
// write-through identity cache and the SQLite master-list scheme store.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// IdentityStore is the durable mapping from normalized fund name to ticker.
// It is owned exclusively by the resolution engine.
type IdentityStore interface {
	Get(normalized string) (string, bool)
	Put(normalized, ticker string) error
}

// FileIdentityStore persists the mapping as a flat JSON object. Every Put
// rewrites the whole file; the mapping is bounded by the distinct funds a
// user has resolved, so simplicity wins over write amplification.
type FileIdentityStore struct {
	path    string
	entries map[string]string
	mu      sync.Mutex
}

// NewFileIdentityStore loads the mapping at path. A missing or unparsable
// file yields an empty store; corruption is logged, never fatal.
func NewFileIdentityStore(path string) (*FileIdentityStore, error) {
	if path == "" {
		return nil, fmt.Errorf("identity store path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	store := &FileIdentityStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read identity cache, starting empty", "path", path, "error", err)
		}
		return store, nil
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		slog.Warn("Identity cache corrupt, starting empty", "path", path, "error", err)
		store.entries = make(map[string]string)
	}

	return store, nil
}

// Get returns the cached ticker for a normalized name.
func (s *FileIdentityStore) Get(normalized string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker, ok := s.entries[normalized]
	return ticker, ok
}

// Put records a mapping and flushes the full store to disk before returning.
// Overwrites are idempotent. The mutex serializes concurrent commits so the
// read-modify-write of the whole mapping cannot interleave.
func (s *FileIdentityStore) Put(normalized, ticker string) error {
	if normalized == "" {
		return fmt.Errorf("normalized name is empty")
	}
	if ticker == "" {
		return fmt.Errorf("ticker is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[normalized] = ticker
	return s.flushLocked()
}

// Delete removes a mapping and flushes. Unknown names are a no-op.
func (s *FileIdentityStore) Delete(normalized string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[normalized]; !ok {
		return nil
	}
	delete(s.entries, normalized)
	return s.flushLocked()
}

// Clear drops every mapping and flushes the empty store.
func (s *FileIdentityStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]string)
	return s.flushLocked()
}

// Entry is one cached resolution, exposed for listing.
type Entry struct {
	Name   string
	Ticker string
}

// All returns every cached mapping sorted by name.
func (s *FileIdentityStore) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.entries))
	for name, ticker := range s.entries {
		entries = append(entries, Entry{Name: name, Ticker: ticker})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// flushLocked writes the mapping atomically: temp file then rename, so a
// crash mid-write never leaves a truncated cache behind.
func (s *FileIdentityStore) flushLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode identity cache: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write identity cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace identity cache: %w", err)
	}

	return nil
}

// MemoryIdentityStore is an in-memory IdentityStore for tests.
type MemoryIdentityStore struct {
	entries map[string]string
	mu      sync.Mutex
}

// NewMemoryIdentityStore creates an empty in-memory store.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{entries: make(map[string]string)}
}

// Get returns the cached ticker for a normalized name.
func (s *MemoryIdentityStore) Get(normalized string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticker, ok := s.entries[normalized]
	return ticker, ok
}

// Put records a mapping.
func (s *MemoryIdentityStore) Put(normalized, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[normalized] = ticker
	return nil
}
