package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

// SaveSchemes upserts a batch of registry schemes in one transaction.
func (s *SchemeStore) SaveSchemes(ctx context.Context, schemes []model.Scheme) error {
	if len(schemes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO schemes (code, name, fund_house, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			fund_house = excluded.fund_house,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, scheme := range schemes {
		if scheme.Code == "" || scheme.Name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, scheme.Code, scheme.Name, scheme.FundHouse, now); err != nil {
			return fmt.Errorf("failed to save scheme %s: %w", scheme.Code, err)
		}
	}

	return tx.Commit()
}

// SearchSchemes returns schemes whose name contains the query,
// case-insensitively, in name order.
func (s *SchemeStore) SearchSchemes(ctx context.Context, query string, limit int) ([]model.Scheme, error) {
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, COALESCE(fund_house, '')
		FROM schemes
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var schemes []model.Scheme
	for rows.Next() {
		var scheme model.Scheme
		if err := rows.Scan(&scheme.Code, &scheme.Name, &scheme.FundHouse); err != nil {
			return nil, fmt.Errorf("failed to scan scheme: %w", err)
		}
		schemes = append(schemes, scheme)
	}

	return schemes, rows.Err()
}

// AllSchemeNames returns every scheme name keyed back to its code. The
// master list is tens of thousands of rows at most, which is fine to hold
// in memory for a fuzzy pass.
func (s *SchemeStore) AllSchemeNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, code FROM schemes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheme names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make(map[string]string)
	for rows.Next() {
		var name, code string
		if err := rows.Scan(&name, &code); err != nil {
			return nil, fmt.Errorf("failed to scan scheme name: %w", err)
		}
		names[name] = code
	}

	return names, rows.Err()
}

// CountSchemes returns the number of schemes in the master list.
func (s *SchemeStore) CountSchemes(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schemes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count schemes: %w", err)
	}
	return count, nil
}

// RecordBuild notes a completed master-list build.
func (s *SchemeStore) RecordBuild(ctx context.Context, schemeCount int) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (scheme_count) VALUES (?)
	`, schemeCount); err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}
	return nil
}

// BuildInfo describes the most recent master-list build.
type BuildInfo struct {
	BuiltAt     time.Time
	SchemeCount int
}

// LastBuild returns the most recent build, or common.ErrMasterListEmpty if
// the list has never been built.
func (s *SchemeStore) LastBuild(ctx context.Context) (*BuildInfo, error) {
	var info BuildInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT scheme_count, built_at
		FROM builds
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&info.SchemeCount, &info.BuiltAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrMasterListEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last build: %w", err)
	}

	return &info, nil
}
