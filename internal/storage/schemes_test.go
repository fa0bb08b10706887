package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/model"
)

func newTestSchemeStore(t *testing.T) *SchemeStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "masterlist.db")

	store, err := NewSchemeStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testSchemes() []model.Scheme {
	return []model.Scheme{
		{Code: "120465", Name: "Axis Bluechip Fund - Direct Plan - Growth", FundHouse: "Axis Mutual Fund"},
		{Code: "120505", Name: "Axis Midcap Fund - Direct Plan - Growth", FundHouse: "Axis Mutual Fund"},
		{Code: "118527", Name: "Quant Mid Cap Fund - Direct Plan - Growth", FundHouse: "Quant Mutual Fund"},
	}
}

func TestSchemeStore_SaveAndSearch(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, testSchemes()))

	count, err := store.CountSchemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	schemes, err := store.SearchSchemes(ctx, "axis", 10)
	require.NoError(t, err)
	require.Len(t, schemes, 2)
	assert.Equal(t, "120465", schemes[0].Code, "results ordered by name")
	assert.Equal(t, "Axis Mutual Fund", schemes[0].FundHouse)
}

func TestSchemeStore_SearchCaseInsensitive(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, testSchemes()))

	schemes, err := store.SearchSchemes(ctx, "QUANT MID", 10)
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	assert.Equal(t, "118527", schemes[0].Code)
}

func TestSchemeStore_SearchLimit(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, testSchemes()))

	schemes, err := store.SearchSchemes(ctx, "fund", 1)
	require.NoError(t, err)
	assert.Len(t, schemes, 1)
}

func TestSchemeStore_UpsertOverwrites(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, testSchemes()))
	require.NoError(t, store.SaveSchemes(ctx, []model.Scheme{
		{Code: "120465", Name: "Axis Bluechip Fund - Renamed", FundHouse: "Axis Mutual Fund"},
	}))

	count, err := store.CountSchemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "upsert must not duplicate")

	schemes, err := store.SearchSchemes(ctx, "renamed", 10)
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	assert.Equal(t, "120465", schemes[0].Code)
}

func TestSchemeStore_SaveSkipsInvalidRows(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, []model.Scheme{
		{Code: "", Name: "No code"},
		{Code: "1", Name: ""},
		{Code: "2", Name: "Valid Fund"},
	}))

	count, err := store.CountSchemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSchemeStore_AllSchemeNames(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSchemes(ctx, testSchemes()))

	names, err := store.AllSchemeNames(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 3)
	assert.Equal(t, "118527", names["Quant Mid Cap Fund - Direct Plan - Growth"])
}

func TestSchemeStore_LastBuild(t *testing.T) {
	store := newTestSchemeStore(t)
	ctx := context.Background()

	_, err := store.LastBuild(ctx)
	assert.True(t, errors.Is(err, common.ErrMasterListEmpty))

	require.NoError(t, store.RecordBuild(ctx, 42))

	info, err := store.LastBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, info.SchemeCount)
	assert.False(t, info.BuiltAt.IsZero())
}

func TestSchemeStore_MigrateIsIdempotent(t *testing.T) {
	store := newTestSchemeStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}
