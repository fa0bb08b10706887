package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/catalog"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/config"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/resolver"
	"github.com/bhagyam007/mutual-fund-dashboard/internal/storage"
)

func dataDir() string {
	dir := viper.GetString("storage.data_dir")
	if dir == "" {
		return config.DefaultDataDir()
	}
	return config.ExpandPath(dir)
}

func catalogTimeout() time.Duration {
	timeout := viper.GetDuration("catalog.timeout")
	if timeout <= 0 {
		return catalog.DefaultTimeout
	}
	return timeout
}

func resolverConfig() resolver.Config {
	cfg := resolver.DefaultConfig()
	if v := viper.GetInt("resolver.max_candidates"); v > 0 {
		cfg.MaxCandidates = v
	}
	if v := viper.GetFloat64("resolver.min_similarity"); v > 0 {
		cfg.MinSimilarity = v
	}
	if v := viper.GetInt("resolver.min_narrow_words"); v > 0 {
		cfg.MinNarrowWords = v
	}
	return cfg
}

func openIdentityStore() (*storage.FileIdentityStore, error) {
	return storage.NewFileIdentityStore(filepath.Join(dataDir(), "identity.json"))
}

func openSchemeStore(ctx context.Context) (*storage.SchemeStore, error) {
	store, err := storage.NewSchemeStore(filepath.Join(dataDir(), "masterlist.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate master list: %w", err)
	}
	return store, nil
}

// buildEngine wires the engine with its sources in priority order: local
// master list first, market lookup second.
func buildEngine(ctx context.Context) (*resolver.Engine, func(), error) {
	cache, err := openIdentityStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open identity cache: %w", err)
	}

	schemes, err := openSchemeStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open master list: %w", err)
	}

	cfg := resolverConfig()
	sources := []catalog.Source{
		catalog.NewMasterListSource(schemes, cfg.MaxCandidates, cfg.MinSimilarity),
		catalog.NewMarketSource("", catalogTimeout()),
	}

	engine := resolver.New(cache, sources, cfg)
	cleanup := func() { _ = schemes.Close() }

	return engine, cleanup, nil
}
