package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/config"
	dbRedis "github.com/kailas-cloud/helix/internal/db/redis"
	"github.com/kailas-cloud/helix/internal/domain/catalog"
	"github.com/kailas-cloud/helix/internal/repository/fallback"
	recordrepo "github.com/kailas-cloud/helix/internal/repository/record"
	"github.com/kailas-cloud/helix/internal/repository/static"
	healthuc "github.com/kailas-cloud/helix/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

// backend is the record source selected by store.driver.
type backend struct {
	repo listinguc.Repository

	// Set for valkey/redis.
	store   *dbRedis.Store
	records *recordrepo.Repo

	// Set for static.
	seed *static.Repo
}

// openBackend connects the configured record store. Remote stores are
// wrapped with the stale-snapshot fallback unless serve_stale is off.
func openBackend(ctx context.Context, cfg config.StoreConfig, cat *catalog.Registry, logger *zap.Logger) (*backend, error) {
	if !cfg.IsRemote() {
		seed, err := static.Load(cfg.SeedPath, cat, logger)
		if err != nil {
			return nil, fmt.Errorf("load seed %s: %w", cfg.SeedPath, err)
		}
		logger.Info("Loaded seed file", zap.String("path", cfg.SeedPath))
		return &backend{repo: seed, seed: seed}, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to record store",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)

	records := recordrepo.New(store, cfg.KeyPrefix)
	b := &backend{repo: records, store: store, records: records}
	if cfg.StaleAllowed() {
		b.repo = fallback.New(records, logger)
	}
	return b, nil
}

// pinger returns the store for health checks, or an untyped nil for the seed file.
func (b *backend) pinger() healthuc.StorePinger {
	if b.store == nil {
		return nil
	}
	return b.store
}

func (b *backend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}
