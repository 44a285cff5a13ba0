package helix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/db"
	dbRedis "github.com/kailas-cloud/helix/internal/db/redis"
	"github.com/kailas-cloud/helix/internal/domain/catalog"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/repository/fallback"
	recordrepo "github.com/kailas-cloud/helix/internal/repository/record"
	"github.com/kailas-cloud/helix/internal/repository/static"
	healthuc "github.com/kailas-cloud/helix/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

const defaultReadinessTimeout = 10 * time.Second

// listingUseCase is swapped out in tests.
type listingUseCase interface {
	Kinds() []schema.Schema
	Overview(ctx context.Context) ([]listinguc.Summary, error)
	Query(ctx context.Context, kind string, q listinguc.Query) (listinguc.Page, error)
	Import(ctx context.Context, kind string, records []record.Record) error
	CheckFresh(ctx context.Context) error
}

// Client is the helix SDK entry point.
type Client struct {
	store     db.Store // nil for seed files
	listings  listingUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client over a seed file or a Valkey/Redis store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.seedPath == "" && len(cfg.addrs) == 0 {
		return nil, errors.New("helix: record source required (use WithSeedFile, WithValkey or WithRedis)")
	}
	if cfg.seedPath != "" && len(cfg.addrs) > 0 {
		return nil, errors.New("helix: WithSeedFile cannot be combined with WithValkey or WithRedis")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if cfg.seedPath != "" {
		seed, err := static.Load(cfg.seedPath, cat, zap.NewNop())
		if err != nil {
			return nil, fmt.Errorf("helix: load seed: %w", err)
		}
		return wireClient(nil, seed, cat, obs), nil
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("helix: %s not ready: %w", cfg.driver, err)
	}

	var repo listinguc.Repository = recordrepo.New(store, cfg.keyPrefix)
	if !cfg.noStale {
		repo = fallback.New(repo, zap.NewNop())
	}
	return wireClient(store, repo, cat, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("helix: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("helix: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, repo listinguc.Repository, cat *catalog.Registry, obs *observer) *Client {
	listingSvc := listinguc.New(repo, cat)

	// Untyped nil keeps the store check out of seed-file health reports.
	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		listings:  listingSvc,
		healthSvc: healthuc.New(pinger, listingSvc),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity. Seed-file clients always succeed.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Kinds describes the built-in listings in display order.
func (c *Client) Kinds() []ListingInfo {
	schemas := c.listings.Kinds()
	out := make([]ListingInfo, len(schemas))
	for i, s := range schemas {
		out[i] = listingFromSchema(s)
	}
	return out
}

// Overview describes every listing with its record count.
func (c *Client) Overview(ctx context.Context) (_ []ListingInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("overview", "", start, err) }()

	sums, err := c.listings.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	out := make([]ListingInfo, len(sums))
	for i, s := range sums {
		info := listingFromSchema(s.Schema)
		info.Total = s.Total
		info.Degraded = s.Degraded
		out[i] = info
	}
	return out, nil
}

// Listing starts a query against one listing kind.
func (c *Client) Listing(kind string) *QueryBuilder {
	return &QueryBuilder{client: c, kind: kind}
}

// Import replaces every record of a listing. Items without an "id" get a
// stable one derived from their fields. Seed-file clients return ErrReadOnlyStore.
func (c *Client) Import(ctx context.Context, kind string, items []Item) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("import", kind, start, err) }()

	records := make([]record.Record, 0, len(items))
	for i, item := range items {
		r, err := record.FromMap(item)
		if err != nil {
			return fmt.Errorf("import %s: items[%d]: %w: %w", kind, i, ErrInvalidRecord, err)
		}
		records = append(records, r)
	}
	if err := c.listings.Import(ctx, kind, records); err != nil {
		return fmt.Errorf("import %s: %w", kind, err)
	}
	return nil
}
