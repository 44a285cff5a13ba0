// Package static serves listings from a YAML seed file held in memory.
package static

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/metrics"
)

// DefaultDebounce is the quiet period after the last file event before a reload.
const DefaultDebounce = 250 * time.Millisecond

// Repo implements usecase/listing.Repository over a seed file snapshot.
type Repo struct {
	path     string
	catalog  Catalog
	logger   *zap.Logger
	debounce time.Duration

	mu       sync.RWMutex
	listings map[string][]record.Record
}

// Load reads the seed file and creates a repository over it.
func Load(path string, cat Catalog, logger *zap.Logger) (*Repo, error) {
	listings, err := ReadSeed(path, cat)
	if err != nil {
		return nil, err
	}
	return &Repo{
		path:     path,
		catalog:  cat,
		logger:   logger,
		debounce: DefaultDebounce,
		listings: listings,
	}, nil
}

// List returns the records of a listing in seed order. Kinds absent from the seed are empty.
func (r *Repo) List(_ context.Context, kind string) ([]record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.listings[kind]), nil
}

// Reload re-reads the seed file. On failure the previous snapshot is kept.
func (r *Repo) Reload() error {
	listings, err := ReadSeed(r.path, r.catalog)
	if err != nil {
		metrics.ListingReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	r.mu.Lock()
	r.listings = listings
	r.mu.Unlock()

	metrics.ListingReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

// Watch reloads the seed file whenever it changes, until ctx is cancelled.
// The parent directory is watched so that editors replacing the file by
// rename are picked up.
func (r *Repo) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", r.path, err)
	}
	r.logger.Info("Watching seed file", zap.String("path", r.path))

	ticker := time.NewTicker(r.debounce / 2)
	defer ticker.Stop()

	target := filepath.Clean(r.path)
	var pending time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.Now()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("Seed watcher error", zap.Error(err))

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < r.debounce {
				continue
			}
			pending = time.Time{}
			if err := r.Reload(); err != nil {
				r.logger.Warn("Seed reload failed, keeping previous snapshot",
					zap.String("path", r.path),
					zap.Error(err),
				)
				continue
			}
			r.logger.Info("Seed reloaded", zap.String("path", r.path))
		}
	}
}
