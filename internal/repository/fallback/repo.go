// Package fallback keeps the last good snapshot of every listing and serves
// it when the upstream record store fails.
package fallback

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/metrics"
)

// upstream is the consumer interface of the wrapped record store.
type upstream interface {
	List(ctx context.Context, kind string) ([]record.Record, error)
}

// writer is implemented by upstreams that accept imports.
type writer interface {
	Replace(ctx context.Context, kind string, records []record.Record) error
}

// Repo decorates a record store with stale-on-error reads.
type Repo struct {
	inner  upstream
	logger *zap.Logger

	mu        sync.RWMutex
	snapshots map[string][]record.Record
}

// New wraps inner.
func New(inner upstream, logger *zap.Logger) *Repo {
	return &Repo{inner: inner, logger: logger, snapshots: make(map[string][]record.Record)}
}

// List returns fresh records and remembers them. On upstream failure it
// returns the last good snapshot (or an empty listing) with a *domain.FetchError.
func (r *Repo) List(ctx context.Context, kind string) ([]record.Record, error) {
	records, err := r.inner.List(ctx, kind)
	if err == nil {
		r.remember(kind, records)
		return records, nil
	}

	metrics.ListingFetchFailuresTotal.WithLabelValues(kind).Inc()

	r.mu.RLock()
	snap, ok := r.snapshots[kind]
	r.mu.RUnlock()

	if ok {
		metrics.ListingStaleServedTotal.WithLabelValues(kind).Inc()
		r.logger.Warn("Upstream fetch failed, serving stale snapshot",
			zap.String("kind", kind),
			zap.Int("count", len(snap)),
			zap.Error(err),
		)
		return slices.Clone(snap), domain.NewFetchError(kind, true, err)
	}

	r.logger.Warn("Upstream fetch failed, no snapshot to serve",
		zap.String("kind", kind),
		zap.Error(err),
	)
	return []record.Record{}, domain.NewFetchError(kind, false, err)
}

// Replace forwards to a writable upstream and refreshes the snapshot.
func (r *Repo) Replace(ctx context.Context, kind string, records []record.Record) error {
	w, ok := r.inner.(writer)
	if !ok {
		return domain.ErrReadOnlyStore
	}
	if err := w.Replace(ctx, kind, records); err != nil {
		return err //nolint:wrapcheck // decorator passes upstream errors through
	}
	r.remember(kind, records)
	return nil
}

func (r *Repo) remember(kind string, records []record.Record) {
	r.mu.Lock()
	r.snapshots[kind] = slices.Clone(records)
	r.mu.Unlock()
}
