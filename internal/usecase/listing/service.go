package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/helix/internal/domain"
	domlist "github.com/kailas-cloud/helix/internal/domain/listing"
	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/listing/view"
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/domain/record/field"
	"github.com/kailas-cloud/helix/internal/logger"
	"github.com/kailas-cloud/helix/internal/metrics"
)

// Query is a filter state plus an optional sort. A zero Sort uses the schema default.
type Query struct {
	Filter filter.State
	Sort   order.Spec
}

// Page is the result of one listing query.
type Page struct {
	Kind   string
	Result view.Result
	// Degraded is set when the store could not supply fresh records and
	// the result was computed over a stale or empty snapshot.
	Degraded bool
}

// Summary is the size of one listing.
type Summary struct {
	Schema   schema.Schema
	Total    int
	Degraded bool
}

// Service runs filter-and-count queries over the registered listings.
type Service struct {
	repo    Repository
	catalog Catalog
}

// New creates a listing service.
func New(repo Repository, cat Catalog) *Service {
	return &Service{repo: repo, catalog: cat}
}

// Kinds returns the registered schemas in catalog order.
func (s *Service) Kinds() []schema.Schema {
	return s.catalog.Schemas()
}

// Query fetches a listing and applies the filter state and sort to it.
func (s *Service) Query(ctx context.Context, kind string, q Query) (Page, error) {
	start := time.Now()
	ctx = logger.With(ctx, zap.String("kind", kind))

	sch, err := s.schema(kind)
	if err != nil {
		return Page{}, err
	}
	if err := validateQuery(sch, q); err != nil {
		return Page{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
	}

	records, degraded, err := s.fetch(ctx, kind)
	if err != nil {
		return Page{}, err
	}

	res := domlist.Apply(records, sch, q.Filter, q.Sort)
	metrics.ListingQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	return Page{Kind: kind, Result: res, Degraded: degraded}, nil
}

// Overview returns the total record count of every listing, fetched concurrently.
func (s *Service) Overview(ctx context.Context) ([]Summary, error) {
	schemas := s.catalog.Schemas()
	out := make([]Summary, len(schemas))

	g, gctx := errgroup.WithContext(ctx)
	for i, sch := range schemas {
		g.Go(func() error {
			records, degraded, err := s.fetch(logger.With(gctx, zap.String("kind", sch.Kind())), sch.Kind())
			if err != nil {
				return err
			}
			out[i] = Summary{Schema: sch, Total: len(records), Degraded: degraded}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	return out, nil
}

// CheckFresh returns an error naming the listings currently served degraded.
func (s *Service) CheckFresh(ctx context.Context) error {
	sums, err := s.Overview(ctx)
	if err != nil {
		return err
	}
	var stale []string
	for _, sum := range sums {
		if sum.Degraded {
			stale = append(stale, sum.Schema.Kind())
		}
	}
	if len(stale) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrFetchFailed, strings.Join(stale, ", "))
	}
	return nil
}

// Import checks records against the listing schema and replaces the stored listing.
// Records without an id get a stable derived one.
func (s *Service) Import(ctx context.Context, kind string, records []record.Record) error {
	ctx = logger.With(ctx, zap.String("kind", kind))
	sch, err := s.schema(kind)
	if err != nil {
		return err
	}
	w, ok := s.repo.(Writer)
	if !ok {
		return domain.ErrReadOnlyStore
	}
	if err := sch.ConformAll(records); err != nil {
		return err
	}

	withIDs := make([]record.Record, len(records))
	for i, r := range records {
		withIDs[i] = record.EnsureID(kind, r)
	}

	if err := w.Replace(ctx, kind, withIDs); err != nil {
		return fmt.Errorf("replace %s: %w", kind, err)
	}
	logger.FromContext(ctx).Info("Listing imported", zap.Int("count", len(withIDs)))
	return nil
}

func (s *Service) schema(kind string) (schema.Schema, error) {
	sch, ok := s.catalog.Lookup(kind)
	if !ok {
		return schema.Schema{}, fmt.Errorf("%w: %q", domain.ErrListingNotFound, kind)
	}
	return sch, nil
}

// fetch lists a kind. Records supplied alongside a FetchError are served
// degraded; any other error is returned.
func (s *Service) fetch(ctx context.Context, kind string) ([]record.Record, bool, error) {
	records, err := s.repo.List(ctx, kind)
	if err == nil {
		return records, false, nil
	}

	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return nil, false, fmt.Errorf("list %s: %w", kind, err)
	}
	logger.FromContext(ctx).Warn("Serving degraded listing",
		zap.Bool("stale", fe.Stale),
		zap.Int("count", len(records)),
		zap.Error(fe.Err),
	)
	return records, true, nil
}

func validateQuery(sch schema.Schema, q Query) error {
	for _, c := range q.Filter.Ranges() {
		f, ok := sch.FieldByName(c.Key())
		if !ok {
			return fmt.Errorf("unknown range field %q", c.Key())
		}
		if f.FieldType() != field.Numeric {
			return fmt.Errorf("range field %q is %s, want numeric", c.Key(), f.FieldType())
		}
	}
	if !q.Sort.IsZero() && !sch.IsSortable(q.Sort.Field()) {
		return fmt.Errorf("field %q is not sortable", q.Sort.Field())
	}
	return nil
}
