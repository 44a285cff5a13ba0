package helix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	listinguc "github.com/kailas-cloud/helix/internal/usecase/listing"
)

// bound is a pending numeric range on one field.
type bound struct {
	field string
	gte   *float64
	lte   *float64
}

// QueryBuilder is a fluent builder for listing queries.
type QueryBuilder struct {
	client *Client
	kind   string

	query  string
	facets map[string]string
	bounds []bound
	sort   string
	desc   bool
}

// Search sets the free-text query. A record matches when the lowercased
// query, taken whole and including any spaces, is a substring of one of the
// listing's lowercased search fields. An empty query matches every record.
func (b *QueryBuilder) Search(q string) *QueryBuilder {
	b.query = q
	return b
}

// Where selects a facet value (exact match). "all" clears the selection.
func (b *QueryBuilder) Where(field, value string) *QueryBuilder {
	if b.facets == nil {
		b.facets = make(map[string]string)
	}
	b.facets[field] = value
	return b
}

// AtLeast keeps records whose numeric field is >= n.
func (b *QueryBuilder) AtLeast(field string, n float64) *QueryBuilder {
	b.bound(field).gte = &n
	return b
}

// AtMost keeps records whose numeric field is <= n.
func (b *QueryBuilder) AtMost(field string, n float64) *QueryBuilder {
	b.bound(field).lte = &n
	return b
}

// Between keeps records whose numeric field lies in [lo, hi].
func (b *QueryBuilder) Between(field string, lo, hi float64) *QueryBuilder {
	return b.AtLeast(field, lo).AtMost(field, hi)
}

// SortBy orders the result by a sortable field, ascending unless Desc is set.
// Without SortBy the listing's default order applies.
func (b *QueryBuilder) SortBy(field string) *QueryBuilder {
	b.sort = field
	return b
}

// Desc reverses the sort direction.
func (b *QueryBuilder) Desc() *QueryBuilder {
	b.desc = true
	return b
}

func (b *QueryBuilder) bound(field string) *bound {
	for i := range b.bounds {
		if b.bounds[i].field == field {
			return &b.bounds[i]
		}
	}
	b.bounds = append(b.bounds, bound{field: field})
	return &b.bounds[len(b.bounds)-1]
}

// Do executes the query. When the store is unavailable and a snapshot was
// served instead, the page is returned with Degraded set and a nil error.
func (b *QueryBuilder) Do(ctx context.Context) (_ Page, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("query", b.kind, start, err) }()

	q, err := b.build()
	if err != nil {
		return Page{}, fmt.Errorf("query %s: %w: %w", b.kind, ErrInvalidFilter, err)
	}

	page, err := b.client.listings.Query(ctx, b.kind, q)
	if err != nil {
		return Page{}, fmt.Errorf("query %s: %w", b.kind, err)
	}

	if page.Degraded {
		b.client.obs.degradedPage(b.kind)
	}
	res := page.Result
	return Page{
		Items:    itemsFromRecords(res.Items()),
		Matched:  res.MatchedCount(),
		Total:    res.TotalCount(),
		Summary:  res.Summary(),
		Degraded: page.Degraded,
	}, nil
}

func (b *QueryBuilder) build() (listinguc.Query, error) {
	ranges := make([]filter.Condition, 0, len(b.bounds))
	for _, bd := range b.bounds {
		rng, err := filter.NewRangeFilter(nil, bd.gte, nil, bd.lte)
		if err != nil {
			return listinguc.Query{}, fmt.Errorf("range %s: %w", bd.field, err)
		}
		cond, err := filter.NewRange(bd.field, rng)
		if err != nil {
			return listinguc.Query{}, err
		}
		ranges = append(ranges, cond)
	}

	st, err := filter.NewState(b.query, b.facets, ranges)
	if err != nil {
		return listinguc.Query{}, err
	}

	q := listinguc.Query{Filter: st}
	switch {
	case b.sort != "":
		dir := order.Asc
		if b.desc {
			dir = order.Desc
		}
		spec, err := order.NewSpec(b.sort, dir)
		if err != nil {
			return listinguc.Query{}, err
		}
		q.Sort = spec
	case b.desc:
		return listinguc.Query{}, errors.New("descending order set without SortBy")
	}
	return q, nil
}
