// Package listing composes the filter predicate builder and the view
// projector into the pure filter-and-count operation used by every
// directory view.
package listing

import (
	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/listing/view"
	"github.com/kailas-cloud/helix/internal/domain/record"
)

// FilterAndCount filters records by the state over the given search and
// facet fields, preserving source order.
func FilterAndCount(records []record.Record, st filter.State, searchFields, facetFields []string) view.Result {
	return view.Project(records, filter.Build(st, searchFields, facetFields), nil)
}

// Apply filters records with the fields declared by the schema and orders
// the result by sort. A zero sort falls back to the schema default; a
// schema without a default keeps source order.
func Apply(records []record.Record, s schema.Schema, st filter.State, sort order.Spec) view.Result {
	if sort.IsZero() {
		if name, desc := s.DefaultSort(); name != "" {
			sort = defaultSpec(name, desc)
		}
	}
	pred := filter.Build(st, s.SearchFields(), s.FacetFields())
	return view.Project(records, pred, sort.Comparator())
}

func defaultSpec(name string, desc bool) order.Spec {
	dir := order.Asc
	if desc {
		dir = order.Desc
	}
	spec, err := order.NewSpec(name, dir)
	if err != nil {
		return order.Spec{}
	}
	return spec
}
