package view

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kailas-cloud/helix/internal/domain/listing/filter"
	"github.com/kailas-cloud/helix/internal/domain/listing/order"
	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Result is the derived, filtered (and possibly sorted) view of a listing.
type Result struct {
	items   []record.Record
	matched int
	total   int
}

// Project applies the predicate to records in order and, when cmp is
// non-nil, stably sorts the survivors. The input slice is not modified.
func Project(records []record.Record, pred filter.Predicate, cmp order.Comparator) Result {
	if pred == nil {
		pred = filter.MatchAll
	}

	items := make([]record.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			items = append(items, r)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(items, cmp)
	}

	return Result{items: items, matched: len(items), total: len(records)}
}

// Items returns the matching records in view order.
func (r Result) Items() []record.Record { return slices.Clone(r.items) }

// MatchedCount returns the number of records in the view.
func (r Result) MatchedCount() int { return r.matched }

// TotalCount returns the number of records in the listing.
func (r Result) TotalCount() int { return r.total }

// IsEmpty reports whether nothing matched.
func (r Result) IsEmpty() bool { return r.matched == 0 }

// Summary renders the count pair as "{matched} of {total}" with English digit grouping.
func (r Result) Summary() string {
	return SummaryIn(language.English, r.matched, r.total)
}

// SummaryIn renders the count pair with the number formatting of the given language.
func SummaryIn(tag language.Tag, matched, total int) string {
	return message.NewPrinter(tag).Sprintf("%d of %d", matched, total)
}
