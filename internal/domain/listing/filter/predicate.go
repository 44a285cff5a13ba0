package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Predicate decides whether a record belongs to the view.
type Predicate func(record.Record) bool

// MatchAll accepts every record.
func MatchAll(record.Record) bool { return true }

type facetSelection struct {
	name  string
	value string
}

// Build derives the predicate for a filter state.
//
// A record matches when the query is empty or its lowercase form is a
// substring of the lowercase form of at least one search field, every active facet listed in
// facetFields equals the record's value, and every range condition holds.
// Facet selections for names outside facetFields are ignored. A record
// without a filtered field fails that condition only.
//
// The query is used as given: surrounding spaces are part of the needle.
// The returned predicate holds a caser and is not safe for concurrent use.
func Build(st State, searchFields, facetFields []string) Predicate {
	var selections []facetSelection
	for _, name := range facetFields {
		if v, ok := st.Selection(name); ok {
			selections = append(selections, facetSelection{name: name, value: v})
		}
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(st.query)
	ranges := st.ranges

	if needle == "" && len(selections) == 0 && len(ranges) == 0 {
		return MatchAll
	}

	return func(r record.Record) bool {
		for _, sel := range selections {
			v, ok := r.Get(sel.name)
			if !ok || !v.Matches(sel.value) {
				return false
			}
		}
		for _, c := range ranges {
			v, ok := r.Get(c.key)
			if !ok || v.Kind() != record.KindNumber || !c.rangeExpr.Contains(v.Num()) {
				return false
			}
		}
		if needle == "" {
			return true
		}
		for _, name := range searchFields {
			v, ok := r.Get(name)
			if !ok {
				continue
			}
			for _, term := range v.Terms() {
				if strings.Contains(lower.String(term), needle) {
					return true
				}
			}
		}
		return false
	}
}
