package order

import (
	"cmp"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Direction is the sort direction.
type Direction string

// Direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool { return d == Asc || d == Desc }

// Comparator orders two records like cmp.Compare.
type Comparator func(a, b record.Record) int

// Spec names the field and direction a view is ordered by.
type Spec struct {
	field string
	dir   Direction
}

// NewSpec validates and creates a sort Spec. Empty direction defaults to ascending.
func NewSpec(field string, dir Direction) (Spec, error) {
	if field == "" {
		return Spec{}, fmt.Errorf("sort field is required")
	}
	if dir == "" {
		dir = Asc
	}
	if !dir.IsValid() {
		return Spec{}, fmt.Errorf("invalid sort direction: %q", dir)
	}
	return Spec{field: field, dir: dir}, nil
}

// Field returns the sort field.
func (s Spec) Field() string { return s.field }

// Direction returns the sort direction.
func (s Spec) Direction() Direction { return s.dir }

// IsZero reports whether no sort was requested.
func (s Spec) IsZero() bool { return s.field == "" }

// Comparator builds the comparator for the spec, or nil for the zero Spec.
func (s Spec) Comparator() Comparator {
	if s.IsZero() {
		return nil
	}
	return By(s.field, s.dir == Desc)
}

// By orders records by one field. Numbers compare numerically, strings by
// English collation ignoring case, lists by their first element. Records
// missing the field sort last in either direction.
//
// The returned comparator holds a collator and is not safe for concurrent use.
func By(field string, desc bool) Comparator {
	col := collate.New(language.English, collate.IgnoreCase)
	return func(a, b record.Record) int {
		va, okA := a.Get(field)
		vb, okB := b.Get(field)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := compareValues(col, va, vb)
		if desc {
			return -c
		}
		return c
	}
}

func compareValues(col *collate.Collator, a, b record.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case record.KindNumber:
		return cmp.Compare(a.Num(), b.Num())
	case record.KindString:
		return col.CompareString(a.Str(), b.Str())
	case record.KindList:
		return col.CompareString(first(a.Items()), first(b.Items()))
	default:
		return 0
	}
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
