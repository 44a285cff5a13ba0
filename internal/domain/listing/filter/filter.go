package filter

import (
	"fmt"
	"maps"
	"slices"
)

// Filter limits.
const (
	// MaxQueryLength is the maximum free-text query length in bytes.
	MaxQueryLength = 1024
	// MaxRangeConditions is the maximum number of numeric range conditions.
	MaxRangeConditions = 32
)

// AllValues is the facet selection that disables a facet.
const AllValues = "all"

// State is the current free-text query and facet selections of a listing view.
type State struct {
	query  string
	facets map[string]string
	ranges []Condition
}

// NewState validates and creates a filter State. The facet map is copied.
func NewState(query string, facets map[string]string, ranges []Condition) (State, error) {
	if len(query) > MaxQueryLength {
		return State{}, fmt.Errorf("query too long (max %d bytes)", MaxQueryLength)
	}
	if len(ranges) > MaxRangeConditions {
		return State{}, fmt.Errorf("too many range conditions (max %d)", MaxRangeConditions)
	}
	return State{query: query, facets: maps.Clone(facets), ranges: slices.Clone(ranges)}, nil
}

// Query returns the raw free-text query.
func (s State) Query() string { return s.query }

// Facets returns a copy of the facet selections, including "all" entries.
func (s State) Facets() map[string]string { return maps.Clone(s.facets) }

// Ranges returns the numeric range conditions.
func (s State) Ranges() []Condition { return slices.Clone(s.ranges) }

// Selection returns the active selection for a facet. "all" and empty selections are inactive.
func (s State) Selection(name string) (string, bool) {
	v, ok := s.facets[name]
	if !ok || v == "" || v == AllValues {
		return "", false
	}
	return v, true
}

// IsEmpty reports whether the state narrows nothing.
func (s State) IsEmpty() bool {
	if s.query != "" || len(s.ranges) > 0 {
		return false
	}
	for name := range s.facets {
		if _, ok := s.Selection(name); ok {
			return false
		}
	}
	return true
}

// Condition is a numeric range clause on a single field.
type Condition struct {
	key       string
	rangeExpr Range
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: r}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Range returns the numeric range expression.
func (c Condition) Range() Range { return c.rangeExpr }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether x satisfies every boundary.
func (r Range) Contains(x float64) bool {
	if r.gt != nil && x <= *r.gt {
		return false
	}
	if r.gte != nil && x < *r.gte {
		return false
	}
	if r.lt != nil && x >= *r.lt {
		return false
	}
	if r.lte != nil && x > *r.lte {
		return false
	}
	return true
}
