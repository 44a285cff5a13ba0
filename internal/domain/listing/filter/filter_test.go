package filter

import (
	"strings"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

// --- Range tests ---

func TestNewRangeFilter_Valid(t *testing.T) {
	tests := []struct {
		name             string
		gt, gte, lt, lte *float64
	}{
		{"gt only", floatPtr(1), nil, nil, nil},
		{"gte only", nil, floatPtr(0), nil, nil},
		{"lt only", nil, nil, floatPtr(10), nil},
		{"lte only", nil, nil, nil, floatPtr(100)},
		{"gt+lt", floatPtr(0), nil, floatPtr(10), nil},
		{"gte+lte", nil, floatPtr(0), nil, floatPtr(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRangeFilter(tt.gt, tt.gte, tt.lt, tt.lte)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (r.GT() == nil) != (tt.gt == nil) {
				t.Error("GT() mismatch")
			}
			if (r.GTE() == nil) != (tt.gte == nil) {
				t.Error("GTE() mismatch")
			}
			if (r.LT() == nil) != (tt.lt == nil) {
				t.Error("LT() mismatch")
			}
			if (r.LTE() == nil) != (tt.lte == nil) {
				t.Error("LTE() mismatch")
			}
		})
	}
}

func TestNewRangeFilter_NoBoundary(t *testing.T) {
	_, err := NewRangeFilter(nil, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for no boundary")
	}
	if !strings.Contains(err.Error(), "at least one") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRangeFilter_BothGtAndGte(t *testing.T) {
	_, err := NewRangeFilter(floatPtr(1), floatPtr(1), nil, nil)
	if err == nil {
		t.Fatal("expected error for both gt and gte")
	}
	if !strings.Contains(err.Error(), "gt and gte") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRangeFilter_BothLtAndLte(t *testing.T) {
	_, err := NewRangeFilter(nil, nil, floatPtr(1), floatPtr(1))
	if err == nil {
		t.Fatal("expected error for both lt and lte")
	}
	if !strings.Contains(err.Error(), "lt and lte") {
		t.Errorf("error = %q", err)
	}
}

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name             string
		gt, gte, lt, lte *float64
		x                float64
		want             bool
	}{
		{"gt excludes bound", floatPtr(10), nil, nil, nil, 10, false},
		{"gte includes bound", nil, floatPtr(10), nil, nil, 10, true},
		{"lt excludes bound", nil, nil, floatPtr(10), nil, 10, false},
		{"lte includes bound", nil, nil, nil, floatPtr(10), 10, true},
		{"inside", floatPtr(0), nil, floatPtr(100), nil, 50, true},
		{"below", nil, floatPtr(20), nil, floatPtr(30), 19.9, false},
		{"above", nil, floatPtr(20), nil, floatPtr(30), 30.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRangeFilter(tt.gt, tt.gte, tt.lt, tt.lte)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Contains(tt.x); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

// --- Condition tests ---

func TestNewRange_EmptyKey(t *testing.T) {
	r, _ := NewRangeFilter(floatPtr(1), nil, nil, nil)
	_, err := NewRange("", r)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "key is required") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRange_Valid(t *testing.T) {
	r, _ := NewRangeFilter(nil, floatPtr(1000), nil, nil)
	c, err := NewRange("capacity", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Key() != "capacity" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Range().GTE() == nil || *c.Range().GTE() != 1000 {
		t.Error("Range().GTE() mismatch")
	}
}

// --- State tests ---

func TestNewState_QueryTooLong(t *testing.T) {
	_, err := NewState(strings.Repeat("a", MaxQueryLength+1), nil, nil)
	if err == nil {
		t.Fatal("expected error for long query")
	}
}

func TestNewState_TooManyRanges(t *testing.T) {
	r, _ := NewRangeFilter(floatPtr(1), nil, nil, nil)
	c, _ := NewRange("capacity", r)
	ranges := make([]Condition, MaxRangeConditions+1)
	for i := range ranges {
		ranges[i] = c
	}
	if _, err := NewState("", nil, ranges); err == nil {
		t.Fatal("expected error for too many ranges")
	}
}

func TestState_Selection(t *testing.T) {
	st, err := NewState("", map[string]string{
		"sport":  "Basketball",
		"status": AllValues,
		"dept":   "",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := st.Selection("sport"); !ok || v != "Basketball" {
		t.Errorf("Selection(sport) = %q, %v", v, ok)
	}
	if _, ok := st.Selection("status"); ok {
		t.Error("\"all\" must be inactive")
	}
	if _, ok := st.Selection("dept"); ok {
		t.Error("empty selection must be inactive")
	}
	if _, ok := st.Selection("missing"); ok {
		t.Error("absent facet must be inactive")
	}
}

func TestState_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		facets map[string]string
		want   bool
	}{
		{"zero", "", nil, true},
		{"whitespace query narrows", "   ", nil, false},
		{"all facets", "", map[string]string{"sport": "all"}, true},
		{"query", "kansas", nil, false},
		{"facet", "", map[string]string{"sport": "Football"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := NewState(tt.query, tt.facets, nil)
			if got := st.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewState_CopiesFacets(t *testing.T) {
	facets := map[string]string{"sport": "Football"}
	st, _ := NewState("", facets, nil)
	facets["sport"] = "Wrestling"
	if v, _ := st.Selection("sport"); v != "Football" {
		t.Errorf("state mutated through caller map: %q", v)
	}
}
