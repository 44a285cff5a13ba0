package record

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind is the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is a primitive record value: a string, a number, or a list of strings.
type Value struct {
	kind Kind
	str  string
	num  float64
	list []string
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List creates a string list value. The items are copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// ValueOf converts a decoded JSON/YAML scalar or string sequence into a Value.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case []string:
		return List(t...), nil
	case []any:
		items := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list element %d is %T, want string", i, item)
			}
			items[i] = s
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind returns the value variant.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (empty for non-string values).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (zero for non-number values).
func (v Value) Num() float64 { return v.num }

// Items returns a copy of the list payload.
func (v Value) Items() []string { return slices.Clone(v.list) }

// Terms returns the textual forms of the value used for free-text matching.
func (v Value) Terms() []string {
	switch v.kind {
	case KindString:
		return []string{v.str}
	case KindNumber:
		return []string{formatNumber(v.num)}
	case KindList:
		return slices.Clone(v.list)
	default:
		return nil
	}
}

// Matches reports whether the value equals a facet selection.
// Lists match when the selection is one of their elements.
func (v Value) Matches(selection string) bool {
	switch v.kind {
	case KindString:
		return v.str == selection
	case KindNumber:
		return formatNumber(v.num) == selection
	case KindList:
		return slices.Contains(v.list, selection)
	default:
		return false
	}
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindList:
		return slices.Equal(v.list, o.list)
	default:
		return true
	}
}

// Interface returns the value as a plain Go value for encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindList:
		return slices.Clone(v.list)
	default:
		return nil
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
