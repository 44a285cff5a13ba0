package record

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// IDField is the reserved key carrying the record identifier in flat maps.
const IDField = "id"

// Record is one immutable, flat row of a listing.
type Record struct {
	id     string
	fields map[string]Value
}

// New creates a record. The field map is copied.
func New(id string, fields map[string]Value) Record {
	return Record{id: id, fields: maps.Clone(fields)}
}

// FromMap builds a record from a decoded flat map. An "id" key, when present, must be a string.
func FromMap(m map[string]any) (Record, error) {
	var id string
	fields := make(map[string]Value, len(m))
	for k, raw := range m {
		if k == IDField {
			s, ok := raw.(string)
			if !ok {
				return Record{}, fmt.Errorf("id must be a string, got %T", raw)
			}
			id = s
			continue
		}
		v, err := ValueOf(raw)
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = v
	}
	return Record{id: id, fields: fields}, nil
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// WithID returns a copy of the record carrying the given identifier.
func (r Record) WithID(id string) Record {
	return Record{id: id, fields: r.fields}
}

// Get returns the named field value.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Len returns the number of fields (excluding the id).
func (r Record) Len() int { return len(r.fields) }

// FieldNames returns the field names in lexical order.
func (r Record) FieldNames() []string {
	return slices.Sorted(maps.Keys(r.fields))
}

// ToMap returns the record as a flat map including the id.
func (r Record) ToMap() map[string]any {
	m := make(map[string]any, len(r.fields)+1)
	for k, v := range r.fields {
		m[k] = v.Interface()
	}
	if r.id != "" {
		m[IDField] = r.id
	}
	return m
}

// Equal reports whether two records carry the same id and fields.
func (r Record) Equal(o Record) bool {
	return r.id == o.id && maps.EqualFunc(r.fields, o.fields, Value.Equal)
}

// MarshalJSON encodes the record as a flat JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// UnmarshalJSON decodes a flat JSON object into the record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	rec, err := FromMap(m)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}
