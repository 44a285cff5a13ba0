package helix

import (
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Item is one listing record as a flat map. Values are string, float64 or
// []string; the "id" key carries the record identifier.
type Item = map[string]any

// FieldInfo describes a declared listing field.
type FieldInfo struct {
	Name string
	Type string // text, facet, numeric, list
}

// ListingInfo describes a listing. Total and Degraded are set by Overview only.
type ListingInfo struct {
	Kind         string
	Title        string
	Fields       []FieldInfo
	SearchFields []string
	FacetFields  []string
	SortFields   []string
	Total        int
	Degraded     bool
}

// Page is the result of a listing query.
type Page struct {
	Items    []Item
	Matched  int
	Total    int
	Summary  string // "{Matched} of {Total}"
	Degraded bool   // computed over a stale or empty snapshot
}

func listingFromSchema(s schema.Schema) ListingInfo {
	fields := s.Fields()
	info := ListingInfo{
		Kind:         s.Kind(),
		Title:        s.Title(),
		Fields:       make([]FieldInfo, len(fields)),
		SearchFields: s.SearchFields(),
		FacetFields:  s.FacetFields(),
		SortFields:   s.SortFields(),
	}
	for i, f := range fields {
		info.Fields[i] = FieldInfo{Name: f.Name(), Type: string(f.FieldType())}
	}
	return info
}

func itemsFromRecords(records []record.Record) []Item {
	out := make([]Item, len(records))
	for i, r := range records {
		out[i] = r.ToMap()
	}
	return out
}
