package schema

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/domain/record/field"
)

// MaxFields is the maximum number of declared fields per listing.
const MaxFields = 64

var kindRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Definition is the declarative input for a listing schema.
type Definition struct {
	Kind     string
	Title    string
	Fields   []field.Field
	Search   []string
	Facets   []string
	Sortable []string
	// DefaultSort is applied when a query names no sort field. Empty keeps source order.
	DefaultSort string
	DefaultDesc bool
}

// Schema declares the field set of one listing kind and which fields are
// searchable, facet-eligible, and sortable.
type Schema struct {
	kind        string
	title       string
	fields      []field.Field
	search      []string
	facets      []string
	sortable    []string
	defaultSort string
	defaultDesc bool
}

// New validates a definition and creates a Schema.
func New(d Definition) (Schema, error) {
	if err := validateKind(d.Kind); err != nil {
		return Schema{}, err
	}
	if len(d.Fields) == 0 {
		return Schema{}, fmt.Errorf("listing %q declares no fields", d.Kind)
	}
	if len(d.Fields) > MaxFields {
		return Schema{}, fmt.Errorf("listing %q has too many fields (max %d)", d.Kind, MaxFields)
	}

	byName := make(map[string]field.Field, len(d.Fields))
	for _, f := range d.Fields {
		if _, dup := byName[f.Name()]; dup {
			return Schema{}, fmt.Errorf("listing %q: duplicate field name %q", d.Kind, f.Name())
		}
		byName[f.Name()] = f
	}

	if len(d.Search) == 0 {
		return Schema{}, fmt.Errorf("listing %q declares no searchable fields", d.Kind)
	}
	for _, name := range d.Search {
		if _, ok := byName[name]; !ok {
			return Schema{}, fmt.Errorf("listing %q: unknown search field %q", d.Kind, name)
		}
	}
	for _, name := range d.Facets {
		f, ok := byName[name]
		if !ok {
			return Schema{}, fmt.Errorf("listing %q: unknown facet field %q", d.Kind, name)
		}
		if f.FieldType() != field.Facet && f.FieldType() != field.List {
			return Schema{}, fmt.Errorf("listing %q: facet %q must be a facet or list field", d.Kind, name)
		}
	}
	for _, name := range d.Sortable {
		f, ok := byName[name]
		if !ok {
			return Schema{}, fmt.Errorf("listing %q: unknown sort field %q", d.Kind, name)
		}
		if f.FieldType() == field.List {
			return Schema{}, fmt.Errorf("listing %q: list field %q cannot be sorted", d.Kind, name)
		}
	}
	if d.DefaultSort != "" && !slices.Contains(d.Sortable, d.DefaultSort) {
		return Schema{}, fmt.Errorf("listing %q: default sort %q is not sortable", d.Kind, d.DefaultSort)
	}

	title := d.Title
	if title == "" {
		title = d.Kind
	}

	return Schema{
		kind:        d.Kind,
		title:       title,
		fields:      slices.Clone(d.Fields),
		search:      slices.Clone(d.Search),
		facets:      slices.Clone(d.Facets),
		sortable:    slices.Clone(d.Sortable),
		defaultSort: d.DefaultSort,
		defaultDesc: d.DefaultDesc,
	}, nil
}

// MustNew creates a Schema or panics. Schemas are declared in code, so an
// invalid one is a programming error.
func MustNew(d Definition) Schema {
	s, err := New(d)
	if err != nil {
		panic(err)
	}
	return s
}

func validateKind(kind string) error {
	if kind == "" {
		return fmt.Errorf("listing kind is required")
	}
	if len(kind) > 64 {
		return fmt.Errorf("listing kind too long (max 64)")
	}
	if !kindRegex.MatchString(kind) {
		return fmt.Errorf("listing kind %q must be lowercase alphanumeric with underscores and hyphens", kind)
	}
	return nil
}

// Kind returns the listing kind (URL-safe identifier).
func (s Schema) Kind() string { return s.kind }

// Title returns the human-readable listing title.
func (s Schema) Title() string { return s.title }

// Fields returns the declared fields in declaration order.
func (s Schema) Fields() []field.Field { return slices.Clone(s.fields) }

// SearchFields returns the fields eligible for free-text matching.
func (s Schema) SearchFields() []string { return slices.Clone(s.search) }

// FacetFields returns the fields eligible for exact-match filtering.
func (s Schema) FacetFields() []string { return slices.Clone(s.facets) }

// SortFields returns the fields a view may be ordered by.
func (s Schema) SortFields() []string { return slices.Clone(s.sortable) }

// DefaultSort returns the default sort field and direction.
func (s Schema) DefaultSort() (string, bool) { return s.defaultSort, s.defaultDesc }

// FieldByName looks up a declared field.
func (s Schema) FieldByName(name string) (field.Field, bool) {
	for _, f := range s.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}

// IsSortable reports whether the field may be used for ordering.
func (s Schema) IsSortable(name string) bool { return slices.Contains(s.sortable, name) }

// Conform checks that a record carries exactly the declared fields with matching value kinds.
func (s Schema) Conform(r record.Record) error {
	if r.Len() != len(s.fields) {
		for _, name := range r.FieldNames() {
			if _, ok := s.FieldByName(name); !ok {
				return fmt.Errorf("%w: %s record %q: undeclared field %q", domain.ErrInvalidRecord, s.kind, r.ID(), name)
			}
		}
	}
	for _, f := range s.fields {
		v, ok := r.Get(f.Name())
		if !ok {
			return fmt.Errorf("%w: %s record %q: missing field %q", domain.ErrInvalidRecord, s.kind, r.ID(), f.Name())
		}
		if v.Kind() != kindFor(f.FieldType()) {
			return fmt.Errorf("%w: %s record %q: field %q is %s, want %s",
				domain.ErrInvalidRecord, s.kind, r.ID(), f.Name(), v.Kind(), f.FieldType())
		}
	}
	return nil
}

// ConformAll checks every record and returns the first violation.
func (s Schema) ConformAll(records []record.Record) error {
	for _, r := range records {
		if err := s.Conform(r); err != nil {
			return err
		}
	}
	return nil
}

func kindFor(ft field.Type) record.Kind {
	switch ft {
	case field.Text, field.Facet:
		return record.KindString
	case field.Numeric:
		return record.KindNumber
	case field.List:
		return record.KindList
	default:
		return record.KindInvalid
	}
}
