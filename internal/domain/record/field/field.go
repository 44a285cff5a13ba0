package field

import "fmt"

// Type is the value type a field holds.
type Type string

// Field type constants.
const (
	// Text is a free-form string field.
	Text Type = "text"
	// Facet is a categorical string field offered as an exact-match filter.
	Facet   Type = "facet"
	Numeric Type = "numeric"
	// List is a string list field (e.g. sports sponsored by a school).
	List Type = "list"
)

// MaxNameLength is the maximum length of a field name.
const MaxNameLength = 64

var reservedFieldNames = map[string]bool{
	"id": true,
}

// Field is an immutable value object describing a declared listing field.
type Field struct {
	name      string
	fieldType Type
}

// New validates and creates a Field.
func New(name string, ft Type) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > MaxNameLength {
		return Field{}, fmt.Errorf("field name %q too long (max %d)", name, MaxNameLength)
	}
	if reservedFieldNames[name] {
		return Field{}, fmt.Errorf("field name %q is reserved", name)
	}
	if !ft.IsValid() {
		return Field{}, fmt.Errorf("invalid field type %q for %q", ft, name)
	}
	return Field{name: name, fieldType: ft}, nil
}

// Reconstruct creates a Field without validation (storage hydration).
func Reconstruct(name string, ft Type) Field {
	return Field{name: name, fieldType: ft}
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldType returns the field's value type.
func (f Field) FieldType() Type { return f.fieldType }

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Text || t == Facet || t == Numeric || t == List
}

// IsString reports whether values of this type are single strings.
func (t Type) IsString() bool {
	return t == Text || t == Facet
}
