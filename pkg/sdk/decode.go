package helix

import (
	"fmt"
	"reflect"
)

const tagKey = "helix"

// structMeta maps struct fields to item keys, parsed from `helix:"..."` tags.
type structMeta struct {
	typ    reflect.Type
	fields []fieldMapping
}

type fieldMapping struct {
	structIdx int
	name      string
	kind      reflect.Kind // String, Float64 (any number) or Slice ([]string)
}

// parseStruct reflects on T and extracts helix struct tag metadata.
func parseStruct[T any]() (*structMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("helix: type %v is not a struct", t)
	}

	meta := &structMeta{typ: t}
	seen := make(map[string]string)
	for i := range t.NumField() {
		f := t.Field(i)
		name := f.Tag.Get(tagKey)
		if name == "" || name == "-" {
			continue
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("helix: field %s is unexported and cannot carry a %s tag", f.Name, tagKey)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("helix: key %q tagged on both %s and %s", name, prev, f.Name)
		}
		seen[name] = f.Name

		kind, err := mappingKind(f.Type)
		if err != nil {
			return nil, fmt.Errorf("helix: field %s: %w", f.Name, err)
		}
		meta.fields = append(meta.fields, fieldMapping{structIdx: i, name: name, kind: kind})
	}
	return meta, nil
}

func mappingKind(t reflect.Type) (reflect.Kind, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.String, nil
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.Float64, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return reflect.Slice, nil
		}
	}
	return reflect.Invalid, fmt.Errorf("unsupported type %s", t)
}

// Decode converts items into structs tagged with `helix:"key"`. The "id"
// key maps the record identifier. Keys missing from an item leave the zero value.
func Decode[T any](items []Item) ([]T, error) {
	meta, err := parseStruct[T]()
	if err != nil {
		return nil, err
	}

	out := make([]T, len(items))
	for i, item := range items {
		v := reflect.ValueOf(&out[i]).Elem()
		for _, fm := range meta.fields {
			raw, ok := item[fm.name]
			if !ok {
				continue
			}
			if err := assign(v.Field(fm.structIdx), fm, raw); err != nil {
				return nil, fmt.Errorf("helix: item %d: %w", i, err)
			}
		}
	}
	return out, nil
}

// Encode converts tagged structs into items for Import.
func Encode[T any](values []T) ([]Item, error) {
	meta, err := parseStruct[T]()
	if err != nil {
		return nil, err
	}

	out := make([]Item, len(values))
	for i := range values {
		v := reflect.ValueOf(&values[i]).Elem()
		item := make(Item, len(meta.fields))
		for _, fm := range meta.fields {
			fv := v.Field(fm.structIdx)
			switch fm.kind {
			case reflect.String:
				if fm.name == "id" && fv.String() == "" {
					continue
				}
				item[fm.name] = fv.String()
			case reflect.Float64:
				item[fm.name] = toFloat64(fv)
			case reflect.Slice:
				items := make([]string, fv.Len())
				for j := range items {
					items[j] = fv.Index(j).String()
				}
				item[fm.name] = items
			}
		}
		out[i] = item
	}
	return out, nil
}

func assign(dst reflect.Value, fm fieldMapping, raw any) error {
	switch fm.kind {
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("key %q is %T, want string", fm.name, raw)
		}
		dst.SetString(s)
	case reflect.Float64:
		f, ok := raw.(float64)
		if !ok {
			return fmt.Errorf("key %q is %T, want number", fm.name, raw)
		}
		setFloat(dst, f)
	case reflect.Slice:
		items, ok := raw.([]string)
		if !ok {
			return fmt.Errorf("key %q is %T, want []string", fm.name, raw)
		}
		s := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for j, item := range items {
			s.Index(j).SetString(item)
		}
		dst.Set(s)
	}
	return nil
}

func toFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return 0
	}
}

func setFloat(v reflect.Value, f float64) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		v.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(f))
	}
}
