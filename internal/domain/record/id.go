package record

import (
	"encoding/json"

	"github.com/google/uuid"
)

var idNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("listings.helix"))

// StableID derives a deterministic UUIDv5 from the listing kind and the record fields.
// Identical rows of one listing get identical ids.
func StableID(kind string, r Record) string {
	fields := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		fields[k] = v.Interface()
	}
	// Map keys marshal in sorted order, so the encoding is canonical.
	data, _ := json.Marshal(fields)
	name := append([]byte(kind+"\x00"), data...)
	return uuid.NewSHA1(idNamespace, name).String()
}

// EnsureID returns r unchanged when it has an id, otherwise a copy carrying StableID.
func EnsureID(kind string, r Record) Record {
	if r.id != "" {
		return r
	}
	return r.WithID(StableID(kind, r))
}
