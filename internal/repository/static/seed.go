package static

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Catalog resolves listing kinds to schemas.
type Catalog interface {
	Lookup(kind string) (schema.Schema, bool)
}

// seedFile is the YAML layout of a seed file.
type seedFile struct {
	Listings map[string][]map[string]any `yaml:"listings"`
}

// ReadSeed reads and parses a seed file.
func ReadSeed(path string, cat Catalog) (map[string][]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data, cat)
}

// ParseSeed decodes seed YAML into records per listing kind. Every entry is
// checked against its schema; entries without an id get a stable derived one.
func ParseSeed(data []byte, cat Catalog) (map[string][]record.Record, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	out := make(map[string][]record.Record, len(sf.Listings))
	for kind, rows := range sf.Listings {
		sch, ok := cat.Lookup(kind)
		if !ok {
			return nil, fmt.Errorf("seed: %w: %q", domain.ErrListingNotFound, kind)
		}

		records := make([]record.Record, 0, len(rows))
		seen := make(map[string]struct{}, len(rows))
		for i, row := range rows {
			r, err := record.FromMap(row)
			if err != nil {
				return nil, fmt.Errorf("seed %s[%d]: %w: %w", kind, i, domain.ErrInvalidRecord, err)
			}
			if err := sch.Conform(r); err != nil {
				return nil, fmt.Errorf("seed %s[%d]: %w", kind, i, err)
			}
			r = record.EnsureID(kind, r)
			if _, dup := seen[r.ID()]; dup {
				return nil, fmt.Errorf("seed %s[%d]: %w: duplicate id %q", kind, i, domain.ErrInvalidRecord, r.ID())
			}
			seen[r.ID()] = struct{}{}
			records = append(records, r)
		}
		out[kind] = records
	}
	return out, nil
}
