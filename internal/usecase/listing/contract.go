package listing

import (
	"context"

	"github.com/kailas-cloud/helix/internal/domain/listing/schema"
	"github.com/kailas-cloud/helix/internal/domain/record"
)

// Repository defines the read contract of a record store.
type Repository interface {
	List(ctx context.Context, kind string) ([]record.Record, error)
}

// Writer is implemented by record stores that accept imports.
type Writer interface {
	Replace(ctx context.Context, kind string, records []record.Record) error
}

// Catalog resolves listing kinds to schemas.
type Catalog interface {
	Lookup(kind string) (schema.Schema, bool)
	Schemas() []schema.Schema
}
