package helix

import "github.com/kailas-cloud/helix/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrListingNotFound = domain.ErrListingNotFound
	ErrInvalidFilter   = domain.ErrInvalidFilter
	ErrInvalidRecord   = domain.ErrInvalidRecord
	ErrReadOnlyStore   = domain.ErrReadOnlyStore
	ErrFetchFailed     = domain.ErrFetchFailed
)
