package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrListingNotFound signals an unknown listing kind.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInvalidFilter signals a filter or sort that does not fit the listing schema.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidRecord signals a record that does not conform to the listing schema.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrFetchFailed signals that the record store could not supply fresh records.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrReadOnlyStore signals a write against a store that cannot be written.
	ErrReadOnlyStore = errors.New("record store is read-only")
)

// FetchError wraps ErrFetchFailed with the listing kind and whether stale records were supplied.
type FetchError struct {
	Kind  string
	Stale bool
	Err   error
}

func (e *FetchError) Error() string {
	state := "empty"
	if e.Stale {
		state = "stale"
	}
	return fmt.Sprintf("%s: %s (serving %s records): %v", ErrFetchFailed.Error(), e.Kind, state, e.Err)
}

// Is reports ErrFetchFailed so callers can match with errors.Is.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError creates a fetch failure for the given listing kind.
func NewFetchError(kind string, stale bool, err error) error {
	return &FetchError{Kind: kind, Stale: stale, Err: err}
}
