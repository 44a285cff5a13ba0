package health

import "context"

// StorePinger checks record store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// FreshnessChecker reports whether every listing is served from fresh records.
type FreshnessChecker interface {
	CheckFresh(ctx context.Context) error
}
