package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates that some checks failed.
	Degraded Status = "degraded"
	// Unhealthy indicates that every check failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. Errors holds the cause of every
// failing check and is not meant for untrusted callers.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Errors map[string]error
}

// Service coordinates health checks.
type Service struct {
	store    StorePinger
	listings FreshnessChecker
}

// New creates a Service. store is nil for the in-memory seed store.
func New(store StorePinger, listings FreshnessChecker) *Service {
	return &Service{store: store, listings: listings}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{
		Status: Healthy,
		Checks: make(map[string]CheckResult),
		Errors: make(map[string]error),
	}

	if s.store != nil {
		r.record("store", s.store.Ping(ctx))
	}
	if s.listings != nil {
		r.record("listings", s.listings.CheckFresh(ctx))
	}
	if len(r.Errors) > 0 && len(r.Errors) == len(r.Checks) {
		r.Status = Unhealthy
	}
	return r
}

func (r *Report) record(name string, err error) {
	if err == nil {
		r.Checks[name] = CheckOK
		return
	}
	r.Checks[name] = CheckError
	r.Errors[name] = err
	r.Status = Degraded
}
