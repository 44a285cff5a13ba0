package helix

import (
	"context"

	healthuc "github.com/kailas-cloud/helix/internal/usecase/health"
)

// HealthStatus is the outcome of the client's health checks.
//
// Checks holds "ok" or "error" per check. Seed-file clients report only
// "listings"; store-backed clients add "store". Problems holds the cause
// of every failing check, such as the listings that are served from a stale
// snapshot.
type HealthStatus struct {
	Status   string // "ok", "degraded" or "error"
	Checks   map[string]string
	Problems map[string]string
}

// OK reports whether every check passed.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health pings the store and checks that every listing can be fetched fresh.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status:   string(report.Status),
		Checks:   make(map[string]string, len(report.Checks)),
		Problems: make(map[string]string, len(report.Errors)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	for name, err := range report.Errors {
		h.Problems[name] = err.Error()
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
