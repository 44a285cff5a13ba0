package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockFreshness struct {
	err error
}

func (m *mockFreshness) CheckFresh(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockFreshness{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["store"] != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks["store"])
	}
	if r.Checks["listings"] != CheckOK {
		t.Errorf("expected listings %q, got %q", CheckOK, r.Checks["listings"])
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("conn refused")}, &mockFreshness{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["store"] != CheckError {
		t.Errorf("expected store %q, got %q", CheckError, r.Checks["store"])
	}
	if r.Checks["listings"] != CheckOK {
		t.Errorf("expected listings %q, got %q", CheckOK, r.Checks["listings"])
	}
}

func TestCheck_StaleListings(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockFreshness{err: errors.New("venues stale")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["listings"] != CheckError {
		t.Errorf("expected listings %q, got %q", CheckError, r.Checks["listings"])
	}
	if r.Errors["listings"] == nil || r.Errors["store"] != nil {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

func TestCheck_AllFailing(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("conn refused")}, &mockFreshness{err: errors.New("all stale")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if len(r.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", r.Errors)
	}
}

func TestCheck_StaticStoreSkipsPing(t *testing.T) {
	svc := New(nil, &mockFreshness{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["store"]; ok {
		t.Error("store check should be absent without a pinger")
	}
}
