package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helix/internal/domain"
	"github.com/kailas-cloud/helix/internal/domain/record"
	"github.com/kailas-cloud/helix/internal/metrics"
)

type mockUpstream struct {
	records []record.Record
	err     error
}

func (m *mockUpstream) List(_ context.Context, _ string) ([]record.Record, error) {
	return m.records, m.err
}

type mockWritable struct {
	mockUpstream
	replaceErr error
}

func (m *mockWritable) Replace(_ context.Context, _ string, records []record.Record) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.records = records
	return nil
}

func station(id, venue string) record.Record {
	return record.New(id, map[string]record.Value{"venue": record.String(venue)})
}

func TestList_PassesThroughFreshRecords(t *testing.T) {
	up := &mockUpstream{records: []record.Record{station("a", "Allen Fieldhouse")}}
	repo := New(up, zap.NewNop())

	got, err := repo.List(context.Background(), "weather_stations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(up.records, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestList_ServesStaleSnapshot(t *testing.T) {
	up := &mockUpstream{records: []record.Record{station("a", "Allen Fieldhouse"), station("b", "Boone Pickens Stadium")}}
	repo := New(up, zap.NewNop())
	ctx := context.Background()

	if _, err := repo.List(ctx, "weather_stations"); err != nil {
		t.Fatal(err)
	}

	staleBefore := testutil.ToFloat64(metrics.ListingStaleServedTotal.WithLabelValues("weather_stations"))
	up.records, up.err = nil, errors.New("connection refused")

	got, err := repo.List(ctx, "weather_stations")
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	var fe *domain.FetchError
	if !errors.As(err, &fe) || !fe.Stale {
		t.Errorf("expected stale FetchError, got %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 stale records, got %d", len(got))
	}
	if d := testutil.ToFloat64(metrics.ListingStaleServedTotal.WithLabelValues("weather_stations")) - staleBefore; d != 1 {
		t.Errorf("stale counter delta = %f, want 1", d)
	}
}

func TestList_NoSnapshotIsEmpty(t *testing.T) {
	repo := New(&mockUpstream{err: errors.New("timeout")}, zap.NewNop())

	failuresBefore := testutil.ToFloat64(metrics.ListingFetchFailuresTotal.WithLabelValues("awards"))
	got, err := repo.List(context.Background(), "awards")

	var fe *domain.FetchError
	if !errors.As(err, &fe) || fe.Stale {
		t.Fatalf("expected non-stale FetchError, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if d := testutil.ToFloat64(metrics.ListingFetchFailuresTotal.WithLabelValues("awards")) - failuresBefore; d != 1 {
		t.Errorf("failure counter delta = %f, want 1", d)
	}
}

func TestList_SnapshotIsolatedFromCaller(t *testing.T) {
	up := &mockUpstream{records: []record.Record{station("a", "Allen Fieldhouse")}}
	repo := New(up, zap.NewNop())
	ctx := context.Background()

	first, _ := repo.List(ctx, "weather_stations")
	first[0] = station("z", "mutated")

	up.err = errors.New("down")
	got, _ := repo.List(ctx, "weather_stations")
	if got[0].ID() != "a" {
		t.Errorf("snapshot was mutated through the returned slice: %q", got[0].ID())
	}
}

func TestReplace_ReadOnlyUpstream(t *testing.T) {
	repo := New(&mockUpstream{}, zap.NewNop())
	err := repo.Replace(context.Background(), "schools", nil)
	if !errors.Is(err, domain.ErrReadOnlyStore) {
		t.Fatalf("expected ErrReadOnlyStore, got %v", err)
	}
}

func TestReplace_RefreshesSnapshot(t *testing.T) {
	up := &mockWritable{}
	repo := New(up, zap.NewNop())
	ctx := context.Background()

	recs := []record.Record{station("a", "Allen Fieldhouse")}
	if err := repo.Replace(ctx, "weather_stations", recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	up.err = errors.New("down")
	got, err := repo.List(ctx, "weather_stations")
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace_UpstreamError(t *testing.T) {
	up := &mockWritable{replaceErr: errors.New("READONLY replica")}
	repo := New(up, zap.NewNop())
	if err := repo.Replace(context.Background(), "schools", nil); err == nil {
		t.Fatal("expected error")
	}
}
