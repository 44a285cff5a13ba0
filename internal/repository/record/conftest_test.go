package record

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/helix/internal/db"
	domrec "github.com/kailas-cloud/helix/internal/domain/record"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn     func(ctx context.Context, key string) ([]byte, error)
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	writeFn   func(ctx context.Context, key string, value []byte, metaKey string, meta map[string]string) error
	delFn     func(ctx context.Context, keys ...string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithMeta(ctx context.Context, key string, value []byte, metaKey string, meta map[string]string) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, key, value, metaKey, meta)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

var testNow = time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "")
	repo.now = func() time.Time { return testNow }
	return repo, ms
}

func testSchools() []domrec.Record {
	return []domrec.Record{
		domrec.New("kansas", map[string]domrec.Value{
			"name":   domrec.String("Kansas"),
			"state":  domrec.String("Kansas"),
			"joined": domrec.Number(1996),
			"sports": domrec.List("Basketball", "Football"),
		}),
		domrec.New("baylor", map[string]domrec.Value{
			"name":   domrec.String("Baylor"),
			"state":  domrec.String("Texas"),
			"joined": domrec.Number(1996),
			"sports": domrec.List("Football"),
		}),
	}
}
