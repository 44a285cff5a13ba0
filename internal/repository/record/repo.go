package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/helix/internal/db"
	"github.com/kailas-cloud/helix/internal/domain"
	domrec "github.com/kailas-cloud/helix/internal/domain/record"
)

// DefaultKeyPrefix namespaces every key written by the repository.
const DefaultKeyPrefix = "helix:"

// store is the consumer interface for listing records (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SetWithMeta(ctx context.Context, key string, value []byte, metaKey string, meta map[string]string) error
	Del(ctx context.Context, keys ...string) error
}

// Stats is the metadata written alongside a listing.
type Stats struct {
	Count     int
	UpdatedAt time.Time
}

// Repo implements usecase/listing.Repository and Writer on Valkey or Redis.
type Repo struct {
	store  store
	prefix string
	now    func() time.Time
}

// New creates a listing record repository. An empty prefix uses DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix, now: time.Now}
}

// List returns the records of a listing in stored order. A missing key is an empty listing.
// Store and decode failures wrap domain.ErrFetchFailed.
func (r *Repo) List(ctx context.Context, kind string) ([]domrec.Record, error) {
	key := r.listKey(kind)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []domrec.Record{}, nil
		}
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrFetchFailed, key, err)
	}

	var records []domrec.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrFetchFailed, key, err)
	}
	if records == nil {
		records = []domrec.Record{}
	}
	return records, nil
}

// Replace atomically overwrites a listing and its metadata. An empty
// listing removes both keys.
func (r *Repo) Replace(ctx context.Context, kind string, records []domrec.Record) error {
	key, meta := r.listKey(kind), r.metaKey(kind)

	if len(records) == 0 {
		if err := r.store.Del(ctx, key, meta); err != nil {
			return fmt.Errorf("clear %s: %w", kind, err)
		}
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	fields := map[string]string{
		"count":      strconv.Itoa(len(records)),
		"updated_at": strconv.FormatInt(r.now().UnixMilli(), 10),
	}
	if err := r.store.SetWithMeta(ctx, key, data, meta, fields); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Stats returns the metadata of a listing. A listing never written yields zero Stats.
func (r *Repo) Stats(ctx context.Context, kind string) (Stats, error) {
	meta := r.metaKey(kind)
	m, err := r.store.HGetAll(ctx, meta)
	if err != nil {
		return Stats{}, fmt.Errorf("hgetall %s: %w", meta, err)
	}
	if len(m) == 0 {
		return Stats{}, nil
	}

	count, err := strconv.Atoi(m["count"])
	if err != nil {
		return Stats{}, fmt.Errorf("parse count of %s: %w", kind, err)
	}
	ms, err := strconv.ParseInt(m["updated_at"], 10, 64)
	if err != nil {
		return Stats{}, fmt.Errorf("parse updated_at of %s: %w", kind, err)
	}
	return Stats{Count: count, UpdatedAt: time.UnixMilli(ms).UTC()}, nil
}

// Key patterns: helix:listing:{schools}, helix:listing:{schools}:meta.
// The braces are a cluster hash tag keeping both keys in one slot.

func (r *Repo) listKey(kind string) string {
	return fmt.Sprintf("%slisting:{%s}", r.prefix, kind)
}

func (r *Repo) metaKey(kind string) string {
	return r.listKey(kind) + ":meta"
}
