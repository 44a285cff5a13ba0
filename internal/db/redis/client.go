package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/helix/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Valkey or Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store implements db.Store via rueidis. Valkey and Redis share the
// commands used here, so one implementation serves both drivers.
type Store struct {
	client rueidis.Client
	addrs  []string
}

// NewStore connects to the record store at cfg.Addrs.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", strings.Join(cfg.Addrs, ","), err)
	}

	s := NewStoreFromClient(client)
	s.addrs = slices.Clone(cfg.Addrs)
	return s, nil
}

// NewStoreFromClient wraps an existing rueidis client, such as a shared
// connection or a mock. Close closes c.
func NewStoreFromClient(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// Readiness polling starts fast and backs off up to maxReadyInterval.
const (
	firstReadyInterval = 100 * time.Millisecond
	maxReadyInterval   = time.Second
)

// WaitForReady pings until the store answers or timeout expires. The
// error names the addresses and the last ping failure.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	interval := firstReadyInterval
	attempts := 0
	var lastErr error
	for {
		attempts++
		if lastErr = s.Ping(ctx); lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("record store %s not ready after %d pings: %w",
				s.describe(), attempts, errors.Join(ctx.Err(), lastErr))
		case <-time.After(interval):
		}
		interval = min(interval*2, maxReadyInterval)
	}
}

func (s *Store) describe() string {
	if len(s.addrs) == 0 {
		return "(client)"
	}
	return strings.Join(s.addrs, ",")
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}
