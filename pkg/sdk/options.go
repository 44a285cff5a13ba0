package helix

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	seedPath string

	driver    string // "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string
	noStale   bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSeedFile serves listings from a YAML seed file held in memory. The
// client is read-only in this mode.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedPath = path
	})
}

// WithValkey reads and writes listings in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis reads and writes listings in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces the Valkey/Redis keys. Default: "helix:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithoutStaleSnapshots makes store failures surface as ErrFetchFailed
// instead of serving the last good snapshot.
func WithoutStaleSnapshots() Option {
	return optionFunc(func(c *clientConfig) {
		c.noStale = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
