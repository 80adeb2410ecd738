package hons

// config.go defines the internal configuration object and the functional
// options New accepts: a private config struct, a defaultConfig
// constructor, and Option values that only ever capture and assign, never
// allocate eagerly.
//
// © 2025 honspace authors. MIT License.

import (
	"errors"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Backend selects which pair-normalizer implementation an HS uses. Choice
// of back end is a compile-time or startup-time configuration variant.
type Backend int

const (
	// ChainedBackend is the portable, table-based back end (default).
	ChainedBackend Backend = iota
	// AddressedBackend requires host GC cooperation (weak pointers) but
	// supports Wash.
	AddressedBackend
)

// Option configures an HS at construction time.
type Option func(*config)

type config struct {
	backend  Backend
	logger   *zap.Logger
	registry *prometheus.Registry
	diagOut  io.Writer

	cacheSize int64
	maxSbits  int

	initialSlowAlistAction SlowAlistAction
}

func defaultConfig() *config {
	return &config{
		backend:                ChainedBackend,
		logger:                 zap.NewNop(),
		diagOut:                os.Stderr,
		cacheSize:               0, // 0 -> package default (400,000)
		maxSbits:                0, // 0 -> package default
		initialSlowAlistAction: SlowAlistWarn,
	}
}

// WithBackend selects the pair-normalizer implementation.
func WithBackend(b Backend) Option {
	return func(c *config) { c.backend = b }
}

// WithLogger plugs an external zap.Logger for operational logging (sbits
// growth, norm-cache self-flush, clear, wash). honspace never logs on the
// Norm hot path; only these slow, infrequent events go through it.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection. Passing nil disables
// metrics (the default).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithDiagWriter overrides where `; Hons Note: ...` diagnostic lines are
// written (default os.Stderr).
func WithDiagWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.diagOut = w
		}
	}
}

// WithCacheSize overrides the norm cache's entry budget (chained back end)
// or is ignored (addressed back end, which uses a fixed-size array cache).
func WithCacheSize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// WithMaxSbits overrides the addressed back end's sbits capacity ceiling.
func WithMaxSbits(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSbits = n
		}
	}
}

// WithSlowAlistAction sets the process-wide slow-alist policy effective
// from this HS's construction onward. Kept process-global since the
// policy is inherently non-local.
func WithSlowAlistAction(a SlowAlistAction) Option {
	return func(c *config) { c.initialSlowAlistAction = a }
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ErrUnknownBackend is returned by New for an out-of-range Backend value.
var ErrUnknownBackend = errors.New("honspace: unknown backend")
