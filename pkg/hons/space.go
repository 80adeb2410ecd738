// Package hons is the public façade for honspace: a hash-consing engine
// with applicative hash tables (fast association lists) over a pool of
// structured values.
//
// © 2025 honspace authors. MIT License.
package hons

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hashcons/honspace/internal/addressed"
	"github.com/hashcons/honspace/internal/chained"
	"github.com/hashcons/honspace/internal/fastalist"
	"github.com/hashcons/honspace/internal/value"
)

// pairNormalizer is the common shape both back ends provide; HS holds one
// and never type-switches on which: choice of back end is a compile-time
// or startup-time configuration variant.
type pairNormalizer interface {
	Norm(x value.Value) value.Value
	IsNormed(p *value.Pair) bool
	NumberSubtrees(x value.Value) int
	Clear()
}

// HS is a Hons Space: one independent engine instance. It is not safe for
// concurrent use by multiple goroutines without external synchronization,
// matching a single-owner model.
type HS struct {
	mu sync.Mutex // guards persistentRoots only; see the doc note below

	backendKind Backend
	chainedBE   *chained.Backend
	addressedBE *addressed.Backend

	registry *fastalist.Registry
	diag     *diagWriter
	metrics  metricsSink
	logger   *zap.Logger

	persistentRoots []value.Value

	clearCount uint64
	washCount  uint64

	defaultShadowHint int

	washOnce singleflight.Group
}

// New constructs an independent Hons Space. Concurrent use of the returned
// *HS from multiple goroutines is not supported; the internal mutex guards
// only the persistent-root bookkeeping slice so that a concurrent
// CopyPersistent call from a supervising goroutine (e.g. a diagnostics
// poller) cannot corrupt it, not the back-end tables themselves.
func New(opts ...Option) (*HS, error) {
	cfg := applyOptions(opts)

	h := &HS{
		backendKind: cfg.backend,
		registry:    fastalist.New(),
		diag:        &diagWriter{out: cfg.diagOut},
		metrics:     newMetricsSink(cfg.registry),
		logger:      cfg.logger,
	}
	SetSlowAlistAction(cfg.initialSlowAlistAction)

	switch cfg.backend {
	case ChainedBackend:
		h.chainedBE = chained.New(cfg.cacheSize)
		h.chainedBE.SetCacheFlushHook(h.onCacheFlush)
	case AddressedBackend:
		h.addressedBE = addressed.New(cfg.maxSbits)
		h.addressedBE.SetSbitsGrowthHook(h.onSbitsGrowth)
	default:
		return nil, ErrUnknownBackend
	}
	return h, nil
}

// onCacheFlush is the chained back end's norm-cache self-flush hook: bump
// the Prometheus counter and emit an operational log line.
func (h *HS) onCacheFlush() {
	h.metrics.incCacheFlush()
	h.logger.Debug("norm cache self-flush")
}

// onSbitsGrowth is the addressed back end's sbits growth hook: bump the
// Prometheus counter and emit an operational log line.
func (h *HS) onSbitsGrowth() {
	h.metrics.incSbitsGrowth()
	h.logger.Debug("sbits growth")
}

func (h *HS) normalizer() pairNormalizer {
	if h.backendKind == AddressedBackend {
		return h.addressedBE
	}
	return h.chainedBE
}

// Norm canonicalizes x.
func (h *HS) Norm(x value.Value) value.Value {
	if p, ok := x.(*value.Pair); ok && h.normalizer().IsNormed(p) {
		h.metrics.incNormHit()
		return p
	}
	h.metrics.incNormMiss()
	return h.normalizer().Norm(x)
}

// Hons normalizes both sides then builds the canonical pair.
func (h *HS) Hons(x, y value.Value) value.Value {
	nx := h.Norm(x)
	ny := h.Norm(y)
	return h.Norm(value.NewPair(nx, ny))
}

// CopyPersistent canonicalizes x and records it as a persistence-set root
// so it survives Clear.
func (h *HS) CopyPersistent(x value.Value) value.Value {
	normed := h.Norm(x)
	h.mu.Lock()
	h.persistentRoots = append(h.persistentRoots, normed)
	h.mu.Unlock()
	return normed
}

// Equal performs a full deep structural comparison.
func (h *HS) Equal(x, y value.Value) bool {
	return value.Equal(x, y)
}

// EqualLite checks identity first, then falls back to a conclusive
// mismatch once both sides are known-normed pairs.
func (h *HS) EqualLite(x, y value.Value) bool {
	_, xIsPair := x.(*value.Pair)
	_, yIsPair := y.(*value.Pair)
	xNormed := xIsPair && h.normalizer().IsNormed(x.(*value.Pair))
	yNormed := yIsPair && h.normalizer().IsNormed(y.(*value.Pair))
	return value.EqualLite(x, y, xNormed, yNormed)
}

// NumberSubtrees returns the number of distinct subtrees reachable from the
// canonical form of x.
func (h *HS) NumberSubtrees(x value.Value) int {
	return h.normalizer().NumberSubtrees(x)
}
