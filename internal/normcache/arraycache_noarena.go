//go:build !goexperiment.arenas

// Package normcache: fixed-array variant, plain-slice fallback used when
// the toolchain was not built with GOEXPERIMENT=arenas. Semantics are
// identical to arraycache.go; only the backing storage differs (regular
// GC-scanned slices instead of arena-backed ones). Documented explicitly
// here rather than silently behaving differently: callers that care about
// keeping the norm cache off the scanned heap must build with arenas.
package normcache

import "github.com/hashcons/honspace/internal/value"

const arraySize = 1 << 20
const arrayMask = arraySize - 1

// ArrayCache is the fixed-array norm cache variant used by the addressed
// back end. See arraycache.go for the arena-backed variant; this build
// omits the arena dependency entirely.
type ArrayCache struct {
	keys []value.Value
	vals []value.Value
}

// NewArrayCache allocates a fresh fixed-size array cache.
func NewArrayCache() *ArrayCache {
	return &ArrayCache{
		keys: make([]value.Value, arraySize),
		vals: make([]value.Value, arraySize),
	}
}

func index(addr uintptr) int {
	return int((addr >> 5) & arrayMask)
}

// Get looks up x by its machine address addr.
func (c *ArrayCache) Get(addr uintptr, x value.Value) (value.Value, bool) {
	i := index(addr)
	if c.keys[i] == x {
		return c.vals[i], true
	}
	return nil, false
}

// Set stores x -> normed at the slot for addr, value-before-key as in the
// arena variant (see arraycache.go for the interruption-safety rationale).
func (c *ArrayCache) Set(addr uintptr, x, normed value.Value) {
	i := index(addr)
	c.vals[i] = normed
	c.keys[i] = x
}

// Clear drops every cached entry.
func (c *ArrayCache) Clear() {
	c.keys = make([]value.Value, arraySize)
	c.vals = make([]value.Value, arraySize)
}
