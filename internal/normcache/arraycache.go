//go:build goexperiment.arenas

// Package normcache: fixed-array variant, addressed back-end only. This
// file is built when the toolchain has arenas enabled; see
// arraycache_noarena.go for the fallback.
package normcache

import (
	"github.com/hashcons/honspace/internal/arena"
	"github.com/hashcons/honspace/internal/value"
)

const arraySize = 1 << 20
const arrayMask = arraySize - 1

// ArrayCache is the fixed-array norm cache variant used by the addressed
// back end: two parallel arrays of length 2^20 indexed by a
// machine-address hash of the input value. A lookup is a hit only if the
// stored key is identity-equal to the query.
//
// The backing arrays are large (2^20 * 16 bytes each on a 64-bit host) and
// contain only cache hints the engine is always willing to lose, so they
// are allocated through the arena wrapper to keep them off the Go GC's
// scanned heap entirely.
type ArrayCache struct {
	ar   *arena.Arena
	keys []value.Value
	vals []value.Value
}

// NewArrayCache allocates a fresh fixed-size array cache.
func NewArrayCache() *ArrayCache {
	ar := arena.New()
	return &ArrayCache{
		ar:   ar,
		keys: arena.MakeSlice[value.Value](ar, arraySize),
		vals: arena.MakeSlice[value.Value](ar, arraySize),
	}
}

// index computes the machine-address hash for x: right-shift the address
// by 5 bits, mask to 20 bits.
func index(addr uintptr) int {
	return int((addr >> 5) & arrayMask)
}

// Get looks up x by its machine address addr. A hit requires the stored key
// to be identity-equal (==) to x, not merely hashing to the same slot.
func (c *ArrayCache) Get(addr uintptr, x value.Value) (value.Value, bool) {
	i := index(addr)
	if c.keys[i] == x {
		return c.vals[i], true
	}
	return nil, false
}

// Set stores x -> normed at the slot for addr. The two stores must appear
// atomically with respect to signal interruption: we write the value
// before the key so that an interruption between the two writes is
// observed, at worst, as a cache miss (stale key, mismatched value)
// rather than a hit returning a value that doesn't belong to the stored
// key.
func (c *ArrayCache) Set(addr uintptr, x, normed value.Value) {
	i := index(addr)
	c.vals[i] = normed
	c.keys[i] = x
}

// Clear drops every cached entry by reallocating fresh backing arrays in a
// new arena, freeing the old one in one shot.
func (c *ArrayCache) Clear() {
	old := c.ar
	c.ar = arena.New()
	c.keys = arena.MakeSlice[value.Value](c.ar, arraySize)
	c.vals = arena.MakeSlice[value.Value](c.ar, arraySize)
	old.Free()
}
