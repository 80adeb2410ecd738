// Package addressed implements the addressed pair-normalizer back end:
// every normed value receives a unique natural-number address and normed
// pairs are looked up by the combined address of their head and tail.
//
// © 2025 honspace authors. MIT License.
package addressed

import (
	"weak"

	"github.com/hashcons/honspace/internal/value"
)

// StablePool is the host-provided service this back end needs: allocate
// pairs whose stable index survives until nothing else references them,
// and let the engine ask, by index, whether the pair is still alive.
//
// Rather than an arena (whose memory is never GC-owned and so could never
// answer "did the host GC reclaim this"), a stable pair here is an
// ordinary heap-allocated *value.Pair tracked by a weak.Pointer. wash
// needs exactly this "ask the host for the pair by stable index; nil means
// GC reclaimed it" primitive, and Go 1.24's weak package is the first
// stable way to get it without reaching for cgo or a custom GC hook.
//
// index is keyed by the weak pointer itself, not by the strong *value.Pair
// it targets — keying on the strong pointer would make the pool itself a
// permanent strong reference to every pair it ever allocated, which would
// make slots' weak.Pointer.Value() never observe collection and defeat
// the entire point of tracking pairs weakly.
type StablePool struct {
	slots []weak.Pointer[value.Pair]
	index map[weak.Pointer[value.Pair]]uint32
	free  []uint32
}

// NewStablePool constructs an empty pool.
func NewStablePool() *StablePool {
	return &StablePool{index: make(map[weak.Pointer[value.Pair]]uint32, 1024)}
}

// Alloc registers pair in the pool and returns its stable index, reusing a
// freed slot when one is available.
func (p *StablePool) Alloc(pair *value.Pair) uint32 {
	wp := weak.Make(pair)
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[idx] = wp
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, wp)
	}
	p.index[wp] = idx
	return idx
}

// IndexOf returns the stable index previously assigned to pair, if any.
func (p *StablePool) IndexOf(pair *value.Pair) (uint32, bool) {
	idx, ok := p.index[weak.Make(pair)]
	return idx, ok
}

// At resolves a stable index back to its pair, or nil if the host GC has
// already reclaimed it (or the slot was never populated).
func (p *StablePool) At(idx uint32) *value.Pair {
	if int(idx) >= len(p.slots) {
		return nil
	}
	return p.slots[idx].Value()
}

// Len reports how many slots have ever been handed out.
func (p *StablePool) Len() int { return len(p.slots) }

// Free marks idx reusable and drops it from the identity index. Used by
// wash once a slot is confirmed dead.
func (p *StablePool) Free(idx uint32) {
	if int(idx) < len(p.slots) {
		delete(p.index, p.slots[idx])
		var zero weak.Pointer[value.Pair]
		p.slots[idx] = zero
	}
	p.free = append(p.free, idx)
}

// Reset discards every slot, used by Clear.
func (p *StablePool) Reset() {
	p.slots = nil
	p.index = make(map[weak.Pointer[value.Pair]]uint32, 1024)
	p.free = nil
}
