//go:build goexperiment.arenas
// +build goexperiment.arenas

// Package arena wraps Go's experimental arena package behind a tiny,
// stable surface: New to construct one, Free to release everything it
// holds in one shot, NewValue/MakeSlice to allocate inside it. It exists
// so the norm-cache's bulk scratch storage can be dropped in O(1) instead
// of waiting on the GC to reclaim a couple million slice slots one at a
// time.
//
// arena.Arena is not thread-safe; callers serialize their own access.
//
// Objects allocated inside an arena must never be read after Free — the
// addressed back end's array cache only ever uses arena memory for
// cache hints it is always willing to lose, so this is safe by
// construction: Clear drops the old arena and hands back a fresh one
// before any caller can observe the stale pointers.
package arena

import (
	"arena"
	"unsafe"
)

// Arena is a new-type wrapper so callers never depend on arena.Arena
// directly, leaving room to swap the underlying allocator later.
type Arena struct{ ar arena.Arena }

// New constructs an empty arena ready for allocations.
func New() *Arena {
	return &Arena{ar: *arena.NewArena()}
}

// Free releases all memory allocated in the arena. After the call, any
// pointer previously returned from NewValue/MakeSlice/AllocBytes is
// invalid.
func (a *Arena) Free() {
	a.ar.Free()
}

// NewValue allocates a zero-initialized T inside the arena.
func NewValue[T any](a *Arena) *T { return arena.New[T](&a.ar) }

// MakeSlice allocates a slice of length==cap==n inside the arena.
func MakeSlice[T any](a *Arena, n int) []T { return arena.MakeSlice[T](&a.ar, n, n) }

// AllocBytes copies buf into the arena and returns the new reference.
func AllocBytes(a *Arena, buf []byte) []byte {
	dst := arena.MakeSlice[byte](&a.ar, len(buf), len(buf))
	copy(dst, buf)
	return dst
}

// UnsafePointer converts an arena-backed pointer to unsafe.Pointer so it
// can be stored inside cache metadata.
func UnsafePointer[T any](p *T) unsafe.Pointer { return unsafe.Pointer(p) }
