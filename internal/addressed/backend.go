package addressed

import (
	"unsafe"

	"github.com/hashcons/honspace/internal/combine"
	"github.com/hashcons/honspace/internal/critsec"
	"github.com/hashcons/honspace/internal/normcache"
	"github.com/hashcons/honspace/internal/unsafehelpers"
	"github.com/hashcons/honspace/internal/value"
)

// Backend is the addressed pair-normalizer back end.
type Backend struct {
	pool   *StablePool
	sbits  *SBits
	addrHt map[int64]*value.Pair

	strHt   map[string]uint64
	otherHt map[any]uint64

	symbolAddrs map[*value.Symbol]uint64

	cache *normcache.ArrayCache
}

// New constructs an empty addressed back end. maxSbits bounds sbits growth
// (0 uses defaultMaxArray).
func New(maxSbits int) *Backend {
	return &Backend{
		pool:        NewStablePool(),
		sbits:       NewSBits(maxSbits),
		addrHt:      make(map[int64]*value.Pair, 1024),
		strHt:       make(map[string]uint64, 256),
		otherHt:     make(map[any]uint64, 256),
		symbolAddrs: make(map[*value.Symbol]uint64, 256),
		cache:       normcache.NewArrayCache(),
	}
}

// anchorDynamicAtom allocates a dedicated stable pair to anchor x's
// address. Any other atom x that needs one is paired with a dedicated
// stable pair whose index provides x's address. The anchor pair's own
// shape is irrelevant; (x . x) keeps it self-describing for diagnostics.
// The anchor is not a normed pair, so its sbits bit stays clear; wash
// therefore never inspects or frees its slot, and the index is not handed
// out again before Clear.
func (b *Backend) anchorDynamicAtom(x value.Value) uint64 {
	anchor := value.NewPair(x, x)
	idx := b.pool.Alloc(anchor)
	return DynamicBase + uint64(idx)
}

// Address returns x's address, assigning a dynamic one on first use for
// atoms that need it.
func (b *Backend) Address(x value.Value) uint64 {
	if addr, ok := staticAddress(x); ok {
		return addr
	}
	switch v := x.(type) {
	case *value.Pair:
		idx, ok := b.pool.IndexOf(v)
		if !ok {
			panic("honspace: address requested for an un-normed pair")
		}
		return DynamicBase + uint64(idx)
	case *value.Symbol:
		return b.symbolAddress(v)
	case string:
		if addr, ok := b.strHt[v]; ok {
			return addr
		}
		addr := b.anchorDynamicAtom(v)
		b.strHt[v] = addr
		return addr
	default:
		key := value.AtomKey(x)
		if addr, ok := b.otherHt[key]; ok {
			return addr
		}
		addr := b.anchorDynamicAtom(x)
		b.otherHt[key] = addr
		return addr
	}
}

// NormAtom implements the addressed back end's atom normalizer: symbols,
// characters and numbers pass through unchanged (already canonical);
// strings and other addressable atoms are assigned an address as a side
// effect so they participate in addrHt lookups, but the atom value itself
// is still returned unchanged.
func (b *Backend) NormAtom(x value.Value) value.Value {
	switch x.(type) {
	case string:
		b.Address(x)
		return x
	case *value.Symbol:
		b.Address(x)
		return x
	default:
		if _, static := staticAddress(x); static {
			return x
		}
		if _, isPair := x.(*value.Pair); !isPair {
			b.Address(x)
		}
		return x
	}
}

// IsNormed implements the fast-path check for the addressed back end:
// test the sbits bit for p's stable index.
func (b *Backend) IsNormed(p *value.Pair) bool {
	idx, ok := b.pool.IndexOf(p)
	if !ok {
		return false
	}
	return b.sbits.Test(idx)
}

// canonicalPair implements the addressed constructor: look up by the
// combined address of head and tail, or allocate and register.
func (b *Backend) canonicalPair(head, tail value.Value, hint *value.Pair) *value.Pair {
	key := combine.Combine(b.Address(head), b.Address(tail))
	if p, ok := b.addrHt[key]; ok {
		return p
	}
	p := adopt(hint, head, tail)
	critsec.Do("addressed.canonicalPair", func() {
		idx := b.pool.Alloc(p)
		b.sbits.Set(idx)
		b.addrHt[key] = p
	})
	return p
}

func adopt(hint *value.Pair, head, tail value.Value) *value.Pair {
	if hint != nil && hint.Head == head && hint.Tail == tail {
		return hint
	}
	return value.NewPair(head, tail)
}

// Norm is structured identically to the chained back end's Norm
// (internal/chained/normalizer.go): an explicit work stack walks the tail
// spine so deep lists never recurse on the Go call stack, and the
// fixed-array norm cache is consulted by machine address.
func (b *Backend) Norm(x value.Value) value.Value {
	p, ok := x.(*value.Pair)
	if !ok {
		return b.NormAtom(x)
	}
	if b.IsNormed(p) {
		return p
	}

	wl := value.NewWorklist(8)
	cur := value.Value(p)
	for {
		cp, ok := cur.(*value.Pair)
		if !ok {
			break
		}
		if b.IsNormed(cp) {
			break
		}
		addr := pairMachineAddress(cp)
		if cached, ok := b.cache.Get(addr, cp); ok {
			cur = cached
			break
		}
		wl.Push(cp)
		cur = cp.Tail
	}

	normedTail := b.Norm(cur)
	for {
		v, ok := wl.Pop()
		if !ok {
			break
		}
		cp := v.(*value.Pair)
		normedHead := b.Norm(cp.Head)
		canon := b.canonicalPair(normedHead, normedTail, cp)
		b.cache.Set(pairMachineAddress(cp), cp, canon)
		normedTail = canon
	}
	return normedTail
}

// NumberSubtrees counts the distinct (by identity) pairs reachable from the
// canonical form of x.
func (b *Backend) NumberSubtrees(x value.Value) int {
	normed := b.Norm(x)
	seen := make(map[*value.Pair]struct{})
	var walk func(value.Value)
	walk = func(v value.Value) {
		p, ok := v.(*value.Pair)
		if !ok {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		walk(p.Head)
		walk(p.Tail)
	}
	walk(normed)
	return len(seen)
}

// Clear wipes the norm cache, pool, sbits and address tables. Reinstalling
// persistent roots and fast-alist keys is driven by pkg/hons/clear.go
// calling Norm again on each root, exactly as for the chained back end:
// Norm's hint-adoption already reuses the original pair objects when
// their Head/Tail are unchanged, which is all "restore" means here.
func (b *Backend) Clear() {
	b.cache.Clear()
	b.pool.Reset()
	b.sbits.Reset()
	b.addrHt = make(map[int64]*value.Pair, 1024)
	b.strHt = make(map[string]uint64, 256)
	b.otherHt = make(map[any]uint64, 256)
	// symbolAddrs is this Backend's own table, and its addresses point at
	// anchor slots in the pool that was just reset, so it is dropped too;
	// the process-global mutex still guards the swap.
	globalSymbolMu.Lock()
	b.symbolAddrs = make(map[*value.Symbol]uint64, 256)
	globalSymbolMu.Unlock()
}

// SetSbitsGrowthHook installs a callback invoked every time sbits grows its
// backing array.
func (b *Backend) SetSbitsGrowthHook(fn func()) {
	b.sbits.SetOnGrow(fn)
}

// SbitsLiveIndices returns every stable index wash should inspect.
func (b *Backend) SbitsLiveIndices() []uint32 {
	var out []uint32
	for i := 0; i < b.pool.Len(); i++ {
		if b.sbits.Test(uint32(i)) {
			out = append(out, uint32(i))
		}
	}
	return out
}

// PoolAt resolves a stable index to its pair, or nil if the host GC
// reclaimed it.
func (b *Backend) PoolAt(idx uint32) *value.Pair { return b.pool.At(idx) }

// ReviveOrFree implements the per-index wash step: if the host still has
// the pair, recompute its key and reinsert into addrHt; otherwise free
// the slot and clear its bit.
func (b *Backend) ReviveOrFree(idx uint32) {
	p := b.pool.At(idx)
	if p == nil {
		b.sbits.Clear(idx)
		b.pool.Free(idx)
		return
	}
	key := combine.Combine(b.Address(p.Head), b.Address(p.Tail))
	b.addrHt[key] = p
}

// ResetWashTables swaps empty placeholders into addrHt while leaving
// sbits/pool intact for the sweep that follows.
func (b *Backend) ResetWashTables() {
	b.addrHt = make(map[int64]*value.Pair, 1024)
	b.cache.Clear()
}

// pairMachineAddress returns a pointer-derived value used purely as a hash
// input for the fixed-array norm cache; it is never exposed outside this
// package and never used as an address-invariant-bearing address.
func pairMachineAddress(p *value.Pair) uintptr {
	return unsafehelpers.Addr(unsafe.Pointer(p))
}
