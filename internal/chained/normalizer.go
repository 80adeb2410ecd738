package chained

import (
	"github.com/hashcons/honspace/internal/critsec"
	"github.com/hashcons/honspace/internal/normcache"
	"github.com/hashcons/honspace/internal/value"
)

// Backend is the chained pair-normalizer. It owns its canonical pairs
// outright — unlike the addressed back end, there is no host allocator
// involved; every *value.Pair reachable from a Backend's tables was
// allocated by this package.
type Backend struct {
	tables  *Tables
	atoms   *AtomTable
	cache   *normcache.MapCache
	onFlush func()
}

// New constructs an empty chained back end. cacheSize is the norm-cache
// entry budget.
func New(cacheSize int64) *Backend {
	return &Backend{
		tables: NewTables(),
		atoms:  NewAtomTable(),
		cache:  normcache.NewMapCache(cacheSize),
	}
}

// IsNormed is the fast-path check: scan the relevant flex alist for p and
// confirm the stored pair is p itself.
func (b *Backend) IsNormed(p *value.Pair) bool {
	t := b.tables.Load()
	switch classify(p.Tail) {
	case kindNull:
		existing, ok := t.nilTable[p.Head]
		return ok && existing == p
	case kindPointerComparable:
		bucket, ok := t.cdrTable[p.Tail]
		if !ok {
			return false
		}
		existing, ok := bucket.Get(p.Head)
		return ok && existing == p
	default:
		bucket, ok := t.cdrEqlTable[value.AtomKey(p.Tail)]
		if !ok {
			return false
		}
		existing, ok := bucket.Get(p.Head)
		return ok && existing == p
	}
}

// canonicalPair looks up by tail-shape, returning the existing pair on
// hit, else allocating (adopting hint when eligible) and inserting.
func (b *Backend) canonicalPair(head, tail value.Value, hint *value.Pair) *value.Pair {
	t := b.tables.Load()
	var result *value.Pair
	switch classify(tail) {
	case kindNull:
		if p, ok := t.nilTable[head]; ok {
			return p
		}
		p := adopt(hint, head, tail)
		critsec.Do("chained.canonicalPair.nil", func() { t.nilTable[head] = p })
		result = p
	case kindPointerComparable:
		bucket, ok := t.cdrTable[tail]
		if !ok {
			bucket = NewBucket()
			critsec.Do("chained.canonicalPair.newBucket", func() { t.cdrTable[tail] = bucket })
		}
		if p, ok := bucket.Get(head); ok {
			return p
		}
		p := adopt(hint, head, tail)
		bucket.Insert(head, p)
		result = p
	default:
		key := value.AtomKey(tail)
		bucket, ok := t.cdrEqlTable[key]
		if !ok {
			bucket = NewBucket()
			critsec.Do("chained.canonicalPair.newEqlBucket", func() { t.cdrEqlTable[key] = bucket })
		}
		if p, ok := bucket.Get(head); ok {
			return p
		}
		p := adopt(hint, head, tail)
		bucket.Insert(head, p)
		result = p
	}
	return result
}

// adopt is the hint optimization: if hint literally has head/tail as its
// own Head/Tail, reuse it instead of allocating a fresh pair.
func adopt(hint *value.Pair, head, tail value.Value) *value.Pair {
	if hint != nil && hint.Head == head && hint.Tail == tail {
		return hint
	}
	return value.NewPair(head, tail)
}

// Norm canonicalizes x. Deep right-leaning spines (the common Lisp-list
// shape) are walked with an explicit work stack instead of Go call-stack
// recursion, so norming tolerates pathologically deep structures.
//
// Norm doubles as the "restore" operation Clear/Wash need: calling Norm on
// a pair that used to be canonical, after its tables have been wiped,
// naturally reuses the original pair objects as their own hints (their
// Head/Tail never changed), so restoring a persistent root reinstalls the
// exact same identities rather than allocating fresh ones.
func (b *Backend) Norm(x value.Value) value.Value {
	p, ok := x.(*value.Pair)
	if !ok {
		return b.atoms.Norm(x)
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
		if cached, ok := b.cache.Get(cp); ok {
			cur = cached
			break
		}
		wl.Push(cp)
		cur = cp.Tail
	}

	normedTail := b.Norm(cur)
	for {
		cp, ok := wl.Pop()
		if !ok {
			break
		}
		cpPair := cp.(*value.Pair)
		normedHead := b.Norm(cpPair.Head)
		canon := b.canonicalPair(normedHead, normedTail, cpPair)
		b.cache.Set(cpPair, canon)
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

// Clear wipes the norm cache and the table aggregate (steps 1-2 for the
// chained back end). Reinstalling persistent roots and fast-alist keys
// (steps 3-4) is driven by pkg/hons/clear.go calling Norm again on each
// root, per the restore note above.
func (b *Backend) Clear() {
	b.cache.Clear()
	b.tables.Reset()
	b.atoms.Reset()
}

// CacheLen exposes the live norm-cache size for diagnostics.
func (b *Backend) CacheLen() int { return b.cache.Len() }

// ResizeCache installs a freshly sized norm cache, discarding the current
// one's contents. The cache is purely a speed hint, so losing its contents
// on resize is observationally harmless. The self-flush hook, if any, is
// carried over to the new cache.
func (b *Backend) ResizeCache(next *normcache.MapCache) {
	if b.onFlush != nil {
		next.SetOnFlush(b.onFlush)
	}
	b.cache = next
}

// SetCacheFlushHook installs a callback invoked whenever the norm cache
// self-flushes at its cutoff, surviving future ResizeCache calls.
func (b *Backend) SetCacheFlushHook(fn func()) {
	b.onFlush = fn
	b.cache.SetOnFlush(fn)
}
