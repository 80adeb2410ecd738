package chained

import (
	"sync/atomic"

	"github.com/hashcons/honspace/internal/value"
)

// tailKind tags the shape of a pair's tail so the canonical-pair
// constructor can pick the right back-table without runtime type tests
// scattered through the code.
type tailKind int

const (
	kindNull tailKind = iota
	kindPointerComparable
	kindValueComparable
)

func classify(tail value.Value) tailKind {
	if tail == nil {
		return kindNull
	}
	switch tail.(type) {
	case *value.Pair, *value.Symbol, string:
		return kindPointerComparable
	default:
		return kindValueComparable
	}
}

// ctables is the aggregate of every chained back-end table. It is held
// behind a single atomic.Pointer so that Clear can swap in an empty
// replacement for the entire group in one instruction, never leaving one
// table refreshed while its siblings still hold stale canonicalizations.
type ctables struct {
	nilTable    map[value.Value]*value.Pair // tail == nil: head -> pair
	cdrTable    map[value.Value]*Bucket     // tail pointer-comparable -> flex alist of heads
	cdrEqlTable map[any]*Bucket             // tail value-comparable (AtomKey) -> flex alist of heads
}

func newCtables() *ctables {
	return &ctables{
		nilTable:    make(map[value.Value]*value.Pair, 1024),
		cdrTable:    make(map[value.Value]*Bucket, 1024),
		cdrEqlTable: make(map[any]*Bucket, 256),
	}
}

// Tables is the atomically-swappable holder for ctables used by Backend.
type Tables struct {
	p atomic.Pointer[ctables]
}

// NewTables constructs a fresh, empty table group.
func NewTables() *Tables {
	t := &Tables{}
	t.p.Store(newCtables())
	return t
}

// Load returns the current table group.
func (t *Tables) Load() *ctables { return t.p.Load() }

// Reset atomically swaps in a brand-new, empty table group, returning the
// previous one.
func (t *Tables) Reset() *ctables {
	old := t.p.Load()
	t.p.Store(newCtables())
	return old
}
