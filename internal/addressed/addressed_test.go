package addressed

import (
	"math/big"
	"runtime"
	"testing"

	"github.com/hashcons/honspace/internal/value"
)

func list(vals ...value.Value) value.Value {
	var tail value.Value
	for i := len(vals) - 1; i >= 0; i-- {
		tail = value.NewPair(vals[i], tail)
	}
	return tail
}

func TestIdempotence(t *testing.T) {
	b := New(0)
	x := list(int64(1), int64(2), int64(3))
	n1 := b.Norm(x)
	n2 := b.Norm(n1)
	if n1 != n2 {
		t.Fatalf("norming a normed value changed identity")
	}
}

func TestCanonicalizationBothDirections(t *testing.T) {
	b := New(0)
	a := list(int64(1), int64(2))
	c := list(int64(1), int64(2))
	if a == c {
		t.Fatalf("fresh pairs should not start identity-equal")
	}
	na := b.Norm(a)
	nc := b.Norm(c)
	if na != nc {
		t.Fatalf("structurally equal values did not converge to the same identity")
	}
}

func TestStaticAddressesStable(t *testing.T) {
	b := New(0)
	if b.Address(int64(5)) != b.Address(int64(5)) {
		t.Fatalf("small int address not stable")
	}
	if b.Address(value.Char('a')) == b.Address(value.Char('b')) {
		t.Fatalf("distinct characters collided on static address")
	}
	if b.Address(nil) == b.Address(value.True) {
		t.Fatalf("null and true collided on static address")
	}
}

func TestDynamicAddressAssignedOnce(t *testing.T) {
	b := New(0)
	s := "hello world this is not interned"
	a1 := b.Address(s)
	a2 := b.Address(s)
	if a1 != a2 {
		t.Fatalf("string address not stable across calls")
	}
}

func TestDeepListDoesNotExhaustStack(t *testing.T) {
	b := New(0)
	const depth = 200000
	var tail value.Value
	for i := 0; i < depth; i++ {
		tail = value.NewPair(int64(i), tail)
	}
	normed := b.Norm(tail)
	if normed == nil {
		t.Fatalf("expected non-nil normed result")
	}
}

func TestEqualRationalsConverge(t *testing.T) {
	b := New(0)
	r1 := big.NewRat(1, 3)
	r2 := big.NewRat(1, 3)
	p1 := b.Norm(value.NewPair(r1, nil))
	p2 := b.Norm(value.NewPair(r2, nil))
	if p1 != p2 {
		t.Fatalf("equal rationals in equal-shaped pairs should converge")
	}
}

func TestClearDropsTables(t *testing.T) {
	b := New(0)
	x := list(int64(1), int64(2))
	n1 := b.Norm(x)
	b.Clear()
	y := list(int64(1), int64(2))
	n2 := b.Norm(y)
	if n1 == n2 {
		t.Fatalf("expected a fresh identity after Clear, since the old pool was reset")
	}
}

func TestReviveOrFreeDropsReclaimedSlots(t *testing.T) {
	b := New(0)
	func() {
		x := list(int64(9), int64(10))
		b.Norm(x)
	}()
	indices := b.SbitsLiveIndices()
	if len(indices) == 0 {
		t.Fatalf("expected at least one live index after norming")
	}

	// Drop addrHt's strong references before GC'ing, since those (not the
	// pool) are what would otherwise keep every canonical pair reachable.
	b.ResetWashTables()
	runtime.GC()

	for _, idx := range indices {
		b.ReviveOrFree(idx)
	}
	for _, idx := range indices {
		if b.sbits.Test(idx) {
			t.Fatalf("expected slot %d to be reclaimed once its only references were dropped and GC ran", idx)
		}
	}
}

func TestNumberSubtreesSharesStructure(t *testing.T) {
	b := New(0)
	shared := list(int64(1), int64(2))
	outer := value.NewPair(shared, shared)
	normedOuter := b.Norm(outer)
	n := b.NumberSubtrees(normedOuter)
	if n != 3 {
		t.Fatalf("expected 3 distinct subtrees (outer pair + 2 shared-list pairs), got %d", n)
	}
}
