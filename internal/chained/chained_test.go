package chained

import (
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

// TestIdempotence covers property 1.
func TestIdempotence(t *testing.T) {
	b := New(0)
	x := list(int64(1), int64(2), int64(3))
	n1 := b.Norm(x)
	n2 := b.Norm(n1)
	if n1 != n2 {
		t.Fatal("norm(norm(x)) should be identity-equal to norm(x)")
	}
}

// TestCanonicalizationBothDirections covers properties 2 and 3.
func TestCanonicalizationBothDirections(t *testing.T) {
	b := New(0)
	a := list(int64(1), int64(2))
	c := list(int64(1), int64(2))
	if a == c {
		t.Fatal("test fixture built identical pointers; fixture bug")
	}
	na := b.Norm(a)
	nc := b.Norm(c)
	if na != nc {
		t.Fatal("semantically equal values must norm to identity-equal results")
	}

	d := list(int64(1), int64(3))
	nd := b.Norm(d)
	if nd == na {
		t.Fatal("semantically distinct values must not norm to the same identity")
	}
}

// TestC1C2 covers property 4.
func TestC1C2(t *testing.T) {
	b := New(0)
	x := list(int64(1), int64(2), int64(3))
	n := b.Norm(x).(*value.Pair)
	if b.Norm(n.Head) != n.Head {
		t.Fatal("head of a normed pair must already be normed")
	}
	if b.Norm(n.Tail) != n.Tail {
		t.Fatal("tail of a normed pair must already be normed")
	}
}

// TestScenarioS1IdentityAfterNorm covers S1.
func TestScenarioS1IdentityAfterNorm(t *testing.T) {
	b := New(0)
	build := func() value.Value {
		return value.NewPair(int64(1), value.NewPair(int64(2), int64(3)))
	}
	n1 := b.Norm(build())
	n2 := b.Norm(build())
	if n1 != n2 {
		t.Fatal("S1: two separately built but equal structures must norm identically")
	}
}

// TestScenarioS2Sharing covers S2.
func TestScenarioS2Sharing(t *testing.T) {
	b := New(0)
	a := b.Norm(value.NewPair(int64(1), int64(2)))
	bb := b.canonicalPair(int64(1), int64(2), nil)
	if a != bb {
		t.Fatal("S2: hons(1,2) must be identity-equal to norm((1. 2))")
	}
}

func TestDeepListDoesNotExhaustStack(t *testing.T) {
	b := New(0)
	const depth = 200_000
	var x value.Value
	for i := 0; i < depth; i++ {
		x = value.NewPair(int64(i), x)
	}
	n := b.Norm(x)
	if n == nil {
		t.Fatal("expected a normed result for a deep list")
	}
}

func TestClearDropsNonPersistentValues(t *testing.T) {
	b := New(0)
	x := b.Norm(value.NewPair("drop", nil))
	b.Clear()
	y := b.Norm(value.NewPair("drop", nil))
	if x == y {
		t.Fatal("after Clear, re-norming a non-persistent value must not reuse the old identity")
	}
}
