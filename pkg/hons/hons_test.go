package hons

import (
	"testing"

	"github.com/hashcons/honspace/internal/value"
)

func freshHS(t *testing.T, backend Backend) *HS {
	t.Helper()
	h, err := New(WithBackend(backend))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func list3(a, b, c value.Value) value.Value {
	return value.NewPair(a, value.NewPair(b, c))
}

func TestScenarioS1IdentityAfterNorm(t *testing.T) {
	for _, backend := range []Backend{ChainedBackend, AddressedBackend} {
		h := freshHS(t, backend)
		x1 := h.Norm(list3(int64(1), int64(2), int64(3)))
		x2 := h.Norm(list3(int64(1), int64(2), int64(3)))
		if x1 != x2 {
			t.Fatalf("backend %v: norm(x) twice did not converge to one identity", backend)
		}
	}
}

func TestScenarioS2Sharing(t *testing.T) {
	for _, backend := range []Backend{ChainedBackend, AddressedBackend} {
		h := freshHS(t, backend)
		a := h.Norm(value.NewPair(int64(1), int64(2)))
		b := h.Hons(int64(1), int64(2))
		if a != b {
			t.Fatalf("backend %v: norm((1.2)) != hons(1,2)", backend)
		}
	}
}

func TestScenarioS3FastAlistBasic(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	var h0 value.Value = int64(100)
	h1 := h.acons("a", int64(1), h0, false)
	h2 := h.acons("b", int64(2), h1, false)

	entry, ok := h.registry.Get("a", h2, h.normKeyFn(), h.diag)
	if !ok || entry.Tail != int64(1) {
		t.Fatalf("get(a, h2) = %v, %v; want 1, true", entry, ok)
	}
	entry, ok = h.registry.Get("b", h2, h.normKeyFn(), h.diag)
	if !ok || entry.Tail != int64(2) {
		t.Fatalf("get(b, h2) = %v, %v; want 2, true", entry, ok)
	}
	if _, ok := h.registry.Get("c", h2, h.normKeyFn(), h.diag); ok {
		t.Fatalf("get(c, h2) should miss")
	}
	if n := h.registry.Len(h2, h.normKeyFn(), h.consFor(false), h.diag); n != 2 {
		t.Fatalf("len(h2) = %d, want 2", n)
	}
}

func TestScenarioS4Shadowing(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	var empty value.Value
	inner := h.acons("a", int64(2), empty, false)
	outer := h.acons("a", int64(1), inner, false)
	entry, ok := h.registry.Get("a", outer, h.normKeyFn(), h.diag)
	if !ok || entry.Tail != int64(1) {
		t.Fatalf("get(a, h) = %v, %v; want 1, true", entry, ok)
	}
}

func TestScenarioS5PersistenceThroughClear(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	keep := h.CopyPersistent(value.NewPair("keep", nil))
	dropPair1 := h.Norm(value.NewPair("drop", nil))

	h.Clear(false)

	keepAgain := h.Norm(value.NewPair("keep", nil))
	if keep != keepAgain {
		t.Fatalf("persistent value's identity was not preserved across clear")
	}
	dropPair2 := h.Norm(value.NewPair("drop", nil))
	if dropPair1 == dropPair2 {
		t.Fatalf("expected a fresh pair identity for a non-persistent value after clear")
	}
}

func TestScenarioS6Combine(t *testing.T) {
	// Exercised directly in internal/combine; this just documents the
	// facade-visible consequence: equal-shaped pairs of large integers
	// (dynamically addressed, and so keyed through combine, on the
	// addressed back end) still converge after going through HS.Hons.
	for _, backend := range []Backend{ChainedBackend, AddressedBackend} {
		h := freshHS(t, backend)
		a := h.Hons(int64(1<<40), int64(2<<40))
		b := h.Hons(int64(1<<40), int64(2<<40))
		if a != b {
			t.Fatalf("backend %v: large-integer pairs did not converge to one identity", backend)
		}
	}
}

func TestIdempotence(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	n1 := h.Norm(list3(int64(1), int64(2), int64(3)))
	n2 := h.Norm(n1)
	if n1 != n2 {
		t.Fatalf("norming an already-normed value changed identity")
	}
}

func TestC1C2(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	p := h.Norm(value.NewPair(int64(1), int64(2))).(*value.Pair)
	if h.Norm(p.Head) != p.Head {
		t.Fatalf("C1 violated: norm(p.head) != p.head")
	}
	if h.Norm(p.Tail) != p.Tail {
		t.Fatalf("C2 violated: norm(p.tail) != p.tail")
	}
}

func TestWashIsNoopOnChainedBackend(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	a := h.Norm(value.NewPair(int64(1), int64(2)))
	h.Wash()
	b := h.Norm(value.NewPair(int64(1), int64(2)))
	if a != b {
		t.Fatalf("wash must not disturb the chained back end's identities")
	}
}

func TestWashPreservesReferencedIdentitiesOnAddressedBackend(t *testing.T) {
	h := freshHS(t, AddressedBackend)
	kept := h.Norm(value.NewPair(int64(7), int64(8)))
	h.Wash()
	again := h.Norm(value.NewPair(int64(7), int64(8)))
	if kept != again {
		t.Fatalf("wash must preserve the identity of a value still referenced by the caller")
	}
}

func TestResizeCacheDoesNotBreakCorrectness(t *testing.T) {
	h := freshHS(t, ChainedBackend)
	h.Resize(ResizeHints{NormCacheEntries: 10})
	a := h.Norm(value.NewPair(int64(1), int64(2)))
	b := h.Norm(value.NewPair(int64(1), int64(2)))
	if a != b {
		t.Fatalf("resize must not break canonicalization")
	}
}
