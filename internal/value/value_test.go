package value

import (
	"bytes"
	"math/big"
	"testing"
)

func ratOneThird() *big.Rat { return big.NewRat(1, 3) }

func TestInternReturnsSameSymbol(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Fatalf("Intern(\"foo\") returned distinct symbols")
	}
	if Intern("bar") == a {
		t.Fatalf("distinct names interned to the same symbol")
	}
}

func TestEqualIdentityShortcut(t *testing.T) {
	p := NewPair(int64(1), int64(2))
	if !Equal(p, p) {
		t.Fatalf("a pair should equal itself")
	}
	q := NewPair(int64(1), int64(2))
	if !Equal(p, q) {
		t.Fatalf("structurally equal pairs should compare equal")
	}
}

func TestEqualLiteNormedMismatchIsConclusive(t *testing.T) {
	p := NewPair(int64(1), int64(2))
	q := NewPair(int64(1), int64(3))
	if EqualLite(p, q, true, true) {
		t.Fatalf("distinct normed pairs must never compare EqualLite")
	}
}

func TestHashBytesMatchesStringContent(t *testing.T) {
	s := "the quick brown fox"
	if !bytes.Equal(HashBytes(s), []byte(s)) {
		t.Fatalf("HashBytes must expose exactly s's bytes")
	}
}

func TestAtomKeyDedupesEqualRationals(t *testing.T) {
	r1 := ratOneThird()
	r2 := ratOneThird()
	if AtomKey(r1) != AtomKey(r2) {
		t.Fatalf("equal rationals must produce the same AtomKey")
	}
}
