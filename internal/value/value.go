// Package value defines the recursive value grammar honspace normalizes:
// every value is either an atom (symbol, character, string, integer, float,
// or rational) or a pair of two values.
//
// Atoms are represented by native Go types wherever Go already gives us a
// comparable, identity-stable representation (string, int64, float64); the
// two exceptions — symbols and characters — get their own tiny wrapper
// types so a type switch can tell them apart from bare strings/runes
// without reflection.
//
// © 2025 honspace authors. MIT License.
package value

import (
	"math/big"

	"github.com/hashcons/honspace/internal/unsafehelpers"
)

// Value is any member of the grammar: an atom or a *Pair.
type Value = any

// Symbol is an interned name. Two Symbols with the same Name are the same
// symbol; construction always goes through Intern so identity equality on
// the returned Symbol pointer matches semantic equality.
type Symbol struct {
	Name string
}

var symbolTable = struct {
	m map[string]*Symbol
}{m: make(map[string]*Symbol, 1024)}

// Intern returns the canonical *Symbol for name, allocating it on first use.
// Symbols are process-wide shared so this table is global; callers needing
// concurrency safety should guard multi-goroutine use themselves —
// honspace's own addressed back-end does so in internal/addressed via its
// own mutex when assigning symbol addresses.
func Intern(name string) *Symbol {
	if s, ok := symbolTable.m[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	symbolTable.m[name] = s
	return s
}

// Char wraps a rune so it is distinguishable from a bare int32/rune value in
// a type switch. Characters are trivially normed: the rune-sized wrapper
// compares equal by value, and Go already gives Char value (not pointer)
// identity, so no intern table is required.
type Char rune

// Bool represents the boolean true; false is modeled as nil (the empty
// list doubles as false). Only True is ever constructed by honspace
// itself; it exists as its own type so the addressed back end can give it
// a single reserved static address.
type Bool bool

// True is the canonical boolean true atom.
var True = Bool(true)

// Pair is a mutable heap cell until the engine canonicalizes it; once a
// *Pair has been adopted as canonical by a back end it must never be
// mutated again. honspace does not enforce this at the type level — the
// contract is the caller's.
type Pair struct {
	Head Value
	Tail Value
}

// NewPair allocates a fresh, as-yet-uncanonicalized pair.
func NewPair(head, tail Value) *Pair {
	return &Pair{Head: head, Tail: tail}
}

// IsPair reports whether v is a *Pair.
func IsPair(v Value) (*Pair, bool) {
	p, ok := v.(*Pair)
	return p, ok
}

// Equal performs a full deep structural comparison, honoring identity as a
// shortcut: two identical pointers are equal without recursing.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	pa, aIsPair := a.(*Pair)
	pb, bIsPair := b.(*Pair)
	if aIsPair != bIsPair {
		return false
	}
	if aIsPair {
		if pa == pb {
			return true
		}
		return Equal(pa.Head, pb.Head) && Equal(pa.Tail, pb.Tail)
	}
	return atomEqual(a, b)
}

// EqualLite is the cheap-comparison fast path: identity first; once both
// sides are normed pairs a mismatch is conclusive (no recursion needed —
// that is the entire point of norming); otherwise it falls back to Equal.
// Callers are responsible for only calling this once both sides are
// known-normed pairs or atoms; honspace's facade wraps the normed check.
func EqualLite(a, b Value, aNormed, bNormed bool) bool {
	if a == b {
		return true
	}
	_, aIsPair := a.(*Pair)
	_, bIsPair := b.(*Pair)
	if aIsPair && bIsPair && aNormed && bNormed {
		return false
	}
	return Equal(a, b)
}

func atomEqual(a, b Value) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case *big.Rat:
		bv, ok := b.(*big.Rat)
		if !ok || bv == nil {
			return false
		}
		return av.Cmp(bv) == 0
	default:
		return a == b
	}
}

// AtomKey returns a Go-comparable key usable as a map key for atom x. Most
// atoms are already comparable; *big.Rat is the one exception, so we key it
// by its canonical string form. Used by internal/chained's tail-eql table
// and internal/addressed's atom-keyed table.
func AtomKey(x Value) any {
	if r, ok := x.(*big.Rat); ok {
		return r.RatString()
	}
	return x
}

// HashBytes returns a zero-copy byte view suitable for hashing a string
// atom, avoiding a copy on every hash.
func HashBytes(s string) []byte {
	return unsafehelpers.StringToBytes(s)
}
