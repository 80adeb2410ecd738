package chained

import "github.com/hashcons/honspace/internal/value"

// AtomTable implements the chained back end's atom normalizer. Symbols,
// characters and numbers are already canonical and pass through
// unchanged; strings are the one atom kind that needs dedup bookkeeping,
// even though Go's built-in string equality already makes two
// same-content strings interchangeable — the table still matters so the
// engine's own "is this value currently normed" bookkeeping (diagnostics,
// number_subtrees) has a single entry to point at.
type AtomTable struct {
	strHt map[string]string
}

// NewAtomTable constructs an empty atom table.
func NewAtomTable() *AtomTable {
	return &AtomTable{strHt: make(map[string]string, 256)}
}

// Norm returns the canonical representative for atom x.
func (a *AtomTable) Norm(x value.Value) value.Value {
	s, ok := x.(string)
	if !ok {
		return x
	}
	if c, ok := a.strHt[s]; ok {
		return c
	}
	a.strHt[s] = s
	return s
}

// Reset discards every interned string, called by Clear.
func (a *AtomTable) Reset() {
	a.strHt = make(map[string]string, 256)
}
