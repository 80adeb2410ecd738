package addressed

import (
	"sync"

	"github.com/hashcons/honspace/internal/value"
)

// globalSymbolMu guards first-touch address assignment for *value.Symbol
// across every addressed Backend in the process. Symbols themselves are
// interned process-globally (internal/value.Intern), so two independent
// Hons Spaces racing to assign the very first address for the same shared
// Symbol object need one shared lock, even though each Backend otherwise
// keeps its own, independent address table.
var globalSymbolMu sync.Mutex

// symbolAddress returns backend's address for sym, assigning one (and
// anchoring it to a fresh dedicated stable pair) on first use.
func (b *Backend) symbolAddress(sym *value.Symbol) uint64 {
	globalSymbolMu.Lock()
	defer globalSymbolMu.Unlock()

	if addr, ok := b.symbolAddrs[sym]; ok {
		return addr
	}
	addr := b.anchorDynamicAtom(sym)
	b.symbolAddrs[sym] = addr
	return addr
}
