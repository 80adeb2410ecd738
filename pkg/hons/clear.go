package hons

// clear.go implements Clear. The ordering below is contractually
// important: an interruption at any step must leave the HS in a
// consistent, if possibly emptier, state — swap in empty back-end tables
// first, then re-norm roots directly into those live tables. There is no
// separate install step at the end, and the fast-alist registry and the
// persistence set are never swapped out.
//
// © 2025 honspace authors. MIT License.

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/hashcons/honspace/internal/value"
)

// Clear drops every canonical pair except those reachable from the
// persistence set and the live fast-alists. If doGC is true a full GC is
// requested after the tables are dropped, before roots are reinstalled,
// so freed canonical pairs have a chance to actually be reclaimed.
func (h *HS) Clear(doGC bool) {
	h.metrics.incClear()
	h.clearCount++
	h.logger.Info("clear", zap.Bool("gc", doGC), zap.Uint64("count", h.clearCount))

	// Step 1-2: wipe the norm cache and back-end tables in one call. The
	// chained back end installs a fresh empty table aggregate via a single
	// atomic swap; the addressed back end resets its pool, sbits and
	// address tables one field at a time.
	h.normalizer().Clear()

	if doGC {
		runtime.GC()
	}

	// Step 3: reinstall persistent roots and fast-alist keys into the now
	// empty back end. Norm's hint-adoption reuses each root's own pair
	// objects as their own hints, so this naturally reconstructs the same
	// identities rather than allocating fresh ones wherever the old tree is
	// still reachable from Go's perspective (it always is: roots are kept
	// alive by h.persistentRoots itself).
	h.mu.Lock()
	roots := h.persistentRoots
	h.mu.Unlock()

	seen := make(map[*value.Pair]struct{}, len(roots))
	for i, r := range roots {
		roots[i] = h.reinstall(r, seen)
	}

	// Reinstall every live fast-alist's key set: each handle is itself an
	// ordinary list of (key.value) entries, so re-norming it restores the
	// canonical identity of every key it references.
	for _, handle := range h.registry.Handles() {
		h.reinstall(handle, seen)
	}

	h.mu.Lock()
	h.persistentRoots = roots
	h.mu.Unlock()

	// Step 4: the back-end tables are already live (Norm above installed
	// entries into them directly); nothing further to swap in.
}

// reinstall recursively re-norms v into the current (just-cleared) back
// end, skipping subtrees already visited via seen so shared structure
// isn't redundantly re-walked.
func (h *HS) reinstall(v value.Value, seen map[*value.Pair]struct{}) value.Value {
	p, ok := v.(*value.Pair)
	if !ok {
		return h.Norm(v)
	}
	if _, ok := seen[p]; ok {
		return p
	}
	seen[p] = struct{}{}
	return h.Norm(p)
}
