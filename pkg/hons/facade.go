package hons

// facade.go exposes honspace's external interface as package-level
// functions operating on a package-level default *HS, mirroring a
// constructable type plus convenience wrappers at the package level.
//
// © 2025 honspace authors. MIT License.

import (
	"sync"

	"github.com/hashcons/honspace/internal/fastalist"
	"github.com/hashcons/honspace/internal/value"
)

var (
	defaultOnce sync.Once
	defaultHS   *HS
)

// Default returns the package-level default Hons Space, constructing it
// with the chained back end on first use.
func Default() *HS {
	defaultOnce.Do(func() {
		h, err := New()
		if err != nil {
			panic(err) // defaultConfig() is always valid; this cannot happen
		}
		defaultHS = h
	})
	return defaultHS
}

// Hons canonicalizes x and y and builds their canonical pair on the
// default HS.
func Hons(x, y value.Value) value.Value { return Default().Hons(x, y) }

// HonsCopy canonicalizes x on the default HS.
func HonsCopy(x value.Value) value.Value { return Default().Norm(x) }

// HonsCopyPersistent canonicalizes x and marks it persistent on the
// default HS.
func HonsCopyPersistent(x value.Value) value.Value { return Default().CopyPersistent(x) }

// HonsEqual performs a full deep structural comparison.
func HonsEqual(x, y value.Value) bool { return Default().Equal(x, y) }

// HonsEqualLite performs the identity-first, normed-pair-conclusive
// comparison.
func HonsEqualLite(x, y value.Value) bool { return Default().EqualLite(x, y) }

// honsCons and plainConsFn adapt HS.Hons/value.NewPair to
// fastalist.ConsFunc's shape, for the acons/shrink wrappers below.
func (h *HS) honsCons(head, tail value.Value) value.Value { return h.Hons(head, tail) }
func plainConsFn(head, tail value.Value) value.Value      { return value.NewPair(head, tail) }

func (h *HS) normKeyFn() func(value.Value) value.Value {
	return h.Norm
}

// consFor selects the cons function acons/shrink use depending on
// wantHons: when true, both the entry and handle pairs are built through
// the canonical constructor so the resulting list is fully normed.
func (h *HS) consFor(wantHons bool) fastalist.ConsFunc {
	if wantHons {
		return h.honsCons
	}
	return plainConsFn
}

// acons is the shared implementation behind HonsAcons/HonsAconsBang.
func (h *HS) acons(key, val, handle value.Value, wantHons bool) value.Value {
	hint := h.defaultShadowHint
	result := h.registry.Acons(key, val, handle, hint, h.normKeyFn(), h.consFor(wantHons), h.diag)
	h.metrics.incFastAlistRegistration()
	return result
}

// Acons is the instance-bound form of HonsAcons/HonsAconsBang, for callers
// that constructed their own *HS (rather than using the package-level
// default) via New.
func (h *HS) Acons(k, v, a value.Value, wantHons bool) value.Value {
	return h.acons(k, v, a, wantHons)
}

// Get is the instance-bound form of HonsGet.
func (h *HS) Get(k, a value.Value) value.Value {
	entry, ok := h.registry.Get(k, a, h.normKeyFn(), h.diag)
	if !ok {
		return nil
	}
	return entry
}

// Summary is the instance-bound form of HonsSummary; it does not write to
// the diagnostics stream, only returns the structured snapshot.
func (h *HS) Summary() Summary { return h.summary() }

// HonsAcons implements acons without forcing the resulting entry/handle
// pairs through the canonical constructor.
func HonsAcons(k, v, a value.Value) value.Value { return Default().acons(k, v, a, false) }

// HonsAconsBang implements acons with normed entries.
func HonsAconsBang(k, v, a value.Value) value.Value { return Default().acons(k, v, a, true) }

// HonsGet implements lookup, returning the (k.v) cell or nil.
func HonsGet(k, a value.Value) value.Value {
	h := Default()
	entry, ok := h.registry.Get(k, a, h.normKeyFn(), h.diag)
	if !ok {
		return nil
	}
	return entry
}

// HonsShrinkAlist implements shrink_alist(a, seed).
func HonsShrinkAlist(a, seed value.Value) value.Value {
	h := Default()
	return h.registry.Shrink(a, seed, h.normKeyFn(), h.consFor(false), h.diag)
}

// HonsShrinkAlistBang implements shrink_alist_bang(a, seed).
func HonsShrinkAlistBang(a, seed value.Value) value.Value {
	h := Default()
	return h.registry.Shrink(a, seed, h.normKeyFn(), h.consFor(true), h.diag)
}

// FastAlistFree implements fast_alist_free(a).
func FastAlistFree(a value.Value) value.Value { return Default().registry.Free(a) }

// FastAlistLen implements fast_alist_len(a).
func FastAlistLen(a value.Value) int {
	h := Default()
	return h.registry.Len(a, h.normKeyFn(), h.consFor(false), h.diag)
}

// NumberSubtrees implements number_subtrees(x).
func NumberSubtrees(x value.Value) int { return Default().NumberSubtrees(x) }

// HonsClear implements clear(do_gc).
func HonsClear(doGC bool) { Default().Clear(doGC) }

// HonsWash implements wash().
func HonsWash() { Default().Wash() }

// HonsResize implements resize(...).
func HonsResize(hints ResizeHints) { Default().Resize(hints) }

// HonsSummary writes diagnostic text to the default HS's configured
// diagnostics stream and returns the structured form for callers (e.g. an
// HTTP JSON endpoint) that want it.
func HonsSummary() Summary {
	h := Default()
	s := h.summary()
	writeSummary(h.diag.out, s)
	return s
}

// FastAlistSummary implements fast_alist_summary().
func FastAlistSummary() {
	h := Default()
	note(h.diag.out, "fast_alist_handles=%d", len(h.registry.Handles()))
}

func (h *HS) summary() Summary {
	backendName := "chained"
	cacheEntries := 0
	if h.backendKind == AddressedBackend {
		backendName = "addressed"
	} else {
		cacheEntries = h.chainedBE.CacheLen()
	}
	h.mu.Lock()
	persistentRoots := len(h.persistentRoots)
	h.mu.Unlock()
	return Summary{
		Backend:          backendName,
		CacheEntries:     cacheEntries,
		PersistentRoots:  persistentRoots,
		FastAlistHandles: len(h.registry.Handles()),
		ClearCount:       h.clearCount,
		WashCount:        h.washCount,
	}
}
