package hons

// resize.go implements Resize: per-table capacity hints, each requested
// budget applied as given.
//
// © 2025 honspace authors. MIT License.

import "github.com/hashcons/honspace/internal/normcache"

// ResizeHints are capacity hints for hons_resize; zero fields are left at
// their current value.
type ResizeHints struct {
	// NormCacheEntries resizes the chained back end's norm cache budget.
	NormCacheEntries int64
	// FastAlistShadowHint is applied to the next shadow map this HS
	// allocates from an atom handle (acons's "hint" parameter default).
	FastAlistShadowHint int
}

// Resize applies capacity hints. A cache resize takes effect by discarding
// the current cache contents and installing a freshly sized one — resizing
// is never expected to preserve entries, matching the norm cache's
// documented role as a pure speed hint.
func (h *HS) Resize(hints ResizeHints) {
	if hints.NormCacheEntries > 0 && h.backendKind == ChainedBackend {
		h.chainedBE.ResizeCache(normcache.NewMapCache(hints.NormCacheEntries))
	}
	if hints.FastAlistShadowHint > 0 {
		h.defaultShadowHint = hints.FastAlistShadowHint
	}
}
