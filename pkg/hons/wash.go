package hons

// wash.go implements Wash, addressed-back-end-only. The round is wrapped
// in golang.org/x/sync/singleflight so concurrent callers from a
// supervising goroutine (e.g. a periodic GC-pressure monitor) coalesce
// into one physical wash instead of each triggering its own runtime.GC.
//
// © 2025 honspace authors. MIT License.

import (
	"runtime"

	"go.uber.org/zap"
)

// Wash is a documented no-op on the chained back end, which owns its
// canonical pairs outright and so has nothing for the host GC to reclaim
// independently of the HS's own tables.
func (h *HS) Wash() {
	if h.backendKind != AddressedBackend {
		note(h.diag.out, "wash is a no-op on the chained back end")
		return
	}

	_, _, _ = h.washOnce.Do("wash", func() (any, error) {
		h.washLocked()
		return nil, nil
	})
}

func (h *HS) washLocked() {
	h.metrics.incWash()
	h.washCount++
	h.logger.Info("wash", zap.Uint64("count", h.washCount))
	be := h.addressedBE

	// Step 1-2: clear the norm cache and swap empty placeholders into
	// addr_ht (sbits/pool are left alone here; step 4's sweep needs the
	// prior sbits to know which indices to inspect).
	be.ResetWashTables()

	// Step 3: trigger a full GC and await completion. runtime.GC blocks
	// until the collection finishes.
	runtime.GC()

	// Step 4: for every index the prior sbits marked live, ask the host
	// (via the weak-pointer-backed stable pool) whether the pair survived;
	// dead slots are freed, survivors are reinserted into addr_ht.
	for _, idx := range be.SbitsLiveIndices() {
		be.ReviveOrFree(idx)
	}

	// Step 5: tables are already reinstalled in place by steps 2 and 4;
	// nothing further to swap in.
}
