package hons

// diagnostics.go implements the diagnostics stream: `; Hons Note: `-prefixed
// lines, and the process-wide slow-alist policy. There is no third-party
// library for an ACL2-style comment-prefixed diagnostic stream, so this is
// stdlib-only (io, fmt, runtime.Breakpoint) by necessity, not by omission.
//
// © 2025 honspace authors. MIT License.

import (
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
)

// SlowAlistAction is the process-wide policy for slow-alist discipline
// violations.
type SlowAlistAction int

const (
	// SlowAlistOff suppresses the diagnostic entirely.
	SlowAlistOff SlowAlistAction = iota
	// SlowAlistWarn emits a diagnostic and continues (the default).
	SlowAlistWarn
	// SlowAlistBreak emits a diagnostic then calls runtime.Breakpoint.
	SlowAlistBreak
)

// slowAlistAction is process-global: a debugger break affects the whole
// process, so a thread-local override would not actually change what the
// user observes.
var slowAlistAction atomic.Value // SlowAlistAction

func init() {
	slowAlistAction.Store(SlowAlistWarn)
}

// SetSlowAlistAction updates the process-wide policy.
func SetSlowAlistAction(a SlowAlistAction) {
	slowAlistAction.Store(a)
}

func currentSlowAlistAction() SlowAlistAction {
	a, _ := slowAlistAction.Load().(SlowAlistAction)
	return a
}

// diagWriter implements internal/fastalist.DiagSink, bridging the
// registry's generic "slow alist" report to the HS's configured policy and
// output stream.
type diagWriter struct {
	out io.Writer
}

// SlowAlist implements fastalist.DiagSink.
func (d *diagWriter) SlowAlist(op string) {
	switch currentSlowAlistAction() {
	case SlowAlistOff:
		return
	case SlowAlistBreak:
		fmt.Fprintf(d.out, "; Hons Note: slow alist discipline violated in %s; breaking\n", op)
		runtime.Breakpoint()
	default: // SlowAlistWarn
		fmt.Fprintf(d.out, "; Hons Note: slow alist discipline violated in %s; falling back to linear scan\n", op)
	}
}

// note writes a single `; Hons Note: ` prefixed diagnostic line.
func note(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "; Hons Note: "+format+"\n", args...)
}

// Summary is the structured form of the diagnostics snapshot, exposed
// separately from the text rendering so a caller can also serve it as
// JSON (the field names are the ones cmd/honspace-inspect reads).
type Summary struct {
	Backend          string `json:"backend"`
	NormedPairs      int    `json:"normed_pairs"`
	CacheEntries     int    `json:"cache_entries"`
	PersistentRoots  int    `json:"persistent_roots"`
	FastAlistHandles int    `json:"fast_alist_handles"`
	ClearCount       uint64 `json:"clear_count"`
	WashCount        uint64 `json:"wash_count"`
}

// writeSummary renders a Summary as `; Hons Note: ` lines.
func writeSummary(w io.Writer, s Summary) {
	note(w, "backend=%s normed_pairs=%d cache_entries=%d persistent_roots=%d",
		s.Backend, s.NormedPairs, s.CacheEntries, s.PersistentRoots)
	note(w, "fast_alist_handles=%d clear_count=%d wash_count=%d",
		s.FastAlistHandles, s.ClearCount, s.WashCount)
}
