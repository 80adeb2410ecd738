// Package critsec documents and names the "no-interrupts critical section"
// discipline multi-step mutations require (an sbits set plus an address
// table insert; a fast-alist deregister/mutate/register sequence; a
// back-end table aggregate swap).
//
// Go has no portable user-mode signal-mask primitive, so Do does not
// actually block interruption — goroutine preemption, SIGSTOP, and process
// crashes can still land between any two Go statements. What Do provides
// instead is a single, auditable call site naming every such sequence in
// the codebase, so a reviewer (or a future maintainer) can check each one
// against the real guarantee: the sequence of plain memory writes inside
// it is ordered so that observing it after an interruption at any point
// still finds the invariants intact. See DESIGN.md for why this ordering
// discipline, not a platform primitive, is the actual mechanism.
//
// © 2025 honspace authors. MIT License.
package critsec

// Do runs fn as a named critical section. It adds no synchronization of
// its own — every caller's fn must already be safe to observe mid-sequence
// by construction (ordering, not locking).
func Do(name string, fn func()) {
	fn()
}
