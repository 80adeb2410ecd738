// Package normcache implements the bounded, identity-keyed memo of
// input->output norming results. It is a pure performance aid:
// correctness of norming never depends on a hit here, only on the
// back-end tables, so every variant is free to "forget" at any time.
//
// © 2025 honspace authors. MIT License.
package normcache

import "github.com/hashcons/honspace/internal/value"

// defaultMaxEntries is the reference entry budget used when a caller
// doesn't specify one.
const defaultMaxEntries = 400_000
const cutoffNumerator = 3
const cutoffDenominator = 4

// MapCache is the portable, open-map norm cache: a plain Go map from
// value identity to value identity, self-flushing once the live-entry
// counter would cross 3/4 of its budget.
//
// The counter is incremented *before* the insert that could trigger the
// flush, so an interruption between the increment and the insert can at
// worst cause one spurious early flush — it can never under-count and
// therefore never leave the map believing it has room when it does not.
type MapCache struct {
	m       map[value.Value]value.Value
	count   int64
	cutoff  int64
	maxSize int64
	onFlush func()
}

// NewMapCache constructs an open-map norm cache sized for maxEntries (pass
// 0 to use the reference default of 400,000).
func NewMapCache(maxEntries int64) *MapCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &MapCache{
		m:       make(map[value.Value]value.Value, 1024),
		maxSize: maxEntries,
		cutoff:  maxEntries * cutoffNumerator / cutoffDenominator,
	}
}

// SetOnFlush installs a callback invoked every time Set triggers a
// self-flush at the cutoff (not on an explicit Clear). Passing nil
// disables the callback.
func (c *MapCache) SetOnFlush(fn func()) {
	c.onFlush = fn
}

// Get looks up a prior norming result by input identity.
func (c *MapCache) Get(x value.Value) (value.Value, bool) {
	v, ok := c.m[x]
	return v, ok
}

// Set records x -> norm(x), self-flushing first if the counter would cross
// the cutoff.
func (c *MapCache) Set(x, normed value.Value) {
	if _, exists := c.m[x]; !exists {
		c.count++
		if c.count > c.cutoff {
			c.Clear()
			c.count = 1
			if c.onFlush != nil {
				c.onFlush()
			}
		}
	}
	c.m[x] = normed
}

// Clear discards every cached entry. Called by Clear/Wash and by
// self-flush above.
func (c *MapCache) Clear() {
	c.m = make(map[value.Value]value.Value, 1024)
	c.count = 0
}

// Len reports the live entry count, for diagnostics.
func (c *MapCache) Len() int { return len(c.m) }
