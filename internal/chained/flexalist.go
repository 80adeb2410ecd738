// Package chained implements the portable "chained" pair-normalizer back
// end: canonical pairs are located by a two-level lookup keyed on the
// pair's tail.
//
// © 2025 honspace authors. MIT License.
package chained

import (
	"sync/atomic"

	"github.com/hashcons/honspace/internal/value"
)

// smallLimit is the flex-alist promotion threshold: once a bucket would
// exceed 18 entries it is promoted from a small association array to a
// map.
const smallLimit = 18

type entry struct {
	key value.Value
	val *value.Pair
}

// bucketState is either a small association array or a large map, never
// both at once. Growing the small array and promoting it to a map build a
// fresh bucketState and swap it into the Bucket's atomic.Pointer, so an
// interrupted reader always observes a complete state; overwriting an
// existing small entry and inserting into an already-large map mutate the
// installed state in place (see Insert).
type bucketState struct {
	small []entry
	large map[value.Value]*value.Pair
}

func (s *bucketState) get(k value.Value) (*value.Pair, bool) {
	if s.large != nil {
		v, ok := s.large[k]
		return v, ok
	}
	for _, e := range s.small {
		if e.key == k {
			return e.val, true
		}
	}
	return nil, false
}

// Bucket is a "flex alist": small-then-large polymorphic associative
// container. The transition from small to large is atomic from the
// caller's perspective.
type Bucket struct {
	st atomic.Pointer[bucketState]
}

// NewBucket returns an empty flex alist.
func NewBucket() *Bucket {
	b := &Bucket{}
	b.st.Store(&bucketState{small: make([]entry, 0, 4)})
	return b
}

// Get looks up k in the bucket.
func (b *Bucket) Get(k value.Value) (*value.Pair, bool) {
	return b.st.Load().get(k)
}

// Insert adds or overwrites k -> v. If the bucket is already a large map,
// the map is mutated in place — honspace has exactly one owner per HS, so
// there is no concurrent reader to protect against a half-written map the
// way there is for the small->large promotion, which must still build its
// replacement state in full before becoming visible.
func (b *Bucket) Insert(k value.Value, v *value.Pair) {
	cur := b.st.Load()

	if cur.large != nil {
		cur.large[k] = v
		return
	}

	for i := range cur.small {
		if cur.small[i].key == k {
			// Overwrite in place is safe: same slot, same length, the
			// bucket's shape does not change.
			cur.small[i].val = v
			return
		}
	}

	if len(cur.small) >= smallLimit {
		large := make(map[value.Value]*value.Pair, (len(cur.small)+1)*2)
		for _, e := range cur.small {
			large[e.key] = e.val
		}
		large[k] = v
		b.st.Store(&bucketState{large: large})
		return
	}

	next := make([]entry, len(cur.small)+1)
	copy(next, cur.small)
	next[len(cur.small)] = entry{key: k, val: v}
	b.st.Store(&bucketState{small: next})
}

// Len reports the number of entries currently held, for diagnostics.
func (b *Bucket) Len() int {
	s := b.st.Load()
	if s.large != nil {
		return len(s.large)
	}
	return len(s.small)
}
