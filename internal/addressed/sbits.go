package addressed

import (
	"fmt"
	"sync/atomic"

	"github.com/hashcons/honspace/internal/unsafehelpers"
)

// defaultMaxArray stands in for the host array limit sbits capacity
// exhaustion checks against. It is generous enough that realistic
// workloads never hit it, while still being a real, enforced ceiling
// rather than unbounded growth.
const defaultMaxArray = 1 << 34 // bits; 2 GiB worth of sbits words

// wordBits is the width of one sbits backing word.
const wordBits = 64

func init() {
	if !unsafehelpers.IsPowerOfTwo(wordBits) {
		panic("honspace: sbits word size must be a power of two")
	}
}

// SBits is a growable bitset over stable-pair indices: bit i is 1 iff the
// pair with that stable index is currently normed.
//
// The backing word slice is held behind an atomic.Pointer so growth
// installs the replacement in a single store, never leaving a reader
// observing a half-grown array.
type SBits struct {
	bits     atomic.Pointer[[]uint64]
	maxArray int
	onGrow   func()
}

// NewSBits constructs an empty bitset with the given host capacity limit
// (0 uses defaultMaxArray).
func NewSBits(maxArray int) *SBits {
	if maxArray <= 0 {
		maxArray = defaultMaxArray
	}
	s := &SBits{maxArray: maxArray}
	empty := make([]uint64, 4)
	s.bits.Store(&empty)
	return s
}

// SetOnGrow installs a callback invoked every time grow installs a larger
// backing array. Passing nil disables the callback.
func (s *SBits) SetOnGrow(fn func()) {
	s.onGrow = fn
}

// grow allocates a new bit array of length
// min(maxArray, floor(max(current, index)*1.3)), copies the old bits, and
// installs the replacement in one store.
func (s *SBits) grow(index int) {
	cur := s.bits.Load()
	curBits := len(*cur) * 64
	if index < curBits {
		return
	}
	if index >= s.maxArray {
		panic(fmt.Sprintf("honspace: sbits capacity exhausted (index %d >= host limit %d)", index, s.maxArray))
	}
	target := int(float64(max(curBits, index+1)) * 1.3)
	if target > s.maxArray {
		target = s.maxArray
	}
	words := int(unsafehelpers.AlignUp(uintptr(target), wordBits) / wordBits)
	next := make([]uint64, words)
	copy(next, *cur)
	s.bits.Store(&next)
	if s.onGrow != nil {
		s.onGrow()
	}
}

// Set marks index as normed, growing the bitset first if necessary.
func (s *SBits) Set(index uint32) {
	i := int(index)
	s.grow(i)
	cur := s.bits.Load()
	(*cur)[i/64] |= 1 << uint(i%64)
}

// Clear unmarks index.
func (s *SBits) Clear(index uint32) {
	i := int(index)
	cur := s.bits.Load()
	if i/64 >= len(*cur) {
		return
	}
	(*cur)[i/64] &^= 1 << uint(i%64)
}

// Test reports whether index is currently marked normed.
func (s *SBits) Test(index uint32) bool {
	i := int(index)
	cur := s.bits.Load()
	if i/64 >= len(*cur) {
		return false
	}
	return (*cur)[i/64]&(1<<uint(i%64)) != 0
}

// Reset discards every bit, used by Clear/Wash.
func (s *SBits) Reset() {
	empty := make([]uint64, 4)
	s.bits.Store(&empty)
}
