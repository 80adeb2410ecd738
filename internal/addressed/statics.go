package addressed

import "github.com/hashcons/honspace/internal/value"

// Static address assignment:
// 0..255: character code points
// 256: null
// 257: boolean true
// 258..258+N-1: small integers, N covering at least [-2^14, 2^23]
const (
	staticCharBase = 0
	staticCharCount = 256
	staticNull = uint64(staticCharBase + staticCharCount)
	staticTrue = staticNull + 1
	staticSmallBase = staticTrue + 1

	smallIntMin = -(1 << 14)
	smallIntMax = 1 << 23
)

// smallIntCount is N: the number of small integers given static addresses.
const smallIntCount = smallIntMax - smallIntMin + 1

// DynamicBase is the first address handed out to dynamically-addressed
// values (stable pairs and the atoms anchored to them).
const DynamicBase = staticSmallBase + smallIntCount

// staticAddress returns the static address for x and true, or (0, false)
// if x needs a dynamic address instead.
func staticAddress(x value.Value) (uint64, bool) {
	switch v := x.(type) {
	case value.Char:
		if v >= 0 && int(v) < staticCharCount {
			return uint64(v), true
		}
		return 0, false
	case value.Bool:
		if bool(v) {
			return staticTrue, true
		}
		return 0, false
	case int64:
		if v >= smallIntMin && v <= smallIntMax {
			return staticSmallBase + uint64(v-smallIntMin), true
		}
		return 0, false
	case nil:
		return staticNull, true
	default:
		return 0, false
	}
}
