package combine

import "testing"

// TestConcreteScenarioS6 checks worked examples spanning both branches.
func TestConcreteScenarioS6(t *testing.T) {
	if got := Combine(0, 0); got != 0 {
		t.Fatalf("combine(0,0) = %d, want 0", got)
	}
	if got := Combine(1, 0); got != -1073741824 {
		t.Fatalf("combine(1,0) = %d, want -1073741824", got)
	}
	want := cantorPair(1<<30, 0) - cantorOffset
	if got := Combine(1<<30, 0); got != want {
		t.Fatalf("combine(2^30,0) = %d, want %d", got, want)
	}
}

// TestInjective checks that combine never collides for distinct (a,b)
// pairs. We sample a broad grid spanning both the small-tagged and
// Cantor-pairing branches.
func TestInjective(t *testing.T) {
	samples := []uint64{0, 1, 2, 3, 5, 17, 1000,
		smallBound - 1, smallBound, smallBound + 1,
		1 << 31, 1 << 40, 1<<30 + 12345}

	seen := make(map[int64][2]uint64)
	for _, a := range samples {
		for _, b := range samples {
			key := Combine(a, b)
			if prev, ok := seen[key]; ok {
				if prev[0] == a && prev[1] == b {
					continue
				}
				t.Fatalf("collision: combine(%d,%d) == combine(%d,%d) == %d",
					prev[0], prev[1], a, b, key)
			}
			seen[key] = [2]uint64{a, b}
		}
	}
}

// TestSmallRangeNeverCollidesWithLargeRange spot-checks that the two
// branches are disjoint by construction (small branch <= 0, large branch is
// cantorPair(...) - cantorOffset, which is > 0 for any realistic input).
func TestSmallRangeNeverCollidesWithLargeRange(t *testing.T) {
	small := Combine(5, 7)
	large := Combine(1<<31, 1<<31)
	if small >= 0 {
		t.Fatalf("small-branch result %d should be <= 0", small)
	}
	if large <= 0 {
		t.Fatalf("large-branch result %d should be > 0", large)
	}
}
