// Package bench provides reproducible micro-benchmarks for honspace.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// We measure:
//  1. Norm         - norming a fresh (uncached) tree each iteration
//  2. NormRepeat   - norming the *same* tree repeatedly (already-normed fast path)
//  3. NormParallel - concurrent norming of a shared dataset (b.RunParallel),
//     one HS per goroutine since an HS is single-owner
//  4. Acons        - fast-alist insertion
//  5. Get          - fast-alist lookup after warm-up
//
// Results are printed in ns/op + alloc/op so CI can diff via benchstat.
//
// NOTE: Unit tests live alongside the packages under test; this file is
// only for performance.
//
// © 2025 honspace authors. MIT License.
package bench

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/hashcons/honspace/internal/value"
	"github.com/hashcons/honspace/pkg/hons"
)

/* -------------------------------------------------------------------------
   Test harness helpers
   ------------------------------------------------------------------------- */

const (
	treeCount = 1 << 14 // distinct trees in the dataset
	treeDepth = 5
)

func newTestHS(backend hons.Backend) *hons.HS {
	h, err := hons.New(hons.WithBackend(backend))
	if err != nil {
		panic(err)
	}
	return h
}

// dataset holds treeCount distinct, unnormed value trees built from a small
// atom alphabet so repeated runs see structural sharing once normed.
var dataset = func() []value.Value {
	rnd := rand.New(rand.NewSource(42))
	out := make([]value.Value, treeCount)
	for i := range out {
		out[i] = genTree(rnd, treeDepth)
	}
	return out
}()

func genTree(rnd *rand.Rand, depth int) value.Value {
	if depth <= 0 || rnd.Intn(3) == 0 {
		return rnd.Int63n(256)
	}
	return value.NewPair(genTree(rnd, depth-1), genTree(rnd, depth-1))
}

/* -------------------------------------------------------------------------
   Benchmarks
   ------------------------------------------------------------------------- */

func BenchmarkNormChained(b *testing.B) {
	h := newTestHS(hons.ChainedBackend)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Norm(dataset[i&(treeCount-1)])
	}
}

func BenchmarkNormAddressed(b *testing.B) {
	h := newTestHS(hons.AddressedBackend)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Norm(dataset[i&(treeCount-1)])
	}
}

func BenchmarkNormRepeat(b *testing.B) {
	h := newTestHS(hons.ChainedBackend)
	tree := dataset[0]
	h.Norm(tree) // warm the cache
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Norm(tree)
	}
}

func BenchmarkNormParallel(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		h := newTestHS(hons.ChainedBackend)
		idx := rand.Intn(treeCount)
		for pb.Next() {
			idx = (idx + 1) & (treeCount - 1)
			h.Norm(dataset[idx])
		}
	})
}

func BenchmarkAcons(b *testing.B) {
	h := newTestHS(hons.ChainedBackend)
	var handle value.Value
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handle = h.Acons(int64(i&0xffff), int64(i), handle, false)
	}
}

func BenchmarkGet(b *testing.B) {
	h := newTestHS(hons.ChainedBackend)
	var handle value.Value
	const keys = 1 << 12
	for i := 0; i < keys; i++ {
		handle = h.Acons(int64(i), int64(i*2), handle, false)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Get(int64(i&(keys-1)), handle)
	}
}

/* -------------------------------------------------------------------------
   Utility - let parallel benchmarks use every CPU
   ------------------------------------------------------------------------- */

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}
