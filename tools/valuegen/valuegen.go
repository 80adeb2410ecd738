// valuegen.go is a tiny helper utility to generate deterministic trees of
// cons pairs for standalone benchmarking of honspace (outside `go test`).
// It emits one S-expression-shaped line per tree, built from a Zipf-ish or
// uniform distribution over a small atom alphabet, so that later norm
// passes see a realistic amount of structural sharing.
//
// Usage:
//
//	go run ./tools/valuegen -n 100000 -depth 6 -dist=zipf -seed=42 -out trees.txt
//
// Flags:
//
//	-n       number of trees to generate (default 100000)
//	-depth   max nesting depth of each generated tree (default 6)
//	-alpha   size of the atom alphabet each tree draws leaves from (default 64)
//	-dist    distribution over the atom alphabet: "uniform" or "zipf"
//	-zipfs   Zipf s parameter (>1)  (default 1.2)
//	-zipfv   Zipf v parameter (>=1) (default 1.0)
//	-seed    RNG seed (default current time)
//	-out     output file (default stdout)
//
// The program is placed under version control so a contributor can
// regenerate the exact dataset used in a performance regression hunt.
//
// Adapted from the dataset-generation tool this project's benchmarking
// tools descend from.
//
// © 2025 honspace authors. MIT License.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

func main() {
	var (
		n       = flag.Int("n", 100_000, "number of trees to generate")
		depth   = flag.Int("depth", 6, "max nesting depth of each tree")
		alpha   = flag.Int("alpha", 64, "size of the atom alphabet")
		dist    = flag.String("dist", "zipf", "distribution over the alphabet: uniform or zipf")
		zipfS   = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = func() uint64 { return rnd.Uint64() % uint64(*alpha) }
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, uint64(*alpha)-1)
		gen = z.Uint64
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	for i := 0; i < *n; i++ {
		var sb strings.Builder
		writeTree(&sb, gen, *depth)
		fmt.Fprintln(w, sb.String())
	}
}

// writeTree appends a parenthesized S-expression of random depth (capped by
// maxDepth) to sb, drawing leaf atoms from gen. At maxDepth 0 it always
// emits a leaf, guaranteeing termination.
func writeTree(sb *strings.Builder, gen func() uint64, maxDepth int) {
	if maxDepth <= 0 || gen()%3 == 0 {
		sb.WriteString(strconv.FormatUint(gen(), 10))
		return
	}
	sb.WriteByte('(')
	writeTree(sb, gen, maxDepth-1)
	sb.WriteByte(' ')
	writeTree(sb, gen, maxDepth-1)
	sb.WriteByte(')')
}
