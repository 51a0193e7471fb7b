// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command gen-testdata writes a synthetic IES file with random rows, for
// trying out the ies command without real game data.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/bpowers/ies/internal/iestest"
)

const (
	prefix    = "item_"
	suffixLen = 8
)

var columns = []iestest.Column{
	{Name: "ClassID", Type: iestest.TypeFloat, Position: 0},
	{Name: "ClassName", Name2: "class_name", Type: iestest.TypeString, Position: 1},
	{Name: "Weight", Type: iestest.TypeFloat, Position: 2},
	{Name: "Desc", Type: iestest.TypeString2, Position: 3},
	{Name: "Price", Type: iestest.TypeFloat, Position: 4},
}

func newRand() *rand.Rand {
	var seedBytes [8]byte
	_, _ = crand.Read(seedBytes[:])
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

// row returns values in physical order: numeric columns, then strings.
func row(rng *rand.Rand, i int) iestest.Row {
	var buf [suffixLen / 2]byte
	_, _ = rng.Read(buf[:])

	weight := float32(rng.Intn(1000)) / 4
	if rng.Intn(10) == 0 {
		weight = float32(math.NaN())
	}
	desc := ""
	if rng.Intn(2) == 0 {
		desc = fmt.Sprintf("generated row %d", i)
	}
	return iestest.Row{
		Preamble: []byte(fmt.Sprintf("%s%d", prefix, i)),
		Values: []any{
			float32(i + 1),
			weight,
			float32(rng.Intn(100000)),
			fmt.Sprintf("%s%x", prefix, buf),
			desc,
		},
	}
}

func main() {
	out := flag.String("o", "testdata.ies", "output path")
	nRows := flag.Int("rows", 1000, "number of rows (max 65535)")
	flag.Parse()

	if *nRows < 0 || *nRows > math.MaxUint16 {
		fmt.Fprintf(os.Stderr, "rows must be between 0 and %d\n", math.MaxUint16)
		os.Exit(1)
	}

	rows := make([]iestest.Row, *nRows)
	rng := newRand()
	for i := range rows {
		rows[i] = row(rng, i)
	}

	data, err := iestest.Build("SampleItem", columns, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: %s\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %s\n", err)
		os.Exit(1)
	}
}
