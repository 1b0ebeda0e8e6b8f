// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/emer/ansyn/fgn"
	"github.com/emer/ansyn/pla"
	"github.com/emer/ansyn/synrand"
	"github.com/emer/emergent/timer"
	"github.com/spf13/cobra"
)

// bench command flags
var (
	benchSteps int
	benchReps  int
	benchSeed  int64
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the power-law adaptation variants on synthetic input",
	Long: `bench filters a synthetic input with each power-law adaptation variant
and reports the time per call and the agreement between the variants.
The exact convolution is quadratic in the number of steps, the cascade
approximation is linear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchSteps <= 0 {
			return fmt.Errorf("bench: --steps must be positive, got %d", benchSteps)
		}
		in := make([]float64, benchSteps)
		for i := range in {
			in[i] = 100 + 500*math.Max(0, math.Sin(2*math.Pi*float64(i)/float64(benchSteps)))
		}
		noise, err := fgn.NewGenerator(fgn.Random, synrand.New(benchSeed), nil).Gen(benchSteps, 100)
		if err != nil {
			return err
		}
		pp := &pla.Params{}
		pp.Defaults()

		outs := make([][]float64, pla.VariantN)
		for v := pla.Variant(0); v < pla.VariantN; v++ {
			flt, err := pla.New(v, pp)
			if err != nil {
				return err
			}
			tmr := timer.Time{}
			for r := 0; r < benchReps; r++ {
				tmr.Start()
				outs[v] = flt.Filter(in, noise)
				tmr.Stop()
			}
			fmt.Fprintf(os.Stdout, "%-12v\tsteps: %d\treps: %d\tsecs/call: %8.4g\n", v, benchSteps, benchReps, tmr.TotalSecs()/float64(benchReps))
		}
		if benchReps == 0 {
			return nil
		}
		maxd, peak := 0.0, 0.0
		for i, a := range outs[pla.Approximate] {
			maxd = math.Max(maxd, math.Abs(a-outs[pla.Actual][i]))
			peak = math.Max(peak, math.Abs(outs[pla.Actual][i]))
		}
		if peak > 0 {
			fmt.Fprintf(os.Stdout, "max difference: %.4g (%.3g of peak)\n", maxd, maxd/peak)
		}
		mem := 8 * (len(in) + len(noise) + int(pla.VariantN)*benchSteps)
		fmt.Fprintf(os.Stdout, "buffers: %v\n", datasize.ByteSize(mem).HumanReadable())
		return nil
	},
}

func init() {
	fs := benchCmd.Flags()
	fs.IntVar(&benchSteps, "steps", 2000, "number of internal samples to filter")
	fs.IntVar(&benchReps, "reps", 5, "number of timed calls per variant")
	fs.Int64Var(&benchSeed, "seed", 1, "random seed for the noise")
}
