// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package resamp does the piecewise-linear resampling between the external
sampling rate of the receptor signal and the fixed internal rate of the
power-law adaptation filter.  Only integer rate ratios are supported.
*/
package resamp

import (
	"math"

	"github.com/goki/ki/ints"
)

// Factor returns the integer ratio between the external rate (1/tdres)
// and the internal rate sampFreq, rounded up.
func Factor(tdres, sampFreq float64) int {
	return int(math.Ceil(1 / (tdres * sampFreq)))
}

// DownLen returns the output length of Down for an input of length n.
func DownLen(n, factor int) int {
	return (n + factor - 1) / factor
}

// Down decimates in by factor, keeping every factor'th sample.
// Output length is ceil(len(in) / factor).
func Down(in []float64, factor int) []float64 {
	if factor <= 1 {
		out := make([]float64, len(in))
		copy(out, in)
		return out
	}
	out := make([]float64, DownLen(len(in), factor))
	for i := range out {
		out[i] = in[i*factor]
	}
	return out
}

// Up interpolates in by factor into n output samples.  Sample z*factor+b
// lies b/factor of the way from in[z] to in[z+1].  Output past the last
// interpolation interval holds the last input value.
func Up(in []float64, factor, n int) []float64 {
	out := make([]float64, n)
	if len(in) == 0 {
		return out
	}
	factor = ints.MaxInt(factor, 1)
	last := len(in) - 1
	for z := 0; z < last; z++ {
		st := z * factor
		if st >= n {
			return out
		}
		incr := (in[z+1] - in[z]) / float64(factor)
		for b := 0; b < factor && st+b < n; b++ {
			out[st+b] = in[z] + float64(b)*incr
		}
	}
	for j := last * factor; j < n; j++ {
		out[j] = in[last]
	}
	return out
}
