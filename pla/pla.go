// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pla implements the power-law adaptation stage of the synapse model,
which converts the mapped receptor signal (plus fractional Gaussian noise)
into the synaptic release rate at the internal 10 kHz rate.

There are two adaptation branches, each fed back through its own power-law
kernel dt / ((k-j) dt + beta):

  - fast: max(0, in + noise - Alpha1 * I1), kernel time constant Beta1
  - slow: max(0, in - Alpha2 * I2), kernel time constant Beta2

and the output is the sum of the two branches.  The Actual variant computes
the feedback integrals directly, the Approximate variant uses a fixed
cascade of recursive sections fit to the default kernels.
*/
package pla

import (
	"fmt"
	"math"
)

// Params are the power-law adaptation parameters
type Params struct {
	Alpha1   float64 `def:"0.15" desc:"gain on the fast branch power-law feedback"`
	Alpha2   float64 `def:"1000" desc:"gain on the slow branch power-law feedback"`
	Beta1    float64 `def:"5e-4" desc:"time offset (s) of the fast branch power-law kernel"`
	Beta2    float64 `def:"0.1" desc:"time offset (s) of the slow branch power-law kernel"`
	SampFreq float64 `def:"10000" desc:"internal sampling rate (Hz) the filter runs at -- the Approximate coefficients assume 10 kHz"`

	BinWidth float64 `view:"-" desc:"1 / SampFreq -- time step of the filter"`
}

func (pp *Params) Defaults() {
	pp.Alpha1 = 1.5e-6 * 100e3
	pp.Alpha2 = 1e-2 * 100e3
	pp.Beta1 = 5e-4
	pp.Beta2 = 1e-1
	pp.SampFreq = 10e3
	pp.Update()
}

func (pp *Params) Update() {
	pp.BinWidth = 1 / pp.SampFreq
}

// Filter is a power-law adaptation strategy, chosen once per run.
type Filter interface {
	// Filter returns the adapted output for input in and noise, which must
	// be at least as long as in.
	Filter(in, noise []float64) []float64
}

// New returns the Filter for given variant using params pp.
func New(v Variant, pp *Params) (Filter, error) {
	switch v {
	case Approximate:
		return &Approx{Params: *pp}, nil
	case Actual:
		return &Exact{Params: *pp}, nil
	}
	return nil, fmt.Errorf("pla: unknown filter variant %v", v)
}

// Exact computes the feedback integrals by direct convolution with the
// power-law kernels: O(n^2) overall.
type Exact struct {
	Params
}

func (ex *Exact) Filter(in, noise []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	sout1 := make([]float64, n)
	sout2 := make([]float64, n)
	bw := ex.BinWidth
	var i1, i2 float64
	for k := 0; k < n; k++ {
		sout1[k] = math.Max(0, in[k]+noise[k]-ex.Alpha1*i1)
		sout2[k] = math.Max(0, in[k]-ex.Alpha2*i2)
		i1, i2 = 0, 0
		for j := 0; j <= k; j++ {
			lag := float64(k-j) * bw
			i1 += sout1[j] * bw / (lag + ex.Beta1)
			i2 += sout2[j] * bw / (lag + ex.Beta2)
		}
		out[k] = sout1[k] + sout2[k]
	}
	return out
}

// Section is one second-order recursive filter section:
// y = A1 y[-1] + A2 y[-2] + G (x + B1 x[-1] + B2 x[-2]).
// History starts at zero.
type Section struct {
	A1, A2, G, B1, B2 float64

	x1, x2, y1, y2 float64
}

// Step advances the section by one input sample and returns its output.
func (sc *Section) Step(x float64) float64 {
	y := sc.A1*sc.y1 + sc.A2*sc.y2 + sc.G*(x+sc.B1*sc.x1+sc.B2*sc.x2)
	sc.x2, sc.x1 = sc.x1, x
	sc.y2, sc.y1 = sc.y1, y
	return y
}

// Reset zeros the section history.
func (sc *Section) Reset() {
	sc.x1, sc.x2, sc.y1, sc.y2 = 0, 0, 0, 0
}

// Cascade is a series of sections, each feeding the next.
type Cascade []Section

// Step runs x through every section in order.
func (cs Cascade) Step(x float64) float64 {
	for i := range cs {
		x = cs[i].Step(x)
	}
	return x
}

func (cs Cascade) Reset() {
	for i := range cs {
		cs[i].Reset()
	}
}

// FastCascade returns the 5-section approximation of the fast branch
// kernel (Beta1 = 5e-4 at 10 kHz).
func FastCascade() Cascade {
	return Cascade{
		{A1: 0.491115852967412, A2: -0.055050209956838, G: 0.2, B1: -0.173492003319319, B2: 0.000000172983796},
		{A1: 1.084520302502860, A2: -0.288760329320566, G: 1, B1: -0.803462163297112, B2: 0.154962026341513},
		{A1: 1.588427084535629, A2: -0.628138993662508, G: 1, B1: -1.416084732997016, B2: 0.496615555008723},
		{A1: 1.886287488516458, A2: -0.888972875389923, G: 1, B1: -1.830362725074550, B2: 0.836399964176882},
		{A1: 1.989549282714008, A2: -0.989558985673023, G: 1, B1: -1.983165053215032, B2: 0.983193027347456},
	}
}

// SlowCascade returns the 3-section approximation of the slow branch
// kernel (Beta2 = 0.1 at 10 kHz).
func SlowCascade() Cascade {
	return Cascade{
		{A1: 1.992127932802320, A2: -0.992140616993846, G: 1.0e-3, B1: -0.994466986569624, B2: 0.000000000002347},
		{A1: 1.999195329360981, A2: -0.999195402928777, G: 1, B1: -1.997855276593802, B2: 0.997855827934345},
		{A1: -0.798261718183851, A2: -0.199131619873480, G: 1, B1: 0.798261718184977, B2: 0.199131619874064},
	}
}

// Approx replaces the power-law convolutions with the fixed recursive
// cascades.  The cascade coefficients only depend on the default Beta
// values and SampFreq; Alpha1 and Alpha2 are used as given.
type Approx struct {
	Params
}

func (ap *Approx) Filter(in, noise []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	fast := FastCascade()
	slow := SlowCascade()
	var i1, i2 float64
	for k := 0; k < n; k++ {
		sout1 := math.Max(0, in[k]+noise[k]-ap.Alpha1*i1)
		sout2 := math.Max(0, in[k]-ap.Alpha2*i2)
		i1 = fast.Step(sout1)
		i2 = slow.Step(sout2)
		out[k] = sout1 + sout2
	}
	return out
}
