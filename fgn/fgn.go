// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fgn generates fractional Gaussian noise (fGn), the long-range
dependent noise that drives the fast branch of the power-law adaptation
filter.

The noise is synthesized at a reduced resolution (Decim times fewer samples)
by the exact circulant-embedding method: the analytic fGn autocovariance is
embedded in a circulant sequence whose FFT gives the spectral magnitude,
which shapes a complex Gaussian vector that is inverse transformed.  The
result is linearly upsampled back to the requested length and scaled by a
heuristic standard deviation derived from the mean rate.
*/
package fgn

import (
	"math"

	"github.com/emer/ansyn/resamp"
	"github.com/emer/ansyn/synrand"
	"github.com/goki/ki/ints"
	"github.com/mjibson/go-dsp/fft"
)

// Params are the fixed fGn synthesis parameters
type Params struct {
	Hurst float64 `def:"0.9" desc:"Hurst index of the noise -- 0.5 is white, larger values give longer-range correlations"`
	Decim int     `def:"1000" desc:"decimation factor: noise is synthesized at 1/Decim of the output resolution and linearly upsampled"`
	MinN  int     `def:"10" desc:"minimum number of samples synthesized at the reduced resolution"`
}

func (fp *Params) Defaults() {
	fp.Hurst = 0.9
	fp.Decim = 1000
	fp.MinN = 10
}

func (fp *Params) Update() {
}

// NSamples returns the reduced-resolution sample count for nOut output samples.
func (fp *Params) NSamples(nOut int) int {
	return ints.MaxInt(fp.MinN, nOut/fp.Decim+1)
}

// Sigma is the heuristic noise standard deviation for mean rate mu.
func Sigma(mu float64) float64 {
	switch {
	case mu < 0.2:
		return 1
	case mu < 20:
		return 10
	default:
		return mu / 2
	}
}

// Generator synthesizes fGn sequences.  The noise type strategy is fixed
// at construction.
type Generator struct {
	Params
	Type  NoiseType
	Cache *ZMagCache

	fill Filler
}

// NewGenerator returns a generator with default Params.  src drives the
// Random noise type; cache may be shared with other generators and is
// created if nil.
func NewGenerator(nt NoiseType, src synrand.Source, cache *ZMagCache) *Generator {
	if cache == nil {
		cache = &ZMagCache{}
	}
	gn := &Generator{Type: nt, Cache: cache, fill: nt.Filler(src)}
	gn.Defaults()
	return gn
}

// Gen returns nOut samples of fGn scaled by Sigma(mu).
func (gn *Generator) Gen(nOut int, mu float64) ([]float64, error) {
	ns := gn.NSamples(nOut)
	zmag, err := gn.Cache.Get(ns, gn.Hurst)
	if err != nil {
		return nil, err
	}
	nfft := len(zmag)
	zr1 := make([]float64, nfft)
	zr2 := make([]float64, nfft)
	gn.fill.Fill(zr1, zr2)

	z := make([]complex128, nfft)
	for i, m := range zmag {
		z[i] = complex(m*zr1[i], m*zr2[i])
	}
	z = fft.IFFT(z)

	rootN := math.Sqrt(float64(nfft))
	y := make([]float64, ns)
	for i := range y {
		y[i] = real(z[i]) * rootN
	}

	out := resamp.Up(y, gn.Decim, nOut)
	sig := Sigma(mu)
	for i := range out {
		out[i] *= sig
	}
	return out, nil
}
