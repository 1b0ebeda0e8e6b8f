// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stats reduces the per-sample synapse quantities and spike times of
a run into the analytic mean and variance of the discharge rate, the
relative refractory trace, and peri-stimulus time histograms.
*/
package stats

import (
	"math"

	"github.com/emer/etable/minmax"
	"gonum.org/v1/gonum/stat"
)

// Params are the spike generator parameters the analytic rate estimates depend on
type Params struct {
	NSites int     `def:"4" desc:"number of vesicle release sites"`
	Tabs   float64 `def:"0.6e-3" desc:"absolute refractory period (s)"`
	Trel   float64 `def:"0.6e-3" desc:"base relative refractory period (s)"`
}

func (sp *Params) Defaults() {
	sp.NSites = 4
	sp.Tabs = 0.6e-3
	sp.Trel = 0.6e-3
}

func (sp *Params) Update() {
}

// RelRefractory returns the relative refractory period at synaptic rate s:
// trel is compressed at high rates, and a rate <= 0 leaves it unchanged.
func RelRefractory(trel, s float64) float64 {
	if s <= 0 {
		return trel
	}
	return math.Min(trel*100/s, trel)
}

// MeanRate is the instantaneous mean discharge rate for synaptic rate s,
// redocking time trd and relative refractory period trel.
func (sp *Params) MeanRate(s, trd, trel float64) float64 {
	return s / (s*(sp.Tabs+trd/float64(sp.NSites)+trel) + 1)
}

// Variance is the instantaneous variance of the discharge rate: a rational
// approximation in s and trd, valid for s > 0.
func (sp *Params) Variance(s, trd, trel float64) float64 {
	s2 := s * s
	s3 := s2 * s
	s4 := s3 * s
	s5 := s4 * s
	s6 := s5 * s
	s7 := s6 * s
	s8 := s7 * s
	trel2 := trel * trel
	t2 := trd * trd
	t3 := t2 * trd
	t4 := t3 * trd
	t5 := t4 * trd
	t6 := t5 * trd
	t7 := t6 * trd
	t8 := t7 * trd
	st := s*trd + 4
	st4 := st * st * st * st
	ttts := trd/4 + sp.Tabs + trel + 1/s
	ttts3 := ttts * ttts * ttts

	num := (11*s7*t7)/2 + (3*s8*t8)/16 + 12288*s2*trel2 +
		trd*(22528*s3*trel2+22528*s) +
		t6*(3*s8*trel2+82*s6) + t5*(88*s7*trel2+664*s5) +
		t4*(976*s6*trel2+3392*s4) + t3*(5376*s5*trel2+10624*s3) +
		t2*(15616*s4*trel2+20992*s2) + 12288
	den := s2 * st4 * (3*s2*t2 + 40*s*trd + 48) * ttts3
	return num / den
}

// Rates are the analytic rate estimates of one run
type Rates struct {
	MeanRate []float64 `desc:"mean discharge rate per within-period sample, averaged over repetitions"`
	VarRate  []float64 `desc:"variance of the discharge rate per within-period sample, averaged over repetitions"`
	Trel     []float64 `desc:"relative refractory period at every sample of the run"`
}

// Accum computes the rates for synaptic output synout and redocking trace
// trd, both of length nTimesteps * nrep.  Mean and variance are divided by
// nrep and summed at the matching within-period index.  Samples with a
// synaptic output <= 0 contribute nothing.
func (sp *Params) Accum(synout, trd []float64, nTimesteps, nrep int) *Rates {
	rt := &Rates{
		MeanRate: make([]float64, nTimesteps),
		VarRate:  make([]float64, nTimesteps),
		Trel:     make([]float64, len(synout)),
	}
	if nTimesteps == 0 {
		return rt
	}
	rep := float64(nrep)
	for i, s := range synout {
		tr := RelRefractory(sp.Trel, s)
		rt.Trel[i] = tr
		if s <= 0 {
			continue
		}
		ip := i % nTimesteps
		rt.MeanRate[ip] += sp.MeanRate(s, trd[i], tr) / rep
		rt.VarRate[ip] += sp.Variance(s, trd[i], tr) / rep
	}
	return rt
}

// PSTH returns spike counts in nbins bins of width tdres, taking spike
// times modulo the stimulus period tdres * nbins.
func PSTH(spikes []float64, tdres float64, nbins int) []float64 {
	return Bin(spikes, tdres*float64(nbins), tdres, nbins, 1)
}

// Bin returns nbins bins of width, each holding scale times the number of
// spikes whose time modulo period falls in it.  Out of range indexes are
// clamped to the first / last bin.
func Bin(spikes []float64, period, width float64, nbins int, scale float64) []float64 {
	h := make([]float64, nbins)
	if nbins == 0 {
		return h
	}
	for _, t := range spikes {
		bi := int(math.Mod(t, period) / width)
		switch {
		case bi < 0:
			bi = 0
		case bi >= nbins:
			bi = nbins - 1
		}
		h[bi] += scale
	}
	return h
}

// Rebin sums consecutive groups of per values of x into nbins bins.
// Values past the last full group, or past nbins groups, are dropped.
func Rebin(x []float64, per, nbins int) []float64 {
	out := make([]float64, nbins)
	if per <= 0 {
		return out
	}
	for i := range out {
		st := i * per
		if st+per > len(x) {
			break
		}
		for _, v := range x[st : st+per] {
			out[i] += v
		}
	}
	return out
}

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

// Summary returns the mean and sample standard deviation of x.
func Summary(x []float64) (mean, std float64) {
	if len(x) == 0 {
		return 0, 0
	}
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// Range returns the min / max range of x.
func Range(x []float64) minmax.F64 {
	var mm minmax.F64
	mm.SetInfinity()
	for _, v := range x {
		mm.FitValInRange(v)
	}
	return mm
}
