// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synapse runs the inner hair cell to auditory nerve synapse: the
receptor signal is mapped and padded, adapted by the power-law filter
driven by fractional Gaussian noise, converted to spikes by the multi-site
spike generator, and reduced to the PSTH and analytic rate estimates.

Run does one run.  Trials does many independent runs in parallel and
combines their PSTH and spike counts.
*/
package synapse

import (
	"fmt"
	"math"

	"github.com/emer/ansyn/fgn"
	"github.com/emer/ansyn/pla"
	"github.com/emer/ansyn/resamp"
	"github.com/emer/ansyn/spikegen"
	"github.com/emer/ansyn/stats"
	"github.com/emer/ansyn/synrand"
	"github.com/goki/ki/ints"
)

// Output is the result of one run.  Traces have NTimesteps * NRep samples,
// per-period quantities have NTimesteps.
type Output struct {
	SynOut     []float64 `desc:"synaptic release rate (spikes/s) at every sample"`
	SpikeTimes []float64 `desc:"spike times (s), in order of registration"`
	PSTH       []float64 `desc:"spike counts per sample within the stimulus period, summed over repetitions"`
	Trd        []float64 `desc:"mean redocking time (s) at every sample"`
	MeanRate   []float64 `desc:"analytic mean discharge rate per period sample"`
	VarRate    []float64 `desc:"analytic discharge rate variance per period sample"`
	Trel       []float64 `desc:"relative refractory period (s) at every sample"`
	NSpikes    int       `desc:"number of spikes"`
}

// Run simulates the synapse for receptor signal receptor, which must hold
// at least cfg.NTimesteps * cfg.NRep samples.  All random draws come from
// src; cache holds the noise spectrum and may be shared across runs (nil
// makes a private one).  The config is validated before anything else.
func Run(receptor []float64, cfg *Config, src synrand.Source, cache *fgn.ZMagCache) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.NSamples()
	if len(receptor) < n {
		return nil, &ParamError{Name: "len(receptor)", Value: float64(len(receptor)), Lo: float64(n), Hi: math.Inf(1)}
	}
	if n == 0 {
		return &Output{PSTH: make([]float64, cfg.NTimesteps), MeanRate: make([]float64, cfg.NTimesteps), VarRate: make([]float64, cfg.NTimesteps)}, nil
	}
	synout, err := SynOut(receptor[:n], cfg, src, cache)
	if err != nil {
		return nil, err
	}
	meanRate := 0.0
	for _, s := range synout {
		meanRate += s / float64(n)
	}

	sg := spikegen.NewGen()
	sg.Spont = cfg.Spont
	sg.Tabs = cfg.Tabs
	sg.Trel = cfg.Trel
	sg.Update()
	res := sg.Run(synout, cfg.TDRes, meanRate, src)

	sp := &stats.Params{NSites: sg.NSites, Tabs: cfg.Tabs, Trel: cfg.Trel}
	rt := sp.Accum(synout, res.Trd, cfg.NTimesteps, cfg.NRep)

	return &Output{
		SynOut:     synout,
		SpikeTimes: res.Spikes,
		PSTH:       stats.PSTH(res.Spikes, cfg.TDRes, cfg.NTimesteps),
		Trd:        res.Trd,
		MeanRate:   rt.MeanRate,
		VarRate:    rt.VarRate,
		Trel:       rt.Trel,
		NSpikes:    res.NSpikes,
	}, nil
}

// SynOut returns the synaptic release rate for receptor signal ihc at the
// external rate: mapping and padding, decimation to cfg.SampFreq, the
// power-law filter, and interpolation back, with the leading padding
// removed.
func SynOut(ihc []float64, cfg *Config, src synrand.Source, cache *fgn.ZMagCache) ([]float64, error) {
	nt := len(ihc)
	mp := pla.NewMapParams(cfg.Spont, cfg.CF)
	d := mp.DelayPoint
	in := mp.Input(ihc, cfg.TDRes, cfg.SampFreq)
	n := int(math.Ceil(float64(nt+2*d) * cfg.TDRes * cfg.SampFreq))
	n = ints.MinInt(n, len(in))

	noise, err := fgn.NewGenerator(cfg.Noise, src, cache).Gen(n, cfg.Spont)
	if err != nil {
		return nil, fmt.Errorf("synapse: noise: %w", err)
	}

	pp := &pla.Params{}
	pp.Defaults()
	pp.SampFreq = cfg.SampFreq
	pp.Update()
	flt, err := pla.New(cfg.Variant, pp)
	if err != nil {
		return nil, err
	}
	sout := flt.Filter(in[:n], noise)

	tmp := resamp.Up(sout, resamp.Factor(cfg.TDRes, cfg.SampFreq), nt+2*d)
	synout := make([]float64, nt)
	copy(synout, tmp[d:d+nt])
	return synout, nil
}
