// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikegen generates auditory nerve spike times from the synaptic
release rate, using NSites independent vesicle release sites.

Each site integrates 1/NSites of the rate once its vesicle has redocked,
and releases when the integral reaches an exponentially distributed unit
rate interval.  Redocking durations are exponential with a mean redocking
period shared by all sites, which jumps by TrdJump on every redocking event
and otherwise decays back to TrdRest with time constant Tau.  A release is
a spike if it falls outside the refractory period of the previous spike:
Tabs plus an exponential relative refractory draw whose mean shrinks at
high rates.

The process starts before time zero, at an index drawn from each site's
initial pre-release offset, so the sites are already in steady state at
the start of the output.
*/
package spikegen

import (
	"math"
	"sort"

	"github.com/emer/ansyn/stats"
	"github.com/emer/ansyn/synrand"
	"github.com/goki/ki/ints"
)

// Params are the release site and refractory parameters
type Params struct {
	NSites  int     `def:"4" desc:"number of synaptic release sites"`
	TrdRest float64 `def:"14e-3" desc:"resting value (s) of the mean redocking time"`
	TrdJump float64 `def:"0.4e-3" desc:"jump (s) in the mean redocking time on each redocking event"`
	Tau     float64 `def:"60e-3" desc:"time constant (s) of the decay of the mean redocking time back to rest"`
	Tabs    float64 `def:"0.6e-3" desc:"absolute refractory period (s)"`
	Trel    float64 `def:"0.6e-3" desc:"base mean relative refractory period (s)"`
	Spont   float64 `def:"100" desc:"spontaneous rate (spikes/s) of the fiber -- sets the initial mean redocking time"`

	TrdInit float64 `view:"-" desc:"initial mean redocking time = TrdRest + 0.02e-3 * Spont - TrdJump"`
}

func (sp *Params) Defaults() {
	sp.NSites = 4
	sp.TrdRest = 14.0e-3
	sp.TrdJump = 0.4e-3
	sp.Tau = 60.0e-3
	sp.Tabs = 0.6e-3
	sp.Trel = 0.6e-3
	sp.Spont = 100
	sp.Update()
}

func (sp *Params) Update() {
	sp.TrdInit = sp.TrdRest + 0.02e-3*sp.Spont - sp.TrdJump
}

// MeanISI is the expected inter-spike interval at mean synaptic rate meanRate.
func (sp *Params) MeanISI(meanRate float64) float64 {
	return 1/meanRate + sp.TrdInit/float64(sp.NSites) + sp.Tabs + sp.Trel
}

// SpikeCap returns the number of spikes n samples of width tdres hold in
// more than 99.7% of runs: mean count plus three standard deviations.
// Returns 0 for a non-positive mean rate.
func (sp *Params) SpikeCap(n int, tdres, meanRate float64) int {
	if meanRate <= 0 || n <= 0 {
		return 0
	}
	ns := float64(n) * tdres / sp.MeanISI(meanRate)
	return int(math.Ceil(ns + 3*math.Sqrt(ns)))
}

// Site is the state of one release site
type Site struct {
	PreRelease  float64 `desc:"time bin at which the site starts counting"`
	Elapsed     float64 `desc:"time (s) elapsed since the last release"`
	Redock      float64 `desc:"drawn redocking duration (s) of the current vesicle"`
	PrevRelease float64 `desc:"time (s) of the previous release"`
	CurRelease  float64 `desc:"time (s) of the most recent release"`
	Xsum        float64 `desc:"integrated rate since redocking"`
	URI         float64 `desc:"unit rate interval: Xsum threshold for the next release"`
}

// Result is the output of one spike generator run
type Result struct {
	Spikes  []float64 `desc:"spike times (s), in order of registration -- not sorted across sites"`
	Trd     []float64 `desc:"mean redocking time (s) at every sample"`
	NSpikes int       `desc:"number of spikes"`
}

// Gen is the spike generator state for one run
type Gen struct {
	Params
	Sites []Site

	CurRedock  float64 `desc:"current mean redocking period (s)"`
	PrevRedock float64 `desc:"mean redocking period (s) at the end of the previous step"`
	Refractory float64 `desc:"end (s) of the current refractory period"`
	Tref       float64 `desc:"most recently drawn total refractory period (s)"`
	KInit      int     `desc:"first time bin of the process -- negative bins precede the output"`
}

// NewGen returns a generator with default params.
func NewGen() *Gen {
	sg := &Gen{}
	sg.Defaults()
	return sg
}

// Init draws the initial site states for synaptic output starting at s0.
// n is the number of output samples, bounding how early the process starts.
func (sg *Gen) Init(s0 float64, n int, tdres float64, src synrand.Source) {
	ns := sg.NSites
	sg.Sites = make([]Site, ns)
	for i := range sg.Sites {
		sg.Sites[i].Redock = -sg.TrdInit * math.Log(src.Float64())
	}
	pre := make([]float64, ns)
	for i := range pre {
		pre[i] = math.Max(-float64(n), math.Ceil((float64(ns)/math.Max(s0, 0.1)+sg.TrdInit)*math.Log(src.Float64())/tdres))
	}
	// earliest start is the site whose release is taken to have just happened
	sort.Float64s(pre)
	for i := range sg.Sites {
		st := &sg.Sites[i]
		st.PreRelease = pre[i]
		st.PrevRelease = pre[i] * tdres
	}
	sg.KInit = int(pre[0])
	sg.Tref = sg.Tabs - sg.Trel*math.Log(src.Float64())
	sg.Refractory = float64(sg.KInit) * tdres
	sg.PrevRedock = sg.TrdInit
	sg.CurRedock = sg.TrdInit
}

// Run generates spikes from synaptic output synout with time step tdres,
// drawing from src.  meanRate is only used to size the spike buffer.
func (sg *Gen) Run(synout []float64, tdres, meanRate float64, src synrand.Source) *Result {
	n := len(synout)
	res := &Result{Trd: make([]float64, n)}
	if n == 0 {
		return res
	}
	res.Spikes = make([]float64, 0, sg.SpikeCap(n, tdres, meanRate))
	sg.Init(synout[0], n, tdres, src)

	ns := float64(sg.NSites)
	decay := true
	rdFirst := false
	for k := sg.KInit; k < n; k++ {
		s := synout[ints.MaxInt(0, k)]
		for i := range sg.Sites {
			st := &sg.Sites[i]
			kf := float64(k)
			if kf > st.PreRelease {
				if int(st.Redock/tdres) == int(st.Elapsed/tdres) {
					sg.CurRedock = sg.PrevRedock + sg.TrdJump
					sg.PrevRedock = sg.CurRedock
					decay = false
					rdFirst = true
				}
				st.Elapsed += tdres
			}
			if st.Elapsed >= st.Redock {
				st.Xsum += s / ns
			}
			if st.Xsum >= st.URI && kf >= st.PreRelease {
				st.Redock = -sg.CurRedock * math.Log(src.Float64())
				st.CurRelease = st.PrevRelease + st.Elapsed
				st.Elapsed = 0
				if st.CurRelease >= sg.Refractory {
					if st.CurRelease >= 0 {
						res.Spikes = append(res.Spikes, st.CurRelease)
					}
					trel := stats.RelRefractory(sg.Trel, s)
					sg.Tref = sg.Tabs - trel*math.Log(src.Float64())
					sg.Refractory = st.CurRelease + sg.Tref
				}
				st.PrevRelease = st.CurRelease
				st.Xsum = 0
				st.URI = float64(int(-math.Log(src.Float64()) / tdres))
			}
		}
		if decay && rdFirst {
			sg.CurRedock = sg.PrevRedock - (tdres/sg.Tau)*(sg.PrevRedock-sg.TrdRest)
			sg.PrevRedock = sg.CurRedock
		} else {
			decay = true
		}
		if k >= 0 {
			res.Trd[k] = sg.CurRedock
		}
	}
	res.NSpikes = len(res.Spikes)
	return res
}
