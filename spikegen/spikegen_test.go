// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikegen

import (
	"math"
	"testing"

	"github.com/emer/ansyn/synrand"
)

func constRate(n int, s float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = s
	}
	return x
}

func TestParams(t *testing.T) {
	sg := NewGen()
	if dif := math.Abs(sg.TrdInit - 15.6e-3); dif > 1e-15 {
		t.Errorf("TrdInit: %v", sg.TrdInit)
	}
	if c := sg.SpikeCap(1000, 1e-5, 0); c != 0 {
		t.Errorf("SpikeCap zero rate: %d", c)
	}
	// 1 s at mean ISI 10 ms: 100 spikes + 3 * 10
	sp := Params{NSites: 1, TrdRest: 0, TrdJump: 0, Spont: 0}
	sp.Update()
	if c := sp.SpikeCap(100000, 1e-5, 100); c != 130 {
		t.Errorf("SpikeCap: %d", c)
	}
}

// TestRedockTrace checks the mean redocking time with one site and fixed
// draws: after the first redocking every step is either an exact jump or
// an exact decay step toward rest.
func TestRedockTrace(t *testing.T) {
	sg := NewGen()
	sg.NSites = 1
	src := &synrand.Script{Uniform: []float64{0.5}}
	n := 5000
	tdres := 1e-5
	res := sg.Run(constRate(n, 1000), tdres, 1000, src)
	if len(res.Trd) != n {
		t.Fatalf("Trd len: %d", len(res.Trd))
	}
	// the first redocking happens before time zero
	if res.Trd[0] == sg.TrdInit {
		t.Fatalf("no redocking before time zero: %v", res.Trd[0])
	}
	prev := res.Trd[0]
	njump, ndecay := 0, 0
	for k := 1; k < n; k++ {
		trd := res.Trd[k]
		jump := prev + sg.TrdJump
		dec := prev - (tdres/sg.Tau)*(prev-sg.TrdRest)
		switch trd {
		case jump:
			njump++
		case dec:
			ndecay++
		default:
			t.Fatalf("step %d: trd %v from %v is neither jump %v nor decay %v", k, trd, prev, jump, dec)
		}
		if trd < sg.TrdRest {
			t.Errorf("step %d: trd %v below rest", k, trd)
		}
		prev = trd
	}
	if njump == 0 || ndecay == 0 {
		t.Errorf("expected both jumps and decays: %d jumps, %d decays", njump, ndecay)
	}
}

func TestZeroRate(t *testing.T) {
	sg := NewGen()
	src := &synrand.Script{Uniform: []float64{0.5}}
	res := sg.Run(make([]float64, 1000), 1e-5, 0, src)
	if res.NSpikes != 0 || len(res.Spikes) != 0 {
		t.Errorf("zero rate gave %d spikes", res.NSpikes)
	}
	if sg.KInit != -1000 {
		t.Errorf("KInit: %d", sg.KInit)
	}
	if dif := math.Abs(sg.Tref - (sg.Tabs - sg.Trel*math.Log(0.5))); dif > 1e-15 {
		t.Errorf("Tref with zero rate: %v", sg.Tref)
	}
	// Init draws a redock and a start per site plus Tref.  Every site then
	// releases once at KInit (URI starts at 0): a redock and a URI draw each,
	// and only the first clears the refractory period and draws a new Tref.
	ns := sg.NSites
	if nu, cor := src.NUniform(), (2*ns+1)+(2*ns+1); nu != cor {
		t.Errorf("uniform draws with zero rate: %d, cor %d", nu, cor)
	}
	for i, st := range sg.Sites {
		if st.CurRelease != float64(sg.KInit)*1e-5 {
			t.Errorf("site %d did not release at KInit: %v", i, st.CurRelease)
		}
	}
}

func TestSpikeTimes(t *testing.T) {
	n := 100000
	tdres := 1e-5
	synout := constRate(n, 200)
	sg := NewGen()
	res := sg.Run(synout, tdres, 200, synrand.New(1))
	if res.NSpikes == 0 {
		t.Fatalf("no spikes")
	}
	end := float64(n) * tdres
	for i, st := range res.Spikes {
		if st < 0 || st >= end {
			t.Errorf("spike %d out of range: %v", i, st)
		}
	}
	// rate is well below the synaptic rate due to refractoriness and redocking
	rate := float64(res.NSpikes) / end
	if rate <= 20 || rate >= 200 {
		t.Errorf("implausible rate: %v", rate)
	}
	res2 := NewGen().Run(synout, tdres, 200, synrand.New(1))
	if res2.NSpikes != res.NSpikes {
		t.Fatalf("same seed: %d vs %d spikes", res2.NSpikes, res.NSpikes)
	}
	for i := range res.Spikes {
		if res.Spikes[i] != res2.Spikes[i] {
			t.Errorf("same seed spike %d: %v vs %v", i, res.Spikes[i], res2.Spikes[i])
		}
	}
}

func TestEmpty(t *testing.T) {
	res := NewGen().Run(nil, 1e-5, 0, synrand.New(1))
	if res.NSpikes != 0 || len(res.Trd) != 0 {
		t.Errorf("empty run: %d spikes, %d trd", res.NSpikes, len(res.Trd))
	}
}
