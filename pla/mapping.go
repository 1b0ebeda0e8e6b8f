// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pla

import (
	"math"

	"github.com/emer/ansyn/resamp"
)

// MapParams map the inner hair cell output onto the input of the
// power-law adaptation filter, as a function of characteristic frequency
// and spontaneous rate.
type MapParams struct {
	Spont float64 `desc:"spontaneous rate (spikes/s) of the fiber"`
	CF    float64 `desc:"characteristic frequency (Hz) of the fiber"`

	CFFactor   float64 `view:"-" desc:"CF dependent gain on the receptor signal, saturating above 8965.5 Hz"`
	MultFac    float64 `view:"-" desc:"log10 offset of the mapped output"`
	DelayPoint int     `view:"-" desc:"number of padding samples (at the external rate) placed before the signal -- twice this many follow it"`
}

// NewMapParams returns updated mapping params for given spont rate and CF.
func NewMapParams(spont, cf float64) *MapParams {
	mp := &MapParams{Spont: spont, CF: cf}
	mp.Update()
	return mp
}

func (mp *MapParams) Update() {
	ls := math.Log10(mp.Spont)
	slope := math.Pow(mp.Spont, 0.19) * math.Pow(10, -0.87)
	cnst := 0.1*math.Pow(ls, 2) + 0.56*ls - 0.84
	sat := math.Pow(10, slope*8965.5/1e3+cnst)
	mp.CFFactor = math.Min(sat, math.Pow(10, slope*mp.CF/1e3+cnst)) * 2.0
	mp.MultFac = math.Max(2.95*math.Max(1.0, 1.5-mp.Spont/100), 4.3-0.2*mp.CF/1e3)
	mp.DelayPoint = DelayPoint(mp.CF)
}

// DelayPoint returns the number of leading padding samples for given CF.
func DelayPoint(cf float64) int {
	return int(math.Floor(7500 / (cf / 1e3)))
}

// Map returns the signed power-law mapping of one receptor sample.
func (mp *MapParams) Map(ihc float64) float64 {
	v := math.Pow(10, 0.9*math.Log10(math.Abs(ihc)*mp.CFFactor)+mp.MultFac)
	if ihc < 0 {
		return -v
	}
	return v
}

// PowerLawIn maps the receptor signal and pads it for the filter:
// DelayPoint copies of the first mapped value, the mapped signal, then
// 2*DelayPoint samples each rising by 3*Spont over the one before.
// Every sample is offset by 3*Spont.  Length is len(ihc) + 3*DelayPoint.
func (mp *MapParams) PowerLawIn(ihc []float64) []float64 {
	n := len(ihc)
	d := mp.DelayPoint
	off := 3.0 * mp.Spont
	pin := make([]float64, n+3*d)
	if n == 0 {
		return pin[:0]
	}
	first := mp.Map(ihc[0])
	for k := 0; k < d; k++ {
		pin[k] = first + off
	}
	for k := d; k < n+d; k++ {
		pin[k] = mp.Map(ihc[k-d]) + off
	}
	for k := n + d; k < n+3*d; k++ {
		pin[k] = pin[k-1] + off
	}
	return pin
}

// Input returns the padded, mapped receptor signal decimated from the
// external time step tdres to sampFreq: the input to the Filter.
func (mp *MapParams) Input(ihc []float64, tdres, sampFreq float64) []float64 {
	return resamp.Down(mp.PowerLawIn(ihc), resamp.Factor(tdres, sampFreq))
}
