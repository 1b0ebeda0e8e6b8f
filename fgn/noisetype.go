// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fgn

import (
	"github.com/emer/ansyn/synrand"
	"github.com/goki/ki/kit"
)

// NoiseType selects where the standard-normal vectors that drive the
// noise spectrum come from.
type NoiseType int

//go:generate stringer -type=NoiseType

var KiT_NoiseType = kit.Enums.AddEnum(NoiseTypeN, kit.NotBitFlag, nil)

func (ev NoiseType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NoiseType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev NoiseType) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *NoiseType) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The noise types
const (
	// Random draws Gaussian vectors from the run's random source
	Random NoiseType = iota

	// FixedSeed draws Gaussian vectors from a private source reseeded
	// to FixedSeedVal on every call: frozen noise that is still Gaussian.
	FixedSeed

	// Ones uses all-ones vectors, for deterministic unit tests.
	Ones

	// FixedRef uses the literal reference vectors RefReal and RefImag,
	// for regression against a known reference trace.
	FixedRef

	NoiseTypeN
)

// FixedSeedVal is the seed used by the FixedSeed noise type.
const FixedSeedVal = 42

// Filler fills the real and imaginary parts of the random spectrum.
type Filler interface {
	Fill(zr1, zr2 []float64)
}

// Filler returns the Filler strategy for this noise type.
// src is only used by Random.
func (ev NoiseType) Filler(src synrand.Source) Filler {
	switch ev {
	case Ones:
		return onesFill{}
	case FixedRef:
		return refFill{}
	case FixedSeed:
		return fixedSeedFill{}
	default:
		return gaussFill{src: src}
	}
}

type gaussFill struct {
	src synrand.Source
}

func (gf gaussFill) Fill(zr1, zr2 []float64) {
	for i := range zr1 {
		zr1[i] = gf.src.NormFloat64()
	}
	for i := range zr2 {
		zr2[i] = gf.src.NormFloat64()
	}
}

type fixedSeedFill struct{}

func (fixedSeedFill) Fill(zr1, zr2 []float64) {
	gaussFill{src: synrand.New(FixedSeedVal)}.Fill(zr1, zr2)
}

type onesFill struct{}

func (onesFill) Fill(zr1, zr2 []float64) {
	for i := range zr1 {
		zr1[i] = 1
	}
	for i := range zr2 {
		zr2[i] = 1
	}
}

type refFill struct{}

// Fill tiles the reference vectors when the spectrum is longer than they are.
func (refFill) Fill(zr1, zr2 []float64) {
	for i := range zr1 {
		zr1[i] = RefReal[i%len(RefReal)]
	}
	for i := range zr2 {
		zr2[i] = RefImag[i%len(RefImag)]
	}
}

// RefReal and RefImag are the frozen standard-normal vectors of the
// FixedRef noise type.  They exactly fill the 32-point spectrum used for
// outputs shorter than 17000 samples.
var RefReal = []float64{
	0.539001198446002, -0.333146282212077, 0.758784275258885, -0.960019229100215,
	-2.010902387858044, -0.014145783976321, 0.014846193555120, 0.179719933210648,
	-2.035475594737959, -0.357587732438863, 0.317062418711363, -1.266378348690577,
	1.038708704838524, -2.500059203501081, -1.252332731960022, 1.230339014018892,
	-0.504687908175280, 0.919640621536610, -0.234470350850954, 0.530697743839911,
	0.660825091280324, 0.855468294638247, -0.994629072636940, -2.231455213644026,
	0.318559022665053, 0.632957296094154, -0.151148210794462, -0.816060813871062,
	-1.014897009384865, 0.518977711821625, -0.059474326486106, 0.731639398082223,
}

var RefImag = []float64{
	-0.638409626955796, -0.061701505688751, -0.218192062027145, 0.203235982652021,
	-0.098642410359283, 0.945333174032015, -0.801457072154293, -0.085099820744463,
	0.789397946964058, 1.226327097545239, -0.900142192575332, 0.424849252031244,
	-0.387098269639317, 1.170523150888439, -0.072882198808166, -1.612913245229722,
	-0.702699919458338, -0.283874347267996, 0.450432043543390, -0.259699095922555,
	0.409258053752079, 1.926425247717760, -0.945190729563938, -0.854589093975853,
	-0.219510861979715, 0.449824239893538, 0.257557798875416, 0.212844513926846,
	-0.087690563274934, 0.231624682299529, -0.563183338456413, -1.188876899529859,
}
