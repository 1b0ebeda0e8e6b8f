// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package synrand provides the random number sources used by the synapse model.
Every run draws from an explicitly passed Source, so a run is reproducible from
its seed and concurrent trials never share unsynchronized generator state.
*/
package synrand

import (
	"sync"

	"github.com/emer/emergent/erand"
)

// Source is the minimal random interface needed by the synapse model:
// uniform draws in [0,1) and standard normal draws.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

// New returns a private generator seeded with given seed.
func New(seed int64) Source {
	return &SysSource{Rnd: erand.NewSysRand(seed)}
}

// SysSource adapts an erand.SysRand, whose draws take a thread index,
// to Source.  Draws use thread -1, the generator's own stream.
type SysSource struct {
	Rnd *erand.SysRand
}

func (ss *SysSource) Float64() float64 { return ss.Rnd.Float64(-1) }

func (ss *SysSource) NormFloat64() float64 { return ss.Rnd.NormFloat64(-1) }

// Locked serializes access to a Source that is shared across goroutines.
type Locked struct {
	mu  sync.Mutex
	Src Source
}

// NewLocked returns a Locked wrapper around src.
func NewLocked(src Source) *Locked {
	return &Locked{Src: src}
}

func (lr *Locked) Float64() float64 {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.Src.Float64()
}

func (lr *Locked) NormFloat64() float64 {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.Src.NormFloat64()
}

// Script replays fixed lists of draws, cycling when a list is exhausted.
// An empty Uniform list returns 0.5 and an empty Normal list returns 0.
type Script struct {
	Uniform []float64
	Normal  []float64

	ui, ni int
}

func (sc *Script) Float64() float64 {
	if len(sc.Uniform) == 0 {
		return 0.5
	}
	v := sc.Uniform[sc.ui%len(sc.Uniform)]
	sc.ui++
	return v
}

func (sc *Script) NormFloat64() float64 {
	if len(sc.Normal) == 0 {
		return 0
	}
	v := sc.Normal[sc.ni%len(sc.Normal)]
	sc.ni++
	return v
}

// NUniform returns the number of uniform draws made so far.
func (sc *Script) NUniform() int { return sc.ui }

// Reset rewinds both lists to the start.
func (sc *Script) Reset() {
	sc.ui, sc.ni = 0, 0
}
