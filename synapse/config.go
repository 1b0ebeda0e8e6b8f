// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/emer/ansyn/fgn"
	"github.com/emer/ansyn/pla"
)

// ErrInvalidParam is wrapped by every parameter validation error.
var ErrInvalidParam = errors.New("synapse: invalid parameter")

// ParamError reports a configuration value outside its allowed range.
type ParamError struct {
	Name  string
	Value float64
	Lo    float64
	Hi    float64
}

func (pe *ParamError) Error() string {
	return fmt.Sprintf("synapse: parameter %s = %g out of range [%g, %g]", pe.Name, pe.Value, pe.Lo, pe.Hi)
}

func (pe *ParamError) Unwrap() error { return ErrInvalidParam }

// Config is the configuration of one synapse run.  It is not modified
// by Run.
type Config struct {
	CF           float64       `def:"5000" desc:"characteristic frequency (Hz) of the fiber"`
	NRep         int           `def:"1" desc:"number of repetitions of the stimulus in the receptor signal"`
	NTimesteps   int           `desc:"number of time steps per repetition"`
	TDRes        float64       `def:"1e-5" desc:"time resolution (s) of the receptor signal"`
	Noise        fgn.NoiseType `desc:"source of the fractional Gaussian noise vectors"`
	Variant      pla.Variant   `desc:"power-law adaptation implementation"`
	Spont        float64       `def:"100" min:"1e-4" max:"180" desc:"spontaneous rate (spikes/s) of the fiber"`
	Tabs         float64       `def:"0.6e-3" min:"0" max:"20e-3" desc:"absolute refractory period (s)"`
	Trel         float64       `def:"0.6e-3" min:"0" max:"20e-3" desc:"base relative refractory period (s)"`
	SampFreq     float64       `def:"10000" desc:"internal sampling rate (Hz) of the power-law adaptation"`
	PSTHBinWidth float64       `desc:"PSTH bin width (s) used when summarizing trials -- 0 uses TDRes"`
}

func (cf *Config) Defaults() {
	cf.CF = 5e3
	cf.NRep = 1
	cf.TDRes = 1e-5
	cf.Noise = fgn.Random
	cf.Variant = pla.Approximate
	cf.Spont = 100
	cf.Tabs = 0.6e-3
	cf.Trel = 0.6e-3
	cf.SampFreq = 10e3
}

func (cf *Config) Update() {
	if cf.SampFreq == 0 {
		cf.SampFreq = 10e3
	}
	if cf.PSTHBinWidth == 0 {
		cf.PSTHBinWidth = cf.TDRes
	}
}

// NSamples is the total number of time steps: NTimesteps * NRep
func (cf *Config) NSamples() int {
	return cf.NTimesteps * cf.NRep
}

func inRange(name string, val, lo, hi float64) error {
	if val < lo || val > hi || math.IsNaN(val) {
		return &ParamError{Name: name, Value: val, Lo: lo, Hi: hi}
	}
	return nil
}

// Validate returns a *ParamError for the first value out of range.
func (cf *Config) Validate() error {
	const inf = math.MaxFloat64
	checks := []struct {
		name      string
		val, l, h float64
	}{
		{"Spont", cf.Spont, 1e-4, 180},
		{"Tabs", cf.Tabs, 0, 20e-3},
		{"Trel", cf.Trel, 0, 20e-3},
		{"NRep", float64(cf.NRep), 0, inf},
		{"NTimesteps", float64(cf.NTimesteps), 0, inf},
		{"CF", cf.CF, 125, 40e3},
		{"SampFreq", cf.SampFreq, 1, inf},
		{"TDRes", cf.TDRes, 1e-12, 1 / cf.SampFreq},
	}
	for _, c := range checks {
		if err := inRange(c.name, c.val, c.l, c.h); err != nil {
			return err
		}
	}
	if cf.Noise < 0 || cf.Noise >= fgn.NoiseTypeN {
		return &ParamError{Name: "Noise", Value: float64(cf.Noise), Lo: 0, Hi: float64(fgn.NoiseTypeN - 1)}
	}
	if cf.Variant < 0 || cf.Variant >= pla.VariantN {
		return &ParamError{Name: "Variant", Value: float64(cf.Variant), Lo: 0, Hi: float64(pla.VariantN - 1)}
	}
	return nil
}

// OpenConfig loads a TOML config file on top of the defaults.
func OpenConfig(filename string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	if _, err := toml.DecodeFile(filename, cf); err != nil {
		return nil, fmt.Errorf("synapse: config %s: %w", filename, err)
	}
	cf.Update()
	return cf, nil
}
