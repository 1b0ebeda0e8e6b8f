// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pla

import (
	"math"
	"testing"

	"github.com/emer/ansyn/fgn"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

// agreeTol is the tolerance, relative to the peak output, between the
// Approximate and Actual variants on short step inputs.
// The measured discrepancy is below 3e-5.
const agreeTol = 1.0e-4

func stepInput(n, lead int, amp float64) []float64 {
	in := make([]float64, n)
	for i := lead; i < n; i++ {
		in[i] = amp
	}
	return in
}

func filters(t *testing.T) (Filter, Filter) {
	pp := &Params{}
	pp.Defaults()
	ap, err := New(Approximate, pp)
	if err != nil {
		t.Fatal(err)
	}
	ex, err := New(Actual, pp)
	if err != nil {
		t.Fatal(err)
	}
	return ap, ex
}

func TestParams(t *testing.T) {
	pp := &Params{}
	pp.Defaults()
	if math.Abs(pp.Alpha1-0.15) > difTol || pp.Alpha2 != 1000 {
		t.Errorf("alphas: %v %v", pp.Alpha1, pp.Alpha2)
	}
	if math.Abs(pp.BinWidth-1e-4) > 1e-15 {
		t.Errorf("BinWidth: %v", pp.BinWidth)
	}
	if _, err := New(VariantN, pp); err == nil {
		t.Errorf("expected error for invalid variant")
	}
}

func TestApproxRef(t *testing.T) {
	noise, err := fgn.NewGenerator(fgn.Ones, nil, nil).Gen(200, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ap, ex := filters(t)
	in := stepInput(200, 0, 1)
	aout := ap.Filter(in, noise)
	eout := ex.Filter(in, noise)
	if len(aout) != 200 || len(eout) != 200 {
		t.Fatalf("lengths: %d %d", len(aout), len(eout))
	}
	// first sample has no feedback
	if dif := math.Abs(aout[0] - (1 + noise[0] + 1)); dif > difTol {
		t.Errorf("aout[0]: %v, dif %v", aout[0], dif)
	}
	if dif := math.Abs(aout[0] - eout[0]); dif > difTol {
		t.Errorf("out[0] differs: %v vs %v", aout[0], eout[0])
	}
	if dif := math.Abs(aout[199] - 2.928236823064236); dif > 1.0e-7 {
		t.Errorf("aout[199]: %v, dif %v", aout[199], dif)
	}
	if dif := math.Abs(eout[199] - 2.928094836217424); dif > 1.0e-7 {
		t.Errorf("eout[199]: %v, dif %v", eout[199], dif)
	}
}

func TestVariantAgreement(t *testing.T) {
	ap, ex := filters(t)
	for _, mu := range []float64{0.1, 100} {
		noise, err := fgn.NewGenerator(fgn.Ones, nil, nil).Gen(200, mu)
		if err != nil {
			t.Fatal(err)
		}
		for _, amp := range []float64{1, 100, 1000} {
			for _, lead := range []int{0, 20} {
				in := stepInput(200, lead, amp)
				aout := ap.Filter(in, noise)
				eout := ex.Filter(in, noise)
				pk := 0.0
				for _, v := range eout {
					pk = math.Max(pk, math.Abs(v))
				}
				for i := range aout {
					if aout[i] < 0 {
						t.Errorf("mu %v amp %v: negative output at %d: %v", mu, amp, i, aout[i])
					}
					if dif := math.Abs(aout[i]-eout[i]) / pk; dif > agreeTol {
						t.Errorf("mu %v amp %v lead %d: index %d approx %v actual %v rel dif %v", mu, amp, lead, i, aout[i], eout[i], dif)
					}
				}
			}
		}
	}
}

func TestCascadeReset(t *testing.T) {
	cs := FastCascade()
	a := make([]float64, 10)
	for i := range a {
		a[i] = cs.Step(1)
	}
	cs.Reset()
	for i := range a {
		if v := cs.Step(1); v != a[i] {
			t.Errorf("after reset step %d: %v vs %v", i, v, a[i])
		}
	}
}

func TestMapParams(t *testing.T) {
	tests := []struct {
		spont, cf, cff, mult float64
		dp                   int
		x, mx                float64
	}{
		{100, 5000, 397.1899767021851, 3.3, 1500, 0.05, 29388.09642833004},
		{0.1, 1000, 0.12249725438221179, 4.4220500000000005, 7500, 1e-3, 7.968264086992549},
		{50, 12000, 1755.0647972312033, 2.95, 625, 1e-3, 1478.6447300585874},
	}
	for _, tt := range tests {
		mp := NewMapParams(tt.spont, tt.cf)
		if dif := math.Abs(mp.CFFactor-tt.cff) / tt.cff; dif > difTol {
			t.Errorf("spont %v cf %v: CFFactor %v, cor %v", tt.spont, tt.cf, mp.CFFactor, tt.cff)
		}
		if dif := math.Abs(mp.MultFac - tt.mult); dif > difTol {
			t.Errorf("spont %v cf %v: MultFac %v, cor %v", tt.spont, tt.cf, mp.MultFac, tt.mult)
		}
		if mp.DelayPoint != tt.dp {
			t.Errorf("cf %v: DelayPoint %d, cor %d", tt.cf, mp.DelayPoint, tt.dp)
		}
		if dif := math.Abs(mp.Map(tt.x)-tt.mx) / tt.mx; dif > difTol {
			t.Errorf("Map(%v): %v, cor %v", tt.x, mp.Map(tt.x), tt.mx)
		}
		if mp.Map(-tt.x) != -mp.Map(tt.x) {
			t.Errorf("Map not odd: %v vs %v", mp.Map(-tt.x), mp.Map(tt.x))
		}
	}
	mp := NewMapParams(100, 5000)
	if mp.Map(0) != 0 {
		t.Errorf("Map(0): %v", mp.Map(0))
	}
}

func TestPowerLawIn(t *testing.T) {
	mp := NewMapParams(10, 750e3) // DelayPoint 10
	if mp.DelayPoint != 10 {
		t.Fatalf("DelayPoint: %d", mp.DelayPoint)
	}
	ihc := []float64{0.01, 0.02, -0.01, 0.03, 0}
	pin := mp.PowerLawIn(ihc)
	d := mp.DelayPoint
	if len(pin) != len(ihc)+3*d {
		t.Fatalf("len: %d", len(pin))
	}
	off := 30.0
	for k := 0; k < d; k++ {
		if pin[k] != mp.Map(ihc[0])+off {
			t.Errorf("lead %d: %v", k, pin[k])
		}
	}
	for k := range ihc {
		if pin[d+k] != mp.Map(ihc[k])+off {
			t.Errorf("signal %d: %v", k, pin[d+k])
		}
	}
	for k := len(ihc) + d; k < len(pin); k++ {
		if dif := math.Abs(pin[k] - pin[k-1] - off); dif > 1.0e-9 {
			t.Errorf("trail %d: step %v", k, pin[k]-pin[k-1])
		}
	}
	in := mp.Input(ihc, 1e-5, 10e3)
	if len(in) != 4 { // ceil(35 / 10)
		t.Errorf("Input len: %d", len(in))
	}
	if in[1] != pin[10] {
		t.Errorf("Input[1]: %v vs %v", in[1], pin[10])
	}
}

func TestVariantString(t *testing.T) {
	var v Variant
	if err := v.UnmarshalText([]byte("Actual")); err != nil || v != Actual {
		t.Errorf("UnmarshalText: %v %v", v, err)
	}
	if Approximate.String() != "Approximate" {
		t.Errorf("String: %v", Approximate.String())
	}
}
