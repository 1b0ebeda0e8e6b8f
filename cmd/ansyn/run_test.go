// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emer/ansyn/synapse"
	"github.com/emer/etable/etable"
)

func TestPSTHTable(t *testing.T) {
	res := &synapse.Result{BinWidth: 0.5e-3, PSTH: []float64{0, 100, 250}}
	dt := PSTHTable(res)
	if dt.Rows != 3 {
		t.Fatalf("rows: %d != 3", dt.Rows)
	}
	for i, v := range res.PSTH {
		if tm := dt.CellFloat("Time", i); tm != float64(i)*res.BinWidth {
			t.Errorf("time %d: %g != %g", i, tm, float64(i)*res.BinWidth)
		}
		if r := dt.CellFloat("Rate", i); r != v {
			t.Errorf("rate %d: %g != %g", i, r, v)
		}
	}
	var b bytes.Buffer
	if err := dt.WriteCSV(&b, etable.Comma, etable.Headers); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("csv lines: %d != 4\n%s", len(lines), b.String())
	}
}

func TestReceptorDefault(t *testing.T) {
	runReceptor = ""
	runDur = 0.01
	runAmp = 1e-3
	cfg := &synapse.Config{}
	cfg.Defaults()
	rec, err := receptor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NTimesteps != 1000 {
		t.Errorf("NTimesteps: %d != 1000", cfg.NTimesteps)
	}
	if len(rec) != cfg.NSamples() {
		t.Errorf("len: %d != %d", len(rec), cfg.NSamples())
	}
	if rec[0] != 0 || rec[len(rec)-1] != runAmp {
		t.Errorf("ramp ends: %g, %g", rec[0], rec[len(rec)-1])
	}
}
