// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/c2h5oh/datasize"
	"github.com/emer/ansyn/fgn"
	"github.com/emer/ansyn/stats"
	"github.com/emer/ansyn/synrand"
	"github.com/emer/emergent/timer"
	"github.com/goki/ki/ints"
)

// Trials runs independent repetitions of the same run, each with its own
// random source seeded from Seed + trial, distributed over NThreads worker
// goroutines.  Results do not depend on NThreads.
type Trials struct {
	Config   Config `desc:"configuration shared by every trial"`
	NTrials  int    `def:"10" desc:"number of independent trials"`
	NThreads int    `desc:"number of worker goroutines -- 0 uses GOMAXPROCS"`
	Seed     int64  `desc:"base random seed -- trial i uses Seed + i"`
	Verbose  bool   `desc:"log each trial and the per-thread timing"`

	ThrTimes []timer.Time `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	Cache    fgn.ZMagCache `view:"-" desc:"noise spectrum shared by all trials"`
}

func (tr *Trials) Defaults() {
	tr.Config.Defaults()
	tr.NTrials = 10
}

// Sums are the raw sums over a range of trials, which can be added
// across processes before Finish.
type Sums struct {
	NTrials  int       `desc:"total number of trials the sums will cover"`
	BinWidth float64   `desc:"PSTH bin width (s)"`
	PSTH     []float64 `desc:"spike counts per PSTH bin, summed over trials"`
	NSpikes  []float64 `desc:"spike count of each trial -- zero for trials not run here"`
	Trd      []float64 `desc:"redocking trace summed over trials"`
}

// Result summarizes all trials
type Result struct {
	BinWidth   float64   `desc:"PSTH bin width (s)"`
	PSTH       []float64 `desc:"firing rate (spikes/s) per PSTH bin, averaged over trials"`
	NSpikes    []float64 `desc:"spike count of each trial"`
	MeanSpikes float64   `desc:"mean spike count per trial"`
	StdSpikes  float64   `desc:"standard deviation of the spike count over trials"`
	Trd        []float64 `desc:"mean redocking trace (s) over trials"`
	Elapsed    float64   `desc:"wall clock time (s) of the trials"`
}

// PSTHBins returns the number of TDRes samples per PSTH bin and the number
// of PSTH bins per stimulus period.
func (cf *Config) PSTHBins() (per, nbins int) {
	per = ints.MaxInt(1, int(math.Round(cf.PSTHBinWidth/cf.TDRes)))
	return per, cf.NTimesteps / per
}

// Run does all NTrials trials on receptor signal receptor.
func (tr *Trials) Run(receptor []float64) (*Result, error) {
	st := timer.Time{}
	st.Start()
	sm, err := tr.RunRange(receptor, 0, tr.NTrials)
	if err != nil {
		return nil, err
	}
	st.Stop()
	res := sm.Finish()
	res.Elapsed = st.TotalSecs()
	return res, nil
}

// RunRange does trials [start, end) and returns their unscaled sums.
func (tr *Trials) RunRange(receptor []float64, start, end int) (*Sums, error) {
	cfg := tr.Config
	cfg.Update()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if start < 0 || end > tr.NTrials || start > end {
		return nil, fmt.Errorf("synapse: trial range [%d, %d) outside [0, %d)", start, end, tr.NTrials)
	}
	per, nbins := cfg.PSTHBins()
	sm := &Sums{
		NTrials:  tr.NTrials,
		BinWidth: float64(per) * cfg.TDRes,
		PSTH:     make([]float64, nbins),
		NSpikes:  make([]float64, tr.NTrials),
		Trd:      make([]float64, cfg.NSamples()),
	}
	nrun := end - start
	if nrun == 0 {
		return sm, nil
	}

	outs := make([]*Output, nrun)
	errs := make([]error, nrun)
	nthr := tr.NThreads
	if nthr <= 0 {
		nthr = runtime.GOMAXPROCS(0)
	}
	nthr = ints.MinInt(nthr, nrun)
	tr.ThrTimes = make([]timer.Time, nthr)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for th := 0; th < nthr; th++ {
		wg.Add(1)
		go func(th int) {
			defer wg.Done()
			for ti := range jobs {
				tr.ThrTimes[th].Start()
				src := synrand.New(tr.Seed + int64(ti))
				outs[ti-start], errs[ti-start] = Run(receptor, &cfg, src, &tr.Cache)
				tr.ThrTimes[th].Stop()
				if tr.Verbose && errs[ti-start] == nil {
					log.Printf("trial %d/%d: %d spikes\n", ti, tr.NTrials, outs[ti-start].NSpikes)
				}
			}
		}(th)
	}
	for ti := start; ti < end; ti++ {
		jobs <- ti
	}
	close(jobs)
	wg.Wait()

	mem := 0
	for i, out := range outs {
		if errs[i] != nil {
			return nil, fmt.Errorf("synapse: trial %d: %w", start+i, errs[i])
		}
		binned := stats.Rebin(out.PSTH, per, nbins)
		for j, v := range binned {
			sm.PSTH[j] += v
		}
		sm.NSpikes[start+i] = stats.Sum(out.PSTH)
		for j, v := range out.Trd {
			sm.Trd[j] += v
		}
		mem += 8 * (len(out.SynOut) + len(out.SpikeTimes) + len(out.PSTH) + len(out.Trd) + len(out.MeanRate) + len(out.VarRate) + len(out.Trel))
	}
	if tr.Verbose {
		tr.TimerReport()
		log.Printf("trials %d-%d: output buffers %v\n", start, end, datasize.ByteSize(mem).HumanReadable())
	}
	return sm, nil
}

// Finish scales the sums into the trial averages.
func (sm *Sums) Finish() *Result {
	res := &Result{
		BinWidth: sm.BinWidth,
		PSTH:     make([]float64, len(sm.PSTH)),
		NSpikes:  sm.NSpikes,
		Trd:      make([]float64, len(sm.Trd)),
	}
	if sm.NTrials == 0 {
		return res
	}
	nt := float64(sm.NTrials)
	for i, v := range sm.PSTH {
		res.PSTH[i] = v / nt / sm.BinWidth
	}
	for i, v := range sm.Trd {
		res.Trd[i] = v / nt
	}
	res.MeanSpikes, res.StdSpikes = stats.Summary(sm.NSpikes)
	return res
}

// TimerReport logs the time spent in each thread
func (tr *Trials) TimerReport() {
	tot := 0.0
	for th := range tr.ThrTimes {
		tot += tr.ThrTimes[th].TotalSecs()
	}
	log.Printf("TimerReport: NThreads: %v, Total Secs: %6.4g\n", len(tr.ThrTimes), tot)
	if tot == 0 {
		return
	}
	for th := range tr.ThrTimes {
		secs := tr.ThrTimes[th].TotalSecs()
		log.Printf("\t%v \t%6.4g\t%6.4g\n", th, secs, 100*(secs/tot))
	}
}
