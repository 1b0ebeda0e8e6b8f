// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/emer/ansyn/runlog"
	"github.com/emer/ansyn/stats"
	"github.com/emer/ansyn/synapse"
	"github.com/emer/emergent/timer"
	"github.com/emer/empi/mpi"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/spf13/cobra"
)

// run command flags
var (
	runConfig   string
	runReceptor string
	runTrials   int
	runThreads  int
	runSeed     int64
	runPSTH     string
	runDB       string
	runMPI      bool
	runVerbose  bool
	runDur      float64
	runAmp      float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run repeated trials and report the PSTH",
	Example: `  # 100 trials of the default config on a ramped step
  ansyn run --trials 100 --psth psth.csv

  # config and receptor signal from files, recorded in a run log
  ansyn run --config an.toml --receptor ihc.txt --db runs.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runMPI {
			mpi.Init()
			defer mpi.Finalize()
		}
		tr := &synapse.Trials{}
		tr.Defaults()
		if runConfig != "" {
			cfg, err := synapse.OpenConfig(runConfig)
			if err != nil {
				return err
			}
			tr.Config = *cfg
		}
		tr.NTrials = runTrials
		tr.NThreads = runThreads
		tr.Seed = runSeed
		tr.Verbose = runVerbose
		tr.Config.Update()

		rec, err := receptor(&tr.Config)
		if err != nil {
			return err
		}
		res, err := runAll(tr, rec)
		if err != nil {
			return err
		}
		if runMPI && mpi.WorldRank() > 0 {
			return nil
		}
		report(os.Stdout, tr, res)
		if runPSTH != "" {
			if err := savePSTH(runPSTH, res); err != nil {
				return err
			}
		}
		if runDB != "" {
			lg, err := runlog.Open(runDB)
			if err != nil {
				return err
			}
			defer lg.Close()
			e, err := lg.Record(context.Background(), runlog.NewEntry(tr, res))
			if err != nil {
				return err
			}
			log.Printf("recorded run %s in %s\n", e.ID, runDB)
		}
		return nil
	},
}

func init() {
	fs := runCmd.Flags()
	fs.StringVar(&runConfig, "config", "", "TOML config file (defaults are used for unset values)")
	fs.StringVar(&runReceptor, "receptor", "", "receptor signal file of whitespace separated samples")
	fs.IntVar(&runTrials, "trials", 10, "number of independent trials")
	fs.IntVar(&runThreads, "threads", 0, "number of worker goroutines (0 = GOMAXPROCS)")
	fs.Int64Var(&runSeed, "seed", 1, "base random seed")
	fs.StringVar(&runPSTH, "psth", "", "CSV file to save the PSTH to")
	fs.StringVar(&runDB, "db", "", "SQLite run log to record the run in")
	fs.BoolVar(&runMPI, "mpi", false, "split trials across MPI processes")
	fs.BoolVar(&runVerbose, "verbose", false, "log each trial and thread timing")
	fs.Float64Var(&runDur, "dur", 0.05, "duration (s) of the ramped step receptor, when no receptor file is given")
	fs.Float64Var(&runAmp, "amp", 1e-3, "amplitude of the ramped step receptor")
}

// receptor returns the receptor signal, setting NTimesteps from its length
// when the config leaves it at 0.
func receptor(cfg *synapse.Config) ([]float64, error) {
	if runReceptor == "" {
		if cfg.NTimesteps == 0 {
			cfg.NTimesteps = int(runDur/cfg.TDRes + 0.5)
		}
		rise := int(2.5e-3/cfg.TDRes + 0.5)
		return synapse.RampedStep(cfg.NTimesteps, cfg.NRep, cfg.NTimesteps/10, rise, runAmp), nil
	}
	f, err := os.Open(runReceptor)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rec, err := synapse.ReadReceptor(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runReceptor, err)
	}
	if cfg.NTimesteps == 0 && cfg.NRep > 0 {
		cfg.NTimesteps = len(rec) / cfg.NRep
	}
	return rec, nil
}

// runAll runs this process's share of the trials and sums the results
// over all processes.
func runAll(tr *synapse.Trials, rec []float64) (*synapse.Result, error) {
	if !runMPI || mpi.WorldSize() <= 1 {
		return tr.Run(rec)
	}
	comm, err := mpi.NewComm(nil)
	if err != nil {
		return nil, err
	}
	rank, size := mpi.WorldRank(), mpi.WorldSize()
	st := rank * tr.NTrials / size
	ed := (rank + 1) * tr.NTrials / size
	mpi.Printf("running trials %d-%d on %d processes\n", st, ed, size)
	tmr := timer.Time{}
	tmr.Start()
	sm, err := tr.RunRange(rec, st, ed)
	if err != nil {
		return nil, err
	}
	for _, x := range [][]float64{sm.PSTH, sm.NSpikes, sm.Trd} {
		sum := make([]float64, len(x))
		if err := comm.AllReduceF64(mpi.OpSum, sum, x); err != nil {
			return nil, err
		}
		copy(x, sum)
	}
	tmr.Stop()
	res := sm.Finish()
	res.Elapsed = tmr.TotalSecs()
	return res, nil
}

func report(w io.Writer, tr *synapse.Trials, res *synapse.Result) {
	cfg := &tr.Config
	fmt.Fprintf(w, "CF: %g Hz\tSpont: %g\tNoise: %v\tVariant: %v\n", cfg.CF, cfg.Spont, cfg.Noise, cfg.Variant)
	fmt.Fprintf(w, "Trials: %d\tSpikes per trial: %.4g +/- %.4g\n", tr.NTrials, res.MeanSpikes, res.StdSpikes)
	rng := stats.Range(res.PSTH)
	mean := 0.0
	if len(res.PSTH) > 0 {
		mean = stats.Sum(res.PSTH) / float64(len(res.PSTH))
	}
	fmt.Fprintf(w, "PSTH: %d bins of %g s\tmean rate: %.4g\tmin: %.4g\tmax: %.4g spikes/s\n", len(res.PSTH), res.BinWidth, mean, rng.Min, rng.Max)
	trd := stats.Range(res.Trd)
	fmt.Fprintf(w, "Redocking time: %.4g - %.4g ms\n", trd.Min*1e3, trd.Max*1e3)
	fmt.Fprintf(w, "Time elapsed: %.4g s\n", res.Elapsed)
}

// PSTHTable returns the PSTH as a table of bin start times and rates.
func PSTHTable(res *synapse.Result) *etable.Table {
	dt := &etable.Table{}
	dt.SetFromSchema(etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"Rate", etensor.FLOAT64, nil, nil},
	}, len(res.PSTH))
	for i, v := range res.PSTH {
		dt.SetCellFloat("Time", i, float64(i)*res.BinWidth)
		dt.SetCellFloat("Rate", i, v)
	}
	return dt
}

func savePSTH(fname string, res *synapse.Result) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	return PSTHTable(res).WriteCSV(f, etable.Comma, etable.Headers)
}
