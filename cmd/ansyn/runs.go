// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/emer/ansyn/runlog"
	"github.com/spf13/cobra"
)

var runsDB string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the runs recorded in a run log",
	RunE: func(cmd *cobra.Command, args []string) error {
		lg, err := runlog.Open(runsDB)
		if err != nil {
			return err
		}
		defer lg.Close()
		es, err := lg.List(context.Background())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCreated\tCF\tSpont\tNoise\tVariant\tTrials\tSpikes\tStd\tSecs")
		for _, e := range es {
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%s\t%s\t%d\t%.4g\t%.4g\t%.3g\n", e.ID, e.Created.Format("2006-01-02 15:04:05"),
				e.CF, e.Spont, e.Noise, e.Variant, e.Trials, e.NSpikesMean, e.NSpikesStd, e.ElapsedSecs)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsDB, "db", "runs.db", "SQLite run log")
}
