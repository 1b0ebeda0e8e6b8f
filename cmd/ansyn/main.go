// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ansyn runs the auditory nerve synapse model: repeated stochastic trials
// on a receptor signal, reporting the PSTH and spike count statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ansyn",
	Short: "Auditory nerve synapse and spike generation model",
	Long: `ansyn simulates the synapse between an inner hair cell and an auditory
nerve fiber: power-law adaptation driven by fractional Gaussian noise,
followed by a multi-site stochastic spike generator.

The receptor (inner hair cell) signal is read from a file of whitespace
separated samples, or a ramped step is used when none is given.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, benchCmd, runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
