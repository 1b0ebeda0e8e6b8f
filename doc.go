// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ansyn is the overall repository for the auditory nerve synapse model:
the stage between inner hair cell receptor potential and auditory nerve
spike times, with power-law adaptation and multi-site stochastic release.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* synrand: the uniform and Gaussian random source shared by every stochastic
stage, seedable per run so that runs are reproducible.

* fgn: fractional Gaussian noise by spectral synthesis, with a cache of the
noise spectrum shared across runs.

* resamp: the decimation and interpolation between the receptor time resolution
and the internal sampling rate of the adaptation.

* pla: the power-law adaptation filter, as an exact convolution or a cascade of
second order sections, and the mapping from receptor signal to filter input.

* spikegen: the multi-site synaptic vesicle release and redocking model that
turns the release rate into spike times.

* stats: the analytic mean rate and variance of the discharge, and the PSTH.

* synapse: one complete run, and parallel independent trials combined into
an average PSTH.

* runlog: a SQLite log of run configurations and results.

* cmd/ansyn: the command line tool to run trials, benchmark the adaptation
filter, and list logged runs.
*/
package ansyn
