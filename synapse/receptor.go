// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synapse

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// RampedStep returns a receptor signal of nrep repetitions of n samples,
// each silent for on samples, then rising over rise samples with a raised
// cosine to amp, and holding amp to the end of the repetition.
func RampedStep(n, nrep, on, rise int, amp float64) []float64 {
	x := make([]float64, n*nrep)
	for i := 0; i < n; i++ {
		var v float64
		switch {
		case i < on:
			v = 0
		case i < on+rise:
			v = amp * 0.5 * (1 - math.Cos(math.Pi*float64(i-on)/float64(rise)))
		default:
			v = amp
		}
		for r := 0; r < nrep; r++ {
			x[r*n+i] = v
		}
	}
	return x
}

// ReadReceptor reads whitespace separated receptor samples from r.
func ReadReceptor(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var x []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("synapse: receptor sample %d: %w", len(x), err)
		}
		x = append(x, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return x, nil
}
