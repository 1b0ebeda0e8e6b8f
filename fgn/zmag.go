// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fgn

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

// ErrNegativeSpectrum is the internal invariant violation raised when the
// circulant embedding of the fGn autocovariance yields a negative eigenvalue.
var ErrNegativeSpectrum = errors.New("fgn: negative spectral magnitude")

// SpectrumError reports where the spectral magnitude construction failed.
type SpectrumError struct {
	Stage    string
	NSamples int
	Index    int
	Value    float64
}

func (se *SpectrumError) Error() string {
	return fmt.Sprintf("fgn: %s: nsamples %d: fft bin %d has negative real part %g", se.Stage, se.NSamples, se.Index, se.Value)
}

func (se *SpectrumError) Unwrap() error { return ErrNegativeSpectrum }

// FFTLen returns the spectrum length for nSamples: the smallest power of
// two that is >= 2 * (nSamples - 1).
func FFTLen(nSamples int) int {
	nfft := 1
	for nfft < 2*(nSamples-1) {
		nfft <<= 1
	}
	return nfft
}

// AutoCov is the autocovariance of unit-variance fGn with Hurst index h at lag k.
func AutoCov(k, h float64) float64 {
	h2 := 2 * h
	return 0.5 * (math.Pow(k+1, h2) - 2*math.Pow(k, h2) + math.Pow(math.Abs(k-1), h2))
}

// ZMag computes the spectral magnitude of fGn for nSamples output samples:
// the square root of the FFT of the circulant autocovariance sequence
// (lags 0..nfft/2, mirrored back down to 1).
func ZMag(nSamples int, hurst float64) ([]float64, error) {
	nfft := FFTLen(nSamples)
	half := nfft / 2
	ac := make([]float64, nfft)
	for i := range ac {
		k := i
		if i > half {
			k = nfft - i
		}
		ac[i] = AutoCov(float64(k), hurst)
	}
	spec := fft.FFTReal(ac)
	zmag := make([]float64, nfft)
	for i, c := range spec {
		re := real(c)
		if re < 0 {
			return nil, &SpectrumError{Stage: "spectral magnitude", NSamples: nSamples, Index: i, Value: re}
		}
		zmag[i] = math.Sqrt(re)
	}
	return zmag, nil
}

// ZMagCache holds the last computed spectral magnitude.  It is only
// recomputed when the requested sample count (or Hurst index) changes.
// Safe for concurrent use; returned slices must not be modified.
type ZMagCache struct {
	mu       sync.Mutex
	nSamples int
	hurst    float64
	zmag     []float64
	nBuilds  int
}

// Get returns the spectral magnitude for nSamples, computing it if the key changed.
func (zc *ZMagCache) Get(nSamples int, hurst float64) ([]float64, error) {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	if zc.zmag != nil && zc.nSamples == nSamples && zc.hurst == hurst {
		return zc.zmag, nil
	}
	zmag, err := ZMag(nSamples, hurst)
	if err != nil {
		return nil, err
	}
	zc.zmag = zmag
	zc.nSamples = nSamples
	zc.hurst = hurst
	zc.nBuilds++
	return zmag, nil
}

// NBuilds returns how many times the magnitude has been computed.
func (zc *ZMagCache) NBuilds() int {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.nBuilds
}
