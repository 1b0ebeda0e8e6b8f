// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pla

import "github.com/goki/ki/kit"

// Variant selects the power-law adaptation filter implementation.
type Variant int

//go:generate stringer -type=Variant

var KiT_Variant = kit.Enums.AddEnum(VariantN, kit.NotBitFlag, nil)

func (ev Variant) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Variant) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev Variant) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *Variant) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The filter variants
const (
	// Approximate is the cascade of second-order recursive sections
	// fit to the power-law kernel: O(1) per step.
	Approximate Variant = iota

	// Actual is the direct power-law convolution: O(k) per step,
	// only practical for short traces.
	Actual

	VariantN
)
