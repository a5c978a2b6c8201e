// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import "math"

const (
	miBase       = 171.0
	miVolume     = 5.2
	miComplexity = 0.23
	miLOC        = 16.2

	MaintainabilityMin = 0.0
	MaintainabilityMax = 100.0
)

const (
	noteVolumeSubstituted = "halstead volume is 0, substituted 1"
	noteLOCSubstituted    = "function has no code lines, substituted 1"
	noteHalsteadUndefined = "halstead metrics undefined: no operators or no operands"
)

// MaintainabilityIndex computes
//
//	171 - 5.2*ln(V) - 0.23*CC - 16.2*ln(LOC)
//
// clamped to [0, 100]. A zero volume or line count is replaced by 1 so the
// logarithm stays defined; every replacement is returned as a note and
// marks the result as low confidence.
func MaintainabilityIndex(volume float64, complexity, loc int) (float64, []string) {
	var notes []string

	v := volume
	if !(v > 0) {
		v = 1
		notes = append(notes, noteVolumeSubstituted)
	}
	l := float64(loc)
	if loc <= 0 {
		l = 1
		notes = append(notes, noteLOCSubstituted)
	}

	mi := miBase - miVolume*math.Log(v) - miComplexity*float64(complexity) - miLOC*math.Log(l)
	return clamp(mi, MaintainabilityMin, MaintainabilityMax), notes
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
