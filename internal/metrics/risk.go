// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import "github.com/rafaelvolkmer/techdebt/internal/domain/model"

const (
	DefaultRiskModerate = 10
	DefaultRiskHigh     = 20
)

// RiskThresholds are exclusive lower bounds: a complexity above Moderate is
// moderate, above High is high.
type RiskThresholds struct {
	Moderate int
	High     int
}

func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{Moderate: DefaultRiskModerate, High: DefaultRiskHigh}
}

func (t RiskThresholds) Classify(complexity int) model.RiskLevel {
	switch {
	case complexity > t.High:
		return model.RiskHigh
	case complexity > t.Moderate:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

func tally(d *model.Distribution, r model.RiskLevel) {
	switch r {
	case model.RiskHigh:
		d.High++
	case model.RiskModerate:
		d.Moderate++
	default:
		d.Low++
	}
}

func distribution(fns []model.FunctionRecord) model.Distribution {
	var d model.Distribution
	for i := range fns {
		tally(&d, fns[i].Risk)
	}
	return d
}
