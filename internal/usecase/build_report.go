// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"fmt"
	"time"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/metrics"
)

type ReportInput struct {
	RootPath    string
	Module      string
	GeneratedAt time.Time
	Incomplete  bool
	Units       []model.SourceUnit
	Settings    model.Settings
}

// BuildProjectReport aggregates the units, in the order given, into the
// report handed to storage and renderers.
func BuildProjectReport(in ReportInput) *model.ProjectReport {
	risk := metrics.RiskThresholds{Moderate: in.Settings.RiskModerate, High: in.Settings.RiskHigh}

	units := make([]model.SourceUnit, len(in.Units))
	copy(units, in.Units)

	fileErrors := []model.FileError{}
	for i := range units {
		if units[i].Functions == nil {
			units[i].Functions = []model.FunctionRecord{}
		}
		fileErrors = append(fileErrors, units[i].Errors...)
	}

	return &model.ProjectReport{
		RootPath:       in.RootPath,
		Module:         in.Module,
		GeneratedAt:    in.GeneratedAt,
		Incomplete:     in.Incomplete,
		Summary:        metrics.SummarizeProject(units, risk),
		TopOffenders:   metrics.TopOffenders(units, in.Settings.TopN),
		Files:          units,
		Errors:         fileErrors,
		Threshold:      checkThreshold(units, in.Settings.MaxComplexity),
		Settings:       in.Settings,
		MetricMetadata: model.AllMetricSummaries(),
	}
}

func checkThreshold(units []model.SourceUnit, maxComplexity int) model.ThresholdResult {
	res := model.ThresholdResult{MaxComplexity: maxComplexity}
	if maxComplexity <= 0 {
		return res
	}
	for i := range units {
		if !units[i].Measured() {
			continue
		}
		for _, fn := range units[i].Functions {
			if fn.Complexity > maxComplexity {
				res.Violations++
			}
		}
	}
	res.Exceeded = res.Violations > 0
	return res
}

// ThresholdError returns an errs.ErrThresholdExceeded error when the report
// failed its complexity gate, and nil otherwise.
func ThresholdError(report *model.ProjectReport) error {
	if report == nil || !report.Threshold.Exceeded {
		return nil
	}
	return errs.ThresholdExceeded(fmt.Sprintf(
		"%d function(s) exceed max complexity %d (highest %d in %s)",
		report.Threshold.Violations,
		report.Threshold.MaxComplexity,
		report.Summary.MaxComplexity,
		report.Summary.MaxComplexityFile,
	))
}
