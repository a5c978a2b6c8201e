// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

func TestBuildProjectReport(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	units := []model.SourceUnit{
		{
			Path: "a.go", Status: model.StatusComplete, LOC: 10,
			Functions: []model.FunctionRecord{
				{Name: "f", FilePath: "a.go", Complexity: 30, Risk: model.RiskHigh},
			},
		},
		{
			Path: "b.go", Status: model.StatusFailed,
			Errors: []model.FileError{{Path: "b.go", Kind: "parse", Message: "boom"}},
		},
		SkippedUnit("c.go"),
	}
	settings := model.Settings{TopN: 5, MaxComplexity: 25, RiskModerate: 10, RiskHigh: 20}

	report := BuildProjectReport(ReportInput{
		RootPath:    "root",
		GeneratedAt: at,
		Incomplete:  true,
		Units:       units,
		Settings:    settings,
	})

	assert.Equal(t, at, report.GeneratedAt)
	assert.True(t, report.Incomplete)
	assert.Equal(t, settings, report.Settings)
	assert.NotNil(t, report.Files[1].Functions)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "boom", report.Errors[0].Message)
	require.Len(t, report.TopOffenders, 1)
	assert.Equal(t, model.ThresholdResult{MaxComplexity: 25, Exceeded: true, Violations: 1}, report.Threshold)
	assert.NotEmpty(t, report.MetricMetadata)
	assert.Equal(t, 1, report.Summary.SkippedFiles)

	err := ThresholdError(report)
	assert.ErrorIs(t, err, errs.ErrThresholdExceeded)
	assert.Contains(t, err.Error(), "max complexity 25")
}

func TestBuildProjectReportEmptySlicesAreNotNil(t *testing.T) {
	report := BuildProjectReport(ReportInput{Settings: model.Settings{TopN: 10}})

	assert.NotNil(t, report.Files)
	assert.NotNil(t, report.TopOffenders)
	assert.NotNil(t, report.Errors)
	assert.False(t, report.Threshold.Exceeded)
	assert.NoError(t, ThresholdError(report))
}

func TestGenerateReport(t *testing.T) {
	storage := newMemStorage()
	require.NoError(t, storage.Save(context.Background(), "root", &model.ProjectReport{
		Summary: model.ProjectSummary{FunctionCount: 4},
	}))
	registry := stubRegistry{"text": stubRenderer{"text"}, "json": stubRenderer{"json"}}
	uc := NewGenerateReportUseCase(storage, registry)

	out, report, err := uc.Execute(context.Background(), GenerateReportRequest{RootPath: "root", Format: "JSON"})
	require.NoError(t, err)
	assert.Equal(t, "json:4", out)
	assert.Equal(t, 4, report.Summary.FunctionCount)

	out, _, err = uc.Execute(context.Background(), GenerateReportRequest{RootPath: "root"})
	require.NoError(t, err)
	assert.Equal(t, "text:4", out)

	_, _, err = uc.Execute(context.Background(), GenerateReportRequest{RootPath: "root", Format: "xml"})
	assert.ErrorContains(t, err, `unknown format "xml"`)

	_, _, err = uc.Execute(context.Background(), GenerateReportRequest{RootPath: "missing"})
	assert.Error(t, err)
}

func TestListMetrics(t *testing.T) {
	metrics := NewListMetricsUseCase().Execute(context.Background())

	assert.Equal(t, model.AllMetricSummaries(), metrics)
}
