// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

func record(path, name string, cc int, mi float64, loc int) model.FunctionRecord {
	return model.FunctionRecord{
		Name:            name,
		FilePath:        path,
		StartLine:       1,
		LOC:             loc,
		Complexity:      cc,
		Maintainability: mi,
		Risk:            DefaultRiskThresholds().Classify(cc),
	}
}

func TestSummarizeFile(t *testing.T) {
	fns := []model.FunctionRecord{
		record("a.go", "f", 2, 80, 10),
		record("a.go", "g", 12, 40, 30),
		record("a.go", "h", 1, 90, 3),
	}
	fns[1].MaxNesting = 4

	s := SummarizeFile(fns, DefaultRiskThresholds())

	assert.Equal(t, 3, s.FunctionCount)
	assert.InDelta(t, 5.0, s.MeanComplexity, 1e-9)
	assert.InDelta(t, 70.0, s.MeanMaintainability, 1e-9)
	assert.Equal(t, 15, s.TotalComplexity)
	assert.Equal(t, 12, s.MaxComplexity)
	assert.Equal(t, 30, s.LongestFunction)
	assert.Equal(t, 4, s.MaxNesting)
	assert.Equal(t, model.RiskModerate, s.Risk)
	assert.Equal(t, model.Distribution{Low: 2, Moderate: 1}, s.Distribution)
}

func TestSummarizeFileWithoutFunctions(t *testing.T) {
	s := SummarizeFile(nil, DefaultRiskThresholds())

	assert.Equal(t, model.FileSummary{Risk: model.RiskLow}, s)
}

func TestSummarizeProject(t *testing.T) {
	units := []model.SourceUnit{
		{
			Path: "a.go", Status: model.StatusComplete,
			RawLines: 40, LOC: 30, CommentLines: 10,
			Functions: []model.FunctionRecord{record("a.go", "f", 3, 70, 10), record("a.go", "g", 25, 20, 15)},
		},
		{
			Path: "b.go", Status: model.StatusDegraded,
			RawLines: 20, LOC: 20,
			Functions: []model.FunctionRecord{record("b.go", "h", 2, 90, 5)},
		},
		{Path: "c.go", Status: model.StatusFailed, RawLines: 100, LOC: 100},
		{Path: "d.go", Status: model.StatusSkipped},
	}

	s := SummarizeProject(units, DefaultRiskThresholds())

	assert.Equal(t, 4, s.FileCount)
	assert.Equal(t, 2, s.AnalyzedFiles)
	assert.Equal(t, 1, s.DegradedFiles)
	assert.Equal(t, 1, s.FailedFiles)
	assert.Equal(t, 1, s.SkippedFiles)
	assert.Equal(t, 50, s.TotalLOC)
	assert.InDelta(t, 0.05, s.KLOC, 1e-9)
	assert.Equal(t, 60, s.RawLines)
	assert.InDelta(t, 10.0/60.0, s.CommentDensity, 1e-9)
	assert.Equal(t, 3, s.FunctionCount)
	assert.InDelta(t, 10.0, s.MeanComplexity, 1e-9)
	assert.InDelta(t, 60.0, s.MeanMaintainability, 1e-9)
	assert.Equal(t, 25, s.MaxComplexity)
	assert.Equal(t, "a.go", s.MaxComplexityFile)
	assert.Equal(t, 30, s.TotalComplexity)
	assert.Equal(t, 28, s.MaxFileComplexity)
	assert.Equal(t, "a.go", s.MaxFileComplexityPath)
	assert.Equal(t, 15, s.LongestFunction)
	assert.Equal(t, model.RiskHigh, s.Risk)
	assert.Equal(t, model.Distribution{Low: 2, High: 1}, s.Distribution)
}

func TestSummarizeProjectFileTotalsDifferFromWorstFunction(t *testing.T) {
	units := []model.SourceUnit{
		{
			Path: "one.go", Status: model.StatusComplete,
			Functions: []model.FunctionRecord{record("one.go", "big", 9, 50, 10)},
		},
		{
			Path: "many.go", Status: model.StatusComplete,
			Functions: []model.FunctionRecord{
				record("many.go", "a", 4, 70, 5),
				record("many.go", "b", 4, 70, 5),
				record("many.go", "c", 4, 70, 5),
			},
		},
		{Path: "broken.go", Status: model.StatusFailed},
	}

	s := SummarizeProject(units, DefaultRiskThresholds())

	assert.Equal(t, 9, s.MaxComplexity)
	assert.Equal(t, "one.go", s.MaxComplexityFile)
	assert.Equal(t, 12, s.MaxFileComplexity)
	assert.Equal(t, "many.go", s.MaxFileComplexityPath)
	assert.Equal(t, 21, s.TotalComplexity)
}

func TestSummarizeProjectTotalIsSumOfFiles(t *testing.T) {
	units := []model.SourceUnit{
		{Path: "a.go", Status: model.StatusComplete, LOC: 7},
		{Path: "b.go", Status: model.StatusComplete, LOC: 11},
		{Path: "c.go", Status: model.StatusDegraded, LOC: 13},
	}

	s := SummarizeProject(units, DefaultRiskThresholds())

	assert.Equal(t, 31, s.TotalLOC)
	assert.Zero(t, s.FunctionCount)
	assert.Zero(t, s.MeanComplexity)
	assert.Equal(t, model.RiskLow, s.Risk)
}

func TestCommentDensity(t *testing.T) {
	assert.Zero(t, CommentDensity(0, 0))
	assert.InDelta(t, 0.25, CommentDensity(1, 3), 1e-9)
}
