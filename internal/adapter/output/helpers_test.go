// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output_test

import (
	"errors"
	"time"

	"github.com/rafaelvolkmer/techdebt/internal/adapter/parser"
	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/metrics"
	"github.com/rafaelvolkmer/techdebt/internal/usecase"
)

const gradeSrc = `package sample

// Grade maps a score to a letter.
func Grade(score int) string {
	if score > 90 {
		return "A"
	}
	if score > 80 {
		return "B"
	}
	if score > 70 {
		return "C"
	}
	if score > 60 && score < 100 {
		return "D"
	}
	for i := 0; i < 3; i++ {
		score++
	}
	return "F"
}
`

const signSrc = `package sample

func Sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}
`

var generatedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// sampleReport measures two small files and one unreadable one.
func sampleReport(maxComplexity int) *model.ProjectReport {
	risk := metrics.RiskThresholds{Moderate: 5, High: 20}
	p := parser.NewGoParser()

	units := []model.SourceUnit{
		usecase.MeasureFile("pkg/grade.go", []byte(gradeSrc), p, risk),
		usecase.FailedUnit("pkg/gone.go", errs.IO("pkg/gone.go", errors.New("permission denied"))),
		usecase.MeasureFile("pkg/sign.go", []byte(signSrc), p, risk),
	}

	return usecase.BuildProjectReport(usecase.ReportInput{
		RootPath:    "/work/sample",
		Module:      "example.com/sample",
		GeneratedAt: generatedAt,
		Units:       units,
		Settings: model.Settings{
			TopN:          10,
			MaxComplexity: maxComplexity,
			RiskModerate:  risk.Moderate,
			RiskHigh:      risk.High,
		},
	})
}
