// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const metricPrefix = "techdebt_"

var complexityBuckets = []float64{1, 2, 5, 10, 15, 20, 30, 50}

// TextfileSink writes report gauges in the Prometheus text format, for the
// node exporter textfile collector.
type TextfileSink struct {
	path string
}

func NewTextfileSink(path string) *TextfileSink {
	return &TextfileSink{path: path}
}

var _ ports.MetricsSink = (*TextfileSink)(nil)

func (s *TextfileSink) Export(report *model.ProjectReport) error {
	reg, err := NewReportRegistry(report)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(s.path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// NewReportRegistry builds a registry holding the summary of report.
func NewReportRegistry(report *model.ProjectReport) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	sum := report.Summary

	gauge := func(name, help string, value float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: metricPrefix + name, Help: help})
		g.Set(value)
		return g
	}

	files := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: metricPrefix + "files",
		Help: "Files per analysis status.",
	}, []string{"status"})
	files.WithLabelValues(string(model.StatusComplete)).Set(float64(sum.AnalyzedFiles - sum.DegradedFiles))
	files.WithLabelValues(string(model.StatusDegraded)).Set(float64(sum.DegradedFiles))
	files.WithLabelValues(string(model.StatusFailed)).Set(float64(sum.FailedFiles))
	files.WithLabelValues(string(model.StatusSkipped)).Set(float64(sum.SkippedFiles))

	risk := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: metricPrefix + "functions_by_risk",
		Help: "Functions per risk band.",
	}, []string{"risk"})
	risk.WithLabelValues(string(model.RiskLow)).Set(float64(sum.Distribution.Low))
	risk.WithLabelValues(string(model.RiskModerate)).Set(float64(sum.Distribution.Moderate))
	risk.WithLabelValues(string(model.RiskHigh)).Set(float64(sum.Distribution.High))

	complexity := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    metricPrefix + "function_complexity",
		Help:    "Cyclomatic complexity of analyzed functions.",
		Buckets: complexityBuckets,
	})
	for i := range report.Files {
		for _, fn := range report.Files[i].Functions {
			complexity.Observe(float64(fn.Complexity))
		}
	}

	incomplete := 0.0
	if report.Incomplete {
		incomplete = 1
	}

	collectors := []prometheus.Collector{
		gauge("loc", "Lines of code over analyzed files.", float64(sum.TotalLOC)),
		gauge("functions", "Analyzed functions.", float64(sum.FunctionCount)),
		gauge("complexity_mean", "Mean cyclomatic complexity per function.", sum.MeanComplexity),
		gauge("complexity_max", "Highest cyclomatic complexity of any function.", float64(sum.MaxComplexity)),
		gauge("maintainability_mean", "Mean maintainability index per function.", sum.MeanMaintainability),
		gauge("comment_density", "Comment-only lines over comment and code lines.", sum.CommentDensity),
		gauge("threshold_violations", "Functions above the configured max complexity.", float64(report.Threshold.Violations)),
		gauge("incomplete", "1 when the run stopped before every file was analyzed.", incomplete),
		files,
		risk,
		complexity,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return reg, nil
}
