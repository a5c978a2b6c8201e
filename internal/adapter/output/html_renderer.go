// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"
	labelWidth  = 32
)

var (
	riskColors = map[model.RiskLevel]string{
		model.RiskLow:      "#8ec07c",
		model.RiskModerate: "#fabd2f",
		model.RiskHigh:     "#fb4934",
	}
	statusColors = map[model.FileStatus]string{
		model.StatusComplete: "#8ec07c",
		model.StatusDegraded: "#fabd2f",
		model.StatusFailed:   "#fb4934",
		model.StatusSkipped:  "#928374",
	}
)

// HTMLRenderer draws a standalone dashboard page: the top offenders by
// complexity and the risk and file status breakdowns.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

var _ ports.OutputRenderer = (*HTMLRenderer)(nil)

func (r *HTMLRenderer) Format() string {
	return "html"
}

func (r *HTMLRenderer) Render(report *model.ProjectReport) (string, error) {
	page := components.NewPage()
	page.PageTitle = "techdebt: " + report.RootPath
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		offenderChart(report),
		riskChart(report.Summary),
		statusChart(report.Summary),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return "", fmt.Errorf("render html page: %w", err)
	}
	return buf.String(), nil
}

func offenderChart(report *model.ProjectReport) *charts.Bar {
	labels := make([]string, len(report.TopOffenders))
	values := make([]opts.BarData, len(report.TopOffenders))
	for i, o := range report.TopOffenders {
		labels[i] = truncate(o.Function, labelWidth)
		values[i] = opts.BarData{
			Name:      fmt.Sprintf("%s:%d", o.File, o.Line),
			Value:     o.Complexity,
			ItemStyle: &opts.ItemStyle{Color: riskColors[o.Risk]},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: "offenders", Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Top offenders",
			Subtitle: fmt.Sprintf("mean complexity %.2f, max %d", report.Summary.MeanComplexity, report.Summary.MaxComplexity),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "complexity"}),
	)
	bar.SetXAxis(labels).AddSeries("Cyclomatic complexity", values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

func riskChart(s model.ProjectSummary) *charts.Pie {
	data := []opts.PieData{
		{Name: string(model.RiskLow), Value: s.Distribution.Low, ItemStyle: &opts.ItemStyle{Color: riskColors[model.RiskLow]}},
		{Name: string(model.RiskModerate), Value: s.Distribution.Moderate, ItemStyle: &opts.ItemStyle{Color: riskColors[model.RiskModerate]}},
		{Name: string(model.RiskHigh), Value: s.Distribution.High, ItemStyle: &opts.ItemStyle{Color: riskColors[model.RiskHigh]}},
	}
	return pieChart("risk", "Functions by risk", fmt.Sprintf("%d functions", s.FunctionCount), data)
}

func statusChart(s model.ProjectSummary) *charts.Pie {
	complete := s.AnalyzedFiles - s.DegradedFiles
	data := []opts.PieData{
		{Name: string(model.StatusComplete), Value: complete, ItemStyle: &opts.ItemStyle{Color: statusColors[model.StatusComplete]}},
		{Name: string(model.StatusDegraded), Value: s.DegradedFiles, ItemStyle: &opts.ItemStyle{Color: statusColors[model.StatusDegraded]}},
		{Name: string(model.StatusFailed), Value: s.FailedFiles, ItemStyle: &opts.ItemStyle{Color: statusColors[model.StatusFailed]}},
		{Name: string(model.StatusSkipped), Value: s.SkippedFiles, ItemStyle: &opts.ItemStyle{Color: statusColors[model.StatusSkipped]}},
	}
	return pieChart("status", "Files by status", fmt.Sprintf("%d files, %.2f KLOC", s.FileCount, s.KLOC), data)
}

func pieChart(id, title, subtitle string, data []opts.PieData) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: "440px", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	pie.AddSeries(title, data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "65%"}}),
	)
	return pie
}
