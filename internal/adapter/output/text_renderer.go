// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const (
	defaultMaxFiles = 20
	pathWidth       = 48
	nameWidth       = 36
)

type TextOptions struct {
	NoColor bool
	// MaxFiles caps the per-file table; 0 uses the default.
	MaxFiles int
}

type TextRenderer struct {
	opts TextOptions
	pal  palette
}

func NewTextRenderer(opts TextOptions) *TextRenderer {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaultMaxFiles
	}
	return &TextRenderer{opts: opts, pal: newPalette(opts.NoColor)}
}

var _ ports.OutputRenderer = (*TextRenderer)(nil)

func (r *TextRenderer) Format() string {
	return "text"
}

func (r *TextRenderer) Render(report *model.ProjectReport) (string, error) {
	var b strings.Builder
	p := r.pal
	s := report.Summary

	fmt.Fprintf(&b, "%s\n", p.accent.Sprint("Technical Debt Report"))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Root:"), p.value.Sprint(report.RootPath))
	if report.Module != "" {
		fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Module:"), p.value.Sprint(report.Module))
	}
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Generated at:"), p.value.Sprint(report.GeneratedAt.Format(time.RFC3339)))
	if report.Incomplete {
		fmt.Fprintf(&b, "%s\n", p.warn.Sprint("Analysis incomplete: the run was cancelled before every file was measured."))
	}

	fmt.Fprintf(&b, "\n%s\n", p.title.Sprint("== Project Summary =="))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Files:"), p.value.Sprintf("%d (analyzed %d, degraded %d, failed %d, skipped %d)",
		s.FileCount, s.AnalyzedFiles, s.DegradedFiles, s.FailedFiles, s.SkippedFiles))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Lines of code:"), p.value.Sprintf("%s (%.2f KLOC, %s raw)",
		humanize.Comma(int64(s.TotalLOC)), s.KLOC, humanize.Comma(int64(s.RawLines))))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Comment density:"), p.value.Sprintf("%.1f%%", s.CommentDensity*100))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Functions:"), p.value.Sprint(humanize.Comma(int64(s.FunctionCount))))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Mean complexity:"), p.byRisk(s.Risk).Sprintf("%.2f", s.MeanComplexity))
	if s.MaxComplexityFile != "" {
		fmt.Fprintf(&b, "%s %s %s\n", p.label.Sprint("Max complexity:"),
			p.byRisk(s.Risk).Sprintf("%d", s.MaxComplexity), p.label.Sprintf("(%s)", s.MaxComplexityFile))
	}
	if s.MaxFileComplexityPath != "" {
		fmt.Fprintf(&b, "%s %s %s\n", p.label.Sprint("Total complexity:"),
			p.value.Sprintf("%d", s.TotalComplexity), p.label.Sprintf("(heaviest file %s: %d)", s.MaxFileComplexityPath, s.MaxFileComplexity))
	}
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Mean maintainability:"), p.byMaintainability(s.MeanMaintainability).Sprintf("%.1f", s.MeanMaintainability))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Longest function:"), p.value.Sprintf("%d LOC", s.LongestFunction))
	fmt.Fprintf(&b, "%s %s\n", p.label.Sprint("Max nesting:"), p.value.Sprintf("%d", s.MaxNesting))
	fmt.Fprintf(&b, "%s %s %s\n", p.label.Sprint("Risk:"), p.byRisk(s.Risk).Sprint(string(s.Risk)),
		p.label.Sprintf("(low %d, moderate %d, high %d)", s.Distribution.Low, s.Distribution.Moderate, s.Distribution.High))

	r.writeThreshold(&b, report)

	if len(report.TopOffenders) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.title.Sprintf("== Top %d Offenders ==", len(report.TopOffenders)))
		b.WriteString(r.offenderTable(report.TopOffenders))
		b.WriteString("\n")
	}

	if len(report.Files) > 0 {
		files := report.Files
		heading := "== Files =="
		if len(files) > r.opts.MaxFiles {
			files = files[:r.opts.MaxFiles]
			heading = fmt.Sprintf("== Files (first %d of %d) ==", r.opts.MaxFiles, len(report.Files))
		}
		fmt.Fprintf(&b, "\n%s\n", p.title.Sprint(heading))
		b.WriteString(r.fileTable(files))
		b.WriteString("\n")
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.title.Sprint("== Errors =="))
		for _, e := range report.Errors {
			loc := e.Path
			if e.Line > 0 {
				loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
			}
			fmt.Fprintf(&b, "%s %s %s\n", p.warn.Sprint("-"), p.file.Sprint(loc), p.warn.Sprintf("[%s] %s", e.Kind, e.Message))
		}
	}

	return b.String(), nil
}

func (r *TextRenderer) writeThreshold(b *strings.Builder, report *model.ProjectReport) {
	p := r.pal
	t := report.Threshold

	switch {
	case t.MaxComplexity == 0:
		fmt.Fprintf(b, "%s %s\n", p.label.Sprint("Complexity gate:"), p.label.Sprint("disabled"))
	case t.Exceeded:
		fmt.Fprintf(b, "%s %s\n", p.label.Sprint("Complexity gate:"),
			p.danger.Sprintf("FAILED: %d function(s) above %d", t.Violations, t.MaxComplexity))
	default:
		fmt.Fprintf(b, "%s %s\n", p.label.Sprint("Complexity gate:"),
			p.good.Sprintf("passed (max %d)", t.MaxComplexity))
	}
}

func (r *TextRenderer) offenderTable(offenders []model.Offender) string {
	p := r.pal
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "File", "Function", "Line", "CC", "MI", "Volume", "Risk"})

	for _, o := range offenders {
		tbl.AppendRow(table.Row{
			o.Rank,
			p.file.Sprint(trimPath(o.File, pathWidth)),
			p.fn.Sprint(truncate(o.Function, nameWidth)),
			o.Line,
			p.byRisk(o.Risk).Sprint(o.Complexity),
			p.byMaintainability(o.Maintainability).Sprintf("%.1f", o.Maintainability),
			fmt.Sprintf("%.1f", o.Halstead.Volume),
			p.byRisk(o.Risk).Sprint(string(o.Risk)),
		})
	}
	return tbl.Render()
}

func (r *TextRenderer) fileTable(files []model.SourceUnit) string {
	p := r.pal
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"File", "Status", "LOC", "Funcs", "Mean CC", "Max CC", "Mean MI", "Risk"})

	for _, f := range files {
		row := table.Row{
			p.file.Sprint(trimPath(f.Path, pathWidth)),
			p.byStatus(f.Status).Sprint(string(f.Status)),
		}
		if !f.Measured() {
			row = append(row, "-", "-", "-", "-", "-", "-")
		} else {
			sum := f.Summary
			row = append(row,
				humanize.Comma(int64(f.LOC)),
				sum.FunctionCount,
				fmt.Sprintf("%.2f", sum.MeanComplexity),
				p.byRisk(sum.Risk).Sprint(sum.MaxComplexity),
				p.byMaintainability(sum.MeanMaintainability).Sprintf("%.1f", sum.MeanMaintainability),
				p.byRisk(sum.Risk).Sprint(string(sum.Risk)),
			)
		}
		tbl.AppendRow(row)
	}
	return tbl.Render()
}

type palette struct {
	title, accent, label, value *color.Color
	good, warn, danger          *color.Color
	file, fn                    *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:  color.New(color.Bold, color.FgYellow),
		accent: color.New(color.Bold, color.FgHiMagenta),
		label:  color.New(color.FgHiBlack),
		value:  color.New(color.FgWhite),
		good:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		danger: color.New(color.FgRed),
		file:   color.New(color.FgBlue),
		fn:     color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.accent, p.label, p.value, p.good, p.warn, p.danger, p.file, p.fn} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) byRisk(r model.RiskLevel) *color.Color {
	switch r {
	case model.RiskHigh:
		return p.danger
	case model.RiskModerate:
		return p.warn
	}
	return p.good
}

// byMaintainability uses the usual 20/10 bands of the index.
func (p palette) byMaintainability(mi float64) *color.Color {
	switch {
	case mi >= 20:
		return p.good
	case mi >= 10:
		return p.warn
	}
	return p.danger
}

func (p palette) byStatus(s model.FileStatus) *color.Color {
	switch s {
	case model.StatusComplete:
		return p.good
	case model.StatusDegraded, model.StatusSkipped:
		return p.warn
	}
	return p.danger
}

func trimPath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	if max <= 1 {
		return path[len(path)-max:]
	}
	return "…" + path[len(path)-max+1:]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
