// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import "github.com/rafaelvolkmer/techdebt/internal/domain/model"

// SummarizeFile rolls the functions of one unit up. A file with no
// functions has zero means and low risk.
func SummarizeFile(fns []model.FunctionRecord, risk RiskThresholds) model.FileSummary {
	s := model.FileSummary{
		FunctionCount: len(fns),
		Risk:          model.RiskLow,
		Distribution:  distribution(fns),
	}
	if len(fns) == 0 {
		return s
	}

	var sumCC, sumMI float64
	for i := range fns {
		fn := &fns[i]
		sumCC += float64(fn.Complexity)
		sumMI += fn.Maintainability
		s.TotalComplexity += fn.Complexity
		s.MaxComplexity = max(s.MaxComplexity, fn.Complexity)
		s.LongestFunction = max(s.LongestFunction, fn.LOC)
		s.MaxNesting = max(s.MaxNesting, fn.MaxNesting)
	}
	s.MeanComplexity = sumCC / float64(len(fns))
	s.MeanMaintainability = sumMI / float64(len(fns))
	s.Risk = risk.Classify(s.MaxComplexity)
	return s
}

// CommentDensity is comment-only lines over comment-only plus code lines.
func CommentDensity(comment, code int) float64 {
	if comment+code == 0 {
		return 0
	}
	return float64(comment) / float64(comment+code)
}

// SummarizeProject aggregates every unit. Only complete and degraded units
// contribute sizes and function metrics; failed and skipped ones are only
// counted.
func SummarizeProject(units []model.SourceUnit, risk RiskThresholds) model.ProjectSummary {
	s := model.ProjectSummary{
		FileCount: len(units),
		Risk:      model.RiskLow,
	}

	var (
		sumCC, sumMI float64
		comments     int
	)

	for i := range units {
		u := &units[i]
		switch u.Status {
		case model.StatusFailed:
			s.FailedFiles++
			continue
		case model.StatusSkipped:
			s.SkippedFiles++
			continue
		case model.StatusDegraded:
			s.DegradedFiles++
		}
		s.AnalyzedFiles++

		s.TotalLOC += u.LOC
		s.RawLines += u.RawLines
		comments += u.CommentLines

		fileTotal := 0
		for j := range u.Functions {
			fn := &u.Functions[j]
			s.FunctionCount++
			sumCC += float64(fn.Complexity)
			sumMI += fn.Maintainability
			fileTotal += fn.Complexity
			tally(&s.Distribution, fn.Risk)

			if fn.Complexity > s.MaxComplexity {
				s.MaxComplexity = fn.Complexity
				s.MaxComplexityFile = u.Path
			}
			s.LongestFunction = max(s.LongestFunction, fn.LOC)
			s.MaxNesting = max(s.MaxNesting, fn.MaxNesting)
		}

		s.TotalComplexity += fileTotal
		if fileTotal > s.MaxFileComplexity {
			s.MaxFileComplexity = fileTotal
			s.MaxFileComplexityPath = u.Path
		}
	}

	s.KLOC = float64(s.TotalLOC) / 1000
	s.CommentDensity = CommentDensity(comments, s.TotalLOC)
	if s.FunctionCount > 0 {
		s.MeanComplexity = sumCC / float64(s.FunctionCount)
		s.MeanMaintainability = sumMI / float64(s.FunctionCount)
		s.Risk = risk.Classify(s.MaxComplexity)
	}
	return s
}
