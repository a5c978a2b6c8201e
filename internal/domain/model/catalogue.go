// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

type MetricID string

const (
	MetricCyclomatic        MetricID = "complexity.cyclomatic"
	MetricMaxNesting        MetricID = "complexity.max_nesting"
	MetricHalsteadVolume    MetricID = "halstead.volume"
	MetricHalsteadDiff      MetricID = "halstead.difficulty"
	MetricHalsteadEffort    MetricID = "halstead.effort"
	MetricMaintainability   MetricID = "maintainability.index"
	MetricLOC               MetricID = "size.loc"
	MetricKLOC              MetricID = "size.kloc"
	MetricFunctionLOC       MetricID = "size.function_loc"
	MetricCommentDensity    MetricID = "comments.density"
	MetricRisk              MetricID = "risk.level"
	MetricTopOffenders      MetricID = "ranking.top_offenders"
	MetricThresholdExceeded MetricID = "gate.max_complexity"
)

func AllMetricSummaries() []MetricSummary {
	return []MetricSummary{
		{
			ID:          MetricCyclomatic,
			Name:        "Cyclomatic Complexity",
			Description: "1 + decision points (if, for, range, extra case/select arms, && and ||) per function.",
			Group:       "complexity",
		},
		{
			ID:          MetricMaxNesting,
			Name:        "Max Nesting Depth",
			Description: "Deepest nesting of control structures inside a function.",
			Group:       "complexity",
		},
		{
			ID:          MetricHalsteadVolume,
			Name:        "Halstead Volume",
			Description: "(N1+N2)·log2(n1+n2) over the function's token stream.",
			Group:       "halstead",
		},
		{
			ID:          MetricHalsteadDiff,
			Name:        "Halstead Difficulty",
			Description: "(n1/2)·(N2/n2).",
			Group:       "halstead",
		},
		{
			ID:          MetricHalsteadEffort,
			Name:        "Halstead Effort",
			Description: "Difficulty·Volume.",
			Group:       "halstead",
		},
		{
			ID:          MetricMaintainability,
			Name:        "Maintainability Index",
			Description: "171 − 5.2·ln(V) − 0.23·CC − 16.2·ln(LOC), clamped to 0..100.",
			Group:       "maintainability",
		},
		{
			ID:          MetricLOC,
			Name:        "Lines of Code",
			Description: "Lines carrying at least one code token, per file and project.",
			Group:       "size",
		},
		{
			ID:          MetricKLOC,
			Name:        "KLOC",
			Description: "Project lines of code in thousands.",
			Group:       "size",
		},
		{
			ID:          MetricFunctionLOC,
			Name:        "Function LOC",
			Description: "Lines of code per function, nested closures excluded.",
			Group:       "size",
		},
		{
			ID:          MetricCommentDensity,
			Name:        "Comment Density",
			Description: "Comment-only lines over comment plus code lines.",
			Group:       "comments",
		},
		{
			ID:          MetricRisk,
			Name:        "Risk Level",
			Description: "low / moderate / high from configurable complexity cutoffs.",
			Group:       "risk",
		},
		{
			ID:          MetricTopOffenders,
			Name:        "Top Offenders",
			Description: "Functions ordered by complexity desc, maintainability asc, path, name.",
			Group:       "ranking",
		},
		{
			ID:          MetricThresholdExceeded,
			Name:        "Max Complexity Gate",
			Description: "Fails the run (exit code 2) when any function exceeds max_complexity.",
			Group:       "gate",
		},
	}
}
