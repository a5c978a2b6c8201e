// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import "time"

type Language string

const (
	LanguageUnknown Language = "unknown"
	LanguageGo      Language = "go"
)

type FileStatus string

const (
	StatusComplete FileStatus = "complete"
	StatusDegraded FileStatus = "degraded"
	StatusFailed   FileStatus = "failed"
	StatusSkipped  FileStatus = "skipped"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// HalsteadMetrics holds operator/operand tallies of one function.
// Undefined is set when the function has no operator or no operand; all
// derived values are zero in that case.
type HalsteadMetrics struct {
	DistinctOperators int     `json:"distinctOperators" yaml:"distinctOperators"`
	DistinctOperands  int     `json:"distinctOperands" yaml:"distinctOperands"`
	TotalOperators    int     `json:"totalOperators" yaml:"totalOperators"`
	TotalOperands     int     `json:"totalOperands" yaml:"totalOperands"`
	Vocabulary        int     `json:"vocabulary" yaml:"vocabulary"`
	Length            int     `json:"length" yaml:"length"`
	Volume            float64 `json:"volume" yaml:"volume"`
	Difficulty        float64 `json:"difficulty" yaml:"difficulty"`
	Effort            float64 `json:"effort" yaml:"effort"`
	Undefined         bool    `json:"undefined" yaml:"undefined"`
}

type FunctionRecord struct {
	Name            string          `json:"name" yaml:"name"`
	FilePath        string          `json:"filePath" yaml:"filePath"`
	StartLine       int             `json:"startLine" yaml:"startLine"`
	EndLine         int             `json:"endLine" yaml:"endLine"`
	Lines           int             `json:"lines" yaml:"lines"`
	LOC             int             `json:"loc" yaml:"loc"`
	Complexity      int             `json:"complexity" yaml:"complexity"`
	MaxNesting      int             `json:"maxNesting" yaml:"maxNesting"`
	Halstead        HalsteadMetrics `json:"halstead" yaml:"halstead"`
	Maintainability float64         `json:"maintainability" yaml:"maintainability"`
	Risk            RiskLevel       `json:"risk" yaml:"risk"`
	LowConfidence   bool            `json:"lowConfidence" yaml:"lowConfidence"`
	ConfidenceNotes []string        `json:"confidenceNotes,omitempty" yaml:"confidenceNotes,omitempty"`
}

type FileError struct {
	Path    string `json:"path" yaml:"path"`
	Kind    string `json:"kind" yaml:"kind"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Distribution counts functions per risk band.
type Distribution struct {
	Low      int `json:"low" yaml:"low"`
	Moderate int `json:"moderate" yaml:"moderate"`
	High     int `json:"high" yaml:"high"`
}

type FileSummary struct {
	FunctionCount       int          `json:"functionCount" yaml:"functionCount"`
	MeanComplexity      float64      `json:"meanComplexity" yaml:"meanComplexity"`
	MeanMaintainability float64      `json:"meanMaintainability" yaml:"meanMaintainability"`
	TotalComplexity     int          `json:"totalComplexity" yaml:"totalComplexity"`
	MaxComplexity       int          `json:"maxComplexity" yaml:"maxComplexity"`
	LongestFunction     int          `json:"longestFunction" yaml:"longestFunction"`
	MaxNesting          int          `json:"maxNesting" yaml:"maxNesting"`
	Risk                RiskLevel    `json:"risk" yaml:"risk"`
	Distribution        Distribution `json:"distribution" yaml:"distribution"`
}

// SourceUnit is the analysis result of one file. Functions keep source
// order.
type SourceUnit struct {
	Path           string           `json:"path" yaml:"path"`
	Language       Language         `json:"language" yaml:"language"`
	Status         FileStatus       `json:"status" yaml:"status"`
	RawLines       int              `json:"rawLines" yaml:"rawLines"`
	LOC            int              `json:"loc" yaml:"loc"`
	CommentLines   int              `json:"commentLines" yaml:"commentLines"`
	CommentDensity float64          `json:"commentDensity" yaml:"commentDensity"`
	Functions      []FunctionRecord `json:"functions" yaml:"functions"`
	Summary        FileSummary      `json:"summary" yaml:"summary"`
	Errors         []FileError      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Measured reports whether the unit contributes to project metrics.
func (u *SourceUnit) Measured() bool {
	return u.Status == StatusComplete || u.Status == StatusDegraded
}

type ProjectSummary struct {
	TotalLOC            int          `json:"totalLoc" yaml:"totalLoc"`
	KLOC                float64      `json:"kloc" yaml:"kloc"`
	RawLines            int          `json:"rawLines" yaml:"rawLines"`
	CommentDensity      float64      `json:"commentDensity" yaml:"commentDensity"`
	FileCount           int          `json:"fileCount" yaml:"fileCount"`
	AnalyzedFiles       int          `json:"analyzedFiles" yaml:"analyzedFiles"`
	DegradedFiles       int          `json:"degradedFiles" yaml:"degradedFiles"`
	FailedFiles         int          `json:"failedFiles" yaml:"failedFiles"`
	SkippedFiles        int          `json:"skippedFiles" yaml:"skippedFiles"`
	FunctionCount       int          `json:"functionCount" yaml:"functionCount"`
	MeanComplexity      float64      `json:"meanComplexity" yaml:"meanComplexity"`
	MeanMaintainability float64      `json:"meanMaintainability" yaml:"meanMaintainability"`
	MaxComplexity       int          `json:"maxComplexity" yaml:"maxComplexity"`
	MaxComplexityFile   string       `json:"maxComplexityFile" yaml:"maxComplexityFile"`

	// TotalComplexity sums every measured function. MaxFileComplexity is
	// the largest per-file sum, found in MaxFileComplexityPath.
	TotalComplexity       int    `json:"totalComplexity" yaml:"totalComplexity"`
	MaxFileComplexity     int    `json:"maxFileComplexity" yaml:"maxFileComplexity"`
	MaxFileComplexityPath string `json:"maxFileComplexityPath" yaml:"maxFileComplexityPath"`

	LongestFunction     int          `json:"longestFunction" yaml:"longestFunction"`
	MaxNesting          int          `json:"maxNesting" yaml:"maxNesting"`
	Risk                RiskLevel    `json:"risk" yaml:"risk"`
	Distribution        Distribution `json:"distribution" yaml:"distribution"`
}

// Offender is a copy of a ranked FunctionRecord.
type Offender struct {
	Rank            int             `json:"rank" yaml:"rank"`
	File            string          `json:"file" yaml:"file"`
	Function        string          `json:"function" yaml:"function"`
	Line            int             `json:"line" yaml:"line"`
	Complexity      int             `json:"complexity" yaml:"complexity"`
	Maintainability float64         `json:"maintainability" yaml:"maintainability"`
	Risk            RiskLevel       `json:"risk" yaml:"risk"`
	Halstead        HalsteadMetrics `json:"halstead" yaml:"halstead"`
}

type ThresholdResult struct {
	MaxComplexity int  `json:"maxComplexity" yaml:"maxComplexity"`
	Exceeded      bool `json:"exceeded" yaml:"exceeded"`
	Violations    int  `json:"violations" yaml:"violations"`
}

// Settings echoes the thresholds a report was computed with.
type Settings struct {
	TopN          int `json:"topN" yaml:"topN"`
	MaxComplexity int `json:"maxComplexity" yaml:"maxComplexity"`
	RiskModerate  int `json:"riskModerate" yaml:"riskModerate"`
	RiskHigh      int `json:"riskHigh" yaml:"riskHigh"`
}

type MetricSummary struct {
	ID          MetricID `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Group       string   `json:"group" yaml:"group"`
}

// ProjectReport is the single hand-off to renderers and storage. It is not
// modified after BuildProjectReport returns.
type ProjectReport struct {
	RootPath       string          `json:"rootPath" yaml:"rootPath"`
	Module         string          `json:"module,omitempty" yaml:"module,omitempty"`
	GeneratedAt    time.Time       `json:"generatedAt" yaml:"generatedAt"`
	Incomplete     bool            `json:"incomplete" yaml:"incomplete"`
	Summary        ProjectSummary  `json:"summary" yaml:"summary"`
	TopOffenders   []Offender      `json:"topOffenders" yaml:"topOffenders"`
	Files          []SourceUnit    `json:"files" yaml:"files"`
	Errors         []FileError     `json:"errors" yaml:"errors"`
	Threshold      ThresholdResult `json:"threshold" yaml:"threshold"`
	Settings       Settings        `json:"settings" yaml:"settings"`
	MetricMetadata []MetricSummary `json:"metricMetadata" yaml:"metricMetadata"`
}
