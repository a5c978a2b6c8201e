// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	toolName     = "techdebt"
)

const (
	RuleMaxComplexity   = "TD001"
	RuleComplexityRisk  = "TD002"
	RuleParseError      = "TD101"
	RuleIOError         = "TD102"
	RuleMetricUndefined = "TD103"
)

var sarifRules = []sarifRule{
	{ID: RuleMaxComplexity, Name: "max-complexity", Short: sarifText{Text: "Function exceeds the configured maximum cyclomatic complexity."}},
	{ID: RuleComplexityRisk, Name: "complexity-risk", Short: sarifText{Text: "Function falls into a moderate or high complexity risk band."}},
	{ID: RuleParseError, Name: "parse-error", Short: sarifText{Text: "File or declaration could not be parsed."}},
	{ID: RuleIOError, Name: "io-error", Short: sarifText{Text: "File could not be read."}},
	{ID: RuleMetricUndefined, Name: "metric-undefined", Short: sarifText{Text: "A metric could not be computed and was substituted."}},
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Short sarifText `json:"shortDescription"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifText       `json:"message"`
	Locations  []sarifLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	Physical sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

// SarifRenderer emits one result per function above the complexity gate
// or in a moderate/high risk band, and one per file error.
type SarifRenderer struct{}

func NewSarifRenderer() *SarifRenderer {
	return &SarifRenderer{}
}

var _ ports.OutputRenderer = (*SarifRenderer)(nil)

func (r *SarifRenderer) Format() string {
	return "sarif"
}

func (r *SarifRenderer) Render(report *model.ProjectReport) (string, error) {
	results := make([]sarifResult, 0)

	for _, f := range report.Files {
		for _, fn := range f.Functions {
			if res, ok := functionResult(report.Threshold, fn); ok {
				results = append(results, res)
			}
		}
	}
	for _, e := range report.Errors {
		results = append(results, errorResult(e))
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: toolName, Rules: sarifRules}},
			Results: results,
			Properties: map[string]any{
				"incomplete":     report.Incomplete,
				"meanComplexity": report.Summary.MeanComplexity,
				"totalLoc":       report.Summary.TotalLOC,
			},
		}},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func functionResult(t model.ThresholdResult, fn model.FunctionRecord) (sarifResult, bool) {
	res := sarifResult{
		Locations: []sarifLocation{location(fn.FilePath, fn.StartLine, fn.EndLine)},
		Properties: map[string]any{
			"complexity":      fn.Complexity,
			"maintainability": fn.Maintainability,
			"risk":            string(fn.Risk),
		},
	}

	switch {
	case t.MaxComplexity > 0 && fn.Complexity > t.MaxComplexity:
		res.RuleID = RuleMaxComplexity
		res.Level = "error"
		res.Message.Text = fmt.Sprintf("%s has cyclomatic complexity %d (max %d)", fn.Name, fn.Complexity, t.MaxComplexity)
	case fn.Risk == model.RiskHigh:
		res.RuleID = RuleComplexityRisk
		res.Level = "warning"
		res.Message.Text = fmt.Sprintf("%s has high complexity risk (complexity %d)", fn.Name, fn.Complexity)
	case fn.Risk == model.RiskModerate:
		res.RuleID = RuleComplexityRisk
		res.Level = "note"
		res.Message.Text = fmt.Sprintf("%s has moderate complexity risk (complexity %d)", fn.Name, fn.Complexity)
	default:
		return sarifResult{}, false
	}
	return res, true
}

func errorResult(e model.FileError) sarifResult {
	res := sarifResult{
		Message:   sarifText{Text: e.Message},
		Locations: []sarifLocation{location(e.Path, e.Line, 0)},
	}

	switch errs.Kind(e.Kind) {
	case errs.KindParse:
		res.RuleID, res.Level = RuleParseError, "warning"
	case errs.KindIO:
		res.RuleID, res.Level = RuleIOError, "error"
	default:
		res.RuleID, res.Level = RuleMetricUndefined, "note"
	}
	return res
}

func location(path string, start, end int) sarifLocation {
	loc := sarifLocation{Physical: sarifPhysical{Artifact: sarifArtifact{URI: filepath.ToSlash(path)}}}
	if start > 0 {
		loc.Physical.Region = &sarifRegion{StartLine: start}
		if end >= start {
			loc.Physical.Region.EndLine = end
		}
	}
	return loc
}
