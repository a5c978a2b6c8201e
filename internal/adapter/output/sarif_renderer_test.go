// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/adapter/output"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			Level     string `json:"level"`
			Locations []struct {
				Physical struct {
					Artifact struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region *struct {
						StartLine int `json:"startLine"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func renderSarif(t *testing.T, maxComplexity int) sarifDoc {
	t.Helper()

	out, err := output.NewSarifRenderer().Render(sampleReport(maxComplexity))
	require.NoError(t, err)

	var doc sarifDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Runs, 1)
	return doc
}

func TestSarifRendererReportsGateViolations(t *testing.T) {
	doc := renderSarif(t, 5)
	run := doc.Runs[0]

	assert.Equal(t, "2.1.0", doc.Version)
	assert.Equal(t, "techdebt", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 5)

	require.Len(t, run.Results, 2)

	gate := run.Results[0]
	assert.Equal(t, output.RuleMaxComplexity, gate.RuleID)
	assert.Equal(t, "error", gate.Level)
	assert.Equal(t, "pkg/grade.go", gate.Locations[0].Physical.Artifact.URI)
	require.NotNil(t, gate.Locations[0].Physical.Region)
	assert.Equal(t, 4, gate.Locations[0].Physical.Region.StartLine)

	io := run.Results[1]
	assert.Equal(t, output.RuleIOError, io.RuleID)
	assert.Equal(t, "pkg/gone.go", io.Locations[0].Physical.Artifact.URI)
	assert.Nil(t, io.Locations[0].Physical.Region)
}

func TestSarifRendererFallsBackToRiskBands(t *testing.T) {
	run := renderSarif(t, 0).Runs[0]

	require.Len(t, run.Results, 2)
	assert.Equal(t, output.RuleComplexityRisk, run.Results[0].RuleID)
	assert.Equal(t, "note", run.Results[0].Level)
}
