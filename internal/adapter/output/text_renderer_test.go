// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/adapter/output"
)

func TestTextRendererSummaryAndTables(t *testing.T) {
	out, err := output.NewTextRenderer(output.TextOptions{NoColor: true}).Render(sampleReport(5))
	require.NoError(t, err)

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "Technical Debt Report")
	assert.Contains(t, out, "Module: example.com/sample")
	assert.Contains(t, out, "2025-03-01T12:00:00Z")
	assert.Contains(t, out, "Files: 3 (analyzed 2, degraded 0, failed 1, skipped 0)")
	assert.Contains(t, out, "Max complexity: 7 (pkg/grade.go)")
	assert.Contains(t, out, "Total complexity: 9 (heaviest file pkg/grade.go: 7)")
	assert.Contains(t, out, "FAILED: 1 function(s) above 5")
	assert.Contains(t, out, "== Top 2 Offenders ==")
	assert.Contains(t, out, "pkg/gone.go")
	assert.Contains(t, out, "[io]")

	grade := strings.Index(out, "Grade")
	sign := strings.Index(out, "Sign")
	require.NotEqual(t, -1, grade)
	require.NotEqual(t, -1, sign)
	assert.Less(t, grade, sign, "offenders are listed by rank")
}

func TestTextRendererGateStates(t *testing.T) {
	r := output.NewTextRenderer(output.TextOptions{NoColor: true})

	out, err := r.Render(sampleReport(0))
	require.NoError(t, err)
	assert.Contains(t, out, "Complexity gate: disabled")

	out, err = r.Render(sampleReport(50))
	require.NoError(t, err)
	assert.Contains(t, out, "passed (max 50)")
}

func TestTextRendererIncompleteAndFileCap(t *testing.T) {
	report := sampleReport(0)
	report.Incomplete = true

	out, err := output.NewTextRenderer(output.TextOptions{NoColor: true, MaxFiles: 1}).Render(report)
	require.NoError(t, err)

	assert.Contains(t, out, "Analysis incomplete")
	assert.Contains(t, out, "== Files (first 1 of 3) ==")
}
