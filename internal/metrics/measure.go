// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import "github.com/rafaelvolkmer/techdebt/internal/domain/model"

// LinesOfCode counts the distinct lines on which a token starts.
func LinesOfCode(tokens []model.Token) int {
	seen := make(map[int]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t.Line] = struct{}{}
	}
	return len(seen)
}

// Measure computes the full record of one function.
func Measure(path string, fn model.FunctionNode, risk RiskThresholds) model.FunctionRecord {
	cx := Walk(fn.Body())
	hs := Halstead(fn.Tokens)
	loc := LinesOfCode(fn.Tokens)

	mi, notes := MaintainabilityIndex(hs.Volume, cx.Cyclomatic, loc)
	if hs.Undefined {
		notes = append([]string{noteHalsteadUndefined}, notes...)
	}

	return model.FunctionRecord{
		Name:            fn.Name,
		FilePath:        path,
		StartLine:       fn.StartLine,
		EndLine:         fn.EndLine,
		Lines:           fn.EndLine - fn.StartLine + 1,
		LOC:             loc,
		Complexity:      cx.Cyclomatic,
		MaxNesting:      cx.MaxNesting,
		Halstead:        hs,
		Maintainability: mi,
		Risk:            risk.Classify(cx.Cyclomatic),
		LowConfidence:   len(notes) > 0,
		ConfidenceNotes: notes,
	}
}
