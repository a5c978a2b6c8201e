// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import (
	"sort"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

const (
	DefaultTopN = 10
	MinTopN     = 1
	MaxTopN     = 100
)

// TopOffenders ranks every function of the measured units and returns the
// first n. Ties on complexity go to the lower maintainability index, then
// to path, function name and start line, so the order never depends on
// the order units were analyzed in.
func TopOffenders(units []model.SourceUnit, n int) []model.Offender {
	var all []*model.FunctionRecord
	for i := range units {
		if !units[i].Measured() {
			continue
		}
		for j := range units[i].Functions {
			all = append(all, &units[i].Functions[j])
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return ranksBefore(all[i], all[j])
	})

	if n < 0 {
		n = 0
	}
	if len(all) > n {
		all = all[:n]
	}

	out := make([]model.Offender, 0, len(all))
	for i, fn := range all {
		out = append(out, model.Offender{
			Rank:            i + 1,
			File:            fn.FilePath,
			Function:        fn.Name,
			Line:            fn.StartLine,
			Complexity:      fn.Complexity,
			Maintainability: fn.Maintainability,
			Risk:            fn.Risk,
			Halstead:        fn.Halstead,
		})
	}
	return out
}

func ranksBefore(a, b *model.FunctionRecord) bool {
	if a.Complexity != b.Complexity {
		return a.Complexity > b.Complexity
	}
	if a.Maintainability != b.Maintainability {
		return a.Maintainability < b.Maintainability
	}
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.StartLine < b.StartLine
}
