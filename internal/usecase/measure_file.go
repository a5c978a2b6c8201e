// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"errors"
	"strings"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
	"github.com/rafaelvolkmer/techdebt/internal/metrics"
)

var errNoParser = errors.New("no parser supports this file")

// MeasureFile parses src and measures every function in it. Failures never
// escape: an unparseable file comes back as a failed unit carrying the
// error.
func MeasureFile(path string, src []byte, parser ports.CodeParser, risk metrics.RiskThresholds) model.SourceUnit {
	if parser == nil {
		return FailedUnit(path, errs.Parse(path, 0, errNoParser))
	}

	tree, err := parser.Parse(path, src)
	if err != nil {
		return FailedUnit(path, err)
	}

	unit := model.SourceUnit{
		Path:           path,
		Language:       model.Language(parser.Name()),
		Status:         model.StatusComplete,
		RawLines:       tree.RawLines,
		LOC:            tree.CodeLines,
		CommentLines:   tree.CommentLines,
		CommentDensity: metrics.CommentDensity(tree.CommentLines, tree.CodeLines),
		Functions:      make([]model.FunctionRecord, 0, len(tree.Functions)),
		Errors:         append([]model.FileError(nil), tree.Errors...),
	}

	for _, fn := range tree.Functions {
		rec := metrics.Measure(path, fn, risk)
		if rec.LowConfidence {
			msg := rec.Name + ": " + strings.Join(rec.ConfidenceNotes, "; ")
			unit.Errors = append(unit.Errors, fileError(path, errs.MetricUndefined(path, rec.StartLine, msg)))
		}
		unit.Functions = append(unit.Functions, rec)
	}

	unit.Summary = metrics.SummarizeFile(unit.Functions, risk)
	if len(unit.Errors) > 0 {
		unit.Status = model.StatusDegraded
	}
	return unit
}

// FailedUnit records a file that produced no metrics.
func FailedUnit(path string, err error) model.SourceUnit {
	return model.SourceUnit{
		Path:      path,
		Language:  model.LanguageUnknown,
		Status:    model.StatusFailed,
		Functions: []model.FunctionRecord{},
		Summary:   model.FileSummary{Risk: model.RiskLow},
		Errors:    []model.FileError{fileError(path, err)},
	}
}

// SkippedUnit stands for a file the run never got to.
func SkippedUnit(path string) model.SourceUnit {
	return model.SourceUnit{
		Path:      path,
		Language:  model.LanguageUnknown,
		Status:    model.StatusSkipped,
		Functions: []model.FunctionRecord{},
		Summary:   model.FileSummary{Risk: model.RiskLow},
	}
}

func fileError(path string, err error) model.FileError {
	var e *errs.Error
	if !errors.As(err, &e) {
		return model.FileError{Path: path, Kind: string(errs.KindIO), Message: err.Error()}
	}

	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if e.Path != "" {
		path = e.Path
	}
	return model.FileError{Path: path, Kind: string(e.Kind), Line: e.Line, Message: msg}
}
