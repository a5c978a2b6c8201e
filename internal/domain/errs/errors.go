// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package errs defines the error kinds produced by an analysis run.
//
// Per-file kinds (parse, io) are recorded on the report and never abort a
// run. Threshold violations are an expected outcome used for CI gating and
// are kept apart from real failures.
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindParse             Kind = "parse"
	KindIO                Kind = "io"
	KindMetricUndefined   Kind = "metric_undefined"
	KindThresholdExceeded Kind = "threshold_exceeded"
)

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrParse             = &Error{Kind: KindParse}
	ErrIO                = &Error{Kind: KindIO}
	ErrMetricUndefined   = &Error{Kind: KindMetricUndefined}
	ErrThresholdExceeded = &Error{Kind: KindThresholdExceeded}
)

// Fatal run conditions.
var (
	ErrInputNotFound  = errors.New("input path does not exist")
	ErrNoSourceFiles  = errors.New("no source files found")
	ErrAllFilesFailed = errors.New("every input file failed to parse or read")
)

type Error struct {
	Kind    Kind
	Path    string
	Line    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg += " " + e.Path
		if e.Line > 0 {
			msg += fmt.Sprintf(":%d", e.Line)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a kind sentinel (an *Error carrying only a
// Kind) matching e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Path == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func Parse(path string, line int, err error) *Error {
	return &Error{Kind: KindParse, Path: path, Line: line, Err: err}
}

func IO(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

func MetricUndefined(path string, line int, msg string) *Error {
	return &Error{Kind: KindMetricUndefined, Path: path, Line: line, Message: msg}
}

func ThresholdExceeded(msg string) *Error {
	return &Error{Kind: KindThresholdExceeded, Message: msg}
}
