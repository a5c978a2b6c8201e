// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

// declChunk is the byte range of one top-level declaration.
type declChunk struct {
	start, end int
	line       int
	label      string
}

func recoverDecls(path string, src []byte, tree *model.SyntaxTree, parseErr error) (*model.SyntaxTree, error) {
	pkgEnd, chunks, ok := splitDecls(src)
	if !ok {
		return nil, errs.Parse(path, errorLine(parseErr), firstError(parseErr))
	}

	namer := &closureNamer{}
	parsed := 0

	for _, c := range chunks {
		chunkSrc := isolate(src, pkgEnd, c.start, c.end)

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, chunkSrc, parseMode)
		if err != nil {
			tree.Errors = append(tree.Errors, model.FileError{
				Path:    path,
				Kind:    string(errs.KindParse),
				Line:    errorLineOr(err, c.line),
				Message: fmt.Sprintf("%s: %v", c.label, firstError(err)),
			})
			continue
		}

		parsed++
		tree.Functions = append(tree.Functions, collectFunctions(fset, file, chunkSrc, namer)...)
	}

	if parsed == 0 {
		return nil, errs.Parse(path, errorLine(parseErr), firstError(parseErr))
	}

	// The broken part lies outside every declaration.
	if len(tree.Errors) == 0 {
		tree.Errors = append(tree.Errors, model.FileError{
			Path:    path,
			Kind:    string(errs.KindParse),
			Line:    errorLine(parseErr),
			Message: firstError(parseErr).Error(),
		})
	}
	return tree, nil
}

// splitDecls cuts src into top-level declarations on the lexical level.
// A declaration keyword starts a new chunk when it follows a statement
// boundary at bracket depth 0, or when it sits in column 1 (which resyncs
// after a declaration with unbalanced brackets).
func splitDecls(src []byte) (pkgEnd int, chunks []declChunk, ok bool) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, func(token.Position, string) {}, 0)

	_, tok, _ := s.Scan()
	if tok != token.PACKAGE {
		return 0, nil, false
	}
	pos, tok, lit := s.Scan()
	if tok != token.IDENT {
		return 0, nil, false
	}
	pkgEnd = file.Offset(pos) + len(lit)

	depth := 0
	boundary := true
	var prev token.Token

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		offset := file.Offset(pos)
		position := file.PositionFor(pos, false)

		if isDeclKeyword(tok) && (position.Column == 1 || (depth == 0 && boundary)) {
			if n := len(chunks); n > 0 {
				chunks[n-1].end = offset
			}
			chunks = append(chunks, declChunk{
				start: offset,
				end:   len(src),
				line:  position.Line,
				label: tok.String(),
			})
			depth = 0
		} else if tok == token.IDENT && prev == token.FUNC && len(chunks) > 0 && depth == 0 {
			chunks[len(chunks)-1].label = "func " + lit
		} else if tok == token.IDENT && prev == token.RPAREN && depth == 0 && len(chunks) > 0 &&
			chunks[len(chunks)-1].label == "func" {
			chunks[len(chunks)-1].label = "func " + lit
		}

		switch tok {
		case token.LBRACE, token.LPAREN, token.LBRACK:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACK:
			if depth > 0 {
				depth--
			}
		}

		boundary = tok == token.SEMICOLON
		prev = tok
	}

	return pkgEnd, chunks, true
}

func isDeclKeyword(tok token.Token) bool {
	switch tok {
	case token.FUNC, token.TYPE, token.VAR, token.CONST, token.IMPORT:
		return true
	}
	return false
}

// isolate keeps the package clause and the chunk [start, end) of src and
// blanks everything else, preserving newlines so positions stay valid.
func isolate(src []byte, pkgEnd, start, end int) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		switch {
		case i < pkgEnd, i >= start && i < end, b == '\n':
			out[i] = b
		default:
			out[i] = ' '
		}
	}
	return out
}

func firstError(err error) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return errors.New(list[0].Msg)
	}
	return err
}

func errorLine(err error) int {
	return errorLineOr(err, 0)
}

func errorLineOr(err error, fallback int) int {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Pos.Line
	}
	return fallback
}
