// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"bytes"
	"go/ast"
	"go/scanner"
	"go/token"
	"sort"
	"strings"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

type rawToken struct {
	pos token.Pos
	model.Token
}

// scanTokens returns the code tokens of src in order. Comments and
// automatically inserted semicolons are dropped.
func scanTokens(file *token.File, src []byte) []rawToken {
	var s scanner.Scanner
	s.Init(file, src, func(token.Position, string) {}, 0)

	var toks []rawToken
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		toks = append(toks, rawToken{
			pos:   pos,
			Token: model.Token{Kind: tok, Lit: lit, Line: file.PositionFor(pos, false).Line},
		})
	}
	return toks
}

// functionTokens slices the tokens of fn out of toks, leaving out every
// closure nested inside it.
func functionTokens(toks []rawToken, fn ast.Node, lits []*ast.FuncLit) []model.Token {
	start, end := fn.Pos(), fn.End()

	var nested []*ast.FuncLit
	for _, lit := range lits {
		if ast.Node(lit) == fn {
			continue
		}
		if lit.Pos() >= start && lit.End() <= end {
			nested = append(nested, lit)
		}
	}

	i := sort.Search(len(toks), func(i int) bool { return toks[i].pos >= start })

	var out []model.Token
	for ; i < len(toks) && toks[i].pos < end; i++ {
		if insideAny(toks[i].pos, nested) {
			continue
		}
		out = append(out, toks[i].Token)
	}
	return out
}

func insideAny(pos token.Pos, lits []*ast.FuncLit) bool {
	for _, lit := range lits {
		if pos >= lit.Pos() && pos < lit.End() {
			return true
		}
	}
	return false
}

func countRawLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte("\n"))
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}

// countLines returns the number of lines holding code and the number of
// lines holding only comments. It works on the lexical level and therefore
// also on files that do not parse.
func countLines(src []byte) (code, comment int) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, func(token.Position, string) {}, scanner.ScanComments)

	codeLines := make(map[int]struct{})
	commentLines := make(map[int]struct{})

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		target := codeLines
		if tok == token.COMMENT {
			target = commentLines
		}
		line := file.PositionFor(pos, false).Line
		for i := 0; i <= strings.Count(lit, "\n"); i++ {
			target[line+i] = struct{}{}
		}
	}

	for line := range commentLines {
		if _, ok := codeLines[line]; !ok {
			comment++
		}
	}
	return len(codeLines), comment
}
