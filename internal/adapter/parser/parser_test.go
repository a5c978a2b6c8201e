// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelvolkmer/techdebt/internal/domain/errs"
	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

const namesSrc = `package sample

// Counter counts.
type Counter struct{ n int }

func (c *Counter) Inc() { c.n++ }

func (c Counter) Value() int { return c.n }

type Box[T any] struct{ v T }

func (b *Box[T]) Get() T { return b.v }

func Run(xs []int) func() int {
	f := func() int {
		g := func() int { return 1 }
		return g()
	}
	_ = func() {}
	return f
}

var hook = func() {}

func external() int
`

func names(tree *model.SyntaxTree) []string {
	out := make([]string, 0, len(tree.Functions))
	for _, fn := range tree.Functions {
		out = append(out, fn.Name)
	}
	return out
}

func TestParseNamesFunctions(t *testing.T) {
	tree, err := NewGoParser().Parse("names.go", []byte(namesSrc))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"(*Counter).Inc",
		"Counter.Value",
		"(*Box).Get",
		"Run",
		"Run.func1",
		"Run.func1.1",
		"Run.func2",
		"glob..func1",
	}, names(tree))
	assert.Empty(t, tree.Errors)
}

func TestParseFunctionLines(t *testing.T) {
	tree, err := NewGoParser().Parse("names.go", []byte(namesSrc))
	require.NoError(t, err)

	byName := make(map[string]model.FunctionNode)
	for _, fn := range tree.Functions {
		byName[fn.Name] = fn
	}

	run := byName["Run"]
	assert.Equal(t, 14, run.StartLine)
	assert.Equal(t, 21, run.EndLine)

	inner := byName["Run.func1.1"]
	assert.Equal(t, 16, inner.StartLine)
	assert.Equal(t, 16, inner.EndLine)
}

func TestParseIgnoresLineDirectives(t *testing.T) {
	src := "package x\n\n//line generated.tmpl:500\nfunc F(a int) int {\n\tif a > 0 {\n\t\treturn a\n\t}\n\treturn 0\n}\n"

	tree, err := NewGoParser().Parse("x.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, tree.Functions, 1)

	fn := tree.Functions[0]
	assert.Equal(t, 4, fn.StartLine)
	assert.Equal(t, 9, fn.EndLine)
	require.NotEmpty(t, fn.Tokens)
	assert.Equal(t, 4, fn.Tokens[0].Line)
}

func TestParseExcludesNestedClosureTokens(t *testing.T) {
	src := "package x\n\nfunc outer() {\n\tf := func() { inner := 1; _ = inner }\n\tf()\n}\n"

	tree, err := NewGoParser().Parse("x.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, tree.Functions, 2)

	for _, tok := range tree.Functions[0].Tokens {
		assert.NotEqual(t, "inner", tok.Lit)
	}

	var sawInner bool
	for _, tok := range tree.Functions[1].Tokens {
		if tok.Kind == token.IDENT && tok.Lit == "inner" {
			sawInner = true
		}
	}
	assert.True(t, sawInner)
}

func TestParseDropsImplicitSemicolons(t *testing.T) {
	src := "package x\n\nfunc f() {\n\ta := 1\n\t_ = a\n}\n"

	tree, err := NewGoParser().Parse("x.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, tree.Functions, 1)

	for _, tok := range tree.Functions[0].Tokens {
		assert.NotEqual(t, token.SEMICOLON, tok.Kind)
	}
}

func TestParseCountsLines(t *testing.T) {
	src := "package x\n\n// doc\n/*\n block\n*/\nfunc f() { // trailing\n}\n"

	tree, err := NewGoParser().Parse("x.go", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, 8, tree.RawLines)
	assert.Equal(t, 3, tree.CodeLines)
	assert.Equal(t, 4, tree.CommentLines)
}

func TestParseRecoversBrokenDeclaration(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "degraded.go.txt"))
	require.NoError(t, err)

	tree, err := NewGoParser().Parse("degraded.go", src)
	require.NoError(t, err)

	assert.Equal(t, []string{"valid"}, names(tree))
	require.Len(t, tree.Errors, 1)
	assert.Equal(t, string(errs.KindParse), tree.Errors[0].Kind)
	assert.Contains(t, tree.Errors[0].Message, "func broken")
	assert.GreaterOrEqual(t, tree.Errors[0].Line, 3)
	assert.LessOrEqual(t, tree.Errors[0].Line, 5)

	assert.Equal(t, 7, tree.Functions[0].StartLine)
}

func TestParseUnparseableFile(t *testing.T) {
	_, err := NewGoParser().Parse("junk.go", []byte("this is not go {{{"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestParseAllDeclarationsBroken(t *testing.T) {
	src := "package x\n\nfunc a() { x := }\n\nfunc b() { y := }\n"

	_, err := NewGoParser().Parse("x.go", []byte(src))

	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestSupportsFile(t *testing.T) {
	p := NewGoParser()

	assert.True(t, p.SupportsFile("a/b.go"))
	assert.False(t, p.SupportsFile("a/b.c"))
	assert.Equal(t, "go", p.Name())
}

func TestSplitDecls(t *testing.T) {
	src := []byte("package x\n\nimport \"fmt\"\n\nfunc (s *S) m() { fmt.Println() }\n\ntype S struct{}\n")

	pkgEnd, chunks, ok := splitDecls(src)
	require.True(t, ok)

	assert.Equal(t, len("package x"), pkgEnd)
	require.Len(t, chunks, 3)
	assert.Equal(t, "import", chunks[0].label)
	assert.Equal(t, "func m", chunks[1].label)
	assert.Equal(t, "type", chunks[2].label)
	assert.Equal(t, 5, chunks[1].line)
}
