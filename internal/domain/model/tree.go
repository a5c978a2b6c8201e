// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import (
	"go/ast"
	"go/token"
)

// Token is one lexical token of a function body as seen by the Halstead
// classifier.
type Token struct {
	Kind token.Token
	Lit  string
	Line int
}

// FunctionNode is one function or closure found in a parsed file.
//
// Node is either an *ast.FuncDecl or an *ast.FuncLit. Tokens never include
// the tokens of closures nested inside the function; those are reported as
// their own FunctionNode.
type FunctionNode struct {
	Name      string
	StartLine int
	EndLine   int
	Node      ast.Node
	Tokens    []Token
}

// Body returns the function body, or nil for declarations without one.
func (f FunctionNode) Body() *ast.BlockStmt {
	switch n := f.Node.(type) {
	case *ast.FuncDecl:
		return n.Body
	case *ast.FuncLit:
		return n.Body
	}
	return nil
}

// SyntaxTree is the structural view of one source file.
type SyntaxTree struct {
	Path         string
	RawLines     int
	CodeLines    int
	CommentLines int
	Functions    []FunctionNode
	// Errors holds declarations that could not be parsed while the rest of
	// the file could.
	Errors []FileError
}
