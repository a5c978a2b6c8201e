// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

// Package metrics computes per-function complexity, Halstead and
// maintainability figures and rolls them up to files and projects.
package metrics

import (
	"go/ast"
	"go/token"
)

// Complexity is the control-flow summary of one function.
type Complexity struct {
	Cyclomatic int
	MaxNesting int
}

// Walk scores a function body. It starts at 1 and adds one for every if
// (else-if included), for and range loop, every switch, type switch or
// select clause after the first, and every && or ||. Closures inside the
// body are not entered. A nil or empty body scores 1.
func Walk(body *ast.BlockStmt) Complexity {
	res := &Complexity{Cyclomatic: 1}
	if body != nil {
		ast.Walk(walker{res: res}, body)
	}
	return *res
}

type walker struct {
	res   *Complexity
	depth int
}

func (w walker) Visit(n ast.Node) ast.Visitor {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.FuncLit:
		return nil
	case *ast.IfStmt:
		w.res.Cyclomatic++
		w.walkIf(n)
		return nil
	case *ast.ForStmt, *ast.RangeStmt:
		w.res.Cyclomatic++
		return w.nested()
	case *ast.SwitchStmt:
		w.res.Cyclomatic += extraArms(n.Body)
		return w.nested()
	case *ast.TypeSwitchStmt:
		w.res.Cyclomatic += extraArms(n.Body)
		return w.nested()
	case *ast.SelectStmt:
		w.res.Cyclomatic += extraArms(n.Body)
		return w.nested()
	case *ast.BinaryExpr:
		if n.Op == token.LAND || n.Op == token.LOR {
			w.res.Cyclomatic++
		}
	}
	return w
}

// walkIf keeps an else-if chain at the nesting level of its first if.
func (w walker) walkIf(n *ast.IfStmt) {
	inner := w.nested()
	if n.Init != nil {
		ast.Walk(inner, n.Init)
	}
	ast.Walk(inner, n.Cond)
	ast.Walk(inner, n.Body)

	switch e := n.Else.(type) {
	case nil:
	case *ast.IfStmt:
		w.res.Cyclomatic++
		w.walkIf(e)
	default:
		ast.Walk(inner, e)
	}
}

func (w walker) nested() walker {
	d := w.depth + 1
	if d > w.res.MaxNesting {
		w.res.MaxNesting = d
	}
	return walker{res: w.res, depth: d}
}

func extraArms(body *ast.BlockStmt) int {
	if body == nil || len(body.List) < 2 {
		return 0
	}
	return len(body.List) - 1
}
