// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
	"github.com/rafaelvolkmer/techdebt/internal/domain/ports"
)

const parseMode = parser.ParseComments | parser.SkipObjectResolution

type GoParser struct{}

func NewGoParser() *GoParser {
	return &GoParser{}
}

var _ ports.CodeParser = (*GoParser)(nil)

func (p *GoParser) Name() string {
	return "go"
}

func (p *GoParser) SupportsFile(path string) bool {
	return strings.HasSuffix(path, ".go")
}

// Parse builds the structural tree of one Go file. When the file does not
// parse as a whole, every top-level declaration is retried on its own so
// that one broken function does not hide the others.
func (p *GoParser) Parse(path string, src []byte) (*model.SyntaxTree, error) {
	tree := &model.SyntaxTree{
		Path:     path,
		RawLines: countRawLines(src),
	}
	tree.CodeLines, tree.CommentLines = countLines(src)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parseMode)
	if err == nil {
		tree.Functions = collectFunctions(fset, file, src, &closureNamer{})
		return tree, nil
	}

	return recoverDecls(path, src, tree, err)
}

// closureNamer numbers package-level closures across declaration chunks.
type closureNamer struct {
	global int
}

type funcFrame struct {
	name     string
	isDecl   bool
	closures int
}

func collectFunctions(fset *token.FileSet, file *ast.File, src []byte, namer *closureNamer) []model.FunctionNode {
	tokFile := fset.File(file.Pos())
	toks := scanTokens(tokFile, src)

	var (
		nodes  []model.FunctionNode
		lits   []*ast.FuncLit
		frames []*funcFrame
	)

	insp := inspector.New([]*ast.File{file})
	filter := []ast.Node{(*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)}

	insp.WithStack(filter, func(n ast.Node, push bool, _ []ast.Node) bool {
		if !push {
			frames = frames[:len(frames)-1]
			return true
		}

		frame := &funcFrame{}
		switch fn := n.(type) {
		case *ast.FuncDecl:
			frame.name = funcDeclName(fn)
			frame.isDecl = true
			frames = append(frames, frame)
			if fn.Body == nil {
				return true
			}
		case *ast.FuncLit:
			frame.name = closureName(frames, namer)
			frames = append(frames, frame)
			lits = append(lits, fn)
		}

		nodes = append(nodes, model.FunctionNode{
			Name:      frame.name,
			StartLine: tokFile.PositionFor(n.Pos(), false).Line,
			EndLine:   tokFile.PositionFor(n.End(), false).Line,
			Node:      n,
		})
		return true
	})

	for i := range nodes {
		nodes[i].Tokens = functionTokens(toks, nodes[i].Node, lits)
	}

	return nodes
}

func closureName(frames []*funcFrame, namer *closureNamer) string {
	if len(frames) == 0 {
		namer.global++
		return fmt.Sprintf("glob..func%d", namer.global)
	}

	parent := frames[len(frames)-1]
	parent.closures++
	if parent.isDecl {
		return parent.name + ".func" + strconv.Itoa(parent.closures)
	}
	return parent.name + "." + strconv.Itoa(parent.closures)
}

// funcDeclName renders F, T.M or (*T).M.
func funcDeclName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}

	typ := fn.Recv.List[0].Type
	pointer := false
	if star, ok := typ.(*ast.StarExpr); ok {
		pointer = true
		typ = star.X
	}

	recv := receiverTypeName(typ)
	if pointer {
		return "(*" + recv + ")." + fn.Name.Name
	}
	return recv + "." + fn.Name.Name
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	}
	return "?"
}
