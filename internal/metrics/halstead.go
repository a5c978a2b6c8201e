// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package metrics

import (
	"go/token"
	"math"

	"github.com/rafaelvolkmer/techdebt/internal/domain/model"
)

type tokenClass int

const (
	classSkip tokenClass = iota
	classOperator
	classOperand
)

// Classifier tallies operators and operands of a token stream.
type Classifier struct {
	operators map[string]int
	operands  map[string]int
}

func NewClassifier() *Classifier {
	return &Classifier{
		operators: make(map[string]int),
		operands:  make(map[string]int),
	}
}

func (c *Classifier) Add(tok model.Token) {
	key, class := classify(tok)
	switch class {
	case classOperator:
		c.operators[key]++
	case classOperand:
		c.operands[key]++
	}
}

func (c *Classifier) Metrics() model.HalsteadMetrics {
	m := model.HalsteadMetrics{
		DistinctOperators: len(c.operators),
		DistinctOperands:  len(c.operands),
	}
	for _, n := range c.operators {
		m.TotalOperators += n
	}
	for _, n := range c.operands {
		m.TotalOperands += n
	}
	m.Vocabulary = m.DistinctOperators + m.DistinctOperands
	m.Length = m.TotalOperators + m.TotalOperands

	if m.DistinctOperators == 0 || m.DistinctOperands == 0 {
		m.Undefined = true
		return m
	}

	n1 := float64(m.DistinctOperators)
	n2 := float64(m.DistinctOperands)
	m.Volume = float64(m.Length) * math.Log2(float64(m.Vocabulary))
	m.Difficulty = (n1 / 2) * (float64(m.TotalOperands) / n2)
	m.Effort = m.Difficulty * m.Volume
	return m
}

// Halstead classifies a whole token stream.
func Halstead(tokens []model.Token) model.HalsteadMetrics {
	c := NewClassifier()
	for _, t := range tokens {
		c.Add(t)
	}
	return c.Metrics()
}

// classify: identifiers and literals are operands keyed by their text.
// Separators and closing brackets are skipped; an opening bracket stands
// for the pair. Everything else, keywords included, is an operator.
func classify(tok model.Token) (string, tokenClass) {
	if tok.Kind.IsLiteral() {
		return tok.Lit, classOperand
	}

	switch tok.Kind {
	case token.COMMA, token.SEMICOLON,
		token.RPAREN, token.RBRACK, token.RBRACE,
		token.COMMENT, token.ILLEGAL, token.EOF:
		return "", classSkip
	case token.LPAREN:
		return "()", classOperator
	case token.LBRACK:
		return "[]", classOperator
	case token.LBRACE:
		return "{}", classOperator
	}
	return tok.Kind.String(), classOperator
}
