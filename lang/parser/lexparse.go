// Mgmt
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package parser contains the lexer and recursive descent parser for formulas.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/purpleidea/bisheet/lang/ast"
	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/util"
)

// These constants represent the different possible lexer/parser errors.
const (
	ErrLexerUnrecognized    = util.Error("unrecognized")
	ErrParseExpectingExpr   = util.Error("expecting expression")
	ErrParseExpectingClose  = util.Error("expecting closing parenthesis")
	ErrParseExpectingComma  = util.Error("expecting comma or closing parenthesis")
	ErrParseTrailingContent = util.Error("unexpected trailing content")
)

var (
	// integerExponent matches the exponent text which selects ExprPowInt.
	integerExponent = regexp.MustCompile(`^-?\d+$`)

	// signedNumber matches a bare, optionally signed number literal. There
	// may be spaces between the sign and the digits.
	signedNumber = regexp.MustCompile(`^([+-]?)\s*((?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)$`)
)

func lexErr(input string, offset int, err util.Error) error {
	return &interfaces.SyntaxError{
		Input:  input,
		Offset: offset,
		Msg:    err.Error(),
	}
}

// LexParse runs the lexer/parser machinery and returns the AST. Any failure is
// returned as an *interfaces.SyntaxError.
func LexParse(input string) (interfaces.Expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, tokens: tokens}
	expr, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, lexErr(input, tok.start, ErrParseTrailingContent)
	}
	return expr, nil
}

// Parse is an alias for LexParse.
func Parse(input string) (interfaces.Expr, error) {
	return LexParse(input)
}

// ParseNumber parses a bare, optionally signed number literal, surrounded by
// optional whitespace. It returns false if the whole text isn't one number.
func ParseNumber(text string) (float64, bool) {
	m := signedNumber.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1]+m[2], 64)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return v, true
}

// parser is a recursive descent parser over a token slice. The grammar is:
//
//	add   := mul (("+" | "-") mul)*
//	mul   := unary (("*" | "/") unary)*
//	unary := ("+" | "-") unary | pow
//	pow   := primary ("^" ("+" | "-")* pow)?
//	primary := number | ident "(" [add ("," add)*] ")" | ident | "(" add ")"
//
// Unary minus binds looser than the power operator, which is right
// associative, so `-x^2` is `-(x^2)` and `2^3^2` is `2^(3^2)`.
type parser struct {
	input  string
	tokens []token
	pos    int
}

func (obj *parser) peek() token {
	return obj.tokens[obj.pos]
}

func (obj *parser) next() token {
	tok := obj.tokens[obj.pos]
	if tok.kind != tokenEOF {
		obj.pos++
	}
	return tok
}

// lastEnd returns the end offset of the most recently consumed token.
func (obj *parser) lastEnd() int {
	if obj.pos == 0 {
		return 0
	}
	return obj.tokens[obj.pos-1].end
}

func (obj *parser) parseAdd() (interfaces.Expr, error) {
	left, err := obj.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		tok := obj.peek()
		var op ast.Operator
		switch tok.kind {
		case tokenPlus:
			op = ast.OperatorAdd
		case tokenMinus:
			op = ast.OperatorSub
		default:
			return left, nil
		}
		obj.next()
		right, err := obj.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.ExprBinary{Textarea: ast.Textarea{Offset: tok.start}, Op: op, A: left, B: right}
	}
}

func (obj *parser) parseMul() (interfaces.Expr, error) {
	left, err := obj.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := obj.peek()
		var op ast.Operator
		switch tok.kind {
		case tokenMul:
			op = ast.OperatorMul
		case tokenDiv:
			op = ast.OperatorDiv
		default:
			return left, nil
		}
		obj.next()
		right, err := obj.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.ExprBinary{Textarea: ast.Textarea{Offset: tok.start}, Op: op, A: left, B: right}
	}
}

func (obj *parser) parseUnary() (interfaces.Expr, error) {
	tok := obj.peek()
	switch tok.kind {
	case tokenPlus:
		obj.next()
		return obj.parseUnary()
	case tokenMinus:
		obj.next()
		arg, err := obj.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.ExprNeg{Textarea: ast.Textarea{Offset: tok.start}, Arg: arg}, nil
	}
	return obj.parsePow()
}

func (obj *parser) parsePow() (interfaces.Expr, error) {
	base, err := obj.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok := obj.peek()
	if tok.kind != tokenPow {
		return base, nil
	}
	obj.next()

	start := obj.peek().start
	exp, err := obj.parseSignedPow()
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(obj.input[start:obj.lastEnd()])
	if integerExponent.MatchString(text) {
		if n, err := strconv.Atoi(text); err == nil {
			return &ast.ExprPowInt{Textarea: ast.Textarea{Offset: tok.start}, Base: base, N: n}, nil
		}
	}
	return &ast.ExprBinary{Textarea: ast.Textarea{Offset: tok.start}, Op: ast.OperatorPow, A: base, B: exp}, nil
}

// parseSignedPow parses the right hand side of the power operator, which may
// carry its own sign, as in `x^-1`.
func (obj *parser) parseSignedPow() (interfaces.Expr, error) {
	tok := obj.peek()
	switch tok.kind {
	case tokenPlus:
		obj.next()
		return obj.parseSignedPow()
	case tokenMinus:
		obj.next()
		arg, err := obj.parseSignedPow()
		if err != nil {
			return nil, err
		}
		return &ast.ExprNeg{Textarea: ast.Textarea{Offset: tok.start}, Arg: arg}, nil
	}
	return obj.parsePow()
}

func (obj *parser) parsePrimary() (interfaces.Expr, error) {
	tok := obj.next()
	switch tok.kind {
	case tokenNum:
		return &ast.ExprNum{Textarea: ast.Textarea{Offset: tok.start}, V: tok.num}, nil

	case tokenIdent:
		if obj.peek().kind != tokenOpen {
			return &ast.ExprRef{Textarea: ast.Textarea{Offset: tok.start}, Name: tok.text}, nil
		}
		obj.next() // open
		args, err := obj.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.ExprCall{Textarea: ast.Textarea{Offset: tok.start}, Name: tok.text, Args: args}, nil

	case tokenOpen:
		expr, err := obj.parseAdd()
		if err != nil {
			return nil, err
		}
		if t := obj.next(); t.kind != tokenClose {
			return nil, lexErr(obj.input, t.start, ErrParseExpectingClose)
		}
		return expr, nil
	}
	return nil, lexErr(obj.input, tok.start, ErrParseExpectingExpr)
}

// parseArgs parses a possibly empty argument list after the open parenthesis
// and consumes the closing one.
func (obj *parser) parseArgs() ([]interfaces.Expr, error) {
	args := []interfaces.Expr{}
	if obj.peek().kind == tokenClose {
		obj.next()
		return args, nil
	}
	for {
		arg, err := obj.parseAdd()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok := obj.next()
		switch tok.kind {
		case tokenComma:
			continue
		case tokenClose:
			return args, nil
		}
		return nil, lexErr(obj.input, tok.start, ErrParseExpectingComma)
	}
}

// MustParse is a helper for tests and static tables. It panics on error.
func MustParse(input string) interfaces.Expr {
	expr, err := LexParse(input)
	if err != nil {
		panic(fmt.Sprintf("could not parse %q: %v", input, err))
	}
	return expr
}
