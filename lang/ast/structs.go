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

// Package ast contains the structs implementing and some utility functions for
// interacting with the abstract syntax tree for the formula language.
package ast

import (
	"fmt"
	"strings"

	"github.com/purpleidea/bisheet/lang/interfaces"
)

// Operator is one of the binary infix operators.
type Operator string

const (
	// OperatorAdd is the addition operator.
	OperatorAdd Operator = "+"

	// OperatorSub is the subtraction operator.
	OperatorSub Operator = "-"

	// OperatorMul is the multiplication operator.
	OperatorMul Operator = "*"

	// OperatorDiv is the division operator.
	OperatorDiv Operator = "/"

	// OperatorPow is the real power operator. Integer literal exponents are
	// represented with ExprPowInt instead.
	OperatorPow Operator = "^"
)

// Textarea stores the position of an expression in the input.
type Textarea struct {
	Offset int
}

// Pos returns the zero-based byte offset of the expression.
func (obj *Textarea) Pos() int { return obj.Offset }

// ExprNum is a representation of a numeric literal.
type ExprNum struct {
	Textarea

	V float64
}

// String returns a short representation of this expression.
func (obj *ExprNum) String() string {
	return fmt.Sprintf("num(%g)", obj.V)
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprNum) Apply(fn func(interfaces.Expr) error) error { return fn(obj) }

// ExprRef is a representation of a reference to a variable, which is usually
// the name of another cell.
type ExprRef struct {
	Textarea

	Name string
}

// String returns a short representation of this expression.
func (obj *ExprRef) String() string { return fmt.Sprintf("ref(%s)", obj.Name) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprRef) Apply(fn func(interfaces.Expr) error) error { return fn(obj) }

// ExprNeg is the unary negation of an expression.
type ExprNeg struct {
	Textarea

	Arg interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprNeg) String() string { return fmt.Sprintf("neg(%s)", obj.Arg.String()) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprNeg) Apply(fn func(interfaces.Expr) error) error {
	if err := obj.Arg.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprBinary is an infix operation between two expressions.
type ExprBinary struct {
	Textarea

	Op Operator
	A  interfaces.Expr
	B  interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprBinary) String() string {
	return fmt.Sprintf("(%s %s %s)", obj.A.String(), obj.Op, obj.B.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprBinary) Apply(fn func(interfaces.Expr) error) error {
	if err := obj.A.Apply(fn); err != nil {
		return err
	}
	if err := obj.B.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprPowInt raises an expression to a literal integer power.
type ExprPowInt struct {
	Textarea

	Base interfaces.Expr
	N    int
}

// String returns a short representation of this expression.
func (obj *ExprPowInt) String() string {
	return fmt.Sprintf("powint(%s, %d)", obj.Base.String(), obj.N)
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprPowInt) Apply(fn func(interfaces.Expr) error) error {
	if err := obj.Base.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// ExprCall is a representation of a function call. The function is looked up
// by name in the function registry when a model is built.
type ExprCall struct {
	Textarea

	// Name of the function to be called.
	Name string

	// Args are the list of inputs to this function.
	Args []interfaces.Expr // list of args in parsed order
}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string {
	var s []string
	for _, x := range obj.Args {
		s = append(s, x.String())
	}
	return fmt.Sprintf("call:%s(%s)", obj.Name, strings.Join(s, ", "))
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprCall) Apply(fn func(interfaces.Expr) error) error {
	for _, x := range obj.Args {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}
