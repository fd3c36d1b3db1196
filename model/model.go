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

// Package model bundles everything that the solvers need to know about a
// formula. A CellModel is built once from the text of a formula, and every one
// of its representations comes from that same parse.
package model

import (
	"github.com/purpleidea/bisheet/lang/asg"
	"github.com/purpleidea/bisheet/lang/ast"
	_ "github.com/purpleidea/bisheet/lang/funcs/core" // import so the funcs register
	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/lang/parser"
	"github.com/purpleidea/bisheet/solver/autodiff"
	"github.com/purpleidea/bisheet/solver/contractor"
	"github.com/purpleidea/bisheet/union"
	"github.com/purpleidea/bisheet/util"
	"github.com/purpleidea/bisheet/util/errwrap"
)

// ExternalRefs are the names that a formula uses from outside of itself.
type ExternalRefs struct {
	// Singles are the referenced variables, in order of first appearance.
	Singles []string

	// Functions are the called functions, in order of first appearance.
	Functions []string
}

// NoRefs returns an empty set of external references.
func NoRefs() ExternalRefs {
	return ExternalRefs{
		Singles:   []string{},
		Functions: []string{},
	}
}

// HasSingles returns true if the formula references any variable.
func (obj ExternalRefs) HasSingles() bool {
	return len(obj.Singles) > 0
}

// ComposeRefs returns the references of base after ref has been substituted by
// a formula whose references are bind.
func ComposeRefs(base ExternalRefs, ref string, bind ExternalRefs) ExternalRefs {
	singles := util.StrFilterElementsInList([]string{ref}, base.Singles)
	singles = append(singles, bind.Singles...)
	functions := append(append([]string{}, base.Functions...), bind.Functions...)
	return ExternalRefs{
		Singles:   util.StrRemoveDuplicatesInList(singles),
		Functions: util.StrRemoveDuplicatesInList(functions),
	}
}

// CellModel is a formula ready to be solved. It holds the shared expression
// graph, and an evaluator of that graph for both unions and points.
type CellModel struct {
	// Graph is the expression graph.
	Graph *asg.ASG

	// Refs are the external references of the formula.
	Refs ExternalRefs

	cfs  [][]contractor.CF
	eval *autodiff.Evaluator
}

// Construct parses a formula and builds its model. It fails with a syntax
// error, or if a function is unknown or called with the wrong number of
// arguments. The contractors are built too, only to fail here rather than
// later on during goal seeking.
func Construct(text string) (*CellModel, error) {
	expr, err := parser.LexParse(text)
	if err != nil {
		return nil, err
	}
	return FromExpr(expr)
}

// FromExpr builds the model of an already parsed formula.
func FromExpr(expr interfaces.Expr) (*CellModel, error) {
	if err := ast.Validate(expr); err != nil {
		return nil, &interfaces.InternalError{Err: err}
	}
	g, err := asg.FromExpr(expr)
	if err != nil {
		return nil, &interfaces.InternalError{Err: err}
	}
	refs := ExternalRefs{
		Singles:   ast.CollectRefs(expr),
		Functions: ast.CollectFuncs(expr),
	}
	return fromGraph(g, refs)
}

// Constant returns the model of a formula which is the lone number c.
func Constant(c float64) *CellModel {
	m, err := fromGraph(asg.Number(c), NoRefs())
	if err != nil { // a number has no functions to fail on
		panic(errwrap.Wrapf(err, "constant model"))
	}
	return m
}

func fromGraph(g *asg.ASG, refs ExternalRefs) (*CellModel, error) {
	cfs, err := contractor.InitCFs(g)
	if err != nil {
		return nil, err
	}
	eval, err := autodiff.New(g)
	if err != nil {
		return nil, err
	}
	return &CellModel{
		Graph: g,
		Refs:  refs,
		cfs:   cfs,
		eval:  eval,
	}, nil
}

// CFs returns the contractors of the graph, one list per node.
func (obj *CellModel) CFs() [][]contractor.CF {
	return obj.cfs
}

// Union evaluates the formula over unions. Every reference needs a value.
func (obj *CellModel) Union(lookup union.UnionDomain) (union.Union, error) {
	return obj.eval.Union(lookup)
}

// Gradient returns the value of the formula at a point and its gradient, in
// single precision. It has the signature of newton.Func.
func (obj *CellModel) Gradient(point map[string]float64) (float64, map[string]float64) {
	return obj.eval.Gradient(point)
}

// GradientDouble is Gradient in double precision.
func (obj *CellModel) GradientDouble(point map[string]float64) (float64, map[string]float64) {
	return obj.eval.GradientDouble(point)
}

// Compose substitutes the reference ref of base with the formula of bind. The
// inputs are unchanged.
func Compose(base *CellModel, ref string, bind *CellModel) (*CellModel, error) {
	g, err := asg.Compose(base.Graph, ref, bind.Graph)
	if err != nil {
		return nil, err
	}
	return fromGraph(g, ComposeRefs(base.Refs, ref, bind.Refs))
}

// Binding is a single substitution for ComposeList.
type Binding struct {
	Ref   string
	Model *CellModel
}

// ComposeList applies Compose for each binding in order, feeding each result
// into the next.
func ComposeList(base *CellModel, bindings []Binding) (*CellModel, error) {
	m := base
	for _, b := range bindings {
		var err error
		if m, err = Compose(m, b.Ref, b.Model); err != nil {
			return nil, errwrap.Wrapf(err, "compose %s", b.Ref)
		}
	}
	return m, nil
}
