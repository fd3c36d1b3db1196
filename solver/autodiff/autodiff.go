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

// Package autodiff evaluates expression graphs. It computes the value of a
// graph at a point along with its gradient, using reverse mode
// differentiation in single precision, or in double precision when a point
// needs refining. It also evaluates a graph over unions.
package autodiff

import (
	"fmt"
	"math"

	"github.com/purpleidea/bisheet/lang/asg"
	"github.com/purpleidea/bisheet/lang/funcs"
	"github.com/purpleidea/bisheet/union"
)

// Evaluator evaluates one graph. Every function of the graph has been looked
// up when it was built, so evaluation itself can't fail on those.
type Evaluator struct {
	graph *asg.ASG
	funcs []*funcs.Func // indexed by node, nil for the other kinds
}

// New builds an evaluator for the graph. It fails if a function is unknown or
// called with the wrong number of arguments.
func New(g *asg.ASG) (*Evaluator, error) {
	obj := &Evaluator{
		graph: g,
		funcs: make([]*funcs.Func, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		x, ok := n.(asg.NodeFunc)
		if !ok {
			continue
		}
		f, err := funcs.LookupCall(x.Name, len(g.Children[i]))
		if err != nil {
			return nil, err
		}
		obj.funcs[i] = f
	}
	return obj, nil
}

// Graph returns the graph that is being evaluated.
func (obj *Evaluator) Graph() *asg.ASG {
	return obj.graph
}

// round rounds to single precision.
func round(x float64) float64 {
	return float64(float32(x))
}

func exact(x float64) float64 { return x }

// Value returns the value of the graph at point, in single precision.
// References which are missing from point are NaN.
func (obj *Evaluator) Value(point map[string]float64) float64 {
	values, _ := obj.forward(point, round)
	return values[obj.graph.Root()]
}

// Gradient returns the value of the graph at point and its partial derivative
// with respect to every reference of the graph, in single precision.
// References which are missing from point are NaN.
func (obj *Evaluator) Gradient(point map[string]float64) (float64, map[string]float64) {
	return obj.gradient(point, round)
}

// GradientDouble is Gradient without the rounding to single precision.
func (obj *Evaluator) GradientDouble(point map[string]float64) (float64, map[string]float64) {
	return obj.gradient(point, exact)
}

func (obj *Evaluator) gradient(point map[string]float64, round func(float64) float64) (float64, map[string]float64) {
	values, partials := obj.forward(point, round)
	root := obj.graph.Root()

	adjoints := make([]float64, len(obj.graph.Nodes))
	adjoints[root] = 1
	for i := root; i >= 0; i-- {
		if adjoints[i] == 0 {
			continue
		}
		for j, c := range obj.graph.Children[i] {
			adjoints[c] = round(adjoints[c] + round(adjoints[i]*partials[i][j]))
		}
	}

	grad := make(map[string]float64, len(obj.graph.References))
	for name, ids := range obj.graph.References {
		for _, id := range ids {
			grad[name] = round(grad[name] + adjoints[id])
		}
	}
	return values[root], grad
}

// forward computes the value of every node, and the partial derivative of
// every node with respect to each of its children. Every result goes through
// round.
func (obj *Evaluator) forward(point map[string]float64, round func(float64) float64) ([]float64, [][]float64) {
	values := make([]float64, len(obj.graph.Nodes))
	partials := make([][]float64, len(obj.graph.Nodes))

	for i, n := range obj.graph.Nodes {
		args := make([]float64, len(obj.graph.Children[i]))
		for j, c := range obj.graph.Children[i] {
			args[j] = values[c]
		}

		var v float64
		var d []float64
		switch x := n.(type) {
		case asg.NodeAdd:
			v, d = args[0]+args[1], []float64{1, 1}
		case asg.NodeSub:
			v, d = args[0]-args[1], []float64{1, -1}
		case asg.NodeMul:
			v, d = args[0]*args[1], []float64{args[1], args[0]}
		case asg.NodeDiv:
			a, b := args[0], args[1]
			v, d = a/b, []float64{1 / b, -a / round(b*b)}
		case asg.NodeNeg:
			v, d = -args[0], []float64{-1}
		case asg.NodePowInt:
			v, d = powInt(args[0], x.N)
		case asg.NodePowReal:
			var da, db float64
			v, da, db = funcs.PowRealEval(args[0], args[1])
			d = []float64{da, db}
		case asg.NodeFunc:
			v, d = obj.funcs[i].Eval(args)
		case asg.NodeNum:
			v = x.V
		case asg.NodeRef:
			var exists bool
			if v, exists = point[x.Name]; !exists {
				v = math.NaN()
			}
		default:
			panic(fmt.Sprintf("unknown node: %T", n)) // the graph was validated
		}

		values[i] = round(v)
		for j := range d {
			d[j] = round(d[j])
		}
		partials[i] = d
	}
	return values, partials
}

// powInt returns x^n and its derivative.
func powInt(x float64, n int) (float64, []float64) {
	if n == 0 {
		return 1, []float64{0}
	}
	return math.Pow(x, float64(n)), []float64{float64(n) * math.Pow(x, float64(n-1))}
}

// Union evaluates the graph over unions. Every reference must be present in
// lookup.
func (obj *Evaluator) Union(lookup union.UnionDomain) (union.Union, error) {
	values := make([]union.Union, len(obj.graph.Nodes))
	for i, n := range obj.graph.Nodes {
		args := make([]union.Union, len(obj.graph.Children[i]))
		for j, c := range obj.graph.Children[i] {
			args[j] = values[c]
		}

		switch x := n.(type) {
		case asg.NodeAdd:
			values[i] = union.Add(args[0], args[1])
		case asg.NodeSub:
			values[i] = union.Sub(args[0], args[1])
		case asg.NodeMul:
			values[i] = union.Mul(args[0], args[1])
		case asg.NodeDiv:
			values[i] = union.Div(args[0], args[1])
		case asg.NodeNeg:
			values[i] = union.Neg(args[0])
		case asg.NodePowInt:
			values[i] = union.PowInt(args[0], x.N)
		case asg.NodePowReal:
			values[i] = union.Pow(args[0], args[1])
		case asg.NodeFunc:
			values[i] = obj.funcs[i].Union(args...)
		case asg.NodeNum:
			values[i] = union.Single(x.V)
		case asg.NodeRef:
			u, exists := lookup[x.Name]
			if !exists {
				return union.Empty(), fmt.Errorf("no value for reference %s", x.Name)
			}
			values[i] = u
		default:
			return union.Empty(), fmt.Errorf("unknown node: %T", n)
		}
	}
	return values[obj.graph.Root()], nil
}
