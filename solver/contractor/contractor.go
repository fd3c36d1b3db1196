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

// Package contractor implements the interval contractors of every kind of node
// in an expression graph. A contractor narrows the domain of one node from the
// domains of its neighbours, so that propagating them all shrinks every node
// towards the values that are consistent with the formula.
package contractor

import (
	"fmt"

	"github.com/purpleidea/bisheet/lang/asg"
	"github.com/purpleidea/bisheet/lang/funcs"
	"github.com/purpleidea/bisheet/union"
)

// Add is the linker of y = a + b.
var Add = funcs.Binary(
	union.Add, // y = a + b
	union.Sub, // a = y - b
	union.Sub, // b = y - a
)

// Sub is the linker of y = a - b.
var Sub = funcs.Binary(
	union.Sub, // y = a - b
	union.Add, // a = y + b
	func(y, a union.Union) union.Union { return union.Sub(a, y) }, // b = a - y
)

// Mul is the linker of y = a * b. An operand that may be zero says nothing
// about the other one.
var Mul = funcs.Binary(
	union.Mul, // y = a * b
	mulInv,    // a = y / b
	mulInv,    // b = y / a
)

func mulInv(y, other union.Union) union.Union {
	if other.Contains(0) && !y.IsEmpty() {
		return union.Full()
	}
	return union.Div(y, other)
}

// Div is the linker of y = a / b.
var Div = funcs.Binary(
	union.Div, // y = a / b
	func(y, b union.Union) union.Union { // a = y * b
		if b.Contains(0) && !y.IsEmpty() {
			return union.Full()
		}
		return union.Mul(y, b)
	},
	func(y, a union.Union) union.Union { // b = a / y
		if y.Contains(0) && !a.IsEmpty() {
			return union.Full()
		}
		return union.Div(a, y)
	},
)

// Neg is the linker of y = -x.
var Neg = funcs.Unary(union.Neg, union.Neg)

// PowInt returns the linker of y = x^n for a fixed integer n.
func PowInt(n int) funcs.Linker {
	if n == 0 {
		return funcs.Unary(
			func(x union.Union) union.Union {
				if x.IsEmpty() {
					return union.Empty()
				}
				return union.Single(1)
			},
			func(y union.Union) union.Union {
				if y.Contains(1) {
					return union.Full()
				}
				return union.Empty()
			},
		)
	}
	return funcs.Unary(
		func(x union.Union) union.Union { return union.PowInt(x, n) },    // y = x^n
		func(y union.Union) union.Union { return union.PowIntInv(y, n) }, // x = y^(1/n)
	)
}

// CF is a single contraction: the domain of node Target is intersected with the
// result of Fn applied to the domains of the Args nodes, in order.
type CF struct {
	Target int
	Args   []int
	Fn     funcs.Contractor
}

// Apply runs the contraction against the current node domains.
func (obj CF) Apply(domains []union.Union) union.Union {
	args := make([]union.Union, len(obj.Args))
	for i, id := range obj.Args {
		args[i] = domains[id]
	}
	return obj.Fn(args...)
}

// linkCFs returns the contractions of a node from its linker. The first one
// targets the node itself, and the others target each child in order.
func linkCFs(l funcs.Linker, id int, children []int) []CF {
	cfs := []CF{
		{
			Target: id,
			Args:   append([]int{}, children...),
			Fn:     l[0],
		},
	}
	for i, c := range children {
		args := []int{id}
		for j, other := range children {
			if j != i {
				args = append(args, other)
			}
		}
		cfs = append(cfs, CF{
			Target: c,
			Args:   args,
			Fn:     l[i+1],
		})
	}
	return cfs
}

// Linker returns the linker of a node. Leaves have none, since their domains
// are set when the contraction starts. Function calls are checked against the
// registry, and fail with an unknown function or an arity error.
func Linker(n asg.Node, argc int) (funcs.Linker, error) {
	switch x := n.(type) {
	case asg.NodeAdd:
		return Add, nil
	case asg.NodeSub:
		return Sub, nil
	case asg.NodeMul:
		return Mul, nil
	case asg.NodeDiv:
		return Div, nil
	case asg.NodeNeg:
		return Neg, nil
	case asg.NodePowInt:
		return PowInt(x.N), nil
	case asg.NodePowReal:
		return funcs.PowReal, nil
	case asg.NodeRef, asg.NodeNum:
		return nil, nil
	case asg.NodeFunc:
		f, err := funcs.LookupCall(x.Name, argc)
		if err != nil {
			return nil, err
		}
		return f.Linker, nil
	}
	return nil, fmt.Errorf("unknown node: %T", n)
}

// InitCFs builds the contractions of every node of the graph, indexed by node.
// It fails before any solving starts if a function is unknown or has the wrong
// number of arguments.
func InitCFs(g *asg.ASG) ([][]CF, error) {
	out := make([][]CF, len(g.Nodes))
	for i, n := range g.Nodes {
		l, err := Linker(n, len(g.Children[i]))
		if err != nil {
			return nil, err
		}
		if l == nil {
			out[i] = []CF{}
			continue
		}
		if a := l.Arity(); a != len(g.Children[i]) {
			return nil, fmt.Errorf("node %d (%s) has %d children, expected %d", i, n, len(g.Children[i]), a)
		}
		out[i] = linkCFs(l, i, g.Children[i])
	}
	return out, nil
}
