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

package asg

import (
	"fmt"
)

// Node is a single vertex of the expression graph. Nodes don't store their
// children; those are kept by index in the ASG. The set of implementations is
// closed and every switch over them lists each one.
type Node interface {
	fmt.Stringer

	// node is unexported to seal the set of implementations.
	node()
}

// NodeAdd is binary addition.
type NodeAdd struct{}

// NodeSub is binary subtraction.
type NodeSub struct{}

// NodeMul is binary multiplication.
type NodeMul struct{}

// NodeDiv is binary division.
type NodeDiv struct{}

// NodeNeg is unary negation.
type NodeNeg struct{}

// NodePowInt raises its only child to a fixed integer power.
type NodePowInt struct {
	N int
}

// NodePowReal raises its first child to the power of its second.
type NodePowReal struct{}

// NodeRef is a free variable. After deduplication there is exactly one of
// these per name.
type NodeRef struct {
	Name string
}

// NodeFunc is a call to a registered function with any number of children.
type NodeFunc struct {
	Name string
}

// NodeNum is a numeric literal.
type NodeNum struct {
	V float64
}

func (NodeAdd) node()     {}
func (NodeSub) node()     {}
func (NodeMul) node()     {}
func (NodeDiv) node()     {}
func (NodeNeg) node()     {}
func (NodePowInt) node()  {}
func (NodePowReal) node() {}
func (NodeRef) node()     {}
func (NodeFunc) node()    {}
func (NodeNum) node()     {}

// String returns a short representation of this node.
func (NodeAdd) String() string { return "add" }

// String returns a short representation of this node.
func (NodeSub) String() string { return "sub" }

// String returns a short representation of this node.
func (NodeMul) String() string { return "mul" }

// String returns a short representation of this node.
func (NodeDiv) String() string { return "div" }

// String returns a short representation of this node.
func (NodeNeg) String() string { return "neg" }

// String returns a short representation of this node.
func (obj NodePowInt) String() string { return fmt.Sprintf("powint(%d)", obj.N) }

// String returns a short representation of this node.
func (NodePowReal) String() string { return "pow" }

// String returns a short representation of this node.
func (obj NodeRef) String() string { return fmt.Sprintf("ref(%s)", obj.Name) }

// String returns a short representation of this node.
func (obj NodeFunc) String() string { return fmt.Sprintf("func(%s)", obj.Name) }

// String returns a short representation of this node.
func (obj NodeNum) String() string { return fmt.Sprintf("num(%g)", obj.V) }

// Arity returns the number of children a node of this kind must have. It
// returns -1 for function nodes, which can have any number.
func Arity(n Node) int {
	switch n.(type) {
	case NodeRef, NodeNum:
		return 0
	case NodeNeg, NodePowInt:
		return 1
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePowReal:
		return 2
	case NodeFunc:
		return -1
	}
	panic(fmt.Sprintf("unknown node: %T", n))
}
