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

// Package asg implements the abstract semantic graph of a formula: a DAG of
// nodes stored in topological order, where every free variable appears exactly
// once and is shared between all of its users.
package asg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/bisheet/lang/ast"
	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/util"
	"github.com/purpleidea/bisheet/util/errwrap"
)

const (
	// ErrRefNotUnique is returned by Compose when the name to substitute
	// is missing or appears more than once.
	ErrRefNotUnique = util.Error("reference does not appear exactly once")
)

// ASG is an expression graph. The children of node i are the indices in
// Children[i], all of which are smaller than i. The last node is the root.
// References maps each free variable name to the index of its NodeRef. An ASG
// is never modified after it is built; every operation returns a new one.
type ASG struct {
	Nodes      []Node
	Children   [][]int
	References map[string][]int
}

// Root returns the index of the root node.
func (obj *ASG) Root() int {
	return len(obj.Nodes) - 1
}

// Refs returns the free variable names in sorted order.
func (obj *ASG) Refs() []string {
	return util.StrMapKeys(obj.References)
}

// Copy returns a deep copy of the graph.
func (obj *ASG) Copy() *ASG {
	nodes := append([]Node{}, obj.Nodes...)
	children := make([][]int, len(obj.Children))
	for i, c := range obj.Children {
		children[i] = append([]int{}, c...)
	}
	return &ASG{
		Nodes:      nodes,
		Children:   children,
		References: copyReferences(obj.References),
	}
}

// String returns one line per node, listing the node and its children.
func (obj *ASG) String() string {
	var b strings.Builder
	for i, n := range obj.Nodes {
		fmt.Fprintf(&b, "%d: %s %v\n", i, n.String(), obj.Children[i])
	}
	return b.String()
}

// Validate checks the structural invariants of the graph.
func (obj *ASG) Validate() error {
	if len(obj.Nodes) == 0 {
		return fmt.Errorf("empty graph")
	}
	if len(obj.Children) != len(obj.Nodes) {
		return fmt.Errorf("have %d nodes but %d children lists", len(obj.Nodes), len(obj.Children))
	}
	for i, n := range obj.Nodes {
		if a := Arity(n); a >= 0 && a != len(obj.Children[i]) {
			return fmt.Errorf("node %d (%s) has %d children", i, n, len(obj.Children[i]))
		}
		for _, c := range obj.Children[i] {
			if c < 0 || c >= i {
				return fmt.Errorf("node %d (%s) has invalid child %d", i, n, c)
			}
		}
	}
	seen := 0
	for name, ids := range obj.References {
		if len(ids) != 1 {
			return fmt.Errorf("reference %s has %d nodes", name, len(ids))
		}
		id := ids[0]
		if id < 0 || id >= len(obj.Nodes) {
			return fmt.Errorf("reference %s has invalid index %d", name, id)
		}
		if r, ok := obj.Nodes[id].(NodeRef); !ok || r.Name != name {
			return fmt.Errorf("reference %s points at %s", name, obj.Nodes[id])
		}
		seen++
	}
	for _, n := range obj.Nodes {
		if _, ok := n.(NodeRef); ok {
			seen--
		}
	}
	if seen != 0 {
		return fmt.Errorf("references and ref nodes disagree")
	}
	return nil
}

// FromExpr builds the graph for a parsed formula. Subgraphs are built leaves
// first and concatenated with their indices shifted, and then any duplicated
// references are merged.
func FromExpr(expr interfaces.Expr) (*ASG, error) {
	switch x := expr.(type) {
	case *ast.ExprNum:
		return leaf(NodeNum{V: x.V}), nil

	case *ast.ExprRef:
		g := leaf(NodeRef{Name: x.Name})
		g.References[x.Name] = []int{0}
		return g, nil

	case *ast.ExprNeg:
		return unary(x.Arg, NodeNeg{})

	case *ast.ExprPowInt:
		return unary(x.Base, NodePowInt{N: x.N})

	case *ast.ExprBinary:
		var n Node
		switch x.Op {
		case ast.OperatorAdd:
			n = NodeAdd{}
		case ast.OperatorSub:
			n = NodeSub{}
		case ast.OperatorMul:
			n = NodeMul{}
		case ast.OperatorDiv:
			n = NodeDiv{}
		case ast.OperatorPow:
			n = NodePowReal{}
		default:
			return nil, fmt.Errorf("unknown operator: %s", x.Op)
		}
		return nary(n, []interfaces.Expr{x.A, x.B})

	case *ast.ExprCall:
		return nary(NodeFunc{Name: x.Name}, x.Args)
	}
	return nil, fmt.Errorf("unknown expression: %T", expr)
}

// Number returns the graph of a lone number.
func Number(v float64) *ASG {
	return leaf(NodeNum{V: v})
}

func leaf(n Node) *ASG {
	return &ASG{
		Nodes:      []Node{n},
		Children:   [][]int{{}},
		References: make(map[string][]int),
	}
}

func unary(arg interfaces.Expr, n Node) (*ASG, error) {
	return nary(n, []interfaces.Expr{arg})
}

// nary concatenates the graphs of each argument, shifting each one by the size
// of everything before it, and adds n as the new root.
func nary(n Node, args []interfaces.Expr) (*ASG, error) {
	out := &ASG{
		Nodes:      []Node{},
		Children:   [][]int{},
		References: make(map[string][]int),
	}
	roots := []int{}
	for i, arg := range args {
		g, err := FromExpr(arg)
		if err != nil {
			return nil, errwrap.Wrapf(err, "arg %d of %s", i, n)
		}
		shift := len(out.Nodes)
		out.Nodes = append(out.Nodes, g.Nodes...)
		out.Children = append(out.Children, shiftChildren(g.Children, shift)...)
		mergeReferences(out.References, shiftReferences(g.References, shift))
		roots = append(roots, shift+g.Root())
	}
	out.Nodes = append(out.Nodes, n)
	out.Children = append(out.Children, roots)
	return mergeDuplicateReferences(out), nil
}

// Compose substitutes the single NodeRef named ref in base with the whole of
// bind. The nodes of bind are spliced in where the reference was, everything
// above moves up by len(bind.Nodes)-1, and references that now appear twice
// are merged. Neither input is modified.
func Compose(base *ASG, ref string, bind *ASG) (*ASG, error) {
	ids := base.References[ref]
	if len(ids) != 1 {
		return nil, errwrap.Wrapf(ErrRefNotUnique, "compose %s", ref)
	}
	origID := ids[0]
	n2 := len(bind.Nodes)
	bindRoot := origID + n2 - 1

	nodes := []Node{}
	nodes = append(nodes, base.Nodes[:origID]...)
	nodes = append(nodes, bind.Nodes...)
	nodes = append(nodes, base.Nodes[origID+1:]...)

	refs := copyReferences(base.References)
	delete(refs, ref)
	refs = shiftReferencesAbove(refs, origID, n2-1)
	mergeReferences(refs, shiftReferences(bind.References, origID))

	children := [][]int{}
	for i, row := range base.Children {
		if i == origID {
			children = append(children, shiftChildren(bind.Children, origID)...)
			continue
		}
		out := make([]int, 0, len(row))
		for _, c := range row {
			switch {
			case c == origID:
				out = append(out, bindRoot)
			case c < origID:
				out = append(out, c)
			default:
				out = append(out, c-1+n2)
			}
		}
		children = append(children, out)
	}

	g := &ASG{
		Nodes:      nodes,
		Children:   children,
		References: refs,
	}
	return mergeDuplicateReferences(g), nil
}

// Binding is a single substitution for ComposeList.
type Binding struct {
	Ref  string
	Bind *ASG
}

// ComposeList applies Compose for each binding in order, feeding each result
// into the next.
func ComposeList(base *ASG, bindings []Binding) (*ASG, error) {
	g := base
	for _, b := range bindings {
		var err error
		if g, err = Compose(g, b.Ref, b.Bind); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// mergeDuplicateReferences removes every duplicated reference node, until each
// name has one index. The smallest index is kept, so every user of a removed
// node still comes after its replacement.
func mergeDuplicateReferences(g *ASG) *ASG {
	for {
		keep, drop, found := nextDuplicate(g.References)
		if !found {
			return g
		}
		g = removeNode(g, drop, keep)
	}
}

// nextDuplicate finds the first name, in sorted order, with more than one
// index and returns the two smallest indices.
func nextDuplicate(refs map[string][]int) (int, int, bool) {
	for _, name := range util.StrMapKeys(refs) {
		ids := refs[name]
		if len(ids) < 2 {
			continue
		}
		sorted := append([]int{}, ids...)
		sort.Ints(sorted)
		return sorted[0], sorted[1], true
	}
	return 0, 0, false
}

// removeNode deletes node drop, repointing its users at keep, which must be a
// smaller index. Every index above drop moves down by one.
func removeNode(g *ASG, drop, keep int) *ASG {
	nodes := []Node{}
	children := [][]int{}
	for i := range g.Nodes {
		if i == drop {
			continue
		}
		nodes = append(nodes, g.Nodes[i])
		row := make([]int, 0, len(g.Children[i]))
		for _, c := range g.Children[i] {
			switch {
			case c == drop:
				row = append(row, keep)
			case c < drop:
				row = append(row, c)
			default:
				row = append(row, c-1)
			}
		}
		children = append(children, row)
	}

	refs := make(map[string][]int, len(g.References))
	for name, ids := range g.References {
		out := []int{}
		for _, id := range ids {
			switch {
			case id == drop:
				continue
			case id < drop:
				out = append(out, id)
			default:
				out = append(out, id-1)
			}
		}
		refs[name] = out
	}

	return &ASG{
		Nodes:      nodes,
		Children:   children,
		References: refs,
	}
}

func shiftChildren(children [][]int, shift int) [][]int {
	out := make([][]int, len(children))
	for i, row := range children {
		out[i] = make([]int, len(row))
		for j, c := range row {
			out[i][j] = c + shift
		}
	}
	return out
}

func shiftReferences(refs map[string][]int, shift int) map[string][]int {
	out := make(map[string][]int, len(refs))
	for name, ids := range refs {
		for _, id := range ids {
			out[name] = append(out[name], id+shift)
		}
	}
	return out
}

// shiftReferencesAbove moves every index that is at least threshold up by n.
func shiftReferencesAbove(refs map[string][]int, threshold, n int) map[string][]int {
	out := make(map[string][]int, len(refs))
	for name, ids := range refs {
		out[name] = []int{}
		for _, id := range ids {
			if id < threshold {
				out[name] = append(out[name], id)
				continue
			}
			out[name] = append(out[name], id+n)
		}
	}
	return out
}

// mergeReferences appends the indices of src onto dst.
func mergeReferences(dst, src map[string][]int) {
	for _, name := range util.StrMapKeys(src) {
		dst[name] = append(dst[name], src[name]...)
	}
}

func copyReferences(refs map[string][]int) map[string][]int {
	out := make(map[string][]int, len(refs))
	for name, ids := range refs {
		out[name] = append([]int{}, ids...)
	}
	return out
}
