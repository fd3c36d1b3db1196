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

// Package csp implements the constraint propagation loop. Every node of an
// expression graph holds a union domain, and every contractor of the graph is
// applied in node order, intersecting its result into its target, until a
// halting policy says that the domains stopped shrinking.
package csp

import (
	"fmt"

	"github.com/purpleidea/bisheet/lang/asg"
	"github.com/purpleidea/bisheet/solver/contractor"
	"github.com/purpleidea/bisheet/union"
)

// Halt decides after each pass if the loop should stop. It receives the number
// of passes so far and the node domains from before and after the last pass.
type Halt func(iter int, oldDomains, newDomains []union.Union) bool

// Callback is called after each pass with the same arguments as Halt.
type Callback func(iter int, oldDomains, newDomains []union.Union)

// NewHalt returns the usual halting policy. It stops after maxIter passes, or
// when any node fragments into more than maxIntervals intervals, or when no
// node shrank by minShrink or more in total width. A node which just became
// empty always counts as shrinking, so that emptiness is never missed.
func NewHalt(maxIter, maxIntervals int, minShrink float64) Halt {
	return func(iter int, oldDomains, newDomains []union.Union) bool {
		if iter >= maxIter {
			return true
		}
		for _, c := range IntervalCounts(newDomains) {
			if c > maxIntervals {
				return true
			}
		}
		for i, w := range WidthPairs(oldDomains, newDomains) {
			if newDomains[i].IsEmpty() && !oldDomains[i].IsEmpty() {
				return false
			}
			// unbounded widths give NaN here, which keeps us going
			if !(w[0]-w[1] < minShrink) {
				return false
			}
		}
		return true
	}
}

// Loop runs the contraction of one graph towards a goal.
type Loop struct {
	Graph *asg.ASG

	// CFs are the contractors of Graph, as built by contractor.InitCFs.
	CFs [][]contractor.CF

	// GlobalDomain is the starting domain of every node which is neither a
	// reference nor a number.
	GlobalDomain union.Interval

	Halt Halt

	// Callback is optional.
	Callback Callback

	Debug bool
	Logf  func(format string, v ...interface{})
}

// Init returns the starting domain of every node. References take their
// domain from refs, numbers are pinned to their value, and the root is pinned
// to the goal.
func (obj *Loop) Init(goal float64, refs union.UnionDomain) ([]union.Union, error) {
	domains := make([]union.Union, len(obj.Graph.Nodes))
	for i, n := range obj.Graph.Nodes {
		switch x := n.(type) {
		case asg.NodeRef:
			d, exists := refs[x.Name]
			if !exists {
				return nil, fmt.Errorf("no domain for reference %s", x.Name)
			}
			domains[i] = d
		case asg.NodeNum:
			domains[i] = union.Single(x.V)
		default:
			domains[i] = union.FromInterval(obj.GlobalDomain)
		}
	}
	domains[obj.Graph.Root()] = union.Single(goal)
	return domains, nil
}

// Run contracts the domains of refs so that the graph may equal goal, and
// returns the contracted domain of every reference. The result may contain
// empty unions, which means that there is no solution within refs. The loop
// doesn't stop early when a node becomes empty; the caller has to check.
func (obj *Loop) Run(goal float64, refs union.UnionDomain) (union.UnionDomain, error) {
	if len(obj.CFs) != len(obj.Graph.Nodes) {
		return nil, fmt.Errorf("have %d contractor lists for %d nodes", len(obj.CFs), len(obj.Graph.Nodes))
	}
	if obj.Halt == nil {
		return nil, fmt.Errorf("no halting policy")
	}
	domains, err := obj.Init(goal, refs)
	if err != nil {
		return nil, err
	}

	for iter := 1; ; iter++ {
		newDomains := InnerLoop(obj.CFs, domains)
		if obj.Callback != nil {
			obj.Callback(iter, domains, newDomains)
		}
		if obj.Debug {
			obj.Logf("pass %d: counts: %v", iter, IntervalCounts(newDomains))
		}
		halt := obj.Halt(iter, domains, newDomains)
		domains = newDomains
		if halt {
			break
		}
	}

	out := make(union.UnionDomain, len(obj.Graph.References))
	for name, ids := range obj.Graph.References {
		out[name] = domains[ids[0]]
	}
	return out, nil
}

// InnerLoop applies every contractor once, in node order, and returns the new
// domains. Each contraction sees the results of the ones before it in the same
// pass. The input is not modified.
func InnerLoop(cfs [][]contractor.CF, domains []union.Union) []union.Union {
	newDomains := append([]union.Union{}, domains...)
	for _, list := range cfs {
		for _, cf := range list {
			b := cf.Apply(newDomains)
			newDomains[cf.Target] = union.Intersect(newDomains[cf.Target], b)
		}
	}
	return newDomains
}

// IntervalCounts returns the number of intervals of each domain.
func IntervalCounts(domains []union.Union) []int {
	out := make([]int, len(domains))
	for i, d := range domains {
		out[i] = d.Count()
	}
	return out
}

// WidthPairs returns the total width of each domain before and after.
func WidthPairs(oldDomains, newDomains []union.Union) [][2]float64 {
	out := make([][2]float64, len(oldDomains))
	for i := range oldDomains {
		out[i] = [2]float64{oldDomains[i].Width(), newDomains[i].Width()}
	}
	return out
}
