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

package pgraph

import (
	"github.com/purpleidea/bisheet/util/errwrap"
)

// Preorder runs a depth first search from each of the start vertices in turn,
// following successors, and returns every vertex the first time it is seen.
// Vertices shared between the searches are only returned once.
func (g *Graph) Preorder(start []string) ([]string, error) {
	result := []string{}
	visited := make(map[string]struct{})

	for _, s := range start {
		if !g.HasVertex(s) {
			return nil, errwrap.Wrapf(ErrMissingVertex, "vertex %s", s)
		}

		stack := []string{s}
		for len(stack) > 0 {
			var v string
			v, stack = stack[len(stack)-1], stack[:len(stack)-1] // pop

			if _, exists := visited[v]; exists {
				continue
			}
			visited[v] = struct{}{}
			result = append(result, v)

			// push in reverse so the first successor is visited first
			succ := g.adjacency[v]
			for i := len(succ) - 1; i >= 0; i-- {
				stack = append(stack, succ[i])
			}
		}
	}
	return result, nil
}

// ReachableDownstream returns the start vertices and everything reachable from
// them by following successors, in preorder.
func (g *Graph) ReachableDownstream(start []string) ([]string, error) {
	return g.Preorder(start)
}

// ReachableUpstream returns the start vertices and everything reachable from
// them by following predecessors, in preorder.
func (g *Graph) ReachableUpstream(start []string) ([]string, error) {
	return g.Reversed().Preorder(start)
}
