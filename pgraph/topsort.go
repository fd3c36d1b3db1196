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

// TopologicalSort returns the sort of graph vertices in that order: if there is
// an edge from a to b, then a comes before b. It walks from the sinks towards
// the predecessors and emits each vertex once all of its predecessors have
// been emitted. It errors with ErrNotADag if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	result := []string{}
	visited := make(map[string]struct{})
	onStack := make(map[string]struct{})

	var visit func(v string) error
	visit = func(v string) error {
		if _, exists := onStack[v]; exists {
			return ErrNotADag
		}
		if _, exists := visited[v]; exists {
			return nil
		}
		onStack[v] = struct{}{}
		visited[v] = struct{}{}
		for _, w := range g.reverse[v] {
			if err := visit(w); err != nil {
				return err
			}
		}
		delete(onStack, v)
		result = append(result, v)
		return nil
	}

	for _, v := range g.Sinks() {
		if err := visit(v); err != nil {
			return nil, err
		}
	}

	// a cycle with no path to any sink is never visited
	if len(visited) != g.NumVertices() {
		return nil, ErrNotADag
	}

	return result, nil
}
