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

type tarjanLink struct {
	onStack bool
	lowlink int
	index   int
}

// StronglyConnectedComponents returns the strongly connected components of the
// graph using Tarjan's algorithm. Every vertex is in exactly one component.
// Components are returned in the order they are completed, and the vertices of
// a component in the order they were popped.
func (g *Graph) StronglyConnectedComponents() [][]string {
	index := 0
	stack := []string{}
	visited := make(map[string]*tarjanLink)
	result := [][]string{}

	var strongConnect func(v string)
	strongConnect = func(v string) {
		entry := &tarjanLink{
			onStack: true,
			lowlink: index,
			index:   index,
		}
		visited[v] = entry
		index++
		stack = append(stack, v)

		for _, w := range g.adjacency[v] {
			if link, exists := visited[w]; !exists {
				strongConnect(w)
				entry.lowlink = min(entry.lowlink, visited[w].lowlink)
			} else if link.onStack {
				entry.lowlink = min(entry.lowlink, link.index)
			}
		}

		if entry.lowlink != entry.index {
			return
		}
		component := []string{}
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			visited[w].onStack = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		result = append(result, component)
	}

	for _, v := range g.vertices {
		if _, exists := visited[v]; !exists {
			strongConnect(v)
		}
	}
	return result
}

// FindCycles returns the strongly connected components which contain a cycle:
// those with more than one vertex, and single vertices with a self loop.
func (g *Graph) FindCycles() [][]string {
	result := [][]string{}
	for _, c := range g.StronglyConnectedComponents() {
		if len(c) > 1 || (len(c) == 1 && g.HasEdge(c[0], c[0])) {
			result = append(result, c)
		}
	}
	return result
}
