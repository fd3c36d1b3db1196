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

// Package pgraph represents the dependency graph between spreadsheet cells.
package pgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/bisheet/util/errwrap"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

const (
	// ErrMissingVertex is returned when an operation names a vertex that is
	// not part of the graph.
	ErrMissingVertex = Error("missing vertex")

	// ErrInvalidRecord is returned by FromRecord when an edge points to a
	// vertex which is not a key of the record.
	ErrInvalidRecord = Error("invalid record")

	// ErrNotADag is returned by TopologicalSort when the graph has a cycle.
	ErrNotADag = Error("not a dag")
)

// Graph is the graph structure in this library.
// The graph abstract data type (ADT) is defined as follows:
// * the directed graph arrows point from left to right ( -> )
// * vertices are identified by their name, which is unique in the graph
// * the successors of a vertex are kept in insertion order, which makes every
// traversal below deterministic
// * the reverse adjacency is kept in sync so that predecessors are cheap too
type Graph struct {
	Name string

	vertices  []string            // insertion order
	adjacency map[string][]string // vertex -> successors
	reverse   map[string][]string // vertex -> predecessors
}

// NewGraph builds a new graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:      name,
		adjacency: make(map[string][]string),
		reverse:   make(map[string][]string),
	}
}

// FromRecord builds a graph from a map of vertex to successors. The vertices
// are added in sorted key order. Every successor must also be a key of the
// record, otherwise this errors.
func FromRecord(name string, record map[string][]string) (*Graph, error) {
	keys := []string{}
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic order

	g := NewGraph(name)
	g.AddVertex(keys...)
	for _, k := range keys {
		for _, v := range record[k] {
			if _, exists := record[v]; !exists {
				return nil, errwrap.Wrapf(ErrInvalidRecord, "edge %s -> %s", k, v)
			}
			g.AddEdge(k, v)
		}
	}
	return g, nil
}

// Copy makes a copy of the graph struct.
func (g *Graph) Copy() *Graph {
	newGraph := NewGraph(g.Name)
	newGraph.vertices = append([]string{}, g.vertices...)
	for k, v := range g.adjacency {
		newGraph.adjacency[k] = append([]string{}, v...)
	}
	for k, v := range g.reverse {
		newGraph.reverse[k] = append([]string{}, v...)
	}
	return newGraph
}

// AddVertex uses variadic input to add all listed vertices to the graph.
func (g *Graph) AddVertex(xv ...string) {
	for _, v := range xv {
		if _, exists := g.adjacency[v]; exists {
			continue
		}
		g.vertices = append(g.vertices, v)
		g.adjacency[v] = []string{}
		g.reverse[v] = []string{}
	}
}

// AddEdge adds a directed edge to the graph from v1 to v2. Adding the same edge
// twice is a no-op.
func (g *Graph) AddEdge(v1, v2 string) {
	g.AddVertex(v1, v2) // supports adding N vertices now
	if g.HasEdge(v1, v2) {
		return
	}
	g.adjacency[v1] = append(g.adjacency[v1], v2)
	g.reverse[v2] = append(g.reverse[v2], v1)
}

// HasVertex returns if the input vertex exists in the graph.
func (g *Graph) HasVertex(v string) bool {
	_, exists := g.adjacency[v]
	return exists
}

// HasVertices returns true if every vertex in the list exists in the graph.
func (g *Graph) HasVertices(vs []string) bool {
	for _, v := range vs {
		if !g.HasVertex(v) {
			return false
		}
	}
	return true
}

// HasEdge returns true if there is an edge from v1 to v2.
func (g *Graph) HasEdge(v1, v2 string) bool {
	for _, v := range g.adjacency[v1] {
		if v == v2 {
			return true
		}
	}
	return false
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	count := 0
	for _, v := range g.adjacency {
		count += len(v)
	}
	return count
}

// Vertices returns the vertices in the order they were added.
func (g *Graph) Vertices() []string {
	return append([]string{}, g.vertices...)
}

// OutgoingGraphVertices returns the successors of vertex v (v -> ???) in the
// order the edges were added.
func (g *Graph) OutgoingGraphVertices(v string) ([]string, error) {
	s, exists := g.adjacency[v]
	if !exists {
		return nil, errwrap.Wrapf(ErrMissingVertex, "vertex %s", v)
	}
	return append([]string{}, s...), nil
}

// IncomingGraphVertices returns the predecessors of vertex v (??? -> v).
func (g *Graph) IncomingGraphVertices(v string) ([]string, error) {
	s, exists := g.reverse[v]
	if !exists {
		return nil, errwrap.Wrapf(ErrMissingVertex, "vertex %s", v)
	}
	return append([]string{}, s...), nil
}

// Sinks returns every vertex without any outgoing edge.
func (g *Graph) Sinks() []string {
	result := []string{}
	for _, v := range g.vertices {
		if len(g.adjacency[v]) == 0 {
			result = append(result, v)
		}
	}
	return result
}

// Sources returns every vertex without any incoming edge.
func (g *Graph) Sources() []string {
	result := []string{}
	for _, v := range g.vertices {
		if len(g.reverse[v]) == 0 {
			result = append(result, v)
		}
	}
	return result
}

// FilterGraph builds a new graph containing only vertices from the list, and
// the edges between them.
func (g *Graph) FilterGraph(name string, vertices []string) *Graph {
	keep := make(map[string]struct{}, len(vertices))
	for _, v := range vertices {
		keep[v] = struct{}{}
	}
	return g.filter(name, func(v string) bool {
		_, exists := keep[v]
		return exists
	})
}

// WithoutVertices builds a new graph with all of the listed vertices (and their
// edges) removed.
func (g *Graph) WithoutVertices(vertices []string) *Graph {
	drop := make(map[string]struct{}, len(vertices))
	for _, v := range vertices {
		drop[v] = struct{}{}
	}
	return g.filter(g.Name, func(v string) bool {
		_, exists := drop[v]
		return !exists
	})
}

func (g *Graph) filter(name string, fn func(string) bool) *Graph {
	newGraph := NewGraph(name)
	for _, v := range g.vertices {
		if fn(v) {
			newGraph.AddVertex(v)
		}
	}
	for _, v1 := range g.vertices {
		if !fn(v1) {
			continue
		}
		for _, v2 := range g.adjacency[v1] {
			if fn(v2) {
				newGraph.AddEdge(v1, v2)
			}
		}
	}
	return newGraph
}

// Reversed returns a new graph with every edge pointing the other way.
func (g *Graph) Reversed() *Graph {
	newGraph := g.Copy()
	newGraph.adjacency, newGraph.reverse = newGraph.reverse, newGraph.adjacency
	return newGraph
}

// String makes the graph pretty print.
func (g *Graph) String() string {
	return fmt.Sprintf("Vertices(%d), Edges(%d)", g.NumVertices(), g.NumEdges())
}

// Dump returns one line per vertex listing its successors.
func (g *Graph) Dump() string {
	var b strings.Builder
	for _, v := range g.vertices {
		fmt.Fprintf(&b, "%s -> %s\n", v, strings.Join(g.adjacency[v], ", "))
	}
	return b.String()
}

// StrContains is an "in array" function to test for a vertex in a slice of
// vertices.
func StrContains(needle string, haystack []string) bool {
	for _, v := range haystack {
		if needle == v {
			return true
		}
	}
	return false
}

// Reverse reverses a list of vertices.
func Reverse(vs []string) []string {
	out := make([]string, 0, len(vs)) // empty list
	l := len(vs)
	for i := range vs {
		out = append(out, vs[l-i-1])
	}
	return out
}
