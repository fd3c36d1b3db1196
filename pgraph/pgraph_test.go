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
	"fmt"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// fromRecord is a helper function to make testing easier.
func fromRecord(t *testing.T, record map[string][]string) *Graph {
	g, err := FromRecord("test", record)
	if err != nil {
		t.Fatalf("could not build graph: %+v", err)
	}
	return g
}

// sortComponents sorts each component and then the list of components.
func sortComponents(cmpts [][]string) [][]string {
	for _, c := range cmpts {
		sort.Strings(c)
	}
	sort.Slice(cmpts, func(i, j int) bool { return cmpts[i][0] < cmpts[j][0] })
	return cmpts
}

func TestCount1(t *testing.T) {
	G := NewGraph("g1")

	if i := G.NumVertices(); i != 0 {
		t.Errorf("should have 0 vertices instead of: %d", i)
	}

	if i := G.NumEdges(); i != 0 {
		t.Errorf("should have 0 edges instead of: %d", i)
	}

	G.AddEdge("v1", "v2")
	G.AddEdge("v1", "v2") // duplicate edges are ignored

	if i := G.NumVertices(); i != 2 {
		t.Errorf("should have 2 vertices instead of: %d", i)
	}

	if i := G.NumEdges(); i != 1 {
		t.Errorf("should have 1 edges instead of: %d", i)
	}

	if s := G.String(); s != "Vertices(2), Edges(1)" {
		t.Errorf("unexpected string: %s", s)
	}
}

func TestFromRecord1(t *testing.T) {
	if _, err := FromRecord("bad", map[string][]string{"a": {"b"}}); err == nil {
		t.Errorf("expected an error for an unknown successor")
	}

	g := fromRecord(t, map[string][]string{"b": {"a"}, "a": {}})
	if v := g.Vertices(); !reflect.DeepEqual(v, []string{"a", "b"}) {
		t.Errorf("unexpected vertex order: %v", v)
	}
	if !g.HasEdge("b", "a") || g.HasEdge("a", "b") {
		t.Errorf("unexpected edges:\n%s", g.Dump())
	}
}

func TestNeighbours1(t *testing.T) {
	g := fromRecord(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	})

	out, err := g.OutgoingGraphVertices("a")
	if err != nil || !reflect.DeepEqual(out, []string{"b", "c"}) {
		t.Errorf("unexpected successors: %v (%v)", out, err)
	}
	in, err := g.IncomingGraphVertices("d")
	if err != nil || !reflect.DeepEqual(in, []string{"b", "c"}) {
		t.Errorf("unexpected predecessors: %v (%v)", in, err)
	}
	if _, err := g.OutgoingGraphVertices("x"); err == nil {
		t.Errorf("expected an error for a missing vertex")
	}

	if s := g.Sinks(); !reflect.DeepEqual(s, []string{"d"}) {
		t.Errorf("unexpected sinks: %v", s)
	}
	if s := g.Sources(); !reflect.DeepEqual(s, []string{"a"}) {
		t.Errorf("unexpected sources: %v", s)
	}

	r := g.Reversed()
	if s := r.Sinks(); !reflect.DeepEqual(s, []string{"a"}) {
		t.Errorf("unexpected reversed sinks: %v", s)
	}
	if !r.HasEdge("d", "b") || r.HasEdge("b", "d") {
		t.Errorf("unexpected reversed edges:\n%s", r.Dump())
	}
	if !g.HasEdge("b", "d") {
		t.Errorf("reversing modified the original graph")
	}
}

func TestFilterGraph1(t *testing.T) {
	g := fromRecord(t, map[string][]string{
		"v1": {"v2"},
		"v2": {"v3"},
		"v3": {"v1"},
		"v4": {"v5"},
		"v5": {"v6"},
		"v6": {},
	})

	out := g.FilterGraph("new", []string{"v1", "v2", "v3"})
	if i := out.NumVertices(); i != 3 {
		t.Errorf("should have 3 vertices instead of: %d", i)
	}
	if i := out.NumEdges(); i != 3 {
		t.Errorf("should have 3 edges instead of: %d", i)
	}

	out = g.WithoutVertices([]string{"v2", "v5"})
	if i := out.NumVertices(); i != 4 {
		t.Errorf("should have 4 vertices instead of: %d", i)
	}
	if i := out.NumEdges(); i != 1 { // v3 -> v1
		t.Errorf("should have 1 edges instead of: %d", i)
	}
	if !g.HasVertices([]string{"v2", "v5"}) {
		t.Errorf("filtering modified the original graph")
	}
}

func TestTopologicalSort1(t *testing.T) {
	g := fromRecord(t, map[string][]string{})
	if out, err := g.TopologicalSort(); err != nil || len(out) != 0 {
		t.Errorf("expected an empty sort: %v (%v)", out, err)
	}

	g = fromRecord(t, map[string][]string{"a": {}, "b": {"c"}, "c": {"a"}})
	out, err := g.TopologicalSort()
	if err != nil {
		t.Errorf("sort failed: %+v", err)
	}
	if !reflect.DeepEqual(out, []string{"b", "c", "a"}) {
		t.Errorf("unexpected sort: %v", out)
	}
}

func TestTopologicalSort2(t *testing.T) {
	g := fromRecord(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	})
	out, err := g.TopologicalSort()
	if err != nil {
		t.Errorf("sort failed: %+v", err)
		return
	}
	index := func(s string) int {
		for i, x := range out {
			if x == s {
				return i
			}
		}
		return -1
	}
	if index("a") != 0 || index("d") != 3 {
		t.Errorf("unexpected sort: %v", out)
	}
	if index("b") > index("d") || index("c") > index("d") {
		t.Errorf("unexpected sort: %v", out)
	}
}

func TestTopologicalSort3(t *testing.T) {
	records := []map[string][]string{
		{"a": {"b"}, "b": {"c"}, "c": {"a"}},
		{"a": {"b"}, "b": {"c", "d"}, "c": {"a"}, "d": {}},
		{"a": {"b"}, "b": {"c"}, "c": {"a"}, "d": {}},
	}
	for index, record := range records {
		g := fromRecord(t, record)
		if _, err := g.TopologicalSort(); err != ErrNotADag {
			t.Errorf("test #%d: expected ErrNotADag, got: %v", index, err)
		}
	}
}

func TestTraversal1(t *testing.T) {
	type test struct { // an individual test
		name   string
		record map[string][]string
		start  []string
		pre    []string
	}
	values := []test{}

	{
		values = append(values, test{
			name:   "empty start",
			record: map[string][]string{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}, "d": {"e"}, "e": {}},
			start:  []string{},
			pre:    []string{},
		})
	}
	{
		values = append(values, test{
			name:   "singleton",
			record: map[string][]string{"a": {}},
			start:  []string{"a"},
			pre:    []string{"a"},
		})
	}
	{
		values = append(values, test{
			name:   "visit once",
			record: map[string][]string{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}, "d": {"e"}, "e": {}},
			start:  []string{"a"},
			pre:    []string{"a", "b", "d", "e", "c"},
		})
	}
	{
		values = append(values, test{
			name: "tree",
			record: map[string][]string{
				"f": {"b", "g"},
				"b": {"a", "d"},
				"a": {},
				"d": {"c", "e"},
				"c": {},
				"e": {},
				"h": {},
				"g": {"i"},
				"i": {"h"},
			},
			start: []string{"f"},
			pre:   []string{"f", "b", "a", "d", "c", "e", "g", "i", "h"},
		})
	}
	{
		values = append(values, test{
			name:   "many roots",
			record: map[string][]string{"a": {"b"}, "b": {}, "c": {"d"}, "d": {}, "e": {}, "f": {}},
			start:  []string{"a", "b", "c", "e"},
			pre:    []string{"a", "b", "c", "d", "e"},
		})
	}
	{
		values = append(values, test{
			name:   "connected roots",
			record: map[string][]string{"a": {"b", "c"}, "b": {}, "c": {}, "d": {"c"}},
			start:  []string{"a", "d"},
			pre:    []string{"a", "b", "c", "d"},
		})
	}
	{
		values = append(values, test{
			name:   "cycle",
			record: map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}},
			start:  []string{"a"},
			pre:    []string{"a", "b", "c"},
		})
	}
	{
		values = append(values, test{
			name: "several cycles",
			record: map[string][]string{
				"a": {"b"},
				"b": {"a"},
				"c": {"d"},
				"d": {"e"},
				"e": {"c"},
				"f": {"g"},
				"g": {"g"},
				"h": {},
			},
			start: []string{"a", "c"},
			pre:   []string{"a", "b", "c", "d", "e"},
		})
	}

	for index, tc := range values { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			g := fromRecord(t, tc.record)

			pre, err := g.Preorder(tc.start)
			if err != nil {
				t.Errorf("test #%d: preorder failed with: %+v", index, err)
				return
			}
			if !reflect.DeepEqual(pre, tc.pre) {
				t.Errorf("test #%d: preorder: got %v, expected %v", index, pre, tc.pre)
			}
		})
	}
}

func TestTraversal2(t *testing.T) {
	g := fromRecord(t, map[string][]string{"a": {}})
	if _, err := g.Preorder([]string{"b"}); err == nil {
		t.Errorf("expected preorder to fail on a missing vertex")
	}
}

func TestReachable1(t *testing.T) {
	// A1 feeds B1 and C1, B1 feeds C1
	g := fromRecord(t, map[string][]string{
		"A1": {"B1", "C1"},
		"B1": {"C1"},
		"C1": {},
		"D1": {},
	})

	down, err := g.ReachableDownstream([]string{"B1"})
	if err != nil || !reflect.DeepEqual(down, []string{"B1", "C1"}) {
		t.Errorf("unexpected downstream: %v (%v)", down, err)
	}
	up, err := g.ReachableUpstream([]string{"C1"})
	if err != nil || !reflect.DeepEqual(up, []string{"C1", "A1", "B1"}) {
		t.Errorf("unexpected upstream: %v (%v)", up, err)
	}
}

func TestFindCycles1(t *testing.T) {
	type test struct { // an individual test
		name   string
		record map[string][]string
		exp    [][]string
	}
	values := []test{}

	{
		values = append(values, test{
			name:   "empty",
			record: map[string][]string{},
			exp:    [][]string{},
		})
	}
	{
		values = append(values, test{
			name:   "no cycles",
			record: map[string][]string{"a": {"b"}, "b": {"c"}, "c": {}},
			exp:    [][]string{},
		})
	}
	{
		values = append(values, test{
			name:   "self loop",
			record: map[string][]string{"a": {"a"}},
			exp:    [][]string{{"a"}},
		})
	}
	{
		values = append(values, test{
			name:   "pair",
			record: map[string][]string{"a": {"b"}, "b": {"a"}},
			exp:    [][]string{{"a", "b"}},
		})
	}
	{
		values = append(values, test{
			name: "several",
			record: map[string][]string{
				"a": {"b"},
				"b": {"a"},
				"c": {"d"},
				"d": {"e"},
				"e": {"c"},
				"f": {"g"},
				"g": {"g"},
				"h": {},
			},
			exp: [][]string{{"a", "b"}, {"c", "d", "e"}, {"g"}},
		})
	}
	{
		values = append(values, test{
			name: "figure eight",
			record: map[string][]string{
				"a": {"b", "d"},
				"b": {"c"},
				"c": {"a"},
				"d": {"e"},
				"e": {"a"},
			},
			exp: [][]string{{"a", "b", "c", "d", "e"}},
		})
	}

	for index, tc := range values { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			g := fromRecord(t, tc.record)
			out := sortComponents(g.FindCycles())
			if !reflect.DeepEqual(out, tc.exp) {
				t.Errorf("test #%d: got %v, expected %v", index, out, tc.exp)
			}
		})
	}
}

func TestStronglyConnectedComponents1(t *testing.T) {
	g := fromRecord(t, map[string][]string{"a": {"b"}, "b": {"a"}, "c": {"a"}})
	out := sortComponents(g.StronglyConnectedComponents())
	if exp := [][]string{{"a", "b"}, {"c"}}; !reflect.DeepEqual(out, exp) {
		t.Errorf("got %v, expected %v", out, exp)
	}
}

func TestGraphviz1(t *testing.T) {
	g, err := FromRecord("deps", map[string][]string{"A1": {"B1"}, "B1": {}})
	if err != nil {
		t.Fatalf("could not build graph: %+v", err)
	}
	highlight := func(v string) string {
		if v == "B1" {
			return "color=red"
		}
		return ""
	}
	exp := strings.Join([]string{
		`digraph "deps" {`,
		`	label="deps";`,
		`	node [shape=box];`,
		`	"A1" [label="A1"];`,
		`	"B1" [label="B1",color=red];`,
		`	"A1" -> "B1";`,
		`}`,
		``,
	}, "\n")
	if out := g.Graphviz(highlight); out != exp {
		t.Errorf("unexpected graphviz output:\n%s", out)
	}

	fs := afero.NewMemMapFs()
	if err := g.WriteGraphviz(fs, "/deps.dot", highlight); err != nil {
		t.Errorf("write failed: %+v", err)
		return
	}
	data, err := afero.ReadFile(fs, "/deps.dot")
	if err != nil || string(data) != exp {
		t.Errorf("unexpected file contents: %s (%v)", data, err)
	}
}
