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
	"os/exec"
	"strconv"

	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/spf13/afero"
)

// Graphviz outputs the graph in graphviz format. Vertices are labelled with
// their names, and are optionally decorated by the highlight function, which
// returns extra dot attributes (eg: `color=red`) for a vertex, or "".
// https://en.wikipedia.org/wiki/DOT_%28graph_description_language%29
func (g *Graph) Graphviz(highlight func(string) string) (out string) {
	//digraph g {
	//	label="hello world";
	//	node [shape=box];
	//	"A1" [label="A1"];
	//	"B1" [label="B1",color=red];
	//	"A1" -> "B1";
	//}
	out += fmt.Sprintf("digraph %s {\n", strconv.Quote(g.Name))
	out += fmt.Sprintf("\tlabel=%s;\n", strconv.Quote(g.Name))
	out += "\tnode [shape=box];\n"
	str := ""
	for _, v1 := range g.vertices {
		attrs := fmt.Sprintf("label=%s", strconv.Quote(v1))
		if highlight != nil {
			if extra := highlight(v1); extra != "" {
				attrs += "," + extra
			}
		}
		out += fmt.Sprintf("\t%s [%s];\n", strconv.Quote(v1), attrs)
		for _, v2 := range g.adjacency[v1] {
			// use str for clearer output ordering
			str += fmt.Sprintf("\t%s -> %s;\n", strconv.Quote(v1), strconv.Quote(v2))
		}
	}
	out += str
	out += "}\n"
	return
}

// WriteGraphviz writes the graphviz representation to filename on fs.
func (g *Graph) WriteGraphviz(fs afero.Fs, filename string, highlight func(string) string) error {
	if filename == "" {
		return fmt.Errorf("no filename given")
	}
	if err := afero.WriteFile(fs, filename, []byte(g.Graphviz(highlight)), 0644); err != nil {
		return errwrap.Wrapf(err, "error writing to filename")
	}
	return nil
}

// ExecGraphviz runs the correct graphviz filter command on a dot file which was
// previously written to the real filesystem, producing filename.png next to it.
func ExecGraphviz(program, filename string) error {
	switch program {
	case "dot", "neato", "twopi", "circo", "fdp":
	default:
		return fmt.Errorf("invalid graphviz program selected")
	}

	path, err := exec.LookPath(program)
	if err != nil {
		return fmt.Errorf("the Graphviz program is missing")
	}

	out := fmt.Sprintf("%s.png", filename)
	cmd := exec.Command(path, "-Tpng", fmt.Sprintf("-o%s", out), filename)
	if _, err := cmd.Output(); err != nil {
		return errwrap.Wrapf(err, "error writing to image")
	}
	return nil
}
