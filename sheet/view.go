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

package sheet

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/purpleidea/bisheet/cells"
)

// View is how a cell is shown to a user.
type View struct {
	Ref  string     `json:"ref" yaml:"ref"`
	Kind cells.Kind `json:"kind" yaml:"kind"`

	// Blur is shown when the cell does not have focus.
	Blur string `json:"blur" yaml:"blur"`

	// Focus is the text to edit when the cell has focus.
	Focus string `json:"focus" yaml:"focus"`

	// Secondary is the text to edit in the formula edit mode.
	Secondary string `json:"secondary" yaml:"secondary"`
}

// NewView returns the view of a cell.
func NewView(ref string, cell cells.Cell) *View {
	return &View{
		Ref:       ref,
		Kind:      cell.Kind(),
		Blur:      cells.RenderBlur(cell),
		Focus:     cells.RenderFocus(cell),
		Secondary: cells.RenderFocusSecondary(cell),
	}
}

// View returns the view of a single cell.
func (obj *Sheet) View(ref string) (*View, error) {
	cell, err := obj.Cell(ref)
	if err != nil {
		return nil, err
	}
	return NewView(ref, cell), nil
}

// Views returns the view of every cell, row by row.
func (obj *Sheet) Views() []*View {
	all := obj.Cells()
	views := []*View{}
	for _, ref := range obj.Grid.Refs() {
		views = append(views, NewView(ref, all[ref]))
	}
	return views
}

// Render returns the sheet as a table of blurred cells.
func (obj *Sheet) Render() string {
	all := obj.Cells()
	buf := &bytes.Buffer{}
	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)

	fmt.Fprint(w, "\t")
	for col := 0; col < obj.Grid.Columns; col++ {
		fmt.Fprintf(w, "%s\t", cells.Column(col))
	}
	fmt.Fprintln(w)
	for row := 0; row < obj.Grid.Rows; row++ {
		fmt.Fprintf(w, "%d\t", row+1)
		for col := 0; col < obj.Grid.Columns; col++ {
			fmt.Fprintf(w, "%s\t", cells.RenderBlur(all[obj.Grid.Ref(col, row)]))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return buf.String()
}
