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

package cells

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/bisheet/util"
)

// Grid names the cells of a sheet. Columns are letters and rows are numbered
// from one, so the first cell is A1.
type Grid struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Validate checks that the grid has cells.
func (obj Grid) Validate() error {
	if obj.Columns < 1 || obj.Rows < 1 {
		return fmt.Errorf("invalid grid size: %dx%d", obj.Columns, obj.Rows)
	}
	return nil
}

// Size returns the number of cells.
func (obj Grid) Size() int {
	return obj.Columns * obj.Rows
}

// Column returns the letters of the zero based column.
func Column(col int) string {
	return strings.ToUpper(util.NumToAlpha(col))
}

// Ref returns the name of the cell at the zero based column and row.
func (obj Grid) Ref(col, row int) string {
	return Column(col) + strconv.Itoa(row+1)
}

// Index returns the zero based column and row of a cell name. It errors if the
// name is malformed or outside of the grid.
func (obj Grid) Index(ref string) (int, int, error) {
	i := strings.IndexFunc(ref, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return 0, 0, fmt.Errorf("invalid cell name: %s", ref)
	}
	if strings.ToUpper(ref[:i]) != ref[:i] {
		return 0, 0, fmt.Errorf("invalid cell name: %s", ref)
	}
	col, err := util.AlphaToNum(ref[:i])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell name: %s", ref)
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || ref[i] == '0' {
		return 0, 0, fmt.Errorf("invalid cell name: %s", ref)
	}
	row-- // one based
	if col >= obj.Columns || row >= obj.Rows {
		return 0, 0, fmt.Errorf("cell %s is outside of the grid", ref)
	}
	return col, row, nil
}

// Refs returns every cell name, row by row.
func (obj Grid) Refs() []string {
	refs := []string{}
	for row := 0; row < obj.Rows; row++ {
		for col := 0; col < obj.Columns; col++ {
			refs = append(refs, obj.Ref(col, row))
		}
	}
	return refs
}

// Right returns the cell to the right. The last column continues with the
// first column of the next row.
func (obj Grid) Right(ref string) (string, error) {
	col, row, err := obj.Index(ref)
	if err != nil {
		return "", err
	}
	if col == obj.Columns-1 {
		return obj.Ref(0, (row+1)%obj.Rows), nil
	}
	return obj.Ref(col+1, row), nil
}

// Left returns the cell to the left. The first column continues with the last
// column of the previous row.
func (obj Grid) Left(ref string) (string, error) {
	col, row, err := obj.Index(ref)
	if err != nil {
		return "", err
	}
	if col == 0 {
		return obj.Ref(obj.Columns-1, (row+obj.Rows-1)%obj.Rows), nil
	}
	return obj.Ref(col-1, row), nil
}

// Down returns the cell below. The last row continues with the first row of
// the next column.
func (obj Grid) Down(ref string) (string, error) {
	col, row, err := obj.Index(ref)
	if err != nil {
		return "", err
	}
	if row == obj.Rows-1 {
		return obj.Ref((col+1)%obj.Columns, 0), nil
	}
	return obj.Ref(col, row+1), nil
}

// Up returns the cell above. The first row continues with the last row of the
// previous column.
func (obj Grid) Up(ref string) (string, error) {
	col, row, err := obj.Index(ref)
	if err != nil {
		return "", err
	}
	if row == 0 {
		return obj.Ref((col+obj.Columns-1)%obj.Columns, obj.Rows-1), nil
	}
	return obj.Ref(col, row-1), nil
}
