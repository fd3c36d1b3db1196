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
	"math"
	"strconv"
	"strings"
)

// NoSolutionText is shown in place of the value of a formula which has no
// solution for its goal.
const NoSolutionText = "No sol."

// RenderNumber formats x with at most six significant digits, without
// trailing zeros. Very large and very small numbers use an exponent.
func RenderNumber(x float64) string {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', 6, 64), 64)
	if err != nil {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if v == 0 {
		return "0" // and not -0
	}
	if a := math.Abs(v); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(v, 'g', -1, 64)
		s = strings.Replace(s, "e+0", "e+", 1)
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderBlur returns the text of a cell without focus.
func RenderBlur(cell Cell) string {
	switch x := cell.(type) {
	case *TextCell:
		return x.Text
	case *VariableCell:
		return RenderNumber(x.Value)
	case *ConstantCell:
		return RenderNumber(x.Value)
	case *SolutionCell:
		return RenderNumber(x.Value)
	case *NoSolutionCell:
		return NoSolutionText
	case *ErrorCell:
		return x.Err.Short()
	}
	return ""
}

// RenderFocus returns the text of a cell with focus. This is valid input which
// keeps the cell as it is when typed back in.
func RenderFocus(cell Cell) string {
	switch x := cell.(type) {
	case *TextCell:
		return `"` + x.Text + `"`
	case *VariableCell:
		return RenderNumber(x.Value)
	case *ConstantCell:
		return "#" + RenderNumber(x.Value)
	case *SolutionCell:
		return RenderNumber(x.Value)
	case *NoSolutionCell:
		return RenderNumber(x.Goal)
	case *ErrorCell:
		return x.RecoveryInput
	}
	return ""
}

// RenderFocusSecondary returns the text of a cell in the alternate edit mode,
// which shows the formula instead of the value.
func RenderFocusSecondary(cell Cell) string {
	switch x := cell.(type) {
	case *SolutionCell:
		return "=" + x.Expression
	case *NoSolutionCell:
		return "=" + x.Expression
	}
	return RenderFocus(cell)
}
