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

package coremath

import (
	"math"

	"github.com/purpleidea/bisheet/lang/funcs"
	"github.com/purpleidea/bisheet/union"
)

func init() {
	funcs.Register(&funcs.Func{
		Name:   "sqrt",
		Linker: funcs.Unary(union.Sqrt, sqrtInv),
		Eval:   Sqrt,
	})
}

// sqrtInv returns the x with sqrt(x) in y. Square roots are never negative.
func sqrtInv(y union.Union) union.Union {
	pos := union.IntersectInterval(y, union.Interval{Lo: 0, Hi: math.Inf(1)})
	return union.PowInt(pos, 2)
}

// Sqrt returns sqrt(x), the square root of x, and its derivative.
func Sqrt(input []float64) (float64, []float64) {
	y := math.Sqrt(input[0])
	return y, []float64{0.5 / y}
}
