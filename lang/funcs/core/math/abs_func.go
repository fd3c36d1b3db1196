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
		Name:   "abs",
		Linker: funcs.Unary(union.Abs, absInv),
		Eval:   Abs,
	})
}

// absInv returns the x with |x| in y, which is both signs of its positive part.
func absInv(y union.Union) union.Union {
	pos := union.IntersectInterval(y, union.Interval{Lo: 0, Hi: math.Inf(1)})
	return union.Join(pos, union.Neg(pos))
}

// Abs returns |x| and its derivative, which is taken as zero at zero.
func Abs(input []float64) (float64, []float64) {
	x := input[0]
	d := 0.0
	if x > 0 {
		d = 1
	} else if x < 0 {
		d = -1
	}
	return math.Abs(x), []float64{d}
}
