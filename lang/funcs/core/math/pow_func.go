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
	"github.com/purpleidea/bisheet/lang/funcs"
)

func init() {
	funcs.Register(&funcs.Func{
		Name:   "pow",
		Linker: funcs.PowReal,
		Eval:   Pow,
	})
}

// Pow returns x ^ y, the base-x exponential of y, and both partial
// derivatives.
func Pow(input []float64) (float64, []float64) {
	z, dx, dy := funcs.PowRealEval(input[0], input[1])
	return z, []float64{dx, dy}
}
