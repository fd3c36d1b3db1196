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

// Package coremath contains the mathematical functions that formulas can call.
package coremath

import (
	"math"

	"github.com/purpleidea/bisheet/lang/funcs"
	"github.com/purpleidea/bisheet/union"
)

func init() {
	funcs.Register(&funcs.Func{
		Name:   "pi",
		Linker: funcs.Const(union.Single(math.Pi)),
		Eval:   Pi,
	})
}

// Pi returns the constant pi. It has no arguments and so no derivatives.
func Pi([]float64) (float64, []float64) {
	return math.Pi, []float64{}
}
