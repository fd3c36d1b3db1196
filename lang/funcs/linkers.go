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

package funcs

import (
	"math"

	"github.com/purpleidea/bisheet/union"
)

// Const returns the linker of a function without arguments that always has the
// value c.
func Const(c union.Union) Linker {
	return Linker{
		func(...union.Union) union.Union { return c },
	}
}

// Unary returns the linker of y = f(x) from the image of f and the image of
// its inverse.
func Unary(fwd, inv func(union.Union) union.Union) Linker {
	return Linker{
		func(args ...union.Union) union.Union { return fwd(args[0]) },
		func(args ...union.Union) union.Union { return inv(args[0]) },
	}
}

// Binary returns the linker of y = f(a, b). The inverses receive the result
// first and then the remaining argument.
func Binary(fwd, invA, invB func(x, y union.Union) union.Union) Linker {
	return Linker{
		func(args ...union.Union) union.Union { return fwd(args[0], args[1]) },
		func(args ...union.Union) union.Union { return invA(args[0], args[1]) },
		func(args ...union.Union) union.Union { return invB(args[0], args[1]) },
	}
}

// PowReal is the linker of y = a^b for real exponents. The inverses are
// a = y^(1/b) and b = ln(y)/ln(a), with the cases where those formulas break
// down handled separately.
var PowReal = Binary(union.Pow, powRealBase, powRealExponent)

// powRealBase returns the a for which a^b is in y.
func powRealBase(y, b union.Union) union.Union {
	if y.IsEmpty() || b.IsEmpty() {
		return union.Empty()
	}
	if y.EqualsSingle(0) && b.EqualsSingle(0) {
		return union.Empty()
	}
	if b.Contains(0) && y.Contains(1) {
		return union.Full()
	}
	if b.EqualsSingle(0) {
		return union.Empty()
	}

	base := union.Pow(y, union.Div(union.Single(1), b))
	if y.Contains(0) {
		return union.Join(union.Single(0), base)
	}
	return base
}

// powRealExponent returns the b for which a^b is in y.
func powRealExponent(y, a union.Union) union.Union {
	if y.IsEmpty() || a.IsEmpty() {
		return union.Empty()
	}
	if a.Contains(1) && y.Contains(1) {
		return union.Full()
	}
	if a.EqualsSingle(1) {
		return union.Empty()
	}
	if y.EqualsSingle(1) {
		return union.Single(0)
	}
	if y.Contains(0) && a.Contains(0) {
		return union.Full()
	}
	if y.EqualsSingle(0) || a.EqualsSingle(0) {
		return union.Empty()
	}

	logs := union.Div(union.Log(y), union.Log(a))
	if y.Contains(1) {
		return union.Join(union.Single(0), logs)
	}
	return logs
}

// PowRealEval returns a^b and its partial derivatives.
func PowRealEval(a, b float64) (float64, float64, float64) {
	y := math.Pow(a, b)
	da := b * math.Pow(a, b-1)
	db := 0.0
	if a > 0 {
		db = y * math.Log(a)
	}
	return y, da, db
}
