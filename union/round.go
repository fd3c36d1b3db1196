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

package union

import (
	"math"
)

// The helpers in this file return float64 results rounded outward: a Down
// function never returns more than the real result, and an Up function never
// returns less. The float result is only nudged by one ulp when the operation
// was inexact, so exact arithmetic on small integers stays exact.

var (
	inf    = math.Inf(1)
	negInf = math.Inf(-1)
)

func down(x float64) float64 {
	if math.IsInf(x, -1) {
		return x
	}
	return math.Nextafter(x, negInf)
}

func up(x float64) float64 {
	if math.IsInf(x, 1) {
		return x
	}
	return math.Nextafter(x, inf)
}

// exactAdd reports whether s == a + b exactly, using the error free TwoSum.
func exactAdd(a, b, s float64) bool {
	if math.IsInf(s, 0) {
		return math.IsInf(a, 0) || math.IsInf(b, 0) // otherwise it overflowed
	}
	bb := s - a
	return (a-(s-bb))+(b-bb) == 0
}

func addDown(a, b float64) float64 {
	s := a + b
	if exactAdd(a, b, s) {
		return s
	}
	return down(s)
}

func addUp(a, b float64) float64 {
	s := a + b
	if exactAdd(a, b, s) {
		return s
	}
	return up(s)
}

// mul is multiplication with the interval convention that 0 * inf is 0.
func mul(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}

func exactMul(a, b, p float64) bool {
	if a == 0 || b == 0 {
		return true
	}
	if math.IsInf(p, 0) {
		return math.IsInf(a, 0) || math.IsInf(b, 0)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	if p == 0 {
		return false // underflow
	}
	return math.FMA(a, b, -p) == 0
}

func mulDown(a, b float64) float64 {
	p := mul(a, b)
	if exactMul(a, b, p) {
		return p
	}
	return down(p)
}

func mulUp(a, b float64) float64 {
	p := mul(a, b)
	if exactMul(a, b, p) {
		return p
	}
	return up(p)
}

// exactDiv reports whether q == a / b exactly. The divisor is never zero.
func exactDiv(a, b, q float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	if math.IsInf(q, 0) {
		return false // overflow
	}
	if q == 0 {
		return a == 0
	}
	return math.FMA(q, b, -a) == 0
}

func divDown(a, b float64) float64 {
	q := a / b
	if exactDiv(a, b, q) {
		return q
	}
	return down(q)
}

func divUp(a, b float64) float64 {
	q := a / b
	if exactDiv(a, b, q) {
		return q
	}
	return up(q)
}

func sqrtDown(x float64) float64 {
	r := math.Sqrt(x)
	if x == 0 || math.IsInf(x, 1) || math.FMA(r, r, -x) == 0 {
		return r
	}
	return down(r)
}

func sqrtUp(x float64) float64 {
	r := math.Sqrt(x)
	if x == 0 || math.IsInf(x, 1) || math.FMA(r, r, -x) == 0 {
		return r
	}
	return up(r)
}

// powAbs raises a non-negative x to a positive integer power by squaring,
// rounding every step in the same direction.
func powAbs(x float64, n int, isUp bool) float64 {
	m := mulDown
	if isUp {
		m = mulUp
	}
	result := 1.0
	base := x
	for n > 0 {
		if n&1 == 1 {
			result = m(result, base)
		}
		n >>= 1
		if n > 0 {
			base = m(base, base)
		}
	}
	return result
}

// powDown returns a lower bound for x^n, where n is positive.
func powDown(x float64, n int) float64 {
	if x >= 0 {
		return powAbs(x, n, false)
	}
	if n%2 == 0 {
		return powAbs(-x, n, false)
	}
	return -powAbs(-x, n, true)
}

// powUp returns an upper bound for x^n, where n is positive.
func powUp(x float64, n int) float64 {
	if x >= 0 {
		return powAbs(x, n, true)
	}
	if n%2 == 0 {
		return powAbs(-x, n, true)
	}
	return -powAbs(-x, n, false)
}

// rootDown returns a lower bound for the positive nth root of a non-negative x.
func rootDown(x float64, n int) float64 {
	if x == 0 || math.IsInf(x, 1) || n == 1 {
		return x
	}
	if n == 2 {
		return sqrtDown(x)
	}
	r := math.Pow(x, 1/float64(n))
	if n == 3 {
		r = math.Cbrt(x)
	}
	for i := 0; i < 8 && powAbs(r, n, true) > x; i++ {
		r = down(r)
	}
	return r
}

// rootUp returns an upper bound for the positive nth root of a non-negative x.
func rootUp(x float64, n int) float64 {
	if x == 0 || math.IsInf(x, 1) || n == 1 {
		return x
	}
	if n == 2 {
		return sqrtUp(x)
	}
	r := math.Pow(x, 1/float64(n))
	if n == 3 {
		r = math.Cbrt(x)
	}
	for i := 0; i < 8 && powAbs(r, n, false) < x; i++ {
		r = up(r)
	}
	return r
}
