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

// maxExactPower is the largest integer exponent that Pow hands over to PowInt.
const maxExactPower = 64

// Neg returns {-x : x in a}.
func Neg(a Union) Union {
	return Map(a, func(x Interval) Union {
		return FromInterval(Interval{Lo: -x.Hi, Hi: -x.Lo})
	})
}

// Add returns {x + y : x in a, y in b}.
func Add(a, b Union) Union {
	return Map2(a, b, func(x, y Interval) Union {
		return FromInterval(Interval{
			Lo: addDown(x.Lo, y.Lo),
			Hi: addUp(x.Hi, y.Hi),
		})
	})
}

// Sub returns {x - y : x in a, y in b}.
func Sub(a, b Union) Union {
	return Add(a, Neg(b))
}

// Mul returns {x * y : x in a, y in b}. Zero times infinity counts as zero.
func Mul(a, b Union) Union {
	return Map2(a, b, func(x, y Interval) Union {
		return FromInterval(mulInterval(x, y))
	})
}

func mulInterval(x, y Interval) Interval {
	lo := math.Min(
		math.Min(mulDown(x.Lo, y.Lo), mulDown(x.Lo, y.Hi)),
		math.Min(mulDown(x.Hi, y.Lo), mulDown(x.Hi, y.Hi)),
	)
	hi := math.Max(
		math.Max(mulUp(x.Lo, y.Lo), mulUp(x.Lo, y.Hi)),
		math.Max(mulUp(x.Hi, y.Lo), mulUp(x.Hi, y.Hi)),
	)
	return Interval{Lo: lo, Hi: hi}
}

// Div returns {x / y : x in a, y in b, y != 0}. Dividing by an interval that
// straddles zero gives two pieces, and dividing an interval holding zero by
// another one holding zero gives everything.
func Div(a, b Union) Union {
	return Map2(a, b, divInterval)
}

func divInterval(x, y Interval) Union {
	if y.Lo == 0 && y.Hi == 0 {
		return Empty()
	}
	if x.Lo == 0 && x.Hi == 0 {
		return Single(0)
	}
	if x.Contains(0) && y.Contains(0) {
		return Full()
	}

	if !y.Contains(0) {
		if !x.IsFinite() || !y.IsFinite() {
			// avoid inf/inf by multiplying with the reciprocal
			r := Interval{Lo: divDown(1, y.Hi), Hi: divUp(1, y.Lo)}
			return FromInterval(mulInterval(x, r))
		}
		lo := math.Min(
			math.Min(divDown(x.Lo, y.Lo), divDown(x.Lo, y.Hi)),
			math.Min(divDown(x.Hi, y.Lo), divDown(x.Hi, y.Hi)),
		)
		hi := math.Max(
			math.Max(divUp(x.Lo, y.Lo), divUp(x.Lo, y.Hi)),
			math.Max(divUp(x.Hi, y.Lo), divUp(x.Hi, y.Hi)),
		)
		return FromInterval(Interval{Lo: lo, Hi: hi})
	}

	// y holds zero, x does not
	positive := x.Lo > 0
	switch {
	case y.Lo == 0: // y = [0, d]
		if positive {
			return Range(divDown(x.Lo, y.Hi), inf)
		}
		return Range(negInf, divUp(x.Hi, y.Hi))

	case y.Hi == 0: // y = [c, 0]
		if positive {
			return Range(negInf, divUp(x.Lo, y.Lo))
		}
		return Range(divDown(x.Hi, y.Lo), inf)
	}

	// c < 0 < d
	if positive {
		return New(
			Interval{Lo: negInf, Hi: divUp(x.Lo, y.Lo)},
			Interval{Lo: divDown(x.Lo, y.Hi), Hi: inf},
		)
	}
	return New(
		Interval{Lo: negInf, Hi: divUp(x.Hi, y.Hi)},
		Interval{Lo: divDown(x.Hi, y.Lo), Hi: inf},
	)
}

// PowInt returns {x^n : x in a} for an integer n. A zero exponent gives {1}
// for any non-empty input, and a negative one is the reciprocal of the
// positive power.
func PowInt(a Union, n int) Union {
	if a.IsEmpty() {
		return Empty()
	}
	if n == 0 {
		return Single(1)
	}
	if n < 0 {
		return Div(Single(1), PowInt(a, -n))
	}
	return Map(a, func(x Interval) Union {
		if n%2 == 1 || x.Lo >= 0 {
			return Range(powDown(x.Lo, n), powUp(x.Hi, n))
		}
		if x.Hi <= 0 {
			return Range(powDown(x.Hi, n), powUp(x.Lo, n))
		}
		return Range(0, math.Max(powUp(x.Lo, n), powUp(x.Hi, n)))
	})
}

// PowIntInv returns {x : x^n in a}, which is every real solution of the power
// and not just the principal root.
func PowIntInv(a Union, n int) Union {
	if a.IsEmpty() {
		return Empty()
	}
	if n == 0 {
		if a.Contains(1) {
			return Full()
		}
		return Empty()
	}
	if n < 0 {
		return PowIntInv(Div(Single(1), a), -n)
	}
	if n%2 == 1 {
		return Map(a, func(y Interval) Union {
			return Range(signedRootDown(y.Lo, n), signedRootUp(y.Hi, n))
		})
	}
	pos := IntersectInterval(a, Interval{Lo: 0, Hi: inf})
	roots := Map(pos, func(y Interval) Union {
		return Range(rootDown(y.Lo, n), rootUp(y.Hi, n))
	})
	return Join(roots, Neg(roots))
}

func signedRootDown(x float64, n int) float64 {
	if x < 0 {
		return -rootUp(-x, n)
	}
	return rootDown(x, n)
}

func signedRootUp(x float64, n int) float64 {
	if x < 0 {
		return -rootDown(-x, n)
	}
	return rootUp(x, n)
}

// Sqrt returns the non-negative square roots of the non-negative part of a.
func Sqrt(a Union) Union {
	pos := IntersectInterval(a, Interval{Lo: 0, Hi: inf})
	return Map(pos, func(x Interval) Union {
		return Range(sqrtDown(x.Lo), sqrtUp(x.Hi))
	})
}

// Abs returns {|x| : x in a}.
func Abs(a Union) Union {
	return Map(a, func(x Interval) Union {
		switch {
		case x.Lo >= 0:
			return FromInterval(x)
		case x.Hi <= 0:
			return Range(-x.Hi, -x.Lo)
		}
		return Range(0, math.Max(-x.Lo, x.Hi))
	})
}

// Pow returns {x^y : x in a, x >= 0, y in b}. Negative bases are outside the
// domain of the real power and are dropped. An infinite result is not a real
// number, so 0 to a negative power contributes nothing.
func Pow(a, b Union) Union {
	base := IntersectInterval(a, Interval{Lo: 0, Hi: inf})
	if base.IsEmpty() || b.IsEmpty() {
		return Empty()
	}
	switch {
	case b.EqualsSingle(1):
		return base
	case base.EqualsSingle(1):
		return Single(1)
	case b.EqualsSingle(0):
		return Single(1)
	case base.EqualsSingle(0):
		out := Empty()
		if b.Hi() > 0 {
			out = Join(out, Single(0))
		}
		if b.Contains(0) {
			out = Join(out, Single(1))
		}
		return out
	}
	if b.IsPoint() {
		if n := b.Lo(); n == math.Trunc(n) && math.Abs(n) <= maxExactPower {
			return PowInt(base, int(n))
		}
	}

	return Map2(base, b, func(x, y Interval) Union {
		corners := []float64{
			math.Pow(x.Lo, y.Lo), math.Pow(x.Lo, y.Hi),
			math.Pow(x.Hi, y.Lo), math.Pow(x.Hi, y.Hi),
		}
		lo, hi := inf, negInf
		for _, c := range corners {
			lo = math.Min(lo, c)
			hi = math.Max(hi, c)
		}
		lo = math.Max(0, down(down(lo)))
		return Range(lo, up(up(hi)))
	})
}

// Log returns the natural logarithm of the positive part of a. The logarithm
// of zero is not a real number, so it only contributes an unbounded end.
func Log(a Union) Union {
	pos := IntersectInterval(a, Interval{Lo: 0, Hi: inf})
	return Map(pos, func(x Interval) Union {
		return Range(logDown(x.Lo), logUp(x.Hi))
	})
}

func logDown(x float64) float64 {
	r := math.Log(x)
	if x == 1 || x == 0 || math.IsInf(x, 1) {
		return r
	}
	return down(r)
}

func logUp(x float64) float64 {
	r := math.Log(x)
	if x == 1 || x == 0 || math.IsInf(x, 1) {
		return r
	}
	return up(r)
}

// Exp returns {e^x : x in a}.
func Exp(a Union) Union {
	return Map(a, func(x Interval) Union {
		return Range(expDown(x.Lo), expUp(x.Hi))
	})
}

func expDown(x float64) float64 {
	r := math.Exp(x)
	if x == 0 || math.IsInf(x, 0) {
		return r
	}
	return math.Max(0, down(r))
}

func expUp(x float64) float64 {
	r := math.Exp(x)
	if x == 0 || math.IsInf(x, 0) {
		return r
	}
	return up(r)
}
