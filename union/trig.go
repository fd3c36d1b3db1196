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

// InversePeriods is how many periods on each side of zero the trigonometric
// inverses cover. The true inverse is infinitely periodic; only the solutions
// with a period index k in [-InversePeriods, InversePeriods] are returned.
const InversePeriods = 2

// pi holds the real number pi, since math.Pi is a little smaller than it.
var pi = Range(math.Pi, up(math.Pi))

// Pi returns a tight enclosure of pi.
func Pi() Union {
	return pi
}

func clampUnit(lo, hi float64) Union {
	return Range(math.Max(-1, down(lo)), math.Min(1, up(hi)))
}

// Cos returns {cos x : x in a}.
func Cos(a Union) Union {
	return Map(a, func(x Interval) Union {
		if x.Lo == 0 && x.Hi == 0 {
			return Single(1)
		}
		if !x.IsFinite() || x.Width() >= 2*math.Pi {
			return Range(-1, 1)
		}
		c1, c2 := math.Cos(x.Lo), math.Cos(x.Hi)
		lo, hi := math.Min(c1, c2), math.Max(c1, c2)
		// cos peaks at even multiples of pi and bottoms out at odd ones
		for k := math.Ceil(x.Lo / math.Pi); k*math.Pi <= x.Hi; k++ {
			if math.Mod(k, 2) == 0 {
				hi = 1
			} else {
				lo = -1
			}
		}
		return clampUnit(lo, hi)
	})
}

// Sin returns {sin x : x in a}.
func Sin(a Union) Union {
	return Map(a, func(x Interval) Union {
		if x.Lo == 0 && x.Hi == 0 {
			return Single(0)
		}
		if !x.IsFinite() || x.Width() >= 2*math.Pi {
			return Range(-1, 1)
		}
		s1, s2 := math.Sin(x.Lo), math.Sin(x.Hi)
		lo, hi := math.Min(s1, s2), math.Max(s1, s2)
		// sin peaks at pi/2 + 2k*pi and bottoms out at pi/2 + (2k+1)*pi
		for k := math.Ceil((x.Lo - math.Pi/2) / math.Pi); math.Pi/2+k*math.Pi <= x.Hi; k++ {
			if math.Mod(k, 2) == 0 {
				hi = 1
			} else {
				lo = -1
			}
		}
		return clampUnit(lo, hi)
	})
}

// Tan returns {tan x : x in a}. An interval that crosses an asymptote gives
// two unbounded pieces.
func Tan(a Union) Union {
	return Map(a, func(x Interval) Union {
		if x.Lo == 0 && x.Hi == 0 {
			return Single(0)
		}
		if !x.IsFinite() || x.Width() >= math.Pi {
			return Full()
		}
		lo, hi := down(math.Tan(x.Lo)), up(math.Tan(x.Hi))
		k := math.Ceil((x.Lo - math.Pi/2) / math.Pi)
		if asymptote := math.Pi/2 + k*math.Pi; asymptote <= x.Hi {
			return New(
				Interval{Lo: lo, Hi: inf},
				Interval{Lo: negInf, Hi: hi},
			)
		}
		return Range(lo, hi)
	})
}

// Acos returns the principal arc cosine of the part of a inside [-1, 1].
func Acos(a Union) Union {
	unit := IntersectInterval(a, Interval{Lo: -1, Hi: 1})
	return Map(unit, func(y Interval) Union {
		lo := math.Max(0, down(math.Acos(y.Hi)))
		if y.Hi == 1 {
			lo = 0
		}
		hi := math.Min(pi.Hi(), up(math.Acos(y.Lo)))
		if y.Lo == 1 {
			hi = 0
		}
		return Range(lo, hi)
	})
}

// Asin returns the principal arc sine of the part of a inside [-1, 1].
func Asin(a Union) Union {
	unit := IntersectInterval(a, Interval{Lo: -1, Hi: 1})
	half := up(math.Pi / 2)
	return Map(unit, func(y Interval) Union {
		lo, hi := down(math.Asin(y.Lo)), up(math.Asin(y.Hi))
		if y.Lo == 0 {
			lo = 0
		}
		if y.Hi == 0 {
			hi = 0
		}
		return Range(math.Max(-half, lo), math.Min(half, hi))
	})
}

// Atan returns the principal arc tangent of a.
func Atan(a Union) Union {
	half := up(math.Pi / 2)
	return Map(a, func(y Interval) Union {
		lo, hi := down(math.Atan(y.Lo)), up(math.Atan(y.Hi))
		if y.Lo == 0 {
			lo = 0
		}
		if y.Hi == 0 {
			hi = 0
		}
		return Range(math.Max(-half, lo), math.Min(half, hi))
	})
}

// periodic returns the union of base shifted by k*period for every sampled k.
func periodic(base Union, period Union) Union {
	out := []Union{}
	for k := -InversePeriods; k <= InversePeriods; k++ {
		shift := Mul(Single(float64(k)), period)
		out = append(out, Add(base, shift))
	}
	return Join(out...)
}

// CosInv returns the x with cos x in a, for the sampled periods.
func CosInv(a Union) Union {
	principal := Acos(a)
	return periodic(Join(principal, Neg(principal)), Mul(Single(2), pi))
}

// SinInv returns the x with sin x in a, for the sampled periods.
func SinInv(a Union) Union {
	principal := Asin(a)
	return periodic(Join(principal, Sub(pi, principal)), Mul(Single(2), pi))
}

// TanInv returns the x with tan x in a, for the sampled periods.
func TanInv(a Union) Union {
	return periodic(Atan(a), pi)
}
