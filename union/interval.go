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

// Package union implements closed intervals and finite unions of disjoint
// intervals, along with outward rounded arithmetic over them. A Union is the
// set of values a variable may still take while solving; the empty Union means
// that there is no solution.
package union

import (
	"fmt"
	"math"
)

// Interval is the closed range [Lo, Hi]. Either end may be infinite. An
// interval with Lo > Hi, or with a NaN end, is empty.
type Interval struct {
	Lo float64
	Hi float64
}

// IsEmpty returns true if this interval holds no real number.
func (obj Interval) IsEmpty() bool {
	if math.IsNaN(obj.Lo) || math.IsNaN(obj.Hi) {
		return true
	}
	if math.IsInf(obj.Lo, 1) || math.IsInf(obj.Hi, -1) {
		return true
	}
	return obj.Lo > obj.Hi
}

// IsFinite returns true if both ends are finite.
func (obj Interval) IsFinite() bool {
	return !math.IsInf(obj.Lo, 0) && !math.IsInf(obj.Hi, 0)
}

// IsPoint returns true if the interval holds exactly one number.
func (obj Interval) IsPoint() bool {
	return obj.Lo == obj.Hi && !obj.IsEmpty()
}

// IsSplittable returns true if the midpoint lies strictly inside, so that both
// halves of a split are smaller than the whole.
func (obj Interval) IsSplittable() bool {
	m := obj.Midpoint()
	return obj.Lo < m && m < obj.Hi
}

// Contains returns true if x lies in the interval.
func (obj Interval) Contains(x float64) bool {
	return obj.Lo <= x && x <= obj.Hi
}

// Width returns Hi - Lo, or zero for an empty interval.
func (obj Interval) Width() float64 {
	if obj.IsEmpty() {
		return 0
	}
	return obj.Hi - obj.Lo
}

// Intersect returns the common part of both intervals, which may be empty.
func (obj Interval) Intersect(other Interval) Interval {
	return Interval{
		Lo: math.Max(obj.Lo, other.Lo),
		Hi: math.Min(obj.Hi, other.Hi),
	}
}

// Midpoint returns a number in the middle of the interval. For infinite ends
// it returns a finite value when possible.
func (obj Interval) Midpoint() float64 {
	return Midpoint(obj.Lo, obj.Hi)
}

// String returns a human readable representation.
func (obj Interval) String() string {
	if obj.IsEmpty() {
		return "{}"
	}
	if obj.Lo == obj.Hi {
		return fmt.Sprintf("{%g}", obj.Lo)
	}
	return fmt.Sprintf("[%g, %g]", obj.Lo, obj.Hi)
}

// Midpoint returns the middle of [lo, hi] without overflowing. A symmetric
// range always has its midpoint at zero.
func Midpoint(lo, hi float64) float64 {
	if lo == -hi {
		return 0
	}
	if lo == hi {
		return lo
	}
	if math.IsInf(lo, -1) {
		return -math.MaxFloat64
	}
	if math.IsInf(hi, 1) {
		return math.MaxFloat64
	}
	return lo/2 + hi/2
}
