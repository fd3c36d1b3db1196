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
	"sort"
	"strings"
)

// Union is a finite set of disjoint closed intervals, sorted by their lower
// end. Two intervals that touch are always merged, so any two intervals in a
// Union have a gap between them. The zero value is the empty union. A Union is
// never modified after it is built.
type Union struct {
	intervals []Interval
}

// Empty returns the union that holds no numbers.
func Empty() Union {
	return Union{}
}

// Full returns the union of every real number.
func Full() Union {
	return Union{intervals: []Interval{{Lo: negInf, Hi: inf}}}
}

// Single returns the union holding only x. A NaN gives the empty union.
func Single(x float64) Union {
	return FromInterval(Interval{Lo: x, Hi: x})
}

// FromInterval returns the union holding a single interval.
func FromInterval(i Interval) Union {
	if i.IsEmpty() {
		return Empty()
	}
	return Union{intervals: []Interval{i}}
}

// Range is shorthand for FromInterval(Interval{lo, hi}).
func Range(lo, hi float64) Union {
	return FromInterval(Interval{Lo: lo, Hi: hi})
}

// New builds the union of any number of intervals, which may overlap, touch,
// come in any order or be empty.
func New(intervals ...Interval) Union {
	xs := []Interval{}
	for _, i := range intervals {
		if i.IsEmpty() {
			continue
		}
		xs = append(xs, i)
	}
	if len(xs) == 0 {
		return Empty()
	}
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].Lo < xs[j].Lo
	})

	out := []Interval{xs[0]}
	for _, x := range xs[1:] {
		last := &out[len(out)-1]
		if x.Lo <= last.Hi {
			last.Hi = math.Max(last.Hi, x.Hi)
			continue
		}
		out = append(out, x)
	}
	return Union{intervals: out}
}

// Join returns the union of all the given unions.
func Join(unions ...Union) Union {
	xs := []Interval{}
	for _, u := range unions {
		xs = append(xs, u.intervals...)
	}
	return New(xs...)
}

// Intervals returns a copy of the sorted disjoint intervals.
func (obj Union) Intervals() []Interval {
	return append([]Interval{}, obj.intervals...)
}

// Count returns the number of disjoint intervals.
func (obj Union) Count() int {
	return len(obj.intervals)
}

// IsEmpty returns true if the union holds no numbers.
func (obj Union) IsEmpty() bool {
	return len(obj.intervals) == 0
}

// IsSingle returns true if the union is exactly one interval.
func (obj Union) IsSingle() bool {
	return len(obj.intervals) == 1
}

// IsPoint returns true if the union holds exactly one number.
func (obj Union) IsPoint() bool {
	return len(obj.intervals) == 1 && obj.intervals[0].IsPoint()
}

// IsFinite returns true if the union is not empty and bounded on both sides.
func (obj Union) IsFinite() bool {
	if obj.IsEmpty() {
		return false
	}
	return !math.IsInf(obj.Lo(), 0) && !math.IsInf(obj.Hi(), 0)
}

// EqualsSingle returns true if the union is exactly {x}.
func (obj Union) EqualsSingle(x float64) bool {
	return obj.IsPoint() && obj.intervals[0].Lo == x
}

// Lo returns the smallest number in the union, or +Inf when empty.
func (obj Union) Lo() float64 {
	if obj.IsEmpty() {
		return inf
	}
	return obj.intervals[0].Lo
}

// Hi returns the largest number in the union, or -Inf when empty.
func (obj Union) Hi() float64 {
	if obj.IsEmpty() {
		return negInf
	}
	return obj.intervals[len(obj.intervals)-1].Hi
}

// Hull returns the smallest interval that contains the whole union.
func (obj Union) Hull() Interval {
	return Interval{Lo: obj.Lo(), Hi: obj.Hi()}
}

// Contains returns true if x is in the union.
func (obj Union) Contains(x float64) bool {
	for _, i := range obj.intervals {
		if i.Contains(x) {
			return true
		}
	}
	return false
}

// Width returns the total width of all intervals. It is infinite if the union
// is unbounded.
func (obj Union) Width() float64 {
	w := 0.0
	for _, i := range obj.intervals {
		w += i.Width()
	}
	return w
}

// Equal returns true if both unions hold the same numbers.
func (obj Union) Equal(other Union) bool {
	if len(obj.intervals) != len(other.intervals) {
		return false
	}
	for i, x := range obj.intervals {
		if x != other.intervals[i] {
			return false
		}
	}
	return true
}

// String returns a human readable representation, such as "[1, 2] U {3}".
func (obj Union) String() string {
	if obj.IsEmpty() {
		return "{}"
	}
	xs := []string{}
	for _, i := range obj.intervals {
		xs = append(xs, i.String())
	}
	return strings.Join(xs, " U ")
}

// Intersect returns the numbers that are in both unions.
func Intersect(a, b Union) Union {
	out := []Interval{}
	i, j := 0, 0
	for i < len(a.intervals) && j < len(b.intervals) {
		x, y := a.intervals[i], b.intervals[j]
		if c := x.Intersect(y); !c.IsEmpty() {
			out = append(out, c)
		}
		if x.Hi < y.Hi {
			i++
		} else {
			j++
		}
	}
	return New(out...)
}

// IntersectInterval is Intersect against a single interval.
func IntersectInterval(a Union, i Interval) Union {
	return Intersect(a, FromInterval(i))
}

// Map applies fn to every interval and joins the results.
func Map(a Union, fn func(Interval) Union) Union {
	out := []Union{}
	for _, x := range a.intervals {
		out = append(out, fn(x))
	}
	return Join(out...)
}

// Map2 applies fn to every pair of intervals and joins the results. The result
// is empty if either union is empty.
func Map2(a, b Union, fn func(x, y Interval) Union) Union {
	out := []Union{}
	for _, x := range a.intervals {
		for _, y := range b.intervals {
			out = append(out, fn(x, y))
		}
	}
	return Join(out...)
}
