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
	"fmt"
	"math"
	"strings"

	"github.com/purpleidea/bisheet/util"
)

// IntervalDomain maps each free variable to the interval it may take.
type IntervalDomain map[string]Interval

// UnionDomain maps each free variable to the union it may take.
type UnionDomain map[string]Union

// NewIntervalDomain returns a domain where every key maps to i.
func NewIntervalDomain(keys []string, i Interval) IntervalDomain {
	out := make(IntervalDomain, len(keys))
	for _, k := range keys {
		out[k] = i
	}
	return out
}

// Keys returns the sorted variable names.
func (obj IntervalDomain) Keys() []string {
	return util.StrMapKeys(obj)
}

// With returns a copy of the domain where key maps to i.
func (obj IntervalDomain) With(key string, i Interval) IntervalDomain {
	out := make(IntervalDomain, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out[key] = i
	return out
}

// ToUnionDomain lifts every interval into a union.
func (obj IntervalDomain) ToUnionDomain() UnionDomain {
	out := make(UnionDomain, len(obj))
	for k, v := range obj {
		out[k] = FromInterval(v)
	}
	return out
}

// Midpoint returns the midpoint of every interval.
func (obj IntervalDomain) Midpoint() map[string]float64 {
	out := make(map[string]float64, len(obj))
	for k, v := range obj {
		out[k] = v.Midpoint()
	}
	return out
}

// String returns the domain with its keys in sorted order.
func (obj IntervalDomain) String() string {
	xs := []string{}
	for _, k := range obj.Keys() {
		xs = append(xs, fmt.Sprintf("%s: %s", k, obj[k]))
	}
	return "{" + strings.Join(xs, ", ") + "}"
}

// Split cuts the interval of key at its midpoint and returns the lower and the
// upper half. The midpoint belongs to both halves. If the interval is not
// splittable, one of the halves is the interval itself.
func Split(d IntervalDomain, key string) (IntervalDomain, IntervalDomain) {
	i := d[key]
	m := i.Midpoint()
	return d.With(key, Interval{Lo: i.Lo, Hi: m}), d.With(key, Interval{Lo: m, Hi: i.Hi})
}

// Keys returns the sorted variable names.
func (obj UnionDomain) Keys() []string {
	return util.StrMapKeys(obj)
}

// With returns a copy of the domain where key maps to u.
func (obj UnionDomain) With(key string, u Union) UnionDomain {
	out := make(UnionDomain, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out[key] = u
	return out
}

// IsEmpty returns true if any variable has nowhere left to go, which means
// that the whole domain holds no point.
func (obj UnionDomain) IsEmpty() bool {
	for _, v := range obj {
		if v.IsEmpty() {
			return true
		}
	}
	return false
}

// IsFinite returns true if every union is bounded.
func (obj UnionDomain) IsFinite() bool {
	for _, v := range obj {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}

// IsIntervalDomain returns true if every union is a single interval.
func (obj UnionDomain) IsIntervalDomain() bool {
	for _, v := range obj {
		if !v.IsSingle() {
			return false
		}
	}
	return true
}

// ToIntervalDomain returns the interval domain, or an error if any union is
// not exactly one interval.
func (obj UnionDomain) ToIntervalDomain() (IntervalDomain, error) {
	out := make(IntervalDomain, len(obj))
	for _, k := range obj.Keys() {
		v := obj[k]
		if !v.IsSingle() {
			return nil, fmt.Errorf("key %s has %d intervals", k, v.Count())
		}
		out[k] = v.intervals[0]
	}
	return out, nil
}

// Width returns the sum of all the union widths.
func (obj UnionDomain) Width() float64 {
	w := 0.0
	for _, v := range obj {
		w += v.Width()
	}
	return w
}

// Equal returns true if both domains have the same keys and unions.
func (obj UnionDomain) Equal(other UnionDomain) bool {
	if len(obj) != len(other) {
		return false
	}
	for k, v := range obj {
		w, exists := other[k]
		if !exists || !v.Equal(w) {
			return false
		}
	}
	return true
}

// String returns the domain with its keys in sorted order.
func (obj UnionDomain) String() string {
	xs := []string{}
	for _, k := range obj.Keys() {
		xs = append(xs, fmt.Sprintf("%s: %s", k, obj[k]))
	}
	return "{" + strings.Join(xs, ", ") + "}"
}

// Breakup returns every combination of one interval per variable. Keys are
// taken in sorted order and the first key varies slowest. A domain with any
// empty union, or with no keys at all, has no combinations.
func Breakup(d UnionDomain) []IntervalDomain {
	keys := d.Keys()
	if len(keys) == 0 {
		return []IntervalDomain{}
	}
	partials := []IntervalDomain{{}}
	for _, k := range keys {
		next := []IntervalDomain{}
		for _, p := range partials {
			for _, i := range d[k].intervals {
				next = append(next, p.With(k, i))
			}
		}
		partials = next
	}
	return partials
}

// Width returns the sum of all interval widths.
func (obj IntervalDomain) Width() float64 {
	w := 0.0
	for _, v := range obj {
		w += v.Width()
	}
	return w
}

// IsFinite returns true if every interval is bounded.
func (obj IntervalDomain) IsFinite() bool {
	for _, v := range obj {
		if !v.IsFinite() || math.IsNaN(v.Lo) {
			return false
		}
	}
	return true
}
