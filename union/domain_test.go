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
	"reflect"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestBreakup0(t *testing.T) {
	d := UnionDomain{
		"y": New(Interval{Lo: 4, Hi: 5}, Interval{Lo: 6, Hi: 7}),
		"x": New(Interval{Lo: 0, Hi: 1}, Interval{Lo: 2, Hi: 3}),
	}
	exp := []IntervalDomain{
		{"x": {Lo: 0, Hi: 1}, "y": {Lo: 4, Hi: 5}},
		{"x": {Lo: 0, Hi: 1}, "y": {Lo: 6, Hi: 7}},
		{"x": {Lo: 2, Hi: 3}, "y": {Lo: 4, Hi: 5}},
		{"x": {Lo: 2, Hi: 3}, "y": {Lo: 6, Hi: 7}},
	}
	if got := Breakup(d); !reflect.DeepEqual(got, exp) {
		t.Errorf("unexpected breakup (-got +want):\n%s", pretty.Compare(got, exp))
	}

	single := UnionDomain{"x": Range(0, 1)}
	if got := Breakup(single); len(got) != 1 || got[0]["x"] != (Interval{Lo: 0, Hi: 1}) {
		t.Errorf("unexpected breakup of a single domain: %v", got)
	}
	if got := Breakup(UnionDomain{}); len(got) != 0 {
		t.Errorf("expected no combinations, got: %v", got)
	}
	if got := Breakup(d.With("z", Empty())); len(got) != 0 {
		t.Errorf("expected no combinations, got: %v", got)
	}
}

func TestSplit0(t *testing.T) {
	d := IntervalDomain{
		"x": {Lo: 0, Hi: 4},
		"y": {Lo: 1, Hi: 2},
	}
	a, b := Split(d, "x")
	if exp := (IntervalDomain{"x": {Lo: 0, Hi: 2}, "y": {Lo: 1, Hi: 2}}); !reflect.DeepEqual(a, exp) {
		t.Errorf("unexpected lower half: %s", a)
	}
	if exp := (IntervalDomain{"x": {Lo: 2, Hi: 4}, "y": {Lo: 1, Hi: 2}}); !reflect.DeepEqual(b, exp) {
		t.Errorf("unexpected upper half: %s", b)
	}
	if d["x"] != (Interval{Lo: 0, Hi: 4}) {
		t.Errorf("split modified its input: %s", d)
	}

	s := IntervalDomain{"x": {Lo: -10, Hi: 10}}
	a, b = Split(s, "x")
	if a["x"].Hi != 0 || b["x"].Lo != 0 {
		t.Errorf("expected a symmetric split at zero: %s %s", a, b)
	}
}

func TestIsSplittable0(t *testing.T) {
	one := 1.0
	next := math.Nextafter(one, 2)
	type test struct {
		i      Interval
		expect bool
	}
	testCases := []test{
		{Interval{Lo: 0, Hi: 4}, true},
		{Interval{Lo: -1e10, Hi: 1e10}, true},
		{Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}, true},
		{Interval{Lo: 3, Hi: 3}, false},
		{Interval{Lo: one, Hi: next}, false}, // one ulp wide
		{Interval{Lo: 2, Hi: 1}, false},
	}
	for index, tc := range testCases {
		if got := tc.i.IsSplittable(); got != tc.expect {
			t.Errorf("test #%d: %s: got %t, expected %t", index, tc.i, got, tc.expect)
		}
	}

	// a split of an unsplittable interval gives back the parent
	d := IntervalDomain{"x": {Lo: one, Hi: next}}
	a, b := Split(d, "x")
	if !reflect.DeepEqual(a, d) && !reflect.DeepEqual(b, d) {
		t.Errorf("expected one half to be the parent: %s %s", a, b)
	}
}

func TestUnionDomain0(t *testing.T) {
	d := UnionDomain{
		"x": Range(0, 1),
		"y": Single(3),
	}
	if d.IsEmpty() || !d.IsFinite() || !d.IsIntervalDomain() {
		t.Errorf("unexpected predicates for %s", d)
	}
	id, err := d.ToIntervalDomain()
	if err != nil {
		t.Errorf("could not convert: %+v", err)
		return
	}
	if s := id.String(); s != "{x: [0, 1], y: {3}}" {
		t.Errorf("unexpected interval domain: %s", s)
	}
	if !id.ToUnionDomain().Equal(d) {
		t.Errorf("round trip changed the domain")
	}

	e := d.With("x", Empty())
	if !e.IsEmpty() || e.IsFinite() {
		t.Errorf("unexpected predicates for %s", e)
	}
	if d.IsEmpty() {
		t.Errorf("with modified its input")
	}

	f := d.With("x", New(Interval{Lo: 0, Hi: 1}, Interval{Lo: 2, Hi: 3}))
	if f.IsIntervalDomain() {
		t.Errorf("expected a fragmented domain: %s", f)
	}
	if _, err := f.ToIntervalDomain(); err == nil {
		t.Errorf("expected conversion of a fragmented domain to fail")
	}
	if f.Width() != 2 {
		t.Errorf("unexpected width: %g", f.Width())
	}

	n := NewIntervalDomain([]string{"a", "b"}, Interval{Lo: -1, Hi: 1})
	if m := n.Midpoint(); m["a"] != 0 || m["b"] != 0 || len(m) != 2 {
		t.Errorf("unexpected midpoint: %v", m)
	}
}
