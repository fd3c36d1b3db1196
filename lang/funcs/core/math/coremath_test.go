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
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/purpleidea/bisheet/lang/funcs"
	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/union"
)

func TestRegistered0(t *testing.T) {
	exp := []string{"abs", "cos", "exp", "ln", "log", "pi", "pow", "sin", "sqrt", "tan"}
	if names := funcs.Names(); !reflect.DeepEqual(names, exp) {
		t.Errorf("unexpected registered funcs: %v", names)
	}
	arity := map[string]int{"pi": 0, "sqrt": 1, "cos": 1, "pow": 2}
	for name, n := range arity {
		f, err := funcs.Lookup(name)
		if err != nil {
			t.Errorf("could not lookup %s: %+v", name, err)
			continue
		}
		if f.Arity() != n || len(f.Linker) != n+1 {
			t.Errorf("unexpected arity for %s: %d", name, f.Arity())
		}
	}
}

func TestLookupCall0(t *testing.T) {
	if _, err := funcs.LookupCall("foo", 0); err == nil {
		t.Errorf("expected unknown function")
	} else if _, ok := err.(*interfaces.UnknownFunctionError); !ok {
		t.Errorf("unexpected error: %T", err)
	}

	_, err := funcs.LookupCall("pi", 1)
	e, ok := err.(*interfaces.ArityError)
	if !ok {
		t.Errorf("unexpected error: %T", err)
		return
	}
	if e.Expected != "0" || e.Got != 1 {
		t.Errorf("unexpected arity error: %+v", e)
	}

	if _, err := funcs.LookupCall("pow", 2); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
}

// TestDerivatives0 compares each derivative against a central difference.
func TestDerivatives0(t *testing.T) {
	type test struct { // an individual test
		name string
		args []float64
	}
	testCases := []test{
		{"sqrt", []float64{2}},
		{"log", []float64{3}},
		{"ln", []float64{0.5}},
		{"exp", []float64{1.5}},
		{"abs", []float64{-2}},
		{"cos", []float64{0.7}},
		{"sin", []float64{0.7}},
		{"tan", []float64{0.3}},
		{"pow", []float64{2, 3}},
		{"pow", []float64{1.5, 0.5}},
	}

	const h = 1e-6
	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			f, err := funcs.Lookup(tc.name)
			if err != nil {
				t.Errorf("test #%d: lookup failed: %+v", index, err)
				return
			}
			_, grad := f.Eval(tc.args)
			if len(grad) != len(tc.args) {
				t.Errorf("test #%d: got %d partials", index, len(grad))
				return
			}
			for i := range tc.args {
				hi := append([]float64{}, tc.args...)
				lo := append([]float64{}, tc.args...)
				hi[i] += h
				lo[i] -= h
				yh, _ := f.Eval(hi)
				yl, _ := f.Eval(lo)
				approx := (yh - yl) / (2 * h)
				if math.Abs(approx-grad[i]) > 1e-4*(1+math.Abs(approx)) {
					t.Errorf("test #%d: partial %d was %g, expected about %g", index, i, grad[i], approx)
				}
			}
		})
	}
}

// TestLinkers0 checks that every forward contractor agrees with the numeric
// value, and that every inverse contractor keeps the argument.
func TestLinkers0(t *testing.T) {
	points := map[string][]float64{
		"sqrt": {2.5},
		"log":  {3},
		"exp":  {-1},
		"abs":  {-2},
		"cos":  {0.5},
		"sin":  {-0.5},
		"tan":  {1},
		"pow":  {2, 0.5},
	}
	for _, name := range funcs.Names() {
		args, exists := points[name]
		if !exists {
			continue
		}
		f, _ := funcs.Lookup(name)
		us := []union.Union{}
		for _, x := range args {
			us = append(us, union.Single(x))
		}
		y, _ := f.Eval(args)
		yu := f.Union(us...)
		if !yu.Contains(y) {
			t.Errorf("%s: forward %s does not hold %g", name, yu, y)
		}
		for i := range args {
			in := []union.Union{yu}
			for j, u := range us {
				if j != i {
					in = append(in, u)
				}
			}
			if x := f.Linker[i+1](in...); !x.Contains(args[i]) {
				t.Errorf("%s: inverse %d gave %s, which lost %g", name, i, x, args[i])
			}
		}
	}
}

// TestEmptyPropagation0 checks that contractors never invent values.
func TestEmptyPropagation0(t *testing.T) {
	for _, name := range funcs.Names() {
		f, _ := funcs.Lookup(name)
		if f.Arity() == 0 {
			continue
		}
		for i, c := range f.Linker {
			for e := 0; e < f.Arity(); e++ {
				args := []union.Union{}
				for j := 0; j < f.Arity(); j++ {
					if j == e {
						args = append(args, union.Empty())
						continue
					}
					args = append(args, union.Range(0.5, 2))
				}
				if u := c(args...); !u.IsEmpty() {
					t.Errorf("%s: contractor %d with empty arg %d gave %s", name, i, e, u)
				}
			}
		}
	}
}

func TestPowLinker0(t *testing.T) {
	type test struct { // an individual test
		name string
		got  union.Union
		exp  string
	}
	testCases := []test{}

	pow := funcs.PowReal
	{
		testCases = append(testCases, test{"2^x = 1", pow[2](union.Single(1), union.Single(2)), "{0}"})
		testCases = append(testCases, test{"x^1 = 1", pow[1](union.Single(1), union.Single(1)), "{1}"})
		testCases = append(testCases, test{"0^x = 1", pow[2](union.Single(1), union.Single(0)), "{0}"})
		testCases = append(testCases, test{"1^x = 0", pow[2](union.Single(0), union.Single(1)), "{}"})
		testCases = append(testCases, test{"x^0 = 0", pow[1](union.Single(0), union.Single(0)), "{}"})
		testCases = append(testCases, test{"x^0 = 2", pow[1](union.Single(2), union.Single(0)), "{}"})
		testCases = append(testCases, test{"x^b = 1 with b holding 0", pow[1](union.Single(1), union.Range(-1, 1)), "[-Inf, +Inf]"})
		testCases = append(testCases, test{"x^(1/3) = 0", pow[1](union.Single(0), union.Div(union.Single(1), union.Single(3))), "{0}"})
		testCases = append(testCases, test{"x^0.5 = 9", pow[1](union.Single(9), union.Single(0.5)), "{81}"})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.got.String(); s != tc.exp {
				t.Errorf("test #%d: expected %s, got %s", index, tc.exp, s)
			}
		})
	}
}
