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
	"testing"
)

func TestArith0(t *testing.T) {
	inf := math.Inf(1)
	type test struct { // an individual test
		name string
		got  Union
		exp  string
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{"add points", Add(Single(1), Single(1)), "{2}"})
		testCases = append(testCases, test{"add ranges", Add(Range(1, 2), Range(3, 4)), "[4, 6]"})
		testCases = append(testCases, test{"add unions", Add(New(Interval{0, 1}, Interval{10, 11}), Single(1)), "[1, 2] U [11, 12]"})
		testCases = append(testCases, test{"add empty", Add(Empty(), Range(3, 4)), "{}"})
		testCases = append(testCases, test{"sub ranges", Sub(Range(1, 2), Range(3, 4)), "[-3, -1]"})
		testCases = append(testCases, test{"neg", Neg(Range(-1, 3)), "[-3, 1]"})
	}
	{
		testCases = append(testCases, test{"mul ranges", Mul(Range(-1, 2), Range(3, 4)), "[-4, 8]"})
		testCases = append(testCases, test{"zero times everything", Mul(Single(0), Full()), "{0}"})
		testCases = append(testCases, test{"mul unbounded", Mul(Range(1, inf), Range(-2, -1)), "[-Inf, -1]"})
	}
	{
		testCases = append(testCases, test{"divide by zero", Div(Single(1), Single(0)), "{}"})
		testCases = append(testCases, test{"zero over zero", Div(Single(0), Single(0)), "{}"})
		testCases = append(testCases, test{"zero over a range with zero", Div(Single(0), Range(-1, 1)), "{0}"})
		testCases = append(testCases, test{"both hold zero", Div(Range(-1, 1), Range(-1, 1)), "[-Inf, +Inf]"})
		testCases = append(testCases, test{"positive over zero and up", Div(Single(1), Range(0, 2)), "[0.5, +Inf]"})
		testCases = append(testCases, test{"negative over zero and up", Div(Single(-1), Range(0, 2)), "[-Inf, -0.5]"})
		testCases = append(testCases, test{"positive over zero and down", Div(Single(1), Range(-2, 0)), "[-Inf, -0.5]"})
		testCases = append(testCases, test{"negative over zero and down", Div(Single(-1), Range(-2, 0)), "[0.5, +Inf]"})
		testCases = append(testCases, test{"positive over straddle", Div(Single(1), Range(-1, 2)), "[-Inf, -1] U [0.5, +Inf]"})
		testCases = append(testCases, test{"negative over straddle", Div(Single(-1), Range(-1, 2)), "[-Inf, -0.5] U [1, +Inf]"})
		testCases = append(testCases, test{"exact quotient", Div(Range(2, 4), Range(1, 2)), "[1, 4]"})
		testCases = append(testCases, test{"unbounded divisor", Div(Single(1), Range(1, inf)), "[0, 1]"})
	}
	{
		testCases = append(testCases, test{"square straddle", PowInt(Range(-2, 3), 2), "[0, 9]"})
		testCases = append(testCases, test{"square negative", PowInt(Range(-3, -2), 2), "[4, 9]"})
		testCases = append(testCases, test{"cube", PowInt(Range(-2, 3), 3), "[-8, 27]"})
		testCases = append(testCases, test{"reciprocal", PowInt(Single(2), -1), "{0.5}"})
		testCases = append(testCases, test{"zero power", PowInt(Range(-5, 5), 0), "{1}"})
		testCases = append(testCases, test{"zero power of empty", PowInt(Empty(), 0), "{}"})
		testCases = append(testCases, test{"even root", PowIntInv(Single(4), 2), "{-2} U {2}"})
		testCases = append(testCases, test{"even root of a range", PowIntInv(Range(-4, 4), 2), "[-2, 2]"})
		testCases = append(testCases, test{"even root of negative", PowIntInv(Single(-4), 2), "{}"})
		testCases = append(testCases, test{"odd root", PowIntInv(Single(-8), 3), "{-2}"})
		testCases = append(testCases, test{"inverse zero power", PowIntInv(Single(1), 0), "[-Inf, +Inf]"})
		testCases = append(testCases, test{"inverse zero power miss", PowIntInv(Single(2), 0), "{}"})
		testCases = append(testCases, test{"inverse negative power", PowIntInv(Single(0.25), -2), "{-2} U {2}"})
	}
	{
		testCases = append(testCases, test{"sqrt", Sqrt(Single(9)), "{3}"})
		testCases = append(testCases, test{"sqrt straddle", Sqrt(Range(-4, 4)), "[0, 2]"})
		testCases = append(testCases, test{"sqrt negative", Sqrt(Range(-4, -1)), "{}"})
		testCases = append(testCases, test{"abs", Abs(Range(-3, 2)), "[0, 3]"})
		testCases = append(testCases, test{"abs negative", Abs(Range(-3, -2)), "[2, 3]"})
	}
	{
		testCases = append(testCases, test{"pow one", Pow(Single(2), Single(1)), "{2}"})
		testCases = append(testCases, test{"pow base one", Pow(Single(1), Full()), "{1}"})
		testCases = append(testCases, test{"pow zero", Pow(Range(1, 4), Single(0)), "{1}"})
		testCases = append(testCases, test{"pow base zero", Pow(Single(0), Range(-1, 1)), "{0} U {1}"})
		testCases = append(testCases, test{"pow base zero negative", Pow(Single(0), Single(-1)), "{}"})
		testCases = append(testCases, test{"pow integer", Pow(Single(2), Single(3)), "{8}"})
		testCases = append(testCases, test{"pow negative base", Pow(Range(-4, -1), Single(0.5)), "{}"})
		testCases = append(testCases, test{"pow empty", Pow(Single(2), Empty()), "{}"})
	}
	{
		testCases = append(testCases, test{"log one", Log(Single(1)), "{0}"})
		testCases = append(testCases, test{"log zero", Log(Single(0)), "{}"})
		testCases = append(testCases, test{"log up to one", Log(Range(-1, 1)), "[-Inf, 0]"})
		testCases = append(testCases, test{"exp zero", Exp(Single(0)), "{1}"})
		testCases = append(testCases, test{"exp unbounded", Exp(Range(math.Inf(-1), 0)), "[0, 1]"})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.got.String(); s != tc.exp {
				t.Errorf("test #%d: expected %s, got %s", index, tc.exp, s)
			}
		})
	}
}

// TestArithEnclosure0 checks that inexact results still hold the real answer.
func TestArithEnclosure0(t *testing.T) {
	third := Div(Single(1), Single(3))
	if !third.IsSingle() || !(third.Lo() < third.Hi()) {
		t.Errorf("expected a narrow interval, got %s", third)
	}
	if !third.Contains(1.0 / 3) {
		t.Errorf("expected %s to hold 1/3", third)
	}

	big := Mul(Single(1e300), Single(1e300))
	if big.IsFinite() || !math.IsInf(big.Hi(), 1) {
		t.Errorf("expected overflow to be unbounded, got %s", big)
	}

	tenth := Add(Single(0.1), Single(0.2))
	if !tenth.Contains(0.1+0.2) || tenth.Lo() == tenth.Hi() {
		t.Errorf("expected an outward rounded sum, got %s", tenth)
	}

	root := Pow(Single(4), Single(0.5))
	if !root.Contains(2) {
		t.Errorf("expected %s to hold 2", root)
	}

	cube := PowIntInv(Single(2), 3)
	if lo, hi := cube.Lo(), cube.Hi(); !(lo*lo*lo <= 2 && hi*hi*hi >= 2) {
		t.Errorf("expected %s to enclose the cube root of 2", cube)
	}
}

func TestTrig0(t *testing.T) {
	if s := Cos(Single(0)).String(); s != "{1}" {
		t.Errorf("unexpected cos(0): %s", s)
	}
	if s := Sin(Single(0)).String(); s != "{0}" {
		t.Errorf("unexpected sin(0): %s", s)
	}
	if s := Cos(Range(0, 7)).String(); s != "[-1, 1]" {
		t.Errorf("unexpected wide cos: %s", s)
	}
	if c := Cos(Range(-1, 1)); c.Hi() != 1 || !c.Contains(math.Cos(1)) {
		t.Errorf("unexpected cos: %s", c)
	}
	if s := Sin(Range(0, math.Pi)); s.Hi() != 1 || s.Lo() > 0 {
		t.Errorf("unexpected sin: %s", s)
	}
	if c := Cos(Range(3, 4)); c.Lo() != -1 {
		t.Errorf("expected cos to reach -1 near pi: %s", c)
	}
	if x := Tan(Range(1, 2)); x.Count() != 2 {
		t.Errorf("expected tan across an asymptote to split: %s", x)
	}
	if x := Tan(Range(0, 1)); x.Count() != 1 || !x.Contains(math.Tan(0.5)) {
		t.Errorf("unexpected tan: %s", x)
	}
	if s := Tan(Range(0, 4)).String(); s != "[-Inf, +Inf]" {
		t.Errorf("unexpected wide tan: %s", s)
	}
}

func TestTrigInverse0(t *testing.T) {
	c := CosInv(Single(1))
	for k := -2; k <= 2; k++ {
		if x := 2 * float64(k) * math.Pi; !c.Contains(x) {
			t.Errorf("expected cos inverse to hold %g: %s", x, c)
		}
	}
	if !CosInv(Single(2)).IsEmpty() {
		t.Errorf("expected an empty cos inverse")
	}

	s := SinInv(Single(0))
	if !s.Contains(0) || !s.Contains(math.Pi) || !s.Contains(-math.Pi) {
		t.Errorf("unexpected sin inverse: %s", s)
	}

	h := SinInv(Single(1))
	if !h.Contains(math.Pi/2) || !h.Contains(math.Pi/2-2*math.Pi) {
		t.Errorf("unexpected sin inverse: %s", h)
	}

	x := TanInv(Single(0))
	if x.Count() != 2*InversePeriods+1 || !x.Contains(0) {
		t.Errorf("unexpected tan inverse: %s", x)
	}
}

// TestTrigInverseBranches0 checks that every piece of an inverse maps back onto
// the argument. A shift by an odd multiple of pi would give -y instead.
func TestTrigInverseBranches0(t *testing.T) {
	type test struct { // an individual test
		name  string
		inv   func(Union) Union
		f     func(float64) float64
		y     float64
		count int
	}
	testCases := []test{}
	{
		testCases = append(testCases, test{"cos", CosInv, math.Cos, 0.5, 2 * (2*InversePeriods + 1)})
		testCases = append(testCases, test{"cos", CosInv, math.Cos, -0.25, 2 * (2*InversePeriods + 1)})
		testCases = append(testCases, test{"sin", SinInv, math.Sin, 0.5, 2 * (2*InversePeriods + 1)})
		testCases = append(testCases, test{"sin", SinInv, math.Sin, -0.75, 2 * (2*InversePeriods + 1)})
	}

	for index, tc := range testCases {
		u := tc.inv(Single(tc.y))
		if u.Count() != tc.count {
			t.Errorf("test #%d: %s inverse of %g has %d pieces: %s", index, tc.name, tc.y, u.Count(), u)
		}
		for _, x := range u.Intervals() {
			if v := tc.f(x.Midpoint()); math.Abs(v-tc.y) > 1e-9 {
				t.Errorf("test #%d: %s(%g) = %g, expected %g", index, tc.name, x.Midpoint(), v, tc.y)
			}
		}
	}
}
