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
	"testing"

	"github.com/purpleidea/bisheet/union"
)

func testSqrtSuccess(input, sqrt float64) error {
	val, _ := Sqrt([]float64{input})
	if val != sqrt {
		return fmt.Errorf("invalid output, expected %f, got %f", sqrt, val)
	}
	return nil
}

func testSqrtError(input float64) error {
	if val, _ := Sqrt([]float64{input}); !math.IsNaN(val) {
		return fmt.Errorf("expected NaN for input %f, got %f", input, val)
	}
	if u := union.Sqrt(union.Single(input)); !u.IsEmpty() {
		return fmt.Errorf("expected empty union for input %f, got %s", input, u)
	}
	return nil
}

func TestSqrtValidInput(t *testing.T) {
	values := map[float64]float64{
		4.0:  2.0,
		16.0: 4.0,
		2.0:  math.Sqrt(2.0),
	}

	for input, sqrt := range values {
		if err := testSqrtSuccess(input, sqrt); err != nil {
			t.Error(err)
		}
	}
}

func TestSqrtInvalidInput(t *testing.T) {
	values := []float64{-1.0}

	for _, input := range values {
		if err := testSqrtError(input); err != nil {
			t.Error(err)
		}
	}
}
