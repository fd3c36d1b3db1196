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

// Package newton implements a directional Newton root finder with a
// backtracking line search. The arithmetic is done in single precision unless
// asked otherwise, so callers should expect those results to be accurate to
// about 1e-6 or 1e-7.
package newton

import (
	"math"
	"sort"
)

// Func returns the value of a scalar function at a point, and its gradient
// with respect to every key of the point. The function must not fail for any
// finite point.
type Func func(point map[string]float64) (float64, map[string]float64)

// Halt decides after each accepted step if the loop should stop. It receives
// the number of steps so far, the value after the step, and the change of the
// absolute value that the step caused, which is negative when it helped.
type Halt func(iter int, value, absDiff float64) bool

// StepCallback is called after every accepted step.
type StepCallback func(iter int, bestValue float64, step *Step)

// Step is a successful step.
type Step struct {
	// AbsDiff is |f(new)| - |f(old)|, which is always negative.
	AbsDiff float64

	// NewPoint is the point after the step.
	NewPoint map[string]float64

	// GradNorm2 is the squared norm of the gradient at the old point.
	GradNorm2 float64

	// Gamma is the line search factor which was accepted.
	Gamma float64
}

// Result is the outcome of a Newton loop.
type Result struct {
	// Value is f minus the goal at Point.
	Value float64

	Point map[string]float64

	// Iter is the number of steps that were taken.
	Iter int
}

// Precision is the arithmetic of a Newton loop.
type Precision int

const (
	// Single rounds every intermediate value to float32.
	Single Precision = iota

	// Double keeps every intermediate value as a float64.
	Double
)

// String returns the name of the precision.
func (obj Precision) String() string {
	if obj == Double {
		return "double"
	}
	return "single"
}

func (obj Precision) round(x float64) float64 {
	if obj == Double {
		return x
	}
	return float64(float32(x))
}

// DNStep computes a single step of directional Newton from point. The full
// step is -f(x) g / (g . g), where g is the gradient, and it is scaled by each
// of gammas in turn until one of them reduces |f|. It returns the best value
// found, and the step, or nil if the gradient is zero or if no factor helped.
func DNStep(f Func, point map[string]float64, gammas []float64) (float64, *Step) {
	return Single.dnStep(f, point, gammas)
}

func (obj Precision) dnStep(f Func, point map[string]float64, gammas []float64) (float64, *Step) {
	r := obj.round
	keys := sortedKeys(point)
	value, grad := f(point)
	current := r(value)

	norm2 := 0.0
	for _, key := range keys {
		g := r(grad[key])
		norm2 = r(norm2 + r(g*g))
	}
	if !(norm2 > 0) { // zero (or nan) gradient, no line to search on
		return current, nil
	}

	step := make(map[string]float64, len(keys))
	for _, key := range keys {
		g := r(grad[key])
		step[key] = -r(r(current*g) / norm2)
	}

	for _, gamma := range gammas {
		newPoint := make(map[string]float64, len(keys))
		for _, key := range keys {
			p := r(point[key])
			s := r(r(gamma) * step[key])
			newPoint[key] = r(p + s)
		}
		newValue, _ := f(newPoint)
		next := r(newValue)

		absImprovement := r(math.Abs(next) - math.Abs(current))
		if absImprovement < 0 { // nan is never an improvement
			return next, &Step{
				AbsDiff:   absImprovement,
				NewPoint:  newPoint,
				GradNorm2: norm2,
				Gamma:     gamma,
			}
		}
	}

	return current, nil
}

// ConvergeLoop runs directional Newton steps on model - goal in single
// precision, starting from init, until no step improves the value, or until
// halt says to stop. The callback is optional.
func ConvergeLoop(model Func, goal float64, init map[string]float64, gammas []float64, halt Halt, callback StepCallback) *Result {
	return Single.ConvergeLoop(model, goal, init, gammas, halt, callback)
}

// ConvergeLoop is like the package level ConvergeLoop, but in this precision.
// The model should be evaluated in the same precision.
func (obj Precision) ConvergeLoop(model Func, goal float64, init map[string]float64, gammas []float64, halt Halt, callback StepCallback) *Result {
	r := obj.round
	g := r(goal)
	f := func(point map[string]float64) (float64, map[string]float64) {
		value, grad := model(point)
		return r(r(value) - g), grad
	}

	point := make(map[string]float64, len(init))
	for key, x := range init {
		point[key] = r(x)
	}

	iter := 0
	for {
		bestValue, step := obj.dnStep(f, point, gammas)
		if step == nil {
			return &Result{
				Value: bestValue,
				Point: point,
				Iter:  iter,
			}
		}

		point = step.NewPoint
		if callback != nil {
			callback(iter, bestValue, step)
		}
		iter++

		if halt(iter, bestValue, step.AbsDiff) {
			return &Result{
				Value: bestValue,
				Point: point,
				Iter:  iter,
			}
		}
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
