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

// Package backward finds values for the free variables of a formula so that it
// equals a goal. Candidate domains are kept on a stack: each one is contracted,
// then refined from its middle with Newton steps, and if that doesn't verify
// it is split in two and both halves go back on the stack.
package backward

import (
	"github.com/purpleidea/bisheet/model"
	"github.com/purpleidea/bisheet/solver/csp"
	"github.com/purpleidea/bisheet/solver/forward"
	"github.com/purpleidea/bisheet/solver/newton"
	"github.com/purpleidea/bisheet/solver/settings"
	"github.com/purpleidea/bisheet/union"
	"github.com/purpleidea/bisheet/util/errwrap"
)

// Solver is the backwards solver. The zero value uses the default settings.
type Solver struct {
	Settings *settings.Settings

	// Observer is optional.
	Observer Observer

	Debug bool
	Logf  func(format string, v ...interface{})
}

func (obj *Solver) settings() *settings.Settings {
	if obj.Settings == nil {
		return settings.Default()
	}
	return obj.Settings
}

func (obj *Solver) observer() Observer {
	observers := Observers{}
	if obj.Observer != nil {
		observers = append(observers, obj.Observer)
	}
	if obj.Debug && obj.Logf != nil {
		observers = append(observers, &LogObserver{
			Logf: func(format string, v ...interface{}) {
				obj.Logf("backward: "+format, v...)
			},
		})
	}
	return observers
}

// Solve returns a point where the model equals goal, with a value for every
// free variable of the model, or nil if no point was found before the stack
// ran out or the split limit was reached. Not finding a point is not an error.
// An error is only returned if the model is unusable, which never happens for
// a model built by the model package.
func (obj *Solver) Solve(m *model.CellModel, goal float64) (map[string]float64, error) {
	s := obj.settings()
	observer := obj.observer()

	loop := &csp.Loop{
		Graph:        m.Graph,
		CFs:          m.CFs(),
		GlobalDomain: s.GlobalDomain,
		Halt:         s.CSPHalt(),
		Debug:        false, // far too noisy
		Logf:         obj.Logf,
	}

	refs := m.Refs.Singles
	stack := []union.IntervalDomain{
		union.NewIntervalDomain(refs, s.RefsDomain),
	}
	nextSplit := 0

	for splits := 0; !s.MainHalt(splits); {
		observer.LoopStart(stack, splits)
		if len(stack) == 0 {
			observer.Return(nil)
			return nil, nil
		}

		candidate := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		shrunk, err := loop.Run(goal, candidate.ToUnionDomain())
		if err != nil {
			return nil, errwrap.Wrapf(err, "contraction failed")
		}
		observer.Contracted(candidate, shrunk)
		if shrunk.IsEmpty() {
			continue
		}

		domain, err := shrunk.ToIntervalDomain()
		if err != nil { // fragmented
			pieces := union.Breakup(shrunk)
			observer.BrokenUp(pieces)
			stack = append(stack, pieces...)
			continue
		}

		init := s.DNInit(domain)
		result := newton.ConvergeLoop(m.Gradient, goal, init, s.Gammas, s.NewtonHalt(), nil)
		observer.NewtonDone(result)

		value, err := forward.Eval(m, result.Point)
		ok := err == nil && s.Verify(value, goal)
		if !ok && s.NewtonPolishIter > 0 && err == nil {
			// single precision can stall a few ulps away from the goal
			polished := newton.Double.ConvergeLoop(m.GradientDouble, goal, result.Point, s.Gammas, s.PolishHalt(), nil)
			observer.NewtonDone(polished)
			if v, e := forward.Eval(m, polished.Point); e == nil && s.Verify(v, goal) {
				result, ok = polished, true
			}
		}
		observer.Verified(result.Point, ok, err)
		if ok {
			observer.Return(result.Point)
			return result.Point, nil
		}

		index, splittable := pickSplit(domain, refs, nextSplit)
		if !splittable { // the candidate can't get any smaller
			continue
		}
		ref := refs[index]
		a, b := union.Split(domain, ref)
		nextSplit = (index + 1) % len(refs)
		stack = append(stack, a, b)
		splits++
		observer.Split(ref, splits)
	}

	observer.Return(nil)
	return nil, nil
}

// pickSplit returns the index of the first of refs, starting at next and
// wrapping around, whose interval in d can be split.
func pickSplit(d union.IntervalDomain, refs []string, next int) (int, bool) {
	for k := range refs {
		i := (next + k) % len(refs)
		if d[refs[i]].IsSplittable() {
			return i, true
		}
	}
	return 0, false
}
