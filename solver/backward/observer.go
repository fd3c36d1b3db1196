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

package backward

import (
	"github.com/purpleidea/bisheet/solver/newton"
	"github.com/purpleidea/bisheet/union"

	"github.com/sanity-io/litter"
)

// Observer is told about each phase of the solver loop. It must not modify
// the values it is passed.
type Observer interface {
	// LoopStart runs at the top of every loop with the pending candidates.
	LoopStart(stack []union.IntervalDomain, splits int)

	// Contracted runs after the contraction of a candidate.
	Contracted(candidate union.IntervalDomain, shrunk union.UnionDomain)

	// BrokenUp runs when a contracted domain was fragmented into pieces.
	BrokenUp(pieces []union.IntervalDomain)

	// NewtonDone runs after the Newton loop.
	NewtonDone(result *newton.Result)

	// Verified runs after the forward check of a Newton result. The err is
	// set if the forward evaluation failed.
	Verified(point map[string]float64, ok bool, err error)

	// Split runs after a candidate was split in two on ref.
	Split(ref string, splits int)

	// Return runs once, with the solution or nil.
	Return(point map[string]float64)
}

// NopObserver ignores everything. Embed it to implement part of Observer.
type NopObserver struct{}

// LoopStart is part of the Observer interface.
func (NopObserver) LoopStart([]union.IntervalDomain, int) {}

// Contracted is part of the Observer interface.
func (NopObserver) Contracted(union.IntervalDomain, union.UnionDomain) {}

// BrokenUp is part of the Observer interface.
func (NopObserver) BrokenUp([]union.IntervalDomain) {}

// NewtonDone is part of the Observer interface.
func (NopObserver) NewtonDone(*newton.Result) {}

// Verified is part of the Observer interface.
func (NopObserver) Verified(map[string]float64, bool, error) {}

// Split is part of the Observer interface.
func (NopObserver) Split(string, int) {}

// Return is part of the Observer interface.
func (NopObserver) Return(map[string]float64) {}

// Observers fans every call out to each observer in order.
type Observers []Observer

// LoopStart is part of the Observer interface.
func (obj Observers) LoopStart(stack []union.IntervalDomain, splits int) {
	for _, x := range obj {
		x.LoopStart(stack, splits)
	}
}

// Contracted is part of the Observer interface.
func (obj Observers) Contracted(candidate union.IntervalDomain, shrunk union.UnionDomain) {
	for _, x := range obj {
		x.Contracted(candidate, shrunk)
	}
}

// BrokenUp is part of the Observer interface.
func (obj Observers) BrokenUp(pieces []union.IntervalDomain) {
	for _, x := range obj {
		x.BrokenUp(pieces)
	}
}

// NewtonDone is part of the Observer interface.
func (obj Observers) NewtonDone(result *newton.Result) {
	for _, x := range obj {
		x.NewtonDone(result)
	}
}

// Verified is part of the Observer interface.
func (obj Observers) Verified(point map[string]float64, ok bool, err error) {
	for _, x := range obj {
		x.Verified(point, ok, err)
	}
}

// Split is part of the Observer interface.
func (obj Observers) Split(ref string, splits int) {
	for _, x := range obj {
		x.Split(ref, splits)
	}
}

// Return is part of the Observer interface.
func (obj Observers) Return(point map[string]float64) {
	for _, x := range obj {
		x.Return(point)
	}
}

// LogObserver logs every phase. Domains and points are dumped with litter.
type LogObserver struct {
	Logf func(format string, v ...interface{})
}

// LoopStart is part of the Observer interface.
func (obj *LogObserver) LoopStart(stack []union.IntervalDomain, splits int) {
	obj.Logf("loop start: %d candidates, %d splits", len(stack), splits)
}

// Contracted is part of the Observer interface.
func (obj *LogObserver) Contracted(candidate union.IntervalDomain, shrunk union.UnionDomain) {
	obj.Logf("candidate: %s", candidate)
	obj.Logf("contracted: %s", shrunk)
}

// BrokenUp is part of the Observer interface.
func (obj *LogObserver) BrokenUp(pieces []union.IntervalDomain) {
	obj.Logf("broken up into %d pieces", len(pieces))
}

// NewtonDone is part of the Observer interface.
func (obj *LogObserver) NewtonDone(result *newton.Result) {
	obj.Logf("newton: value: %g after %d steps", result.Value, result.Iter)
	obj.Logf("newton: point: %s", litter.Sdump(result.Point))
}

// Verified is part of the Observer interface.
func (obj *LogObserver) Verified(point map[string]float64, ok bool, err error) {
	if err != nil {
		obj.Logf("verify failed: %+v", err)
		return
	}
	obj.Logf("verify: %t", ok)
}

// Split is part of the Observer interface.
func (obj *LogObserver) Split(ref string, splits int) {
	obj.Logf("split on %s (%d splits)", ref, splits)
}

// Return is part of the Observer interface.
func (obj *LogObserver) Return(point map[string]float64) {
	if point == nil {
		obj.Logf("return: no solution")
		return
	}
	obj.Logf("return: %s", litter.Sdump(point))
}
