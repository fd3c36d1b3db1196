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

package cells

import (
	"fmt"

	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/model"
	"github.com/purpleidea/bisheet/pgraph"
	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/util"
	"github.com/purpleidea/bisheet/util/errwrap"
)

// Mode selects how an edit is interpreted.
type Mode int

const (
	// ModeBidirectional turns a number typed into a formula cell into a
	// goal for that formula.
	ModeBidirectional Mode = iota

	// ModeForwardOnly replaces the cell on every edit.
	ModeForwardOnly
)

// String returns the name of the mode.
func (obj Mode) String() string {
	switch obj {
	case ModeBidirectional:
		return "bidirectional"
	case ModeForwardOnly:
		return "forward"
	}
	return fmt.Sprintf("Mode(%d)", int(obj))
}

// ParseMode returns the mode with this name.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeBidirectional, ModeForwardOnly} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeBidirectional, fmt.Errorf("unknown mode: %s", s)
}

// CellMapToGraph returns the dependency graph of the cells. There is an edge
// from each cell to every cell which depends on it. Dependencies on cells that
// don't exist are left out.
func CellMapToGraph(cells CellMap) (*pgraph.Graph, error) {
	record := make(map[string][]string, len(cells))
	for ref, cell := range cells {
		deps := []string{}
		for _, dep := range Deps(cell) {
			if cells.Has(dep) {
				deps = append(deps, dep)
			}
		}
		record[ref] = deps
	}
	g, err := pgraph.FromRecord("cells", record)
	if err != nil {
		return nil, err
	}
	return g.Reversed(), nil
}

// Resolver resolves edits of a CellMap.
type Resolver struct {
	Mode Mode

	// Solver is used for goal seeking. If it's nil, a solver with the
	// default settings is used.
	Solver *backward.Solver

	Debug bool
	Logf  func(format string, v ...interface{})
}

func (obj *Resolver) solver() *backward.Solver {
	if obj.Solver == nil {
		return &backward.Solver{}
	}
	return obj.Solver
}

func (obj *Resolver) logf(format string, v ...interface{}) {
	if obj.Debug && obj.Logf != nil {
		obj.Logf(format, v...)
	}
}

// ResolveGraph returns every cell that changes when text is typed into the cell
// ref of base. The base map is not modified. Cells which failed to resolve are
// returned as error cells. An error is only returned if ref doesn't exist, or
// if base is inconsistent.
func (obj *Resolver) ResolveGraph(base CellMap, ref, text string) (CellMap, error) {
	cell, exists := base[ref]
	if !exists {
		return nil, fmt.Errorf("no cell named %s", ref)
	}

	var dirty Cell
	if obj.Mode == ModeForwardOnly {
		dirty = ProcessUserInputForward(cell, text)
	} else {
		dirty = ProcessUserInput(cell, text)
	}
	obj.logf("edit %s: %s -> %s", ref, cell, dirty)

	focal, err := obj.ResolveFocalSet(base, ref, dirty)
	if err != nil {
		return nil, err
	}

	downstream, err := ResolveDownstream(base.With(focal), focal.Keys())
	if err != nil {
		return nil, err
	}
	return focal.With(downstream), nil
}

// ResolveFocalSet resolves the edited cell. For a goal this also returns the
// upstream variables that were solved for.
func (obj *Resolver) ResolveFocalSet(base CellMap, ref string, dirty Cell) (CellMap, error) {
	goal, ok := dirty.(*GoalCell)
	if !ok {
		return CellMap{ref: ResolveNonGoalCell(dirty, base)}, nil
	}
	return obj.ResolveCompositeGoal(base, ref, goal)
}

// ResolveCompositeGoal seeks the goal of the cell ref. Every cell upstream of
// it is composed into one formula of the upstream variables, which is then
// solved backwards. On success, the solved variables are returned along with
// the cell.
func (obj *Resolver) ResolveCompositeGoal(base CellMap, ref string, goal *GoalCell) (CellMap, error) {
	if goal.PreviousValue == goal.Goal {
		switch base[ref].(type) {
		case *SolutionCell:
			return CellMap{}, nil // nothing changes
		case *NoSolutionCell:
			return CellMap{ref: &SolutionCell{
				Value:      goal.Goal,
				Model:      goal.Model,
				Expression: goal.Expression,
			}}, nil
		}
	}

	g, err := CellMapToGraph(base)
	if err != nil {
		return nil, err
	}
	upstream, err := g.ReachableUpstream([]string{ref})
	if err != nil {
		return nil, err
	}
	order, err := g.FilterGraph("upstream", upstream).TopologicalSort()
	if err != nil {
		return nil, errwrap.Wrapf(err, "upstream of %s", ref)
	}
	order = util.StrFilterElementsInList([]string{ref}, util.ReverseStringList(order))

	composed, err := composeCells(goal.Model, base.Extract(order), order)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not compose %s", ref)
	}
	obj.logf("goal %s = %g: composed over %v", ref, goal.Goal, composed.Refs.Singles)

	noSolution := CellMap{ref: &NoSolutionCell{
		Goal:          goal.Goal,
		PreviousValue: goal.PreviousValue,
		Model:         goal.Model,
		ComposedModel: composed,
		Expression:    goal.Expression,
	}}

	// all the sources are constants, or there were no references at all
	if !composed.Refs.HasSingles() {
		return noSolution, nil
	}

	point, err := obj.solver().Solve(composed, goal.Goal)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not solve %s", ref)
	}
	if point == nil {
		return noSolution, nil
	}
	if err := util.SortedStrSliceCompare(util.StrMapKeys(point), composed.Refs.Singles); err != nil {
		return nil, &interfaces.InternalError{Err: errwrap.Wrapf(err, "solution of %s", ref)}
	}

	out := CellMap{ref: &SolutionCell{
		Value:      goal.Goal,
		Model:      goal.Model,
		Expression: goal.Expression,
	}}
	for name, value := range point {
		out[name] = &VariableCell{Value: value}
	}
	return out, nil
}

// composeCells substitutes the cells of order into m. The order must be such
// that each cell comes before the cells it depends on. Variables stay free.
func composeCells(m *model.CellModel, cells CellMap, order []string) (*model.CellModel, error) {
	bindings := []model.Binding{}
	for _, ref := range order {
		switch x := cells[ref].(type) {
		case *VariableCell:
			// free
		case *ConstantCell:
			bindings = append(bindings, model.Binding{Ref: ref, Model: model.Constant(x.Value)})
		case *SolutionCell:
			bindings = append(bindings, model.Binding{Ref: ref, Model: x.Model})
		default:
			return nil, &interfaces.InternalError{
				Err: fmt.Errorf("cell %s is a %s, expected one of: %s", ref, cells[ref].Kind().Name(), kindList(KindVariable, KindConstant, KindSolution)),
			}
		}
	}
	return model.ComposeList(m, bindings)
}

// ResolveCycles returns an error cell for each of these cells. The errors keep
// the recovery input and the deps of each cell.
func ResolveCycles(base CellMap, cycles []string) CellMap {
	out := make(CellMap, len(cycles))
	for ref, cell := range base.Extract(cycles) {
		out[ref] = newErrorCell(&interfaces.CycleError{}, RecoveryInput(cell), Deps(cell))
	}
	return out
}

// ResolveDownstream resolves every cell downstream of the focal cells, which
// must already be resolved in base. Cells in a cycle, and every cell
// downstream of one, become cycle errors. The others are resolved in
// topological order, each with the cells resolved before it. The changed cells
// are returned, which may include focal cells that turned out to be in a cycle.
func ResolveDownstream(base CellMap, focal []string) (CellMap, error) {
	if !base.ContainsKeys(focal) {
		return nil, fmt.Errorf("missing focal cells in: %v", focal)
	}

	g, err := CellMapToGraph(base)
	if err != nil {
		return nil, err
	}
	reachable, err := g.ReachableDownstream(focal)
	if err != nil {
		return nil, err
	}
	downstream := g.FilterGraph("downstream", reachable)

	cycleKeys := []string{}
	for _, cycle := range downstream.FindCycles() {
		cycleKeys = append(cycleKeys, cycle...)
	}
	cycles := []string{}
	if len(cycleKeys) > 0 {
		if cycles, err = g.ReachableDownstream(cycleKeys); err != nil {
			return nil, err
		}
	}
	updated := ResolveCycles(base, cycles)

	order, err := downstream.WithoutVertices(cycles).TopologicalSort()
	if err != nil { // every cycle was removed
		return nil, errwrap.Wrapf(err, "downstream tree")
	}

	// nothing left in order depends on a cell in a cycle
	working := base.Without(cycles)
	for _, ref := range order {
		if util.StrInList(ref, focal) {
			continue
		}
		dirty := ToDirty(working[ref])
		var clean Cell
		if _, ok := dirty.(*GoalCell); ok {
			err := fmt.Errorf("goal cell %s downstream", ref)
			clean = newErrorCell(&interfaces.InternalError{Err: err}, "", nil)
		} else {
			clean = ResolveNonGoalCell(dirty, working)
		}
		working[ref] = clean
		updated[ref] = clean
	}
	return updated, nil
}
