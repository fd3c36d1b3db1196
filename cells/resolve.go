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
	"github.com/purpleidea/bisheet/solver/forward"
	"github.com/purpleidea/bisheet/util"
)

// ToDirty returns the dirty version of a clean cell, for when one of the cells
// upstream of it changed. Solved formulas go back to being plain formulas, and
// error cells process their recovery input again.
func ToDirty(cell Cell) Cell {
	switch x := cell.(type) {
	case *SolutionCell:
		return &FormulaCell{Model: x.Model, Expression: x.Expression}
	case *NoSolutionCell:
		return &FormulaCell{Model: x.Model, Expression: x.Expression}
	case *ErrorCell:
		return ProcessUserInput(x, x.RecoveryInput)
	}
	return cell // the other kinds look the same in both states
}

// ResolveNonGoalCell returns the clean version of a dirty cell which isn't a
// goal. Formulas are evaluated with the cells of context.
func ResolveNonGoalCell(cell Cell, context CellMap) Cell {
	switch x := cell.(type) {
	case *EmptyCell, *TextCell, *VariableCell, *ConstantCell:
		return cell
	case *FormulaCell:
		return resolveFormula(x, context)
	case *ErrorCell:
		return newErrorCell(x.Err, x.RecoveryInput, x.Deps)
	}
	err := fmt.Errorf("can't resolve a %s cell here", cell.Kind().Name())
	return newErrorCell(&interfaces.InternalError{Err: err}, RecoveryInput(cell), Deps(cell))
}

func resolveFormula(cell *FormulaCell, context CellMap) Cell {
	refs := cell.Model.Refs.Singles

	for _, ref := range refs {
		if context.Has(ref) {
			continue
		}
		// keep only the deps which exist
		missing := util.StrFilterElementsInList(context.Keys(), refs)
		deps := util.StrFilterElementsInList(missing, refs)
		return newErrorCell(&interfaces.InvalidRefError{Name: ref}, cell.Expression, deps)
	}

	lookup := make(map[string]float64, len(refs))
	for _, ref := range refs {
		v, ok := Value(context[ref])
		if !ok {
			err := &interfaces.InvalidKindOfRefError{
				Name: ref,
				Kind: context[ref].Kind().Name(),
			}
			return newErrorCell(err, cell.Expression, refs)
		}
		lookup[ref] = v
	}

	value, err := forward.Eval(cell.Model, lookup)
	if err != nil {
		return newErrorCell(err, cell.Expression, refs)
	}
	return &SolutionCell{
		Value:      value,
		Model:      cell.Model,
		Expression: cell.Expression,
	}
}
