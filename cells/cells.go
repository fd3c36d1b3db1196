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

// Package cells implements the cell layer of the spreadsheet. A cell holds
// what the user typed along with what was computed from it, and a CellMap holds
// every cell of a sheet. Editing one cell resolves it, possibly by solving
// backwards for the variables upstream of it, and then resolves every cell
// downstream of the change.
//
// Cells come in two states. Dirty cells are what an edit produces, and clean
// cells are what resolution produces and what a CellMap stores. Formula and
// Goal cells are only ever dirty, Solution and NoSolution cells are only ever
// clean, and the other kinds exist in both states.
package cells

import (
	"fmt"
	"strings"

	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/model"

	"github.com/iancoleman/strcase"
)

// Kind is the kind of a cell.
type Kind int

// These are all the kinds of cells.
const (
	KindEmpty Kind = iota
	KindText
	KindVariable
	KindConstant
	KindFormula
	KindGoal
	KindSolution
	KindNoSolution
	KindError
)

var kindNames = []string{
	KindEmpty:      "Empty",
	KindText:       "Text",
	KindVariable:   "Variable",
	KindConstant:   "Constant",
	KindFormula:    "Formula",
	KindGoal:       "Goal",
	KindSolution:   "Solution",
	KindNoSolution: "NoSolution",
	KindError:      "Error",
}

// String returns the name of the kind, such as NoSolution.
func (obj Kind) String() string {
	if obj < 0 || int(obj) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(obj))
	}
	return kindNames[obj]
}

// Name returns the snake case name of the kind, such as no_solution. This is
// the name used in documents and error messages.
func (obj Kind) Name() string {
	return strcase.ToSnake(obj.String())
}

// MarshalText returns the snake case name of the kind.
func (obj Kind) MarshalText() ([]byte, error) {
	if obj < 0 || int(obj) >= len(kindNames) {
		return nil, fmt.Errorf("invalid kind: %d", int(obj))
	}
	return []byte(obj.Name()), nil
}

// UnmarshalText accepts either form of the name of a kind.
func (obj *Kind) UnmarshalText(text []byte) error {
	k, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*obj = k
	return nil
}

// ParseKind returns the kind with this name, in either camel or snake case.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name || s == strcase.ToSnake(name) {
			return Kind(i), nil
		}
	}
	return KindEmpty, fmt.Errorf("unknown kind: %s", s)
}

// Cell is one of the cell structs in this package.
type Cell interface {
	fmt.Stringer

	// Kind returns the kind of this cell.
	Kind() Kind
}

// EmptyCell is a cell with nothing in it.
type EmptyCell struct{}

// TextCell holds some text, which can't be used in a formula.
type TextCell struct {
	Text string
}

// VariableCell holds a number which goal seeking may change.
type VariableCell struct {
	Value float64
}

// ConstantCell holds a number which goal seeking never changes.
type ConstantCell struct {
	Value float64
}

// FormulaCell is a formula that needs to be evaluated.
type FormulaCell struct {
	Model      *model.CellModel
	Expression string
}

// GoalCell is a formula which the user wants to equal Goal. PreviousValue is
// what the formula was before the edit.
type GoalCell struct {
	Goal          float64
	PreviousValue float64
	Model         *model.CellModel
	Expression    string
}

// SolutionCell is a formula along with its value.
type SolutionCell struct {
	Value      float64
	Model      *model.CellModel
	Expression string
}

// NoSolutionCell is a formula for which goal seeking failed. ComposedModel is
// the formula that was solved, in terms of the upstream variables, and is kept
// for diagnostics.
type NoSolutionCell struct {
	Goal          float64
	PreviousValue float64
	Model         *model.CellModel
	ComposedModel *model.CellModel
	Expression    string
}

// ErrorCell is a cell which failed to resolve. The RecoveryInput is the text to
// process again on the next resolution, and Deps are the cells it depended on,
// so that a change in one of them triggers that retry.
type ErrorCell struct {
	Err           interfaces.Error
	RecoveryInput string
	Deps          []string
}

// Kind returns the kind of this cell.
func (obj *EmptyCell) Kind() Kind { return KindEmpty }

// Kind returns the kind of this cell.
func (obj *TextCell) Kind() Kind { return KindText }

// Kind returns the kind of this cell.
func (obj *VariableCell) Kind() Kind { return KindVariable }

// Kind returns the kind of this cell.
func (obj *ConstantCell) Kind() Kind { return KindConstant }

// Kind returns the kind of this cell.
func (obj *FormulaCell) Kind() Kind { return KindFormula }

// Kind returns the kind of this cell.
func (obj *GoalCell) Kind() Kind { return KindGoal }

// Kind returns the kind of this cell.
func (obj *SolutionCell) Kind() Kind { return KindSolution }

// Kind returns the kind of this cell.
func (obj *NoSolutionCell) Kind() Kind { return KindNoSolution }

// Kind returns the kind of this cell.
func (obj *ErrorCell) Kind() Kind { return KindError }

// String returns a representation of this cell for debugging.
func (obj *EmptyCell) String() string { return "Empty()" }

// String returns a representation of this cell for debugging.
func (obj *TextCell) String() string { return fmt.Sprintf("Text(%q)", obj.Text) }

// String returns a representation of this cell for debugging.
func (obj *VariableCell) String() string { return fmt.Sprintf("Variable(%g)", obj.Value) }

// String returns a representation of this cell for debugging.
func (obj *ConstantCell) String() string { return fmt.Sprintf("Constant(%g)", obj.Value) }

// String returns a representation of this cell for debugging.
func (obj *FormulaCell) String() string {
	return fmt.Sprintf("Formula(%s)", obj.Expression)
}

// String returns a representation of this cell for debugging.
func (obj *GoalCell) String() string {
	return fmt.Sprintf("Goal(%s, %g)", obj.Expression, obj.Goal)
}

// String returns a representation of this cell for debugging.
func (obj *SolutionCell) String() string {
	return fmt.Sprintf("Solution(%s = %g)", obj.Expression, obj.Value)
}

// String returns a representation of this cell for debugging.
func (obj *NoSolutionCell) String() string {
	return fmt.Sprintf("NoSolution(%s, %g)", obj.Expression, obj.Goal)
}

// String returns a representation of this cell for debugging.
func (obj *ErrorCell) String() string {
	return fmt.Sprintf("Error(%s | %s)", obj.Err.Short(), obj.Err.Long())
}

// IsClean returns true if this cell can be stored in a CellMap.
func IsClean(cell Cell) bool {
	switch cell.(type) {
	case *FormulaCell, *GoalCell:
		return false
	}
	return true
}

// Deps returns the names of the cells that this cell immediately depends on.
func Deps(cell Cell) []string {
	switch x := cell.(type) {
	case *FormulaCell:
		return x.Model.Refs.Singles
	case *GoalCell:
		return x.Model.Refs.Singles
	case *SolutionCell:
		return x.Model.Refs.Singles
	case *NoSolutionCell:
		return x.Model.Refs.Singles
	case *ErrorCell:
		return x.Deps
	}
	return []string{}
}

// RecoveryInput returns the text that rebuilds the formula of this cell. It is
// empty for cells without a formula.
func RecoveryInput(cell Cell) string {
	switch x := cell.(type) {
	case *FormulaCell:
		return x.Expression
	case *GoalCell:
		return x.Expression
	case *SolutionCell:
		return x.Expression
	case *NoSolutionCell:
		return x.Expression
	case *ErrorCell:
		return x.RecoveryInput
	}
	return ""
}

// Value returns the number that this cell supplies to a formula, and false if
// it can't supply one.
func Value(cell Cell) (float64, bool) {
	switch x := cell.(type) {
	case *VariableCell:
		return x.Value, true
	case *ConstantCell:
		return x.Value, true
	case *SolutionCell:
		return x.Value, true
	}
	return 0, false
}

// newErrorCell builds an error cell. Any error which is not a displayable one
// is shown as an internal error.
func newErrorCell(err error, recoveryInput string, deps []string) *ErrorCell {
	if deps == nil {
		deps = []string{}
	}
	return &ErrorCell{
		Err:           interfaces.ToError(err),
		RecoveryInput: recoveryInput,
		Deps:          deps,
	}
}

// kindList joins the names of some kinds for messages.
func kindList(kinds ...Kind) string {
	xs := []string{}
	for _, k := range kinds {
		xs = append(xs, k.Name())
	}
	return strings.Join(xs, ", ")
}
