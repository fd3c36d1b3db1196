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
	"strings"

	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/lang/parser"
	"github.com/purpleidea/bisheet/model"
)

// UserInput is what the user typed into a cell, classified without looking at
// the cell it was typed into.
type UserInput interface {
	isUserInput()
}

// EmptyInput is blank input.
type EmptyInput struct{}

// TextInput is text in double quotes.
type TextInput struct {
	Text string
}

// NumberInput is a bare number. What it means depends on the cell.
type NumberInput struct {
	Value float64
}

// VariableInput is a number with a ~ prefix.
type VariableInput struct {
	Value float64
}

// ConstantInput is a number with a # prefix.
type ConstantInput struct {
	Value float64
}

// FormulaInput is a valid formula, with or without a leading =.
type FormulaInput struct {
	Model      *model.CellModel
	Expression string
}

// ErrorInput is input that could not be understood.
type ErrorInput struct {
	Err           interfaces.Error
	RecoveryInput string
}

func (obj *EmptyInput) isUserInput()    {}
func (obj *TextInput) isUserInput()     {}
func (obj *NumberInput) isUserInput()   {}
func (obj *VariableInput) isUserInput() {}
func (obj *ConstantInput) isUserInput() {}
func (obj *FormulaInput) isUserInput()  {}
func (obj *ErrorInput) isUserInput()    {}

// MakeUserInput classifies the text typed into a cell.
func MakeUserInput(text string) UserInput {
	text = strings.TrimSpace(text)
	if text == "" {
		return &EmptyInput{}
	}

	if v, ok := parser.ParseNumber(text); ok {
		return &NumberInput{Value: v}
	}

	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return &TextInput{Text: text[1 : len(text)-1]}
	}

	if rest, ok := strings.CutPrefix(text, "#"); ok {
		v, ok := parser.ParseNumber(rest)
		if !ok {
			return &ErrorInput{Err: notANumber(text), RecoveryInput: text}
		}
		return &ConstantInput{Value: v}
	}

	if rest, ok := strings.CutPrefix(text, "~"); ok {
		v, ok := parser.ParseNumber(rest)
		if !ok {
			return &ErrorInput{Err: notANumber(text), RecoveryInput: text}
		}
		return &VariableInput{Value: v}
	}

	text = strings.TrimPrefix(text, "=")
	if text == "" {
		return &EmptyInput{}
	}
	m, err := model.Construct(text)
	if err != nil {
		return &ErrorInput{Err: interfaces.ToError(err), RecoveryInput: text}
	}
	return &FormulaInput{Model: m, Expression: text}
}

func notANumber(text string) *interfaces.SyntaxError {
	return &interfaces.SyntaxError{
		Input:  text,
		Offset: 1,
		Msg:    "expected a number",
	}
}

// processReplacement builds the dirty cell for input which replaces whatever
// the cell held before. A bare number becomes a variable.
func processReplacement(input UserInput) Cell {
	switch x := input.(type) {
	case *EmptyInput:
		return &EmptyCell{}
	case *TextInput:
		return &TextCell{Text: x.Text}
	case *NumberInput:
		return &VariableCell{Value: x.Value}
	case *VariableInput:
		return &VariableCell{Value: x.Value}
	case *ConstantInput:
		return &ConstantCell{Value: x.Value}
	case *FormulaInput:
		return &FormulaCell{Model: x.Model, Expression: x.Expression}
	case *ErrorInput:
		return newErrorCell(x.Err, x.RecoveryInput, nil)
	}
	panic("unhandled user input") // unreachable
}

// processSolution builds the dirty cell for input typed into a cell which
// holds a formula. A bare number sets a goal for that formula, unless the
// formula has no references and the number is a new value, in which case the
// cell becomes a plain variable.
func processSolution(cell Cell, input UserInput) Cell {
	x, ok := input.(*NumberInput)
	if !ok {
		return processReplacement(input)
	}

	var previous float64
	var m *model.CellModel
	var expression string
	switch c := cell.(type) {
	case *SolutionCell:
		if len(Deps(c)) == 0 && x.Value != c.Value {
			return &VariableCell{Value: x.Value}
		}
		previous, m, expression = c.Value, c.Model, c.Expression
	case *NoSolutionCell:
		previous, m, expression = c.PreviousValue, c.Model, c.Expression
	default:
		return processReplacement(input)
	}

	return &GoalCell{
		Goal:          x.Value,
		PreviousValue: previous,
		Model:         m,
		Expression:    expression,
	}
}

// ProcessUserInput returns the dirty cell for text typed into a clean cell,
// with goal seeking enabled.
func ProcessUserInput(cell Cell, text string) Cell {
	input := MakeUserInput(text)
	switch cell.(type) {
	case *SolutionCell, *NoSolutionCell:
		return processSolution(cell, input)
	}
	return processReplacement(input)
}

// ProcessUserInputForward returns the dirty cell for text typed into a clean
// cell, without goal seeking. Every edit replaces the cell.
func ProcessUserInputForward(cell Cell, text string) Cell {
	return processReplacement(MakeUserInput(text))
}
