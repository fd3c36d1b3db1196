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

// Package interfaces contains the common interfaces and error values which are
// shared by the language, solver and cell layers.
package interfaces

import (
	"errors"
	"fmt"

	"github.com/purpleidea/bisheet/util"
)

const (
	// ErrNotSingleton is returned when a union with more than one value is
	// used where exactly one number was expected.
	ErrNotSingleton = util.Error("union is not a single value")

	// ErrGoalNotExpected is returned when a goal cell reaches a code path
	// which only handles forward resolution.
	ErrGoalNotExpected = util.Error("unexpected goal cell")
)

// Error is a failure which can be displayed to a user at three levels of
// detail. Every error that can end up stored inside of a cell implements this.
type Error interface {
	error

	// Short is a compact code which fits inside of a grid cell.
	Short() string

	// Title is a one line heading for the failure.
	Title() string

	// Long is the full human readable description.
	Long() string
}

// AsError returns the displayable error contained in err, if there is one.
func AsError(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ToError converts any error into a displayable one. Errors which aren't
// already displayable are treated as internal errors.
func ToError(err error) Error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}
	return &InternalError{Err: err}
}

// SyntaxError is returned when the text does not match the expression grammar.
type SyntaxError struct {
	// Input is the text that was being parsed.
	Input string

	// Offset is the zero-based byte offset where parsing failed.
	Offset int

	// Msg describes what the parser expected.
	Msg string
}

// Error returns a string representation of this error.
func (obj *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", obj.Offset, obj.Msg)
}

// Short returns the compact representation of this error.
func (obj *SyntaxError) Short() string { return "Err: syntax" }

// Title returns the heading for this error.
func (obj *SyntaxError) Title() string { return "Syntax error" }

// Long returns the full description of this error.
func (obj *SyntaxError) Long() string {
	return "The expression entered in the cell is not valid syntax."
}

// InvalidRefError is returned when a formula references a name that is absent
// from the current context.
type InvalidRefError struct {
	Name string
}

// Error returns a string representation of this error.
func (obj *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid reference: %s", obj.Name)
}

// Short returns the compact representation of this error.
func (obj *InvalidRefError) Short() string { return "Err: name" }

// Title returns the heading for this error.
func (obj *InvalidRefError) Title() string { return "Invalid reference" }

// Long returns the full description of this error.
func (obj *InvalidRefError) Long() string {
	return fmt.Sprintf("Reference '%s' is not available.", obj.Name)
}

// InvalidKindOfRefError is returned when a formula references a cell whose kind
// can't supply a number.
type InvalidKindOfRefError struct {
	Name string
	Kind string
}

// Error returns a string representation of this error.
func (obj *InvalidKindOfRefError) Error() string {
	return fmt.Sprintf("invalid kind of reference: %s is %s", obj.Name, obj.Kind)
}

// Short returns the compact representation of this error.
func (obj *InvalidKindOfRefError) Short() string { return "Err: name" }

// Title returns the heading for this error.
func (obj *InvalidKindOfRefError) Title() string { return "Reference error" }

// Long returns the full description of this error.
func (obj *InvalidKindOfRefError) Long() string {
	return fmt.Sprintf("Reference '%s' is of type '%s' and cannot be used in a formula.", obj.Name, obj.Kind)
}

// UnknownFunctionError is returned when a function is not in the registry.
type UnknownFunctionError struct {
	Name string
}

// Error returns a string representation of this error.
func (obj *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", obj.Name)
}

// Short returns the compact representation of this error.
func (obj *UnknownFunctionError) Short() string { return "Err: unknown name" }

// Title returns the heading for this error.
func (obj *UnknownFunctionError) Title() string { return "Unknown function" }

// Long returns the full description of this error.
func (obj *UnknownFunctionError) Long() string {
	return fmt.Sprintf("Unknown function '%s'", obj.Name)
}

// ArityError is returned when a function is called with the wrong number of
// arguments.
type ArityError struct {
	Name string

	// Expected is the human readable arity that the function accepts.
	Expected string

	// Got is the number of arguments in the call.
	Got int
}

// Error returns a string representation of this error.
func (obj *ArityError) Error() string {
	return fmt.Sprintf("arity error: %s() expects %s, got %d", obj.Name, obj.Expected, obj.Got)
}

// Short returns the compact representation of this error.
func (obj *ArityError) Short() string { return "Err: arity name" }

// Title returns the heading for this error.
func (obj *ArityError) Title() string { return "Arity error" }

// Long returns the full description of this error.
func (obj *ArityError) Long() string {
	return fmt.Sprintf("Function %s() expects %s arguments, got %d", obj.Name, obj.Expected, obj.Got)
}

// CycleError is stored in every cell that is part of, or downstream of, a
// cycle of references.
type CycleError struct{}

// Error returns a string representation of this error.
func (obj *CycleError) Error() string { return "cycle error" }

// Short returns the compact representation of this error.
func (obj *CycleError) Short() string { return "Err: cycle" }

// Title returns the heading for this error.
func (obj *CycleError) Title() string { return "Cycle error" }

// Long returns the full description of this error.
func (obj *CycleError) Long() string {
	return "This cell is part of a cycle of references and cannot be computed."
}

// InfinityError is returned when a forward evaluation is unbounded.
type InfinityError struct{}

// Error returns a string representation of this error.
func (obj *InfinityError) Error() string { return "infinity error" }

// Short returns the compact representation of this error.
func (obj *InfinityError) Short() string { return "Err: inf" }

// Title returns the heading for this error.
func (obj *InfinityError) Title() string { return "Overflow error" }

// Long returns the full description of this error.
func (obj *InfinityError) Long() string { return "Result overflows to infinity." }

// EmptyError is returned when a forward evaluation has no value, for example
// when dividing by zero.
type EmptyError struct{}

// Error returns a string representation of this error.
func (obj *EmptyError) Error() string { return "empty error" }

// Short returns the compact representation of this error.
func (obj *EmptyError) Short() string { return "Err: empty" }

// Title returns the heading for this error.
func (obj *EmptyError) Title() string { return "Invalid result" }

// Long returns the full description of this error.
func (obj *EmptyError) Long() string {
	return "Invalid result: typically divide by zero, sqrt(-1), etc."
}

// InternalError signals a broken invariant. It is always a bug.
type InternalError struct {
	Err error
}

// Error returns a string representation of this error.
func (obj *InternalError) Error() string {
	if obj.Err == nil {
		return "internal error"
	}
	return fmt.Sprintf("internal error: %s", obj.Err.Error())
}

// Unwrap returns the underlying cause.
func (obj *InternalError) Unwrap() error { return obj.Err }

// Short returns the compact representation of this error.
func (obj *InternalError) Short() string { return "Err: internal" }

// Title returns the heading for this error.
func (obj *InternalError) Title() string { return "Internal error" }

// Long returns the full description of this error.
func (obj *InternalError) Long() string {
	if obj.Err == nil {
		return "Internal error."
	}
	return fmt.Sprintf("Internal error: %s", obj.Err.Error())
}
