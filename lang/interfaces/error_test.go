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

package interfaces

import (
	"fmt"
	"testing"

	"github.com/purpleidea/bisheet/util/errwrap"
)

func TestErrorLevels1(t *testing.T) {
	type test struct { // an individual test
		name  string
		err   Error
		short string
		title string
		long  string
	}
	values := []test{}

	{
		values = append(values, test{
			name:  "syntax",
			err:   &SyntaxError{Input: "1+", Offset: 2, Msg: "expected expression"},
			short: "Err: syntax",
			title: "Syntax error",
			long:  "The expression entered in the cell is not valid syntax.",
		})
	}
	{
		values = append(values, test{
			name:  "invalid ref",
			err:   &InvalidRefError{Name: "A1"},
			short: "Err: name",
			title: "Invalid reference",
			long:  "Reference 'A1' is not available.",
		})
	}
	{
		values = append(values, test{
			name:  "invalid kind of ref",
			err:   &InvalidKindOfRefError{Name: "A1", Kind: "text"},
			short: "Err: name",
			title: "Reference error",
			long:  "Reference 'A1' is of type 'text' and cannot be used in a formula.",
		})
	}
	{
		values = append(values, test{
			name:  "unknown function",
			err:   &UnknownFunctionError{Name: "foo"},
			short: "Err: unknown name",
			title: "Unknown function",
			long:  "Unknown function 'foo'",
		})
	}
	{
		values = append(values, test{
			name:  "arity",
			err:   &ArityError{Name: "pi", Expected: "0", Got: 1},
			short: "Err: arity name",
			title: "Arity error",
			long:  "Function pi() expects 0 arguments, got 1",
		})
	}
	{
		values = append(values, test{
			name:  "cycle",
			err:   &CycleError{},
			short: "Err: cycle",
			title: "Cycle error",
			long:  "This cell is part of a cycle of references and cannot be computed.",
		})
	}
	{
		values = append(values, test{
			name:  "infinity",
			err:   &InfinityError{},
			short: "Err: inf",
			title: "Overflow error",
			long:  "Result overflows to infinity.",
		})
	}
	{
		values = append(values, test{
			name:  "empty",
			err:   &EmptyError{},
			short: "Err: empty",
			title: "Invalid result",
			long:  "Invalid result: typically divide by zero, sqtr(-1), etc.",
		})
	}
	{
		values = append(values, test{
			name:  "internal",
			err:   &InternalError{Err: ErrNotSingleton},
			short: "Err: internal",
			title: "Internal error",
			long:  "Internal error: union is not a single value",
		})
	}

	for index, tc := range values { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.err.Short(); s != tc.short {
				t.Errorf("test #%d: short: got %q, expected %q", index, s, tc.short)
			}
			if s := tc.err.Title(); s != tc.title {
				t.Errorf("test #%d: title: got %q, expected %q", index, s, tc.title)
			}
			if s := tc.err.Long(); s != tc.long {
				t.Errorf("test #%d: long: got %q, expected %q", index, s, tc.long)
			}
			if tc.err.Error() == "" {
				t.Errorf("test #%d: empty error string", index)
			}
		})
	}
}

func TestToError1(t *testing.T) {
	if ToError(nil) != nil {
		t.Errorf("expected nil")
	}

	wrapped := errwrap.Wrapf(&CycleError{}, "resolving A1")
	e, ok := AsError(wrapped)
	if !ok {
		t.Errorf("expected to find the wrapped error")
		return
	}
	if _, ok := e.(*CycleError); !ok {
		t.Errorf("unexpected error type: %T", e)
	}

	plain := fmt.Errorf("boom")
	if _, ok := ToError(plain).(*InternalError); !ok {
		t.Errorf("expected an internal error")
	}
}

func TestHighlightText1(t *testing.T) {
	err := &SyntaxError{Input: "1 + * 2", Offset: 4, Msg: "expected expression"}
	exp := "<formula> @ 1:5\n\n1 + * 2\n    ^ expected expression\n"
	if s := err.HighlightText(); s != exp {
		t.Errorf("unexpected highlight:\n%s", s)
	}

	err = &SyntaxError{Input: "1", Offset: 5}
	if s := err.HighlightText(); s != "" {
		t.Errorf("expected no highlight, got:\n%s", s)
	}
}
