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

// Package funcs provides the registry of the functions that a formula can call.
// Every function has one descriptor which carries each of its implementations:
// the union contractors used for forward evaluation and for constraint
// propagation, and the numeric derivative used by the gradient solver.
package funcs

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/union"
)

// registeredFuncs is a global map of all possible funcs which can be used. You
// should never touch this map directly. Use methods like Register instead.
var registeredFuncs = make(map[string]*Func) // must initialize

// Contractor computes the domain of one node from the domains of others.
type Contractor func(args ...union.Union) union.Union

// Linker is the list of contractors for an operation of arity n. The first
// computes the result from the n arguments. The contractor at index i+1
// computes argument i from the result followed by the other arguments in
// order. For y = f(a, b) that is: Y = C0(A, B), A = C1(Y, B), B = C2(Y, A).
type Linker []Contractor

// Arity returns the number of arguments of the operation.
func (obj Linker) Arity() int {
	return len(obj) - 1
}

// Func is the descriptor of a registered function.
type Func struct {
	// Name is the name used in formulas.
	Name string

	// Linker holds the contractors for this function. Its length is the
	// arity plus one.
	Linker Linker

	// Eval returns the value of the function at a point, and its partial
	// derivative with respect to each argument.
	Eval func(args []float64) (float64, []float64)
}

// Arity returns the number of arguments the function takes.
func (obj *Func) Arity() int {
	return obj.Linker.Arity()
}

// ArityText returns the arity in the form that error messages print.
func (obj *Func) ArityText() string {
	return strconv.Itoa(obj.Arity())
}

// Union evaluates the function over union arguments.
func (obj *Func) Union(args ...union.Union) union.Union {
	return obj.Linker[0](args...)
}

// Validate makes sure we've built our struct properly.
func (obj *Func) Validate() error {
	if obj.Name == "" {
		return fmt.Errorf("empty name")
	}
	if len(obj.Linker) == 0 {
		return fmt.Errorf("func %s has no contractors", obj.Name)
	}
	for i, c := range obj.Linker {
		if c == nil {
			return fmt.Errorf("func %s has a nil contractor at %d", obj.Name, i)
		}
	}
	if obj.Eval == nil {
		return fmt.Errorf("func %s has no numeric implementation", obj.Name)
	}
	return nil
}

// Register makes a func available for use. It is commonly called in the init()
// method of the func at program startup. There is no matching Unregister
// function.
func Register(fn *Func) {
	if err := fn.Validate(); err != nil {
		panic(fmt.Sprintf("invalid func: %+v", err))
	}
	if _, exists := registeredFuncs[fn.Name]; exists {
		panic(fmt.Sprintf("a func named %s is already registered", fn.Name))
	}
	registeredFuncs[fn.Name] = fn
}

// Lookup returns the descriptor of the function.
func Lookup(name string) (*Func, error) {
	f, exists := registeredFuncs[name]
	if !exists {
		return nil, fmt.Errorf("not found")
	}
	return f, nil
}

// LookupCall returns the descriptor of the function, making sure that it can
// be called with argc arguments. The errors are the displayable kind, so they
// can be stored in a cell.
func LookupCall(name string, argc int) (*Func, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, &interfaces.UnknownFunctionError{Name: name}
	}
	if f.Arity() != argc {
		return nil, &interfaces.ArityError{
			Name:     name,
			Expected: f.ArityText(),
			Got:      argc,
		}
	}
	return f, nil
}

// Names returns the names of every registered function in sorted order.
func Names() []string {
	names := []string{}
	for name := range registeredFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
