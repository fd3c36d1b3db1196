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

// Package forward evaluates a formula at a point, and turns the resulting
// union into a single number or into the error that explains why it isn't one.
package forward

import (
	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/model"
	"github.com/purpleidea/bisheet/union"
	"github.com/purpleidea/bisheet/util/errwrap"
)

// Solve evaluates the model with each reference lifted to a singleton union.
// Every reference of the model must be present in lookup.
func Solve(m *model.CellModel, lookup map[string]float64) (union.Union, error) {
	domain := make(union.UnionDomain, len(lookup))
	for name, x := range lookup {
		domain[name] = union.Single(x)
	}
	u, err := m.Union(domain)
	if err != nil {
		return union.Empty(), &interfaces.InternalError{Err: errwrap.Wrapf(err, "forward")}
	}
	return u, nil
}

// UnionToSingleNumber classifies the result of a forward evaluation. A finite
// single interval is a number, and its midpoint is returned. Otherwise this
// fails with an EmptyError, an InfinityError, or an InternalError when there
// is more than one interval, which never happens for a formula evaluated at a
// point.
func UnionToSingleNumber(u union.Union) (float64, error) {
	if u.IsEmpty() {
		return 0, &interfaces.EmptyError{}
	}
	if !u.IsFinite() {
		return 0, &interfaces.InfinityError{}
	}
	if !u.IsSingle() {
		return 0, &interfaces.InternalError{Err: interfaces.ErrNotSingleton}
	}
	return u.Hull().Midpoint(), nil
}

// Eval is Solve followed by UnionToSingleNumber.
func Eval(m *model.CellModel, lookup map[string]float64) (float64, error) {
	u, err := Solve(m, lookup)
	if err != nil {
		return 0, err
	}
	return UnionToSingleNumber(u)
}
