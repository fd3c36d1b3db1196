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

package ast

import (
	"fmt"

	"github.com/purpleidea/bisheet/lang/interfaces"
	"github.com/purpleidea/bisheet/util"
)

// CollectRefs returns the names of every variable referenced by the expression
// in order of first appearance, without duplicates.
func CollectRefs(expr interfaces.Expr) []string {
	names := []string{}
	_ = expr.Apply(func(node interfaces.Expr) error { // never errors
		if x, ok := node.(*ExprRef); ok {
			names = append(names, x.Name)
		}
		return nil
	})
	return util.StrRemoveDuplicatesInList(names)
}

// CollectFuncs returns the names of every function called by the expression
// in order of first appearance, without duplicates.
func CollectFuncs(expr interfaces.Expr) []string {
	names := []string{}
	_ = expr.Apply(func(node interfaces.Expr) error { // never errors
		if x, ok := node.(*ExprCall); ok {
			names = append(names, x.Name)
		}
		return nil
	})
	return util.StrRemoveDuplicatesInList(names)
}

// Validate checks that every node in the tree is one of the known types. This
// catches foreign interfaces.Expr implementations before they reach the model
// builders, which all switch on these types.
func Validate(expr interfaces.Expr) error {
	return expr.Apply(func(node interfaces.Expr) error {
		switch x := node.(type) {
		case *ExprNum, *ExprRef, *ExprNeg, *ExprPowInt, *ExprCall:
			return nil
		case *ExprBinary:
			switch x.Op {
			case OperatorAdd, OperatorSub, OperatorMul, OperatorDiv, OperatorPow:
				return nil
			}
			return fmt.Errorf("unknown operator: %s", x.Op)
		default:
			return fmt.Errorf("unknown expression: %T", node)
		}
	})
}
