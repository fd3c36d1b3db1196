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
)

// Expr represents an expression in the formula AST. Every node can be printed
// and walked.
type Expr interface {
	fmt.Stringer

	// Apply is a general purpose iterator method that operates on any AST
	// node. The children are visited first, in order, and then the node.
	Apply(fn func(Expr) error) error

	// Pos returns the zero-based byte offset of the node in the input.
	Pos() int
}
