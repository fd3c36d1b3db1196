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
	"strings"
)

// Byline gives a succinct representation of the position, but is useful only
// in debugging. In order to generate pretty error messages, see HighlightText.
func (obj *SyntaxError) Byline() string {
	// We convert to 1-based for user display.
	return fmt.Sprintf("<formula> @ 1:%d", obj.Offset+1)
}

// HighlightText generates a generic description that visually indicates where
// in the input the parser failed. If the offset is out of range, then it
// returns the empty string.
func (obj *SyntaxError) HighlightText() string {
	if obj.Offset < 0 || obj.Offset > len(obj.Input) || strings.Contains(obj.Input, "\n") {
		return ""
	}

	result := &strings.Builder{}
	result.WriteString(obj.Byline())
	result.WriteString("\n\n")
	result.WriteString(obj.Input + "\n")
	result.WriteString(strings.Repeat(" ", obj.Offset))
	result.WriteString("^ " + obj.Msg + "\n")

	return result.String()
}
