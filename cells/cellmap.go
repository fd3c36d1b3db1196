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
	"github.com/purpleidea/bisheet/util"
)

// CellMap maps the name of each cell to its clean state. The methods never
// modify the map they are called on.
type CellMap map[string]Cell

// EmptyMap returns a map where every key is an empty cell.
func EmptyMap(keys []string) CellMap {
	out := make(CellMap, len(keys))
	for _, k := range keys {
		out[k] = &EmptyCell{}
	}
	return out
}

// Keys returns the sorted names of the cells.
func (obj CellMap) Keys() []string {
	return util.StrMapKeys(obj)
}

// Has returns true if the cell exists.
func (obj CellMap) Has(key string) bool {
	_, exists := obj[key]
	return exists
}

// ContainsKeys returns true if every key exists.
func (obj CellMap) ContainsKeys(keys []string) bool {
	for _, k := range keys {
		if !obj.Has(k) {
			return false
		}
	}
	return true
}

// Copy returns a shallow copy. Cells are never modified, so they are shared.
func (obj CellMap) Copy() CellMap {
	out := make(CellMap, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out
}

// With returns a copy where the cells of other replace those of this map.
func (obj CellMap) With(other CellMap) CellMap {
	out := obj.Copy()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Extract returns the cells with these keys. Missing keys are skipped.
func (obj CellMap) Extract(keys []string) CellMap {
	out := make(CellMap, len(keys))
	for _, k := range keys {
		if v, exists := obj[k]; exists {
			out[k] = v
		}
	}
	return out
}

// Without returns a copy without the cells with these keys.
func (obj CellMap) Without(keys []string) CellMap {
	out := obj.Copy()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// OfKind returns the cells of one of these kinds.
func (obj CellMap) OfKind(kinds ...Kind) CellMap {
	out := make(CellMap)
	for k, v := range obj {
		for _, kind := range kinds {
			if v.Kind() == kind {
				out[k] = v
				break
			}
		}
	}
	return out
}
