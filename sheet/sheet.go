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

// Package sheet holds a whole spreadsheet: a grid of cells, the settings of its
// solver, and the journal of the edits that built it. A sheet is stored as a
// yaml document which lists those edits, and loading it replays them.
package sheet

import (
	"fmt"
	"sync"

	"github.com/purpleidea/bisheet/cells"
	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/solver/settings"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/google/uuid"
)

// Entry is an edit that was applied to a sheet.
type Entry struct {
	// ID identifies the edit.
	ID uuid.UUID

	Ref   string
	Input string

	// Changed are the cells that the edit changed, sorted.
	Changed []string
}

// Sheet is a grid of cells. It is safe for concurrent use.
type Sheet struct {
	Grid     cells.Grid
	Mode     cells.Mode
	Settings *settings.Settings

	// Observer is passed to the solver, and is optional.
	Observer backward.Observer

	Debug bool
	Logf  func(format string, v ...interface{})

	mutex    *sync.Mutex
	cells    cells.CellMap
	journal  []*Entry
	resolver *cells.Resolver
}

// Init validates the sheet and empties every cell.
func (obj *Sheet) Init() error {
	if err := obj.Grid.Validate(); err != nil {
		return err
	}
	if obj.Settings == nil {
		obj.Settings = settings.Default()
	}
	if err := obj.Settings.Validate(); err != nil {
		return errwrap.Wrapf(err, "invalid settings")
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // noop
	}

	obj.mutex = &sync.Mutex{}
	obj.cells = cells.EmptyMap(obj.Grid.Refs())
	obj.journal = []*Entry{}
	obj.resolver = &cells.Resolver{
		Mode: obj.Mode,
		Solver: &backward.Solver{
			Settings: obj.Settings,
			Observer: obj.Observer,
			Debug:    obj.Debug,
			Logf:     obj.Logf,
		},
		Debug: obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf("resolve: "+format, v...)
		},
	}
	return nil
}

// Apply types input into the cell ref, and resolves every cell that depends on
// it. The edit is added to the journal.
func (obj *Sheet) Apply(ref, input string) (*Entry, error) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()

	if _, _, err := obj.Grid.Index(ref); err != nil {
		return nil, err
	}
	update, err := obj.resolver.ResolveGraph(obj.cells, ref, input)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not apply %s", ref)
	}
	obj.cells = obj.cells.With(update)

	entry := &Entry{
		ID:      uuid.New(),
		Ref:     ref,
		Input:   input,
		Changed: update.Keys(),
	}
	obj.journal = append(obj.journal, entry)
	if obj.Debug {
		obj.Logf("edit %s: %s = %q changed %v", entry.ID, ref, input, entry.Changed)
	}
	return entry, nil
}

// Replay applies every edit in order. An edit that fails is skipped, and the
// remaining ones are still applied. All the failures are returned together.
func (obj *Sheet) Replay(edits []Edit) error {
	var reterr error
	for i, e := range edits {
		if _, err := obj.Apply(e.Ref, e.Input); err != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "edit #%d", i))
		}
	}
	return reterr
}

// Cell returns the current state of a cell.
func (obj *Sheet) Cell(ref string) (cells.Cell, error) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	cell, exists := obj.cells[ref]
	if !exists {
		return nil, fmt.Errorf("no cell named %s", ref)
	}
	return cell, nil
}

// Cells returns a copy of the current state of every cell.
func (obj *Sheet) Cells() cells.CellMap {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.cells.Copy()
}

// Journal returns the applied edits, oldest first.
func (obj *Sheet) Journal() []*Entry {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return append([]*Entry{}, obj.journal...)
}
