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

package sheet

import (
	"github.com/purpleidea/bisheet/cells"
	"github.com/purpleidea/bisheet/solver/settings"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Edit is some input typed into a cell.
type Edit struct {
	Ref   string `yaml:"ref"`
	Input string `yaml:"input"`
}

// Document is the stored form of a sheet.
type Document struct {
	Grid cells.Grid `yaml:"grid"`

	// Mode is the name of a cells.Mode. It defaults to bidirectional.
	Mode string `yaml:"mode,omitempty"`

	// Settings override the default solver settings. Missing fields keep
	// their default value.
	Settings *settings.Settings `yaml:"settings,omitempty"`

	// Edits are replayed in order to build the cells.
	Edits []Edit `yaml:"edits"`
}

// ParseDocument parses and validates a yaml document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{
		Settings: settings.Default(), // fields that are set overwrite these
	}
	if err := yaml.UnmarshalStrict(data, doc); err != nil {
		return nil, errwrap.Wrapf(err, "could not parse sheet")
	}
	if err := doc.Validate(); err != nil {
		return nil, errwrap.Wrapf(err, "invalid sheet")
	}
	return doc, nil
}

// LoadDocument reads and parses a document.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not read sheet")
	}
	return ParseDocument(data)
}

// Validate checks the document, but not its edits, which are only checked
// when they are applied.
func (obj *Document) Validate() error {
	if err := obj.Grid.Validate(); err != nil {
		return err
	}
	if _, err := obj.mode(); err != nil {
		return err
	}
	if obj.Settings != nil {
		return obj.Settings.Validate()
	}
	return nil
}

func (obj *Document) mode() (cells.Mode, error) {
	if obj.Mode == "" {
		return cells.ModeBidirectional, nil
	}
	return cells.ParseMode(obj.Mode)
}

// Save writes the document.
func (obj *Document) Save(fs afero.Fs, path string) error {
	data, err := yaml.Marshal(obj)
	if err != nil {
		return errwrap.Wrapf(err, "could not encode sheet")
	}
	return errwrap.Wrapf(afero.WriteFile(fs, path, data, 0644), "could not write sheet")
}

// NewSheet returns a sheet with the grid, mode and settings of the document.
// The caller may set the remaining fields before it runs Init and Replay.
func (obj *Document) NewSheet() (*Sheet, error) {
	mode, err := obj.mode()
	if err != nil {
		return nil, err
	}
	return &Sheet{
		Grid:     obj.Grid,
		Mode:     mode,
		Settings: obj.Settings,
	}, nil
}

// Document returns the document which rebuilds this sheet.
func (obj *Sheet) Document() *Document {
	edits := []Edit{}
	for _, e := range obj.Journal() {
		edits = append(edits, Edit{Ref: e.Ref, Input: e.Input})
	}
	return &Document{
		Grid:     obj.Grid,
		Mode:     obj.Mode.String(),
		Settings: obj.Settings,
		Edits:    edits,
	}
}
