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

package recwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher0(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sheet.yaml")
	if err := os.WriteFile(file, []byte("a"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}

	w, err := NewFileWatcher(file, Debug(testing.Verbose()), Logf(t.Logf))
	if err != nil {
		t.Errorf("could not watch: %+v", err)
		return
	}
	defer w.Close()

	// another file in the same directory is ignored
	if err := os.WriteFile(filepath.Join(dir, "other"), []byte("b"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}
	if err := os.WriteFile(file, []byte("c"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}

	select {
	case event := <-w.Events():
		if event.Error != nil {
			t.Errorf("unexpected error: %+v", event.Error)
			return
		}
		if filepath.Base(event.Body.Name) != "sheet.yaml" {
			t.Errorf("unexpected event: %v", event.Body)
		}
	case <-time.After(10 * time.Second):
		t.Errorf("timeout waiting for an event")
	}
}

func TestFileWatcherMissing0(t *testing.T) {
	if _, err := NewFileWatcher("/does/not/exist/sheet.yaml"); err == nil {
		t.Errorf("expected a missing directory to fail")
	}
}

func TestFileWatcherClose0(t *testing.T) {
	w, err := NewFileWatcher(filepath.Join(t.TempDir(), "sheet.yaml"))
	if err != nil {
		t.Errorf("could not watch: %+v", err)
		return
	}
	if err := w.Close(); err != nil {
		t.Errorf("could not close: %+v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Errorf("expected the events to be closed")
	}
}
