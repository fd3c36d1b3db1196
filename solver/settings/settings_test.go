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

package settings

import (
	"testing"

	"github.com/purpleidea/bisheet/union"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/afero"
)

func TestDefault0(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Errorf("defaults are invalid: %+v", err)
	}
	if !s.MainHalt(50) || s.MainHalt(49) {
		t.Errorf("unexpected split limit")
	}
}

func TestParse0(t *testing.T) {
	data := []byte(`
max_splits: 7
gammas: [0.5]
refs_domain:
  lo: -10
  hi: 10
`)
	s, err := Parse(data)
	if err != nil {
		t.Errorf("could not parse: %+v", err)
		return
	}
	expected := Default()
	expected.MaxSplits = 7
	expected.Gammas = []float64{0.5}
	expected.RefsDomain = union.Interval{Lo: -10, Hi: 10}
	if diff := pretty.Compare(s, expected); diff != "" {
		t.Errorf("unexpected settings: (-got +want)\n%s", diff)
	}

	if _, err := Parse([]byte("")); err != nil {
		t.Errorf("an empty document should give the defaults: %+v", err)
	}
}

func TestParseErrors0(t *testing.T) {
	docs := []string{
		"max_split: 7\n",                   // unknown field
		"max_splits: 0\n",                  // too small
		"gammas: []\n",                     // no gammas
		"gammas: [1, -1]\n",                // negative gamma
		"verify_abs_tol: -1\n",             // negative tolerance
		"refs_domain: {lo: 1, hi: -1}\n",   // empty
		"global_domain: {lo: 1, hi: -1}\n", // empty
		"newton_max_iter: 0\n",
		"newton_polish_iter: -1\n",
		"csp_max_intervals: 0\n",
		"[1, 2]\n",
	}
	for index, doc := range docs {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("test #%d: expected an error for: %q", index, doc)
		}
	}
}

func TestLoad0(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/settings.yaml", []byte("csp_max_iter: 3\n"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}
	s, err := Load(fs, "/settings.yaml")
	if err != nil {
		t.Errorf("could not load: %+v", err)
		return
	}
	if s.CSPMaxIter != 3 {
		t.Errorf("unexpected value: %d", s.CSPMaxIter)
	}
	if _, err := Load(fs, "/missing.yaml"); err == nil {
		t.Errorf("expected a missing file to fail")
	}
}

func TestVerify0(t *testing.T) {
	s := Default()
	if !s.Verify(1, 1) || !s.Verify(1000.001, 1000) || !s.Verify(0.000001, 0) {
		t.Errorf("expected a match")
	}
	if s.Verify(1.1, 1) || s.Verify(0.001, 0) {
		t.Errorf("expected no match")
	}
}

func TestNewtonHalt0(t *testing.T) {
	halt := Default().NewtonHalt()
	if halt(1, 5, -1) {
		t.Errorf("a good step should continue")
	}
	if !halt(1, 5, -1e-9) {
		t.Errorf("a tiny step should halt")
	}
	if !halt(1, 5, 0.5) {
		t.Errorf("a worse step should halt")
	}
	if !halt(50, 5, -1) {
		t.Errorf("the iteration limit should halt")
	}
}

func TestDNInit0(t *testing.T) {
	s := Default()

	d := union.IntervalDomain{
		"x": {Lo: 0, Hi: 10},
		"y": {Lo: 2, Hi: 4},
	}
	// the average of 5 and 3 is inside both
	if diff := pretty.Compare(s.DNInit(d), map[string]float64{"x": 4, "y": 4}); diff != "" {
		t.Errorf("unexpected point: (-got +want)\n%s", diff)
	}

	d = union.IntervalDomain{
		"x": {Lo: 0, Hi: 2},
		"y": {Lo: 8, Hi: 10},
	}
	if diff := pretty.Compare(s.DNInit(d), map[string]float64{"x": 1, "y": 9}); diff != "" {
		t.Errorf("unexpected point: (-got +want)\n%s", diff)
	}

	if len(s.DNInit(union.IntervalDomain{})) != 0 {
		t.Errorf("expected an empty point")
	}
}

func TestPolishHalt0(t *testing.T) {
	s := Default()
	halt := s.PolishHalt()
	if halt(1, 5, -1e-12) {
		t.Errorf("a tiny step should continue")
	}
	if !halt(s.NewtonPolishIter, 5, -1) {
		t.Errorf("the iteration limit should halt")
	}
}
