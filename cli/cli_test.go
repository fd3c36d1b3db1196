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

package cli

import (
	"fmt"
	"strings"
	"testing"

	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/solver/forward"
	"github.com/purpleidea/bisheet/solver/settings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v2"
)

func testFlags(t *testing.T) cliUtil.Flags {
	return cliUtil.Flags{
		Debug: testing.Verbose(),
		Logf:  t.Logf,
	}
}

func TestBindModel0(t *testing.T) {
	type test struct { // an individual test
		code string
		refs []string
		fail bool
		out  float64
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{"1 + 2", nil, false, 3})
		testCases = append(testCases, test{"x*y", []string{"x=2", "y=-4"}, false, -8})
		testCases = append(testCases, test{"x", []string{"x=  -  5.5"}, false, -5.5})
	}
	{
		testCases = append(testCases, test{"x*y", []string{"x=2"}, true, 0})      // missing
		testCases = append(testCases, test{"x", []string{"x=2", "z=1"}, true, 0}) // unused
		testCases = append(testCases, test{"x", []string{"x=two"}, true, 0})      // bad number
		testCases = append(testCases, test{"x", []string{"x"}, true, 0})          // no equals
		testCases = append(testCases, test{"x +* 1", []string{"x=1"}, true, 0})   // syntax
		testCases = append(testCases, test{"nope(x)", []string{"x=1"}, true, 0})  // function
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.code), func(t *testing.T) {
			m, lookup, err := bindModel(tc.code, tc.refs)
			if tc.fail {
				if err == nil {
					t.Errorf("test #%d: expected an error", index)
				}
				return
			}
			if err != nil {
				t.Errorf("test #%d: could not bind: %+v", index, err)
				return
			}
			v, err := forward.Eval(m, lookup)
			if err != nil {
				t.Errorf("test #%d: could not eval: %+v", index, err)
				return
			}
			if v != tc.out {
				t.Errorf("test #%d: expected %g, got: %g", index, tc.out, v)
			}
		})
	}
}

func TestSolve0(t *testing.T) {
	out, err := solve("2*x + 1", 7, settings.Default(), testFlags(t))
	if err != nil {
		t.Errorf("could not solve: %+v", err)
		return
	}
	var point map[string]float64
	if err := yaml.Unmarshal([]byte(out), &point); err != nil {
		t.Errorf("could not decode %q: %+v", out, err)
		return
	}
	if x, exists := point["x"]; !exists || x < 2.9999 || x > 3.0001 {
		t.Errorf("unexpected solution: %v", point)
	}

	if _, err := solve("x^2 + 1", 0, settings.Default(), testFlags(t)); err != cliUtil.NoSolution {
		t.Errorf("expected no solution, got: %+v", err)
	}
}

func TestLoadSettings0(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := loadSettings(fs, "")
	if err != nil || s.MaxSplits != settings.Default().MaxSplits {
		t.Errorf("unexpected settings: %+v, %+v", s, err)
	}
	if _, err := loadSettings(fs, "/missing.yaml"); err == nil {
		t.Errorf("expected a missing file to fail")
	}
}

func TestParseEdits0(t *testing.T) {
	edits, err := parseEdits([]string{"B1==A1*2", " A1 =3", "C1="})
	if err != nil {
		t.Errorf("could not parse: %+v", err)
		return
	}
	expected := []struct{ Ref, Input string }{
		{"B1", "=A1*2"},
		{"A1", "3"},
		{"C1", ""},
	}
	for i, e := range edits {
		if e.Ref != expected[i].Ref || e.Input != expected[i].Input {
			t.Errorf("edit #%d: unexpected edit: %+v", i, e)
		}
	}
	if _, err := parseEdits([]string{"A1"}); err == nil {
		t.Errorf("expected a missing equals sign to fail")
	}
}

func TestLoadSheet0(t *testing.T) {
	fs := afero.NewMemMapFs()
	const data = `
grid: {columns: 2, rows: 1}
edits:
- {ref: A1, input: "2"}
- {ref: Q1, input: "1"}
- {ref: B1, input: "=A1^2"}
`
	if err := afero.WriteFile(fs, "/sheet.yaml", []byte(data), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}
	// the bad edit is skipped
	s, err := loadSheet(fs, "/sheet.yaml", testFlags(t), nil)
	if err != nil {
		t.Errorf("could not load: %+v", err)
		return
	}
	out, err := render(s, "table")
	if err != nil {
		t.Errorf("could not render: %+v", err)
		return
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if diff := pretty.Compare(strings.Fields(lines[len(lines)-1]), []string{"1", "2", "4"}); diff != "" {
		t.Errorf("unexpected render: (-got +want)\n%s", diff)
	}

	out, err = render(s, "yaml")
	if err != nil {
		t.Errorf("could not render: %+v", err)
		return
	}
	if !strings.Contains(out, "kind: solution") {
		t.Errorf("unexpected yaml:\n%s", out)
	}
	if _, err := render(s, "xml"); err == nil {
		t.Errorf("expected an unknown format to fail")
	}

	if err := writeGraphviz(fs, s, cliUtil.GraphvizArgs{Graphviz: "/sheet.dot"}); err != nil {
		t.Errorf("could not write graphviz: %+v", err)
		return
	}
	dot, err := afero.ReadFile(fs, "/sheet.dot")
	if err != nil {
		t.Errorf("could not read: %+v", err)
		return
	}
	if !strings.Contains(string(dot), `"A1" -> "B1";`) {
		t.Errorf("unexpected graphviz:\n%s", dot)
	}
}

func TestWatchLimiter0(t *testing.T) {
	type test struct {
		args  WatchArgs
		fail  bool
		limit rate.Limit
	}
	testCases := []test{}
	{
		testCases = append(testCases, test{
			args:  WatchArgs{},
			limit: rate.Inf,
		})
	}
	{
		testCases = append(testCases, test{
			args:  WatchArgs{Limit: 2, Burst: 1},
			limit: 2,
		})
	}
	{
		testCases = append(testCases, test{
			args: WatchArgs{Limit: 2, Burst: 0}, // blocked forever
			fail: true,
		})
	}
	{
		testCases = append(testCases, test{
			args: WatchArgs{Limit: -1, Burst: 1},
			fail: true,
		})
	}

	for index, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("test #%d", index), func(t *testing.T) {
			limiter, err := tc.args.limiter()
			if tc.fail {
				if err == nil {
					t.Errorf("expected an error")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %+v", err)
				return
			}
			if got := limiter.Limit(); got != tc.limit {
				t.Errorf("got limit %v, want %v", got, tc.limit)
			}
		})
	}
}
