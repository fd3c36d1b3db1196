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
	"testing"

	"github.com/purpleidea/bisheet/lang/interfaces"

	"github.com/kylelemons/godebug/pretty"
	"gopkg.in/yaml.v2"
)

func TestKind0(t *testing.T) {
	if s := KindNoSolution.String(); s != "NoSolution" {
		t.Errorf("unexpected name: %s", s)
	}
	if s := KindNoSolution.Name(); s != "no_solution" {
		t.Errorf("unexpected name: %s", s)
	}
	for _, s := range []string{"no_solution", "NoSolution"} {
		if k, err := ParseKind(s); err != nil || k != KindNoSolution {
			t.Errorf("%s: unexpected kind: %v, %+v", s, k, err)
		}
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Errorf("expected an unknown kind to fail")
	}

	out, err := yaml.Marshal(map[string]Kind{"a": KindVariable, "b": KindError})
	if err != nil {
		t.Errorf("could not marshal: %+v", err)
		return
	}
	if s := string(out); s != "a: variable\nb: error\n" {
		t.Errorf("unexpected yaml: %q", s)
	}
	var kinds map[string]Kind
	if err := yaml.Unmarshal(out, &kinds); err != nil {
		t.Errorf("could not unmarshal: %+v", err)
		return
	}
	if kinds["a"] != KindVariable || kinds["b"] != KindError {
		t.Errorf("unexpected kinds: %v", kinds)
	}
}

func TestDeps0(t *testing.T) {
	m := mustModel(t, "x + y*x")
	type test struct {
		cell     Cell
		deps     []string
		recovery string
	}
	testCases := []test{
		{&EmptyCell{}, []string{}, ""},
		{&VariableCell{Value: 1}, []string{}, ""},
		{&FormulaCell{Model: m, Expression: "x + y*x"}, []string{"x", "y"}, "x + y*x"},
		{&SolutionCell{Value: 1, Model: m, Expression: "x + y*x"}, []string{"x", "y"}, "x + y*x"},
		{newErrorCell(&interfaces.CycleError{}, "z", []string{"z"}), []string{"z"}, "z"},
	}
	for index, tc := range testCases {
		if diff := pretty.Compare(Deps(tc.cell), tc.deps); diff != "" {
			t.Errorf("test #%d: unexpected deps: (-got +want)\n%s", index, diff)
		}
		if s := RecoveryInput(tc.cell); s != tc.recovery {
			t.Errorf("test #%d: unexpected recovery input: %q", index, s)
		}
	}
}

func TestCellMap0(t *testing.T) {
	cells := CellMap{
		"x": &EmptyCell{},
		"y": &VariableCell{Value: 5.5},
		"z": &ConstantCell{Value: 5},
	}
	if n := len(cells.OfKind(KindEmpty)); n != 1 {
		t.Errorf("unexpected count: %d", n)
	}
	if n := len(cells.OfKind(KindVariable, KindConstant)); n != 2 {
		t.Errorf("unexpected count: %d", n)
	}
	if n := len(cells.OfKind(KindSolution)); n != 0 {
		t.Errorf("unexpected count: %d", n)
	}

	other := cells.With(CellMap{"x": &TextCell{Text: "hi"}, "w": &EmptyCell{}})
	if diff := pretty.Compare(other.Keys(), []string{"w", "x", "y", "z"}); diff != "" {
		t.Errorf("unexpected keys: (-got +want)\n%s", diff)
	}
	if cells["x"].Kind() != KindEmpty {
		t.Errorf("the input was modified")
	}
	if !other.ContainsKeys([]string{"w", "z"}) || other.ContainsKeys([]string{"v"}) {
		t.Errorf("unexpected ContainsKeys result")
	}
	if diff := pretty.Compare(other.Without([]string{"w", "x"}).Keys(), []string{"y", "z"}); diff != "" {
		t.Errorf("unexpected keys: (-got +want)\n%s", diff)
	}
	if diff := pretty.Compare(other.Extract([]string{"y", "v"}).Keys(), []string{"y"}); diff != "" {
		t.Errorf("unexpected keys: (-got +want)\n%s", diff)
	}
	if n := len(EmptyMap([]string{"a", "b"}).OfKind(KindEmpty)); n != 2 {
		t.Errorf("unexpected count: %d", n)
	}
}
