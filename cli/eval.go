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
	"context"
	"fmt"

	"github.com/purpleidea/bisheet/cells"
	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/lang/parser"
	"github.com/purpleidea/bisheet/model"
	"github.com/purpleidea/bisheet/solver/forward"
	"github.com/purpleidea/bisheet/util"
	"github.com/purpleidea/bisheet/util/errwrap"
)

// EvalArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `eval` subcommand.
type EvalArgs struct {
	// Expression is the formula to evaluate.
	Expression string `arg:"positional,required" help:"formula to evaluate"`

	Refs []string `arg:"--ref,separate" help:"value of a reference as NAME=VALUE"`
}

// Run executes the correct subcommand. It errors if there's ever an error.
func (obj *EvalArgs) Run(ctx context.Context, data *cliUtil.Data) error {
	m, lookup, err := bindModel(obj.Expression, obj.Refs)
	if err != nil {
		return err
	}
	v, err := forward.Eval(m, lookup)
	if err != nil {
		return err
	}
	fmt.Println(cells.RenderNumber(v))
	return nil
}

// bindModel constructs the model of a formula and parses a value for each of
// its references. Every reference must be bound.
func bindModel(expression string, refs []string) (*model.CellModel, map[string]float64, error) {
	m, err := model.Construct(expression)
	if err != nil {
		return nil, nil, err
	}
	bindings, err := cliUtil.ParseBindings(refs)
	if err != nil {
		return nil, nil, cliUtil.CliParseError(err)
	}

	var reterr error
	lookup := make(map[string]float64)
	for name, text := range bindings {
		if !util.StrInList(name, m.Refs.Singles) {
			reterr = errwrap.Append(reterr, fmt.Errorf("unused reference: %s", name))
			continue
		}
		v, ok := parser.ParseNumber(text)
		if !ok {
			reterr = errwrap.Append(reterr, fmt.Errorf("invalid number for %s: %q", name, text))
			continue
		}
		lookup[name] = v
	}
	for _, name := range m.Refs.Singles {
		if _, exists := bindings[name]; !exists {
			reterr = errwrap.Append(reterr, fmt.Errorf("missing reference: %s", name))
		}
	}
	if reterr != nil {
		return nil, nil, reterr
	}
	return m, lookup, nil
}
