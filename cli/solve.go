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

	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/model"
	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/solver/settings"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/sanity-io/litter"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// SolveArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `solve` subcommand.
type SolveArgs struct {
	// Expression is the formula to solve.
	Expression string `arg:"positional,required" help:"formula to solve"`

	Goal float64 `arg:"--goal,required" help:"value the formula must have"`

	Settings string `arg:"--settings" help:"yaml file with solver settings"`
}

// Run executes the correct subcommand. It errors if there's ever an error.
func (obj *SolveArgs) Run(ctx context.Context, data *cliUtil.Data) error {
	s, err := loadSettings(afero.NewOsFs(), obj.Settings)
	if err != nil {
		return err
	}
	if data.Flags.Debug {
		data.Flags.Logf("solve: settings: %s", litter.Sdump(s))
	}

	out, err := solve(obj.Expression, obj.Goal, s, data.Flags)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// loadSettings returns the defaults when no path is given.
func loadSettings(fs afero.Fs, path string) (*settings.Settings, error) {
	if path == "" {
		return settings.Default(), nil
	}
	return settings.Load(fs, path)
}

// solve returns the solution as a yaml document.
func solve(expression string, goal float64, s *settings.Settings, flags cliUtil.Flags) (string, error) {
	m, err := model.Construct(expression)
	if err != nil {
		return "", err
	}
	solver := &backward.Solver{
		Settings: s,
		Debug:    flags.Debug,
		Logf:     flags.Logf,
	}
	point, err := solver.Solve(m, goal)
	if err != nil {
		return "", err
	}
	if point == nil {
		return "", cliUtil.NoSolution
	}
	b, err := yaml.Marshal(point) // keys are sorted
	if err != nil {
		return "", errwrap.Wrapf(err, "could not encode the solution")
	}
	return string(b), nil
}
