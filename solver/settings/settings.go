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

// Package settings holds the tunable constants of the solvers, and builds the
// halting policies, the solution check and the starting point choice from
// them. The defaults can be overridden by a yaml document.
package settings

import (
	"fmt"
	"math"

	"github.com/purpleidea/bisheet/solver/csp"
	"github.com/purpleidea/bisheet/solver/newton"
	"github.com/purpleidea/bisheet/union"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Settings are the solver constants. The yaml field names are the snake case
// versions of the field names.
type Settings struct {
	// VerifyAbsTol and VerifyRelTol are the tolerances with which a
	// candidate solution must match its goal.
	VerifyAbsTol float64 `yaml:"verify_abs_tol"`
	VerifyRelTol float64 `yaml:"verify_rel_tol"`

	// MaxSplits is the number of domain splits after which the backwards
	// solver gives up.
	MaxSplits int `yaml:"max_splits"`

	// Gammas are the line search factors of the Newton step, tried in
	// order.
	Gammas []float64 `yaml:"gammas"`

	// NewtonMaxIter is the maximum number of Newton steps.
	NewtonMaxIter int `yaml:"newton_max_iter"`

	// NewtonMinImprovement stops the Newton loop once a step improves the
	// absolute value by less than this.
	NewtonMinImprovement float64 `yaml:"newton_min_improvement"`

	// NewtonPolishIter is the maximum number of double precision Newton
	// steps taken from a single precision result which failed to verify.
	// Zero turns this off.
	NewtonPolishIter int `yaml:"newton_polish_iter"`

	CSPMaxIter        int     `yaml:"csp_max_iter"`
	CSPMaxIntervals   int     `yaml:"csp_max_intervals"`
	CSPMinWidthShrink float64 `yaml:"csp_min_width_shrink"`

	// GlobalDomain is the starting domain of the inner nodes during
	// contraction.
	GlobalDomain union.Interval `yaml:"global_domain"`

	// RefsDomain is the starting domain of every free variable.
	RefsDomain union.Interval `yaml:"refs_domain"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		VerifyAbsTol:         1e-5,
		VerifyRelTol:         1e-5,
		MaxSplits:            50,
		Gammas:               []float64{1.0, 0.1, 0.01},
		NewtonMaxIter:        50,
		NewtonMinImprovement: 1e-6,
		NewtonPolishIter:     20,
		CSPMaxIter:           100,
		CSPMaxIntervals:      10,
		CSPMinWidthShrink:    0.1,
		GlobalDomain:         union.Interval{Lo: -1e10, Hi: 1e10},
		RefsDomain:           union.Interval{Lo: -1e10, Hi: 1e10},
	}
}

// Parse overlays a yaml document onto the defaults. Fields which are missing
// keep their default value.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, errwrap.Wrapf(err, "could not parse settings")
	}
	if err := s.Validate(); err != nil {
		return nil, errwrap.Wrapf(err, "invalid settings")
	}
	return s, nil
}

// Load reads and parses a settings file.
func Load(fs afero.Fs, path string) (*Settings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not read settings")
	}
	return Parse(data)
}

// Validate makes sure the settings can be used.
func (obj *Settings) Validate() error {
	if obj.VerifyAbsTol < 0 || obj.VerifyRelTol < 0 {
		return fmt.Errorf("negative tolerance")
	}
	if obj.MaxSplits < 1 {
		return fmt.Errorf("max_splits must be positive")
	}
	if len(obj.Gammas) == 0 {
		return fmt.Errorf("no gammas")
	}
	for _, g := range obj.Gammas {
		if !(g > 0) {
			return fmt.Errorf("gamma must be positive, got %g", g)
		}
	}
	if obj.NewtonMaxIter < 1 {
		return fmt.Errorf("newton_max_iter must be positive")
	}
	if obj.NewtonPolishIter < 0 {
		return fmt.Errorf("newton_polish_iter must not be negative")
	}
	if obj.CSPMaxIter < 1 {
		return fmt.Errorf("csp_max_iter must be positive")
	}
	if obj.CSPMaxIntervals < 1 {
		return fmt.Errorf("csp_max_intervals must be positive")
	}
	if obj.GlobalDomain.IsEmpty() {
		return fmt.Errorf("empty global_domain")
	}
	if obj.RefsDomain.IsEmpty() {
		return fmt.Errorf("empty refs_domain")
	}
	return nil
}

// CSPHalt returns the halting policy of the contraction loop.
func (obj *Settings) CSPHalt() csp.Halt {
	return csp.NewHalt(obj.CSPMaxIter, obj.CSPMaxIntervals, obj.CSPMinWidthShrink)
}

// NewtonHalt returns the halting policy of the Newton loop. The improvement is
// negative when the step helped, so the loop stops once it is too close to
// zero.
func (obj *Settings) NewtonHalt() newton.Halt {
	return func(iter int, value, absDiff float64) bool {
		return iter >= obj.NewtonMaxIter || absDiff > -obj.NewtonMinImprovement
	}
}

// PolishHalt returns the halting policy of the double precision Newton loop.
// It only stops on the iteration limit, since the loop ends by itself once no
// step improves the value.
func (obj *Settings) PolishHalt() newton.Halt {
	return func(iter int, value, absDiff float64) bool {
		return iter >= obj.NewtonPolishIter
	}
}

// MainHalt reports if the backwards solver has split too many times.
func (obj *Settings) MainHalt(splits int) bool {
	return splits >= obj.MaxSplits
}

// Verify reports if actual is close enough to goal to count as a solution.
func (obj *Settings) Verify(actual, goal float64) bool {
	return math.Abs(actual-goal) <= obj.VerifyAbsTol+obj.VerifyRelTol*math.Abs(goal)
}

// DNInit picks the starting point of the Newton loop inside a domain. The
// midpoints of every dimension are averaged, and if that average lies inside
// of every interval it is used for all of them, which favours symmetric
// solutions. Otherwise the midpoints are used.
func (obj *Settings) DNInit(d union.IntervalDomain) map[string]float64 {
	midpoints := d.Midpoint()
	if len(midpoints) == 0 {
		return midpoints
	}

	sum := 0.0
	for _, key := range d.Keys() { // sorted for a stable sum
		sum += midpoints[key]
	}
	avg := sum / float64(len(midpoints))

	for _, i := range d {
		if !i.Contains(avg) {
			return midpoints
		}
	}
	out := make(map[string]float64, len(d))
	for key := range d {
		out[key] = avg
	}
	return out
}
