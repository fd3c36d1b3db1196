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
	"strings"

	"github.com/purpleidea/bisheet/cells"
	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/pgraph"
	"github.com/purpleidea/bisheet/sheet"
	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// SheetArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `sheet` subcommand.
type SheetArgs struct {
	cliUtil.GraphvizArgs

	// File is the sheet document.
	File string `arg:"positional,required" help:"yaml sheet document"`

	Set []string `arg:"--set,separate" help:"extra edit as REF=INPUT, applied in order"`

	Save bool `arg:"--save" help:"write the extra edits back to the document"`

	Format string `arg:"--format" default:"table" help:"output format: table or yaml"`
}

// Run executes the correct subcommand. It errors if there's ever an error.
func (obj *SheetArgs) Run(ctx context.Context, data *cliUtil.Data) error {
	fs := afero.NewOsFs()
	s, err := loadSheet(fs, obj.File, data.Flags, nil)
	if err != nil {
		return err
	}

	edits, err := parseEdits(obj.Set)
	if err != nil {
		return cliUtil.CliParseError(err)
	}
	if err := s.Replay(edits); err != nil {
		return err
	}
	if obj.Save && len(edits) > 0 {
		if err := s.Document().Save(fs, obj.File); err != nil {
			return err
		}
	}

	if obj.Graphviz != "" {
		if err := writeGraphviz(fs, s, obj.GraphvizArgs); err != nil {
			return err
		}
	}

	out, err := render(s, obj.Format)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// loadSheet builds a sheet from a document. The edits of the document which
// fail to apply are logged and skipped.
func loadSheet(fs afero.Fs, path string, flags cliUtil.Flags, observer backward.Observer) (*sheet.Sheet, error) {
	doc, err := sheet.LoadDocument(fs, path)
	if err != nil {
		return nil, err
	}
	s, err := doc.NewSheet()
	if err != nil {
		return nil, err
	}
	s.Observer = observer
	s.Debug = flags.Debug
	s.Logf = func(format string, v ...interface{}) {
		flags.Logf("sheet: "+format, v...)
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	if err := s.Replay(doc.Edits); err != nil {
		flags.Logf("sheet: %s: some edits were skipped: %+v", path, err)
	}
	return s, nil
}

// parseEdits parses a list of REF=INPUT arguments, keeping their order.
func parseEdits(list []string) ([]sheet.Edit, error) {
	edits := []sheet.Edit{}
	var reterr error
	for _, x := range list {
		ref, input, ok := strings.Cut(x, "=")
		if !ok {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(cliUtil.MissingEquals, "%s", x))
			continue
		}
		edits = append(edits, sheet.Edit{Ref: strings.TrimSpace(ref), Input: input})
	}
	if reterr != nil {
		return nil, reterr
	}
	return edits, nil
}

// render returns the text of a sheet in one of the output formats.
func render(s *sheet.Sheet, format string) (string, error) {
	switch format {
	case "", "table":
		return s.Render(), nil
	case "yaml":
		b, err := yaml.Marshal(s.Views())
		if err != nil {
			return "", errwrap.Wrapf(err, "could not encode the sheet")
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unknown format: %s", format)
}

// writeGraphviz writes the dependency graph of a sheet. Cells in error are
// red, and cells without a solution are orange.
func writeGraphviz(fs afero.Fs, s *sheet.Sheet, args cliUtil.GraphvizArgs) error {
	all := s.Cells()
	g, err := cells.CellMapToGraph(all)
	if err != nil {
		return err
	}
	g.Name = "sheet"
	highlight := func(ref string) string {
		switch all[ref].Kind() {
		case cells.KindError:
			return "color=red"
		case cells.KindNoSolution:
			return "color=orange"
		}
		return ""
	}
	if err := g.WriteGraphviz(fs, args.Graphviz, highlight); err != nil {
		return err
	}
	if args.GraphvizFilter == "" {
		return nil
	}
	return pgraph.ExecGraphviz(args.GraphvizFilter, args.Graphviz)
}
