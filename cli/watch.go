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
	"os"
	"os/signal"
	"syscall"
	"time"

	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/util/errwrap"
	"github.com/purpleidea/bisheet/util/recwatch"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

// WatchArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `watch` subcommand.
type WatchArgs struct {
	// File is the sheet document.
	File string `arg:"positional,required" help:"yaml sheet document"`

	Format string `arg:"--format" default:"table" help:"output format: table or yaml"`

	// Limit is the number of renders per second to allow. Zero means no
	// limit. Events which arrive while limited are coalesced into one.
	Limit float64 `arg:"--limit" help:"max renders per second, 0 for no limit"`

	Burst int `arg:"--burst" default:"1" help:"number of renders allowed at once when limited"`
}

// limiter returns the render rate limiter for these args.
func (obj *WatchArgs) limiter() (*rate.Limiter, error) {
	if obj.Limit < 0 {
		return nil, fmt.Errorf("negative limit: %v", obj.Limit)
	}
	if obj.Limit == 0 {
		return rate.NewLimiter(rate.Inf, 0), nil
	}
	if obj.Burst <= 0 { // blocked
		return nil, fmt.Errorf("permanently limited (limit != 0, burst = %d)", obj.Burst)
	}
	return rate.NewLimiter(rate.Limit(obj.Limit), obj.Burst), nil
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// renders the sheet once, and then again every time the document changes,
// until it is interrupted.
func (obj *WatchArgs) Run(ctx context.Context, data *cliUtil.Data) error {
	if obj.Format != "table" && obj.Format != "yaml" {
		return cliUtil.CliParseError(fmt.Errorf("unknown format: %s", obj.Format))
	}
	limiter, err := obj.limiter()
	if err != nil {
		return cliUtil.CliParseError(err)
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	Logf := func(format string, v ...interface{}) {
		data.Flags.Logf("watch: "+format, v...)
	}
	watcher, err := recwatch.NewFileWatcher(
		obj.File,
		recwatch.Debug(data.Flags.Debug),
		recwatch.Logf(func(format string, v ...interface{}) {
			data.Flags.Logf("recwatch: "+format, v...)
		}),
	)
	if err != nil {
		return errwrap.Wrapf(err, "could not watch %s", obj.File)
	}
	defer watcher.Close()

	fs := afero.NewOsFs()
	show := func() {
		s, err := loadSheet(fs, obj.File, data.Flags, nil)
		if err != nil { // the file might be half written
			Logf("could not load: %+v", err)
			return
		}
		out, err := render(s, obj.Format)
		if err != nil {
			Logf("could not render: %+v", err)
			return
		}
		fmt.Print(out)
	}

	show()
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if err := event.Error; err != nil {
				return err
			}
			if data.Flags.Debug {
				Logf("event: %v", event.Body)
			}

			now := time.Now()
			if d := limiter.ReserveN(now, 1).DelayFrom(now); d > 0 {
				Logf("limited (rate: %v/sec, burst: %d, next: %v)", obj.Limit, obj.Burst, d)
				if err := coalesce(ctx, watcher, d); err != nil {
					return err
				}
			}
			show()

		case <-ctx.Done():
			Logf("goodbye!")
			return nil
		}
	}
}

// coalesce consumes the events of the watcher until the delay expires. Any
// error event is returned.
func coalesce(ctx context.Context, watcher *recwatch.FileWatcher, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-timer.C: // the wait is over
			return nil

		case event, ok := <-watcher.Events():
			if !ok {
				return nil // show the pending render anyways
			}
			if err := event.Error; err != nil {
				return err
			}

		case <-ctx.Done():
			return nil
		}
	}
}
