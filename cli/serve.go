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
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/purpleidea/bisheet/cells"
	cliUtil "github.com/purpleidea/bisheet/cli/util"
	"github.com/purpleidea/bisheet/prometheus"
	"github.com/purpleidea/bisheet/sheet"
	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/util/errwrap"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// DefaultListen is where the sheet is served by default.
const DefaultListen = "127.0.0.1:8080"

// ServeArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `serve` subcommand.
type ServeArgs struct {
	// File is the sheet document.
	File string `arg:"positional,required" help:"yaml sheet document"`

	Listen string `arg:"--listen" help:"address to listen on"`

	Prometheus bool `arg:"--prometheus" help:"serve solver metrics on /metrics"`

	Save bool `arg:"--save" help:"write every edit back to the document"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// serves until it is interrupted.
func (obj *ServeArgs) Run(ctx context.Context, data *cliUtil.Data) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	Logf := func(format string, v ...interface{}) {
		data.Flags.Logf("serve: "+format, v...)
	}
	listen := obj.Listen
	if listen == "" {
		listen = DefaultListen
	}

	var prom *prometheus.Prometheus
	var observer backward.Observer
	if obj.Prometheus {
		prom = &prometheus.Prometheus{}
		if err := prom.Init(); err != nil {
			return errwrap.Wrapf(err, "can't initialize prometheus instance")
		}
		observer = prom
	}

	fs := afero.NewOsFs()
	s, err := loadSheet(fs, obj.File, data.Flags, observer)
	if err != nil {
		return err
	}

	srv := &server{
		sheet:      s,
		prometheus: prom,
		debug:      data.Flags.Debug,
		logf:       Logf,
	}
	if obj.Save {
		srv.save = func() error {
			return s.Document().Save(fs, obj.File)
		}
	}
	if !data.Flags.Debug {
		gin.SetMode(gin.ReleaseMode) // for production
	}

	httpServer := &http.Server{
		Addr:    listen,
		Handler: srv.router(),
	}
	errch := make(chan error, 1)
	go func() {
		Logf("listening on: %s", listen)
		errch <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errch:
		return errwrap.Wrapf(err, "the server failed")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errwrap.Wrapf(err, "could not shutdown")
	}
	Logf("goodbye!")
	return nil
}

// server is the http api of a live sheet.
type server struct {
	sheet *sheet.Sheet

	// prometheus is optional.
	prometheus *prometheus.Prometheus

	// save is optional, and runs after every successful edit.
	save      func() error
	saveMutex sync.Mutex

	debug bool
	logf  func(format string, v ...interface{})
}

// cellInput is the body of an edit. A missing input is an error, but an empty
// one clears the cell.
type cellInput struct {
	Input *string `json:"input" binding:"required"`
}

// editResult is the response to an edit.
type editResult struct {
	ID      string        `json:"id"`
	Changed []*sheet.View `json:"changed"`
}

// ginLogger is a helper to get structured logs out of gin.
func (obj *server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if !obj.debug {
			return
		}
		method := c.Request.Method
		path := c.Request.URL.Path
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		obj.logf("%v %s %s (%d)", clientIP, method, path, status)
	}
}

func (obj *server) router() *gin.Engine {
	router := gin.New()
	router.Use(obj.ginLogger(), gin.Recovery())

	// filter with ?kind=error&kind=no_solution
	router.GET("/cells", func(c *gin.Context) {
		views := obj.sheet.Views()
		names := c.QueryArray("kind")
		if len(names) == 0 {
			c.JSON(http.StatusOK, views)
			return
		}
		kinds := []cells.Kind{}
		for _, name := range names {
			kind, err := cells.ParseKind(name)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			kinds = append(kinds, kind)
		}
		matched := obj.sheet.Cells().OfKind(kinds...)
		filtered := []*sheet.View{}
		for _, view := range views {
			if matched.Has(view.Ref) {
				filtered = append(filtered, view)
			}
		}
		c.JSON(http.StatusOK, filtered)
	})

	router.GET("/cells/:ref", func(c *gin.Context) {
		view, err := obj.sheet.View(c.Param("ref"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	})

	router.PUT("/cells/:ref", func(c *gin.Context) {
		var in cellInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entry, err := obj.sheet.Apply(c.Param("ref"), *in.Input)
		if obj.prometheus != nil {
			obj.prometheus.UpdateEditsTotal(err != nil)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if obj.save != nil {
			obj.saveMutex.Lock()
			err := obj.save()
			obj.saveMutex.Unlock()
			if err != nil {
				obj.logf("could not save: %+v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		result := &editResult{
			ID:      entry.ID.String(),
			Changed: []*sheet.View{},
		}
		all := obj.sheet.Cells()
		for _, ref := range entry.Changed {
			result.Changed = append(result.Changed, sheet.NewView(ref, all[ref]))
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/document", func(c *gin.Context) {
		b, err := yaml.Marshal(obj.sheet.Document())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/yaml", b)
	})

	if obj.prometheus != nil {
		router.GET("/metrics", gin.WrapH(obj.prometheus.Handler()))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	return router
}
