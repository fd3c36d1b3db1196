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

// Package prometheus provides functions that are useful to control and manage
// the built-in prometheus instance.
package prometheus

import (
	"net/http"
	"strconv"

	"github.com/purpleidea/bisheet/solver/backward"
	"github.com/purpleidea/bisheet/solver/newton"
	"github.com/purpleidea/bisheet/union"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrometheusListen is registered in
// https://github.com/prometheus/prometheus/wiki/Default-port-allocations
const DefaultPrometheusListen = "127.0.0.1:9233"

// Prometheus is the struct that contains information about the prometheus
// instance. Run Init() on it. It is also an observer of the backwards solver.
type Prometheus struct {
	backward.NopObserver

	Listen string // the listen address for the net/http server

	registry *prometheus.Registry
	server   *http.Server

	editsTotal              *prometheus.CounterVec // total of edits applied to a sheet
	solvesTotal             *prometheus.CounterVec // total of backwards solves
	splitsTotal             prometheus.Counter     // total of domain splits
	contractionsTotal       prometheus.Counter     // total of candidate contractions
	newtonSteps             prometheus.Histogram   // steps taken per newton loop
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch
}

// Init some parameters - currently the Listen address.
func (obj *Prometheus) Init() error {
	if len(obj.Listen) == 0 {
		obj.Listen = DefaultPrometheusListen
	}
	obj.registry = prometheus.NewRegistry()

	obj.editsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bisheet_edits_total",
			Help: "Number of edits applied to a sheet.",
		},
		// errorful: did the edit fail to apply
		[]string{"errorful"},
	)
	obj.solvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bisheet_solves_total",
			Help: "Number of goals given to the backwards solver.",
		},
		// solved: was a solution found
		[]string{"solved"},
	)
	obj.splitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bisheet_splits_total",
			Help: "Number of domain splits of the backwards solver.",
		},
	)
	obj.contractionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bisheet_contractions_total",
			Help: "Number of candidate domains that were contracted.",
		},
	)
	obj.newtonSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bisheet_newton_steps",
			Help:    "Number of steps taken by each newton loop.",
			Buckets: prometheus.LinearBuckets(0, 10, 6),
		},
	)
	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bisheet_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)

	for _, c := range []prometheus.Collector{
		obj.editsTotal,
		obj.solvesTotal,
		obj.splitsTotal,
		obj.contractionsTotal,
		obj.newtonSteps,
		obj.processStartTimeSeconds,
	} {
		if err := obj.registry.Register(c); err != nil {
			return err
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	// create the labels up front so they show up before their first use
	for _, b := range []bool{true, false} {
		obj.editsTotal.WithLabelValues(strconv.FormatBool(b))
		obj.solvesTotal.WithLabelValues(strconv.FormatBool(b))
	}
	return nil
}

// Registry returns the registry that holds every metric.
func (obj *Prometheus) Registry() *prometheus.Registry {
	return obj.registry
}

// Handler returns the http handler which serves the metrics.
func (obj *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(obj.registry, promhttp.HandlerOpts{})
}

// Start runs a http server in a go routine, that responds to /metrics as
// prometheus would expect.
func (obj *Prometheus) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", obj.Handler())
	obj.server = &http.Server{
		Addr:    obj.Listen,
		Handler: mux,
	}
	go obj.server.ListenAndServe()
	return nil
}

// Stop the http server.
func (obj *Prometheus) Stop() error {
	if obj.server == nil {
		return nil
	}
	return obj.server.Close()
}

// UpdateEditsTotal counts an edit of a sheet.
func (obj *Prometheus) UpdateEditsTotal(errorful bool) {
	obj.editsTotal.WithLabelValues(strconv.FormatBool(errorful)).Inc()
}

// Contracted is part of the backward.Observer interface.
func (obj *Prometheus) Contracted(union.IntervalDomain, union.UnionDomain) {
	obj.contractionsTotal.Inc()
}

// NewtonDone is part of the backward.Observer interface.
func (obj *Prometheus) NewtonDone(result *newton.Result) {
	obj.newtonSteps.Observe(float64(result.Iter))
}

// Split is part of the backward.Observer interface.
func (obj *Prometheus) Split(string, int) {
	obj.splitsTotal.Inc()
}

// Return is part of the backward.Observer interface.
func (obj *Prometheus) Return(point map[string]float64) {
	obj.solvesTotal.WithLabelValues(strconv.FormatBool(point != nil)).Inc()
}
