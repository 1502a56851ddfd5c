// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart plots the scalability and efficiency reports.
package chart

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/clusterbench/ringperf/report"
)

// ErrNoPoints is returned when a table has no defined cells to plot.
var ErrNoPoints = errors.New("nothing to plot")

var yLabels = map[string]string{
	"scalability": "avg communication time (s)",
	"efficiency":  "parallel efficiency",
}

// Formats lists the file extensions Save accepts.
var Formats = []string{"png", "svg", "pdf"}

// New plots t, whose columns must be process counts, with one line
// per program and message size.
func New(t *report.Table) (*plot.Plot, error) {
	if t.Procs == nil {
		return nil, fmt.Errorf("%s report has no process-count columns", t.Name)
	}

	p := plot.New()
	p.Title.Text = t.Name
	p.X.Label.Text = "processes"
	p.Y.Label.Text = yLabels[t.Name]
	p.X.Scale = plot.LogScale{}
	p.Legend.Top = true

	var ticks []plot.Tick
	for _, n := range t.Procs {
		ticks = append(ticks, plot.Tick{Value: float64(n), Label: strconv.Itoa(n)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid())

	lines := 0
	for _, r := range t.Rows {
		var xys plotter.XYs
		for i, c := range r.Cells {
			if c.Defined {
				xys = append(xys, plotter.XY{X: float64(t.Procs[i]), Y: c.Value})
			}
		}
		if len(xys) == 0 {
			continue
		}
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		l.Color = plotutil.Color(lines)
		l.Dashes = plotutil.Dashes(lines / len(plotutil.DefaultColors))
		s.Color = l.Color
		s.Shape = plotutil.Shape(lines)
		p.Add(l, s)
		p.Legend.Add(fmt.Sprintf("%s %dB", r.Program, r.Size), l, s)
		lines++
	}
	if lines == 0 {
		return nil, fmt.Errorf("%s report: %w", t.Name, ErrNoPoints)
	}

	// Pad the log axis so the outermost points are not on the edge.
	p.X.Min = float64(t.Procs[0]) / 1.2
	p.X.Max = float64(t.Procs[len(t.Procs)-1]) * 1.2
	if p.Y.Min > 0 {
		p.Y.Min = 0
	}
	return p, nil
}

// Save plots t into path. The image format is taken from path's
// extension.
func Save(t *report.Table, path string) error {
	p, err := New(t)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
