// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collect gathers the logs of a batch of runs into a
// measure.Store.
//
// Problems with individual runs (malformed names, missing logs,
// unparsable timing lines, logs without timings) are logged and
// counted, never returned: one bad run does not stop the rest.
package collect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/clusterbench/ringperf/commlog"
	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/runid"
)

// ErrNoResults is returned when there is nothing to report.
var ErrNoResults = errors.New("no results to report")

// A Collector parses run logs and records their samples.
type Collector struct {
	// Dir is the directory holding the "<id>.out" logs.
	Dir string

	// Store receives the samples. It must not be nil.
	Store *measure.Store

	// Log receives progress and warnings. If nil, the logrus
	// standard logger is used.
	Log logrus.FieldLogger

	// Workers bounds the number of logs parsed concurrently.
	// Values <= 1 parse the logs one at a time, in order.
	Workers int

	// OnSample, if non-nil, is called for every recorded sample.
	// It may be called concurrently when Workers > 1.
	OnSample func(id runid.ID, s measure.Sample)

	mu    sync.Mutex
	stats Stats
}

// Stats counts the outcome of each run handled by a Collector.
type Stats struct {
	Runs      int // run names seen
	Recorded  int // runs that produced a sample
	BadName   int // names not in run identifier form
	Missing   int // runs without a log
	NoTimings int // logs without any valid timing line
	Failed    int // logs that could not be read
	BadLines  int // timing lines skipped across all logs
}

func (s Stats) String() string {
	return fmt.Sprintf("%d runs: %d recorded, %d bad names, %d missing logs, %d without timings, %d unreadable, %d bad lines",
		s.Runs, s.Recorded, s.BadName, s.Missing, s.NoTimings, s.Failed, s.BadLines)
}

// Stats returns the counts accumulated so far.
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Collector) count(f func(*Stats)) {
	c.mu.Lock()
	f(&c.stats)
	c.mu.Unlock()
}

func (c *Collector) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Run collects the runs named in names. It returns once every run
// has been handled, so the Store is complete when Run returns.
// The only error Run returns is ctx's.
func (c *Collector) Run(ctx context.Context, names []string) error {
	if c.Workers <= 1 {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.collect(name)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for _, name := range names {
		name := name
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.collect(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// collect handles a single run.
func (c *Collector) collect(name string) {
	c.count(func(s *Stats) { s.Runs++ })
	log := c.log()

	id, err := runid.Parse(name)
	if err != nil {
		c.count(func(s *Stats) { s.BadName++ })
		log.WithField("run", name).Warn("unexpected name format, skipping")
		return
	}
	fields := logrus.Fields{
		"program": id.Program,
		"procs":   id.Procs,
		"size":    id.Size,
		"tag":     id.Tag,
	}

	sample, warnings, err := commlog.ParseRun(c.Dir, id)
	for _, w := range warnings {
		var serr *commlog.SyntaxError
		if errors.As(w, &serr) {
			log.WithFields(fields).WithFields(logrus.Fields{"file": serr.FileName, "line": serr.Line}).Warnf("could not parse communication time: %s", serr.Msg)
		} else {
			log.WithFields(fields).Warn(w)
		}
	}
	c.count(func(s *Stats) { s.BadLines += len(warnings) })

	var missing *commlog.ArtifactMissingError
	switch {
	case err == nil:
	case errors.As(err, &missing):
		c.count(func(s *Stats) { s.Missing++ })
		log.WithFields(fields).WithField("file", missing.Path).Warn("log not found, skipping")
		return
	case errors.Is(err, commlog.ErrNoTimings):
		c.count(func(s *Stats) { s.NoTimings++ })
		log.WithFields(fields).WithField("file", commlog.Path(c.Dir, id)).Warn("no communication times found")
		return
	default:
		c.count(func(s *Stats) { s.Failed++ })
		log.WithFields(fields).WithError(err).Warn("could not read log, skipping")
		return
	}

	c.Store.Record(measure.Key{Program: id.Program, Procs: id.Procs, Size: id.Size}, sample)
	c.count(func(s *Stats) { s.Recorded++ })
	if c.OnSample != nil {
		c.OnSample(id, sample)
	}
	log.WithFields(fields).WithFields(logrus.Fields{
		"avg": fmt.Sprintf("%.6f", sample.Avg),
		"max": fmt.Sprintf("%.6f", sample.Max),
	}).Info("recorded run")
}
