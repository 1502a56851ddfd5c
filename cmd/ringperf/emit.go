// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/option"

	"github.com/clusterbench/ringperf/chart"
	"github.com/clusterbench/ringperf/collect"
	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/publish"
	"github.com/clusterbench/ringperf/report"
)

// emit writes the reports for st, draws charts and publishes the
// results, as configured.
func (o *options) emit(ctx context.Context, st *measure.Store) error {
	cfg := o.cfg
	tables, err := collect.Reports(st)
	if errors.Is(err, collect.ErrNoResults) {
		o.log.Warn("no results to report")
		return nil
	}
	if err != nil {
		return err
	}

	paths, err := collect.WriteReports(o.log, tables, cfg.Outputs.Map(), cfg.Formats)
	if err != nil {
		return err
	}

	if cfg.Charts.Dir != "" {
		charts, err := o.drawCharts(tables)
		if err != nil {
			return err
		}
		paths = append(paths, charts...)
	}

	if cfg.Publish.Bucket != "" {
		var opts []option.ClientOption
		if cfg.Publish.Credentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Publish.Credentials))
		}
		p, err := publish.NewGCS(ctx, cfg.Publish.Bucket, cfg.Publish.Prefix, opts...)
		if err != nil {
			return err
		}
		defer p.Close()
		urls, err := p.Publish(ctx, paths...)
		for _, u := range urls {
			o.log.WithField("url", u).Info("published")
		}
		if err != nil {
			return err
		}
	}

	for _, path := range paths {
		fmt.Fprintln(o.stdout, path)
	}
	o.log.Info("scalability analysis complete")
	return nil
}

func (o *options) drawCharts(tables []*report.Table) ([]string, error) {
	cfg := o.cfg
	if err := os.MkdirAll(cfg.Charts.Dir, 0o777); err != nil {
		return nil, err
	}
	outputs := cfg.Outputs.Map()
	var paths []string
	for _, t := range tables {
		if t.Procs == nil {
			continue
		}
		base := filepath.Join(cfg.Charts.Dir, filepath.Base(outputs[t.Name]))
		path := collect.OutputPath(base, cfg.Charts.Format)
		err := chart.Save(t, path)
		if errors.Is(err, chart.ErrNoPoints) {
			o.log.WithField("report", t.Name).Warn("nothing to chart")
			continue
		}
		if err != nil {
			return paths, fmt.Errorf("%s chart: %w", t.Name, err)
		}
		o.log.WithField("file", path).Infof("%s chart saved", t.Name)
		paths = append(paths, path)
	}
	return paths, nil
}
