// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/pflag"

	"github.com/clusterbench/ringperf/config"
)

// outputFlags are the flags shared by commands that write reports.
// Each overrides the matching config setting only if it was given.
type outputFlags struct {
	performance, scalability, efficiency string
	formats                              []string
	chartDir, chartFormat                string
	bucket, prefix, credentials          string
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.performance, "performance", "", "write the performance report to `file`")
	fs.StringVar(&f.scalability, "scalability", "", "write the scalability report to `file`")
	fs.StringVar(&f.efficiency, "efficiency", "", "write the efficiency report to `file`")
	fs.StringSliceVar(&f.formats, "format", nil, "report `formats`: csv, text, html")
	fs.StringVar(&f.chartDir, "charts", "", "draw charts into `dir`")
	fs.StringVar(&f.chartFormat, "chart-format", "", "chart image `format`: png, svg, pdf")
	fs.StringVar(&f.bucket, "bucket", "", "upload outputs to GCS `bucket`")
	fs.StringVar(&f.prefix, "prefix", "", "object name `prefix` for uploads")
	fs.StringVar(&f.credentials, "credentials", "", "GCS service account key `file`")
}

func (f *outputFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("performance", &cfg.Outputs.Performance, f.performance)
	set("scalability", &cfg.Outputs.Scalability, f.scalability)
	set("efficiency", &cfg.Outputs.Efficiency, f.efficiency)
	if fs.Changed("format") {
		cfg.Formats = f.formats
	}
	set("charts", &cfg.Charts.Dir, f.chartDir)
	set("chart-format", &cfg.Charts.Format, f.chartFormat)
	set("bucket", &cfg.Publish.Bucket, f.bucket)
	set("prefix", &cfg.Publish.Prefix, f.prefix)
	set("credentials", &cfg.Publish.Credentials, f.credentials)
}

// dbFlags select the results database.
type dbFlags struct {
	driver, dsn string
}

func (f *dbFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.driver, "db-driver", "", "archive samples in a `driver` database (sqlite3 or mysql)")
	fs.StringVar(&f.dsn, "dsn", "", "results database data source `name`")
}

func (f *dbFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("db-driver") {
		cfg.Database.Driver = f.driver
	}
	if fs.Changed("dsn") {
		cfg.Database.DSN = f.dsn
	}
}
