// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ringperf aggregates the logs of ring communication benchmarks into
// performance, scalability and efficiency reports.
//
// Usage:
//
//	ringperf collect [flags]
//	ringperf report --db-driver driver --dsn dsn [flags] [collection...]
//
// The collect command reads a pending list (by default
// pending_jobs.txt), one run identifier per line, of the form
//
//	<program>_procs<processCount>_size<messageSize>_<runTag>
//
// For each run it parses the log "<run>.out", which contains one line
// per participating process such as
//
//	Process 3 communication time: 0.001523 seconds
//
// and records the mean and maximum of those times. Runs with a
// malformed name, a missing log or no timing lines are reported and
// skipped. Finally it writes three reports:
//
//	performance_results.csv   mean avg/max time per program, processes and message size
//	scalability_results.csv   mean avg time per program and size, one column per process count
//	efficiency_results.csv    speedup over the program's lowest process count, divided by processes
//
// Reports can also be written as aligned text (--format text) or HTML
// (--format html), plotted (--charts dir), archived in a SQL database
// (--db-driver sqlite3 --dsn results.db) and uploaded to Google Cloud
// Storage (--bucket name).
//
// The report command regenerates the reports from an archive instead
// of from logs. All settings may be given in a YAML file with --config;
// flags override the file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clusterbench/ringperf/config"
	_ "github.com/clusterbench/ringperf/resultsdb/sqlite3"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]))
}

// run executes the command line args and returns the exit status.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "ringperf: %s\n", err)
		return 1
	}
	return 0
}

// options are the settings shared by all subcommands.
type options struct {
	configFile string
	verbose    bool
	logFormat  string

	cfg    *config.Config
	log    *logrus.Logger
	stdout io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout}
	opts.log = logrus.New()
	opts.log.SetOutput(stderr)

	root := &cobra.Command{
		Use:           "ringperf",
		Short:         "Aggregate ring benchmark logs into reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "read settings from YAML `file`")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debugging detail")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log `format`: text or json")

	root.AddCommand(newCollectCmd(opts), newReportCmd(opts))

	return root
}

func (o *options) setup() error {
	switch o.logFormat {
	case "text":
		o.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		o.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", o.logFormat)
	}
	if o.verbose {
		o.log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}
