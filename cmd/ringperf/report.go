// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/resultsdb"
)

func newReportCmd(opts *options) *cobra.Command {
	var (
		out outputFlags
		db  dbFlags
	)
	cmd := &cobra.Command{
		Use:   "report [collection...]",
		Short: "Regenerate reports from archived samples",
		Long: `Report rebuilds the reports from the samples archived by
"collect --db-driver". With no arguments it uses every collection;
otherwise only the named ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			cfg := opts.cfg
			out.apply(fs, cfg)
			db.apply(fs, cfg)
			if cfg.Database.Driver == "" {
				return errors.New("no results database; set --db-driver and --dsn")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rdb, err := resultsdb.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("opening results database: %w", err)
			}
			defer rdb.Close()

			st := measure.NewStore()
			n, err := rdb.Load(cmd.Context(), st, args...)
			if err != nil {
				return err
			}
			opts.log.Infof("loaded %d samples", n)
			if n == 0 && len(args) > 0 {
				ids, err := rdb.CollectionIDs(cmd.Context())
				if err != nil {
					return err
				}
				opts.log.WithField("available", strings.Join(ids, ",")).Warnf("no samples in collections %s", strings.Join(args, ","))
			}
			return opts.emit(cmd.Context(), st)
		},
	}
	out.register(cmd.Flags())
	db.register(cmd.Flags())
	return cmd
}
