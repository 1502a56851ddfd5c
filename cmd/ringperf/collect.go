// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/clusterbench/ringperf/collect"
	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/resultsdb"
	"github.com/clusterbench/ringperf/runid"
)

func newCollectCmd(opts *options) *cobra.Command {
	var (
		dir, pending string
		workers      int
		out          outputFlags
		db           dbFlags
	)
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect pending run logs and write reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			cfg := opts.cfg
			if fs.Changed("dir") {
				cfg.Dir = dir
			}
			if fs.Changed("pending") {
				cfg.Pending = pending
			}
			if fs.Changed("workers") {
				cfg.Workers = workers
			}
			out.apply(fs, cfg)
			db.apply(fs, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return opts.collect(cmd.Context())
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&dir, "dir", "", "read run logs from `dir`")
	fs.StringVar(&pending, "pending", "", "read run identifiers from `file`")
	fs.IntVarP(&workers, "workers", "j", 0, "parse up to `n` logs concurrently")
	out.register(fs)
	db.register(fs)
	return cmd
}

func (o *options) collect(ctx context.Context) error {
	cfg := o.cfg
	names, err := runid.ReadListFile(cfg.Pending)
	if err != nil {
		return fmt.Errorf("reading pending list: %w", err)
	}
	o.log.WithField("file", cfg.Pending).Infof("found %d pending jobs to collect results from", len(names))

	st := measure.NewStore()
	c := &collect.Collector{
		Dir:     cfg.Dir,
		Store:   st,
		Log:     o.log,
		Workers: cfg.Workers,
	}

	var archiveErr error
	if cfg.Database.Driver != "" {
		db, err := resultsdb.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer db.Close()
		coll, err := db.NewCollection(ctx)
		if err != nil {
			return err
		}
		o.log.WithField("collection", coll.ID).Info("archiving samples")
		var mu sync.Mutex
		c.OnSample = func(id runid.ID, s measure.Sample) {
			if err := coll.Insert(ctx, id, s); err != nil {
				mu.Lock()
				if archiveErr == nil {
					archiveErr = err
				}
				mu.Unlock()
			}
		}
	}

	if err := c.Run(ctx, names); err != nil {
		return err
	}
	o.log.Info(c.Stats().String())
	if archiveErr != nil {
		return archiveErr
	}
	return o.emit(ctx, st)
}
