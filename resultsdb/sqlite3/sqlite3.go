// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 registers the sqlite3 driver for use with
// resultsdb.OpenSQL.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/clusterbench/ringperf/resultsdb"
)

func init() {
	resultsdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database exists per connection, and
		// sqlite serializes writers anyway.
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
