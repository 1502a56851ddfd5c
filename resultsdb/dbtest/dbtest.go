// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens throwaway results databases for tests.
package dbtest

import (
	"flag"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/clusterbench/ringperf/resultsdb"
	_ "github.com/clusterbench/ringperf/resultsdb/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run database tests against the MySQL database at `dsn` instead of in-memory SQLite")

// NewDB makes a connection to an empty testing database, either
// in-memory sqlite3 or MySQL depending on the -mysql flag. cleanup
// must be called when done with the testing database, instead of
// calling db.Close().
func NewDB(t *testing.T) (*resultsdb.DB, func()) {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		driverName, dataSourceName = "mysql", *mysqlDSN
	}
	d, err := resultsdb.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cleanup := func() { d.Close() }

	// Make sure the database really is empty.
	n, err := d.CountCollections()
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	if n != 0 {
		cleanup()
		t.Fatalf("found %d row(s) in Collections, want 0", n)
	}
	return d, cleanup
}
