// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultsdb archives collected samples in a SQL database so
// that reports can be regenerated, or extended with later runs,
// without the original logs.
package resultsdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/runid"
)

// DB is a high-level interface to a results database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertCollection *sql.Stmt
	insertSample     *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Collections (
	CollectionID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Samples (
	CollectionID BIGINT UNSIGNED,
	SampleID BIGINT UNSIGNED,
	Program VARCHAR(255),
	Procs INT,
	Size BIGINT,
	Tag VARCHAR(255),
	AvgTime DOUBLE,
	MaxTime DOUBLE,
	PRIMARY KEY (CollectionID, SampleID),
{{if not .sqlite3}}
	Index (Program(100), Procs, Size),
{{end}}
	FOREIGN KEY (CollectionID) REFERENCES Collections(CollectionID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SamplesKey ON Samples(Program, Procs, Size);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertCollection, err = db.sql.Prepare("INSERT INTO Collections(Created) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertSample, err = db.sql.Prepare("INSERT INTO Samples(CollectionID, SampleID, Program, Procs, Size, Tag, AvgTime, MaxTime) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing.
var now = time.Now

// A Collection is the set of samples archived by one collection
// pass.
type Collection struct {
	// ID identifies the collection in Load.
	ID string

	id int64
	db *DB

	mu       sync.Mutex
	sampleID int64
}

// NewCollection starts a new collection.
func (db *DB) NewCollection(ctx context.Context) (*Collection, error) {
	res, err := db.insertCollection.ExecContext(ctx, now().Unix())
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Collection{ID: fmt.Sprint(i), id: i, db: db}, nil
}

// Insert archives the sample of run id. Insert may be called
// concurrently; samples keep the order in which Insert was called.
func (c *Collection) Insert(ctx context.Context, id runid.ID, s measure.Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.db.insertSample.ExecContext(ctx, c.id, c.sampleID, id.Program, id.Procs, id.Size, id.Tag, s.Avg, s.Max); err != nil {
		return fmt.Errorf("archiving %s: %w", id, err)
	}
	c.sampleID++
	return nil
}

// Load records every archived sample of the given collections into
// st, in the order they were inserted. If no collection IDs are
// given, samples from all collections are loaded. It returns the
// number of samples loaded.
func (db *DB) Load(ctx context.Context, st *measure.Store, collectionIDs ...string) (int, error) {
	q := "SELECT Program, Procs, Size, AvgTime, MaxTime FROM Samples"
	var args []interface{}
	if len(collectionIDs) > 0 {
		q += " WHERE CollectionID IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(collectionIDs)), ", ") + ")"
		for _, id := range collectionIDs {
			args = append(args, id)
		}
	}
	q += " ORDER BY CollectionID, SampleID"

	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		var k measure.Key
		var s measure.Sample
		if err := rows.Scan(&k.Program, &k.Procs, &k.Size, &s.Avg, &s.Max); err != nil {
			return n, err
		}
		st.Record(k, s)
		n++
	}
	return n, rows.Err()
}

// CollectionIDs returns the IDs of all collections, oldest first.
func (db *DB) CollectionIDs(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT CollectionID FROM Collections ORDER BY CollectionID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, fmt.Sprint(id))
	}
	return ids, rows.Err()
}

// CountCollections returns the number of collections in the
// database. It is intended for tests.
func (db *DB) CountCollections() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Collections").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertCollection.Close(); err != nil {
		return err
	}
	if err := db.insertSample.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
