// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report derives the performance, scalability and efficiency
// reports from a measure.Store.
//
// Each report is a Table: a fixed list of columns and a list of rows
// in a deterministic order. Every row has exactly one cell per value
// column. Cells with no data are rendered as NA.
package report

import (
	"fmt"
	"strconv"
)

// NA is the rendering of a cell with no data.
const NA = "N/A"

// A Table is one report.
type Table struct {
	// Name is a short identifier for the report, such as
	// "performance".
	Name string

	// KeyColumns are the headers of the leading columns that
	// identify a row.
	KeyColumns []string

	// Columns are the headers of the value columns.
	Columns []string

	// Procs gives the process count of each value column for
	// reports whose columns are process counts. It is nil
	// otherwise.
	Procs []int

	// Prec is the number of digits after the decimal point in
	// formatted cells.
	Prec int

	Rows []*Row
}

// A Row is one line of a Table.
type Row struct {
	Program string
	Procs   int // 0 if process counts are columns
	Size    int

	// Cells has one entry per Table.Columns.
	Cells []Cell
}

// A Cell is a single value in a Table.
type Cell struct {
	Value   float64
	Defined bool
}

func value(v float64) Cell {
	return Cell{v, true}
}

// Header returns the full header row of t.
func (t *Table) Header() []string {
	h := make([]string, 0, len(t.KeyColumns)+len(t.Columns))
	h = append(h, t.KeyColumns...)
	return append(h, t.Columns...)
}

// Keys returns the formatted key fields of row r in t.
func (t *Table) Keys(r *Row) []string {
	keys := []string{r.Program}
	if t.Procs == nil {
		keys = append(keys, strconv.Itoa(r.Procs))
	}
	return append(keys, strconv.Itoa(r.Size))
}

// Format renders c with t's precision.
func (t *Table) Format(c Cell) string {
	if !c.Defined {
		return NA
	}
	return fmt.Sprintf("%.*f", t.Prec, c.Value)
}

// Records returns t as a header row followed by one record per row,
// every record having one field per header column.
func (t *Table) Records() [][]string {
	recs := make([][]string, 0, 1+len(t.Rows))
	recs = append(recs, t.Header())
	for _, r := range t.Rows {
		rec := t.Keys(r)
		for _, c := range r.Cells {
			rec = append(rec, t.Format(c))
		}
		recs = append(recs, rec)
	}
	return recs
}

func procColumns(procs []int) []string {
	cols := make([]string, len(procs))
	for i, p := range procs {
		cols[i] = fmt.Sprintf("%d procs", p)
	}
	return cols
}
