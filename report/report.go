// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"github.com/clusterbench/ringperf/measure"
)

// Performance returns the mean of the per-run average and maximum
// communication times for every configuration in st, ordered by
// program, process count and message size.
func Performance(st *measure.Store) *Table {
	t := &Table{
		Name:       "performance",
		KeyColumns: []string{"Program", "Processes", "Message Size"},
		Columns:    []string{"Avg Time (s)", "Max Time (s)"},
		Prec:       6,
	}
	for _, k := range st.Keys() {
		row := &Row{Program: k.Program, Procs: k.Procs, Size: k.Size}
		if avg, max, ok := st.Mean(k); ok {
			row.Cells = []Cell{value(avg), value(max)}
		} else {
			row.Cells = []Cell{{}, {}}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Scalability returns, for every program and message size, the mean
// average communication time under each process count.
//
// The columns are the process counts seen for any program, so that
// every program's rows line up under the same header.
func Scalability(st *measure.Store) *Table {
	procs := st.AllProcs()
	t := &Table{
		Name:       "scalability",
		KeyColumns: []string{"Program", "Message Size"},
		Columns:    procColumns(procs),
		Procs:      procs,
		Prec:       6,
	}
	for _, prog := range st.Programs() {
		for _, size := range st.Sizes(prog) {
			row := &Row{Program: prog, Size: size, Cells: make([]Cell, len(procs))}
			for i, p := range procs {
				if avg, _, ok := st.Mean(measure.Key{Program: prog, Procs: p, Size: size}); ok {
					row.Cells[i] = value(avg)
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Efficiency returns, for every program and message size, the
// parallel efficiency under each process count greater than one.
//
// Efficiency is speedup divided by process count, where speedup is
// relative to the program's lowest recorded process count (its base
// case) at the same message size. If the base case has no data for a
// message size, the whole row is undefined.
func Efficiency(st *measure.Store) *Table {
	procs := []int{}
	for _, p := range st.AllProcs() {
		if p > 1 {
			procs = append(procs, p)
		}
	}
	t := &Table{
		Name:       "efficiency",
		KeyColumns: []string{"Program", "Message Size"},
		Columns:    procColumns(procs),
		Procs:      procs,
		Prec:       4,
	}
	for _, prog := range st.Programs() {
		base := st.Procs(prog)[0]
		for _, size := range st.Sizes(prog) {
			row := &Row{Program: prog, Size: size, Cells: make([]Cell, len(procs))}
			t.Rows = append(t.Rows, row)

			baseTime, _, ok := st.Mean(measure.Key{Program: prog, Procs: base, Size: size})
			if !ok {
				continue
			}
			for i, p := range procs {
				avg, _, ok := st.Mean(measure.Key{Program: prog, Procs: p, Size: size})
				if !ok || avg == 0 {
					continue
				}
				speedup := baseTime / avg
				row.Cells[i] = value(speedup / float64(p))
			}
		}
	}
	return t
}

// All returns the performance, scalability and efficiency reports
// for st, in that order.
func All(st *measure.Store) []*Table {
	return []*Table{Performance(st), Scalability(st), Efficiency(st)}
}
