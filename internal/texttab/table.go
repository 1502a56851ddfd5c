// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build
// up a row at once.
type Table struct {
	rows   []row
	widths []int

	// Sep separates adjacent columns. If empty, a single space is
	// used.
	Sep string
}

type row struct {
	cells []cell
	rule  bool
}

type cell struct {
	value string
	align Align
}

// Align is the horizontal alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Right
)

func (a Align) pad(s string, w int) string {
	if a == Right {
		return fmt.Sprintf("%*s", w, s)
	}
	return s + strings.Repeat(" ", w-utf8.RuneCountInString(s))
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, row{})
	return t
}

// Cell appends a cell to the current row. It panics if Row has not
// been called.
func (t *Table) Cell(value string, a Align) *Table {
	if len(t.rows) == 0 {
		panic("texttab: Cell called before Row")
	}
	r := &t.rows[len(t.rows)-1]
	if r.rule {
		panic("texttab: Cell called on a rule")
	}
	col := len(r.cells)
	r.cells = append(r.cells, cell{value, a})
	for len(t.widths) <= col {
		t.widths = append(t.widths, 0)
	}
	if w := utf8.RuneCountInString(value); w > t.widths[col] {
		t.widths[col] = w
	}
	return t
}

// Rule adds a row of dashes as wide as each column.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, row{rule: true})
	return t
}

// Format lays out table t and writes it to w. Trailing white space is
// trimmed from each line.
func (t *Table) Format(w io.Writer) error {
	sep := t.Sep
	if sep == "" {
		sep = " "
	}
	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		if r.rule {
			for col, cw := range t.widths {
				if col > 0 {
					line.WriteString(sep)
				}
				line.WriteString(strings.Repeat("-", cw))
			}
		}
		for col, c := range r.cells {
			if col > 0 {
				line.WriteString(sep)
			}
			line.WriteString(c.align.pad(c.value, t.widths[col]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
