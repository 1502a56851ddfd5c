// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/clusterbench/ringperf/internal/texttab"
)

// WriteText writes t to w as an aligned plain-text table, preceded by
// the report name. The program column is left aligned and all others
// are right aligned.
func WriteText(w io.Writer, t *Table) error {
	if _, err := fmt.Fprintf(w, "%s:\n", t.Name); err != nil {
		return err
	}
	tab := texttab.Table{Sep: "  "}
	for i, rec := range t.Records() {
		tab.Row()
		for col, f := range rec {
			a := texttab.Right
			if col == 0 {
				a = texttab.Left
			}
			tab.Cell(f, a)
		}
		if i == 0 {
			tab.Rule()
		}
	}
	return tab.Format(w)
}
