// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes t to w as comma-separated values, starting with a
// header row.
func WriteCSV(w io.Writer, t *Table) error {
	csvw := csv.NewWriter(w)
	if err := csvw.WriteAll(t.Records()); err != nil {
		return err
	}
	return csvw.Error()
}
