// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Formats lists the output formats accepted by WriteFile.
var Formats = []string{"csv", "text", "html"}

// Write writes t to w in the named format.
func Write(w io.Writer, t *Table, format string) error {
	switch format {
	case "csv":
		return WriteCSV(w, t)
	case "text":
		return WriteText(w, t)
	case "html":
		if _, err := io.WriteString(w, HTMLHeader); err != nil {
			return err
		}
		if err := WriteHTML(w, t); err != nil {
			return err
		}
		_, err := io.WriteString(w, HTMLFooter)
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteFile writes t to the named file in the named format,
// replacing any existing file.
func WriteFile(path string, t *Table, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := Write(bw, t, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return bw.Flush()
}
