// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadList reads a pending list: one run identifier per line.
// Surrounding white space is trimmed and blank lines are ignored.
// Entries are returned verbatim, without validation, so that the
// caller can report malformed names individually.
func ReadList(r io.Reader) ([]string, error) {
	var names []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReadListFile is like ReadList, but reads from the named file.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// WriteList writes ids to w in the format read by ReadList.
func WriteList(w io.Writer, ids []ID) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := fmt.Fprintln(bw, id); err != nil {
			return err
		}
	}
	return bw.Flush()
}
