// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/report"
)

// Reports generates every report for st. If st is empty, it returns
// ErrNoResults and no tables.
func Reports(st *measure.Store) ([]*report.Table, error) {
	if st.Len() == 0 {
		return nil, ErrNoResults
	}
	return report.All(st), nil
}

var extensions = map[string]string{
	"csv":  ".csv",
	"text": ".txt",
	"html": ".html",
}

// OutputPath returns the file name for a report written in format,
// replacing the extension of base.
func OutputPath(base, format string) string {
	ext, ok := extensions[format]
	if !ok {
		ext = "." + format
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// WriteReports writes each table in every format. outputs maps a
// table name to its base file name; tables without an entry are
// skipped. It returns the paths written, in order.
func WriteReports(log logrus.FieldLogger, tables []*report.Table, outputs map[string]string, formats []string) ([]string, error) {
	var paths []string
	for _, t := range tables {
		base, ok := outputs[t.Name]
		if !ok {
			continue
		}
		for _, format := range formats {
			path := OutputPath(base, format)
			if err := report.WriteFile(path, t, format); err != nil {
				return paths, fmt.Errorf("%s report: %w", t.Name, err)
			}
			if log != nil {
				log.WithField("file", path).Infof("%s results saved", t.Name)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
