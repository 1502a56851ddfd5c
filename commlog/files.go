// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/clusterbench/ringperf/measure"
	"github.com/clusterbench/ringperf/runid"
)

// An ArtifactMissingError reports that a run has no log file.
type ArtifactMissingError struct {
	Run  runid.ID
	Path string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("run %s: log not found: %s", e.Run, e.Path)
}

// Path returns the location of id's log in dir.
func Path(dir string, id runid.ID) string {
	return filepath.Join(dir, id.LogName())
}

// Open opens the log of run id in dir. If the log does not exist, it
// returns an *ArtifactMissingError.
func Open(dir string, id runid.ID) (*os.File, error) {
	path := Path(dir, id)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ArtifactMissingError{id, path}
	}
	return f, err
}

// ParseRun opens and parses the log of run id in dir. See Parse for
// the meaning of the results.
func ParseRun(dir string, id runid.ID) (s measure.Sample, warnings []error, err error) {
	f, err := Open(dir, id)
	if err != nil {
		return s, nil, err
	}
	defer f.Close()
	return Parse(f, f.Name())
}
