// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runid parses and formats the identifiers that name one
// benchmark run of a message-passing program.
//
// A run identifier has the form
//
//	<program>_procs<processCount>_size<messageSize>_<runTag>
//
// for example "ring1_procs4_size5000000_1718000000_run0". The same
// string names the batch job, its log artifact ("<id>.out") and its
// entry in the pending list.
package runid

import (
	"fmt"
	"regexp"
	"strconv"
)

// An ID is a decoded run identifier.
type ID struct {
	// Program is the name of the measured executable.
	Program string

	// Procs is the number of processes the run was launched with.
	// It is always > 0.
	Procs int

	// Size is the message size in bytes passed to the program.
	Size int

	// Tag distinguishes repeated runs of the same configuration,
	// typically a submission timestamp and a run index.
	Tag string
}

// The program part may itself contain underscores, so the greedy
// program group backtracks to the last "_procsN_sizeM_" infix.
var idPattern = regexp.MustCompile(`^(\w+)_procs(\d+)_size(\d+)_(\w+)$`)

// A NameFormatError reports a run identifier that does not have the
// expected form.
type NameFormatError struct {
	Name string
	Msg  string
}

func (e *NameFormatError) Error() string {
	return fmt.Sprintf("run %q: unexpected name format: %s", e.Name, e.Msg)
}

// Parse decodes a run identifier. It returns a *NameFormatError if
// name does not match the identifier pattern exactly.
func Parse(name string) (ID, error) {
	m := idPattern.FindStringSubmatch(name)
	if m == nil {
		return ID{}, &NameFormatError{name, "want <program>_procs<N>_size<M>_<tag>"}
	}
	procs, err := strconv.Atoi(m[2])
	if err != nil {
		return ID{}, &NameFormatError{name, "bad process count: " + err.Error()}
	}
	if procs <= 0 {
		return ID{}, &NameFormatError{name, "process count must be positive"}
	}
	size, err := strconv.Atoi(m[3])
	if err != nil {
		return ID{}, &NameFormatError{name, "bad message size: " + err.Error()}
	}
	return ID{Program: m[1], Procs: procs, Size: size, Tag: m[4]}, nil
}

// String encodes id in the run identifier form accepted by Parse.
func (id ID) String() string {
	return fmt.Sprintf("%s_procs%d_size%d_%s", id.Program, id.Procs, id.Size, id.Tag)
}

// LogName returns the file name of the run's log artifact.
func (id ID) LogName() string {
	return id.String() + ".out"
}
