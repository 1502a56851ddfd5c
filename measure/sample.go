// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measure holds the communication-time measurements gathered
// from a set of runs, keyed by program, process count and message
// size.
package measure

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// A Sample summarizes the timings reported by the participants of a
// single run.
type Sample struct {
	// Avg is the mean communication time across participants,
	// in seconds.
	Avg float64

	// Max is the largest communication time reported by any
	// participant, in seconds.
	Max float64
}

// NewSample reduces the raw per-participant timings of one run to a
// Sample. It reports false if timings is empty.
func NewSample(timings []float64) (Sample, bool) {
	if len(timings) == 0 {
		return Sample{}, false
	}
	_, hi := stats.Bounds(timings)
	return Sample{Avg: stats.Mean(timings), Max: hi}, true
}

func (s Sample) String() string {
	return fmt.Sprintf("avg %.6fs max %.6fs", s.Avg, s.Max)
}
