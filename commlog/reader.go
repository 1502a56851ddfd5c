// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commlog reads the timing output of ring benchmark runs.
//
// Each participant of a run prints a line of the form
//
//	Process 3 communication time: 0.001523 seconds
//
// to the run's log. Any text may surround the markers, and lines
// without the markers are ignored. A line whose markers enclose
// something other than a non-negative number is reported as a
// *SyntaxError, which is not fatal to reading.
package commlog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/clusterbench/ringperf/measure"
)

var (
	timeMarker    = []byte("communication time:")
	secondsMarker = []byte("seconds")
)

// maxLine is the longest line the Reader accepts.
const maxLine = 1 << 20

// ErrNoTimings is returned by Parse when a log contains no valid
// timing lines.
var ErrNoTimings = errors.New("no timings found")

// A Reader reads timing lines from a run log.
//
// Its API is modeled on bufio.Scanner. To construct a new Reader,
// either call NewReader, or call Reset on a zeroed Reader.
type Reader struct {
	s        *bufio.Scanner
	err      error
	fileName string
	line     int

	timing Timing
	rec    Record
}

// A Record is a single record read from a log. It is either a *Timing
// or a *SyntaxError.
type Record interface {
	// Pos returns the file name and 1-based line number of the
	// record.
	Pos() (fileName string, line int)
}

var _ Record = (*Timing)(nil)
var _ Record = (*SyntaxError)(nil)

// A Timing is one participant's reported communication time.
type Timing struct {
	// Seconds is the reported time. It is never negative.
	Seconds float64

	fileName string
	line     int
}

func (t *Timing) Pos() (fileName string, line int) {
	return t.fileName, t.line
}

// A SyntaxError reports a timing line whose value could not be
// parsed.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noRecord = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a Reader that reads timings from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.rec = nil
}

// Scan advances the reader to the next timing line and reports
// whether one was read. The caller should use the Result method to
// get the record. If Scan reaches EOF or an I/O error occurs, it
// returns false, in which case the caller should use the Err method
// to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		val, ok := timingField(r.s.Bytes())
		if !ok {
			continue
		}
		secs, err := parseSeconds(val)
		switch {
		case err != nil:
			r.rec = r.newSyntaxError(fmt.Sprintf("parsing communication time %q: %v", val, err))
		case secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0):
			r.rec = r.newSyntaxError(fmt.Sprintf("communication time %q is not a non-negative number", val))
		default:
			r.timing = Timing{secs, r.fileName, r.line}
			r.rec = &r.timing
		}
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
	}
	r.rec = nil
	return false
}

// parseSeconds parses a decimal timing. Hexadecimal floats are
// rejected.
func parseSeconds(val []byte) (float64, error) {
	if bytes.ContainsAny(val, "xX") {
		return 0, strconv.ErrSyntax
	}
	secs, err := strconv.ParseFloat(string(val), 64)
	if err != nil {
		return 0, errors.Unwrap(err)
	}
	return secs, nil
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Result returns the record that was just read by Scan. This is
// either a *Timing or a *SyntaxError. Syntax errors are non-fatal, so
// the caller can continue to call Scan.
//
// If this returns a *Timing, the caller should not retain it, as it
// will be overwritten by the next call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noRecord
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// timingField returns the trimmed text between the time marker and
// the first seconds marker that follows it. ok is false if line is
// not a timing line.
func timingField(line []byte) (val []byte, ok bool) {
	i := bytes.Index(line, timeMarker)
	if i < 0 {
		return nil, false
	}
	rest := line[i+len(timeMarker):]
	j := bytes.Index(rest, secondsMarker)
	if j < 0 {
		return nil, false
	}
	return bytes.TrimSpace(rest[:j]), true
}

// Parse reads every timing line from r and reduces them to a Sample.
//
// warnings holds a *SyntaxError for every timing line that was
// skipped. If no valid timing was found, Parse returns ErrNoTimings.
// Any other error is an I/O error from r.
func Parse(r io.Reader, fileName string) (s measure.Sample, warnings []error, err error) {
	var timings []float64
	reader := NewReader(r, fileName)
	for reader.Scan() {
		switch rec := reader.Result().(type) {
		case *Timing:
			timings = append(timings, rec.Seconds)
		case *SyntaxError:
			warnings = append(warnings, rec)
		}
	}
	if err := reader.Err(); err != nil {
		return measure.Sample{}, warnings, err
	}
	s, ok := measure.NewSample(timings)
	if !ok {
		return measure.Sample{}, warnings, fmt.Errorf("%s: %w", reader.fileName, ErrNoTimings)
	}
	return s, warnings, nil
}
