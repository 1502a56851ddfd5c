// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commlog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/clusterbench/ringperf/runid"
)

func scanAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Timing:
			tm := *rec
			out = append(out, &tm)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected record type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("reading failed: ", err)
	}
	return out
}

func printRecords(rs []Record) string {
	var b strings.Builder
	for _, r := range rs {
		switch r := r.(type) {
		case *Timing:
			_, line := r.Pos()
			fmt.Fprintf(&b, "%d: %v\n", line, r.Seconds)
		case *SyntaxError:
			fmt.Fprintf(&b, "%s\n", r)
		}
	}
	return b.String()
}

func TestReader(t *testing.T) {
	for _, test := range []struct {
		name, input, want string
	}{
		{
			"basic",
			`Process 0 communication time: 0.0020 seconds
Process 1 communication time: 0.0030 seconds
`,
			"1: 0.002\n2: 0.003\n",
		},
		{
			"noise",
			`Ring of 4 processes, message size 5000000
Process 0 sent token
Process 0 communication time:    1.5e-3   seconds (rank 0)
communication time: 0.25seconds
total time: 3 seconds
`,
			"3: 0.0015\n4: 0.25\n",
		},
		{
			"malformed",
			`communication time: abc seconds
communication time: 0.5 seconds
communication time: -1 seconds
communication time:  seconds
communication time: NaN seconds
communication time: 0x1p-3 seconds
communication time: 0X10 seconds
`,
			`test:1: parsing communication time "abc": invalid syntax
2: 0.5
test:3: communication time "-1" is not a non-negative number
test:4: parsing communication time "": invalid syntax
test:5: communication time "NaN" is not a non-negative number
test:6: parsing communication time "0x1p-3": invalid syntax
test:7: parsing communication time "0X10": invalid syntax
`,
		},
		{
			"digit separators",
			`communication time: 1_000 seconds
communication time: 1__0 seconds
`,
			"1: 1000\ntest:2: parsing communication time \"1__0\": invalid syntax\n",
		},
		{
			"marker order",
			// seconds must follow the time marker.
			`seconds communication time: 1
communication time: 1 second
communication time: 2 seconds and 3 seconds
`,
			"3: 2\n",
		},
		{
			"no trailing newline",
			"communication time: 7 seconds",
			"1: 7\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := printRecords(scanAll(t, test.input))
			if got != test.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, test.want)
			}
		})
	}
}

func TestReaderLongLine(t *testing.T) {
	line := strings.Repeat("x", 200000) + " communication time: 0.5 seconds\n"
	got := printRecords(scanAll(t, line))
	if want := "1: 0.5\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReaderResultBeforeScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "")
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("Result before Scan should be a *SyntaxError")
	}
	if r.Scan() {
		t.Errorf("Scan of empty input returned true")
	}
	if fileName, _ := noRecord.Pos(); fileName != "" {
		t.Errorf("unexpected position %q", fileName)
	}
}

func TestReaderIOError(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(iotest.ErrReader(boom), "broken")
	if r.Scan() {
		t.Fatalf("Scan succeeded on failing reader")
	}
	if err := r.Err(); !errors.Is(err, boom) {
		t.Errorf("Err() = %v, want %v", err, boom)
	}
}

func TestParse(t *testing.T) {
	s, warnings, err := Parse(strings.NewReader(`communication time: 0.0030 seconds
communication time: abc seconds
communication time: 0.0020 seconds
`), "ring1.out")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.Avg-0.0025) > 1e-12 || s.Max != 0.003 {
		t.Errorf("got %v, want avg 0.0025 max 0.003", s)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	var serr *SyntaxError
	if !errors.As(warnings[0], &serr) || serr.Line != 2 || serr.FileName != "ring1.out" {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

func TestParseNoTimings(t *testing.T) {
	for _, input := range []string{
		"",
		"hello\nworld\n",
		"communication time: x seconds\n",
	} {
		_, _, err := Parse(strings.NewReader(input), "empty.out")
		if !errors.Is(err, ErrNoTimings) {
			t.Errorf("Parse(%q): got %v, want ErrNoTimings", input, err)
		}
	}
}

func TestParseRun(t *testing.T) {
	dir := t.TempDir()
	id := runid.ID{Program: "ring1", Procs: 2, Size: 5000000, Tag: "1_run0"}
	missing := runid.ID{Program: "ring1", Procs: 4, Size: 5000000, Tag: "1_run0"}

	log := "communication time: 0.0020 seconds\ncommunication time: 0.0030 seconds\n"
	if err := os.WriteFile(filepath.Join(dir, "ring1_procs2_size5000000_1_run0.out"), []byte(log), 0666); err != nil {
		t.Fatal(err)
	}

	s, warnings, err := ParseRun(dir, id)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("ParseRun: %v %v", err, warnings)
	}
	if math.Abs(s.Avg-0.0025) > 1e-12 || s.Max != 0.003 {
		t.Errorf("got %v", s)
	}

	_, _, err = ParseRun(dir, missing)
	var merr *ArtifactMissingError
	if !errors.As(err, &merr) {
		t.Fatalf("got %v, want *ArtifactMissingError", err)
	}
	if merr.Run != missing || merr.Path != Path(dir, missing) {
		t.Errorf("unexpected error fields %+v", merr)
	}
}
