// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	wantPerformance = `Program,Processes,Message Size,Avg Time (s),Max Time (s)
ring1,2,5000000,0.002500,0.003000
ring1,4,5000000,0.001500,0.001500
`
	wantScalability = `Program,Message Size,2 procs,4 procs
ring1,5000000,0.002500,0.001500
`
	wantEfficiency = `Program,Message Size,2 procs,4 procs
ring1,5000000,0.5000,0.4167
`
)

// setup writes two ring1 runs, a run without a log and a malformed
// name into a fresh directory and returns it.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	logs := map[string][]string{
		"ring1_procs2_size5000000_run0": {"0.0020", "0.0030"},
		"ring1_procs4_size5000000_run0": {"0.0015", "0.0015", "0.0015", "0.0015"},
	}
	for name, timings := range logs {
		var b strings.Builder
		b.WriteString("starting ring\n")
		for i, tm := range timings {
			fmt.Fprintf(&b, "Process %d communication time: %s seconds\n", i, tm)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".out"), []byte(b.String()), 0666))
	}
	pending := "ring1_procs2_size5000000_run0\nring1_procs8_size5000000_run0\n\nnot-a-run\nring1_procs4_size5000000_run0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pending_jobs.txt"), []byte(pending), 0666))
	return dir
}

func ringperf(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), &out, &errOut, args)
	return code, out.String(), errOut.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func outputArgs(dir string) []string {
	return []string{
		"--performance", filepath.Join(dir, "performance_results.csv"),
		"--scalability", filepath.Join(dir, "scalability_results.csv"),
		"--efficiency", filepath.Join(dir, "efficiency_results.csv"),
	}
}

func TestCollect(t *testing.T) {
	dir := setup(t)
	args := append([]string{"collect", "--dir", dir, "--pending", filepath.Join(dir, "pending_jobs.txt")}, outputArgs(dir)...)
	code, stdout, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, wantPerformance, readFile(t, filepath.Join(dir, "performance_results.csv")))
	assert.Equal(t, wantScalability, readFile(t, filepath.Join(dir, "scalability_results.csv")))
	assert.Equal(t, wantEfficiency, readFile(t, filepath.Join(dir, "efficiency_results.csv")))

	assert.Len(t, strings.Fields(stdout), 3)
	assert.Contains(t, stderr, "unexpected name format, skipping")
	assert.Contains(t, stderr, "log not found, skipping")
	assert.Contains(t, stderr, "found 4 pending jobs")
}

func TestCollectParallelFormats(t *testing.T) {
	dir := setup(t)
	args := append([]string{"collect", "-j", "4", "--dir", dir, "--pending", filepath.Join(dir, "pending_jobs.txt"),
		"--format", "csv,text,html"}, outputArgs(dir)...)
	code, _, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, wantEfficiency, readFile(t, filepath.Join(dir, "efficiency_results.csv")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "efficiency_results.txt")), "0.4167")
	assert.Contains(t, readFile(t, filepath.Join(dir, "scalability_results.html")), "<table")
}

func TestCollectConfigFile(t *testing.T) {
	dir := setup(t)
	cfg := fmt.Sprintf(`dir: %q
pending: %q
outputs:
  performance: %q
  scalability: %q
  efficiency: %q
charts:
  dir: %q
  format: svg
`, dir, filepath.Join(dir, "pending_jobs.txt"),
		filepath.Join(dir, "perf.csv"), filepath.Join(dir, "scal.csv"), filepath.Join(dir, "eff.csv"),
		filepath.Join(dir, "charts"))
	cfgFile := filepath.Join(dir, "ringperf.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0666))

	code, _, stderr := ringperf(t, "--config", cfgFile, "--log-format", "json", "collect")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, wantPerformance, readFile(t, filepath.Join(dir, "perf.csv")))
	assert.FileExists(t, filepath.Join(dir, "charts", "scal.svg"))
	assert.FileExists(t, filepath.Join(dir, "charts", "eff.svg"))
	assert.Contains(t, stderr, `"msg":"recorded run"`)
}

func TestCollectNoResults(t *testing.T) {
	dir := t.TempDir()
	pending := filepath.Join(dir, "pending_jobs.txt")
	require.NoError(t, os.WriteFile(pending, []byte("ring1_procs2_size8_run0\n"), 0666))

	args := append([]string{"collect", "--dir", dir, "--pending", pending}, outputArgs(dir)...)
	code, stdout, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no results to report")
	assert.NoFileExists(t, filepath.Join(dir, "performance_results.csv"))
}

func TestCollectErrors(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"missing pending", []string{"collect", "--pending", filepath.Join(dir, "nope.txt")}, "reading pending list"},
		{"bad format", []string{"collect", "--format", "xml"}, `unknown format "xml"`},
		{"bad log format", []string{"--log-format", "xml", "collect"}, `unknown log format "xml"`},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.yaml"), "collect"}, "nope.yaml"},
		{"report without db", []string{"report"}, "no results database"},
		{"unknown command", []string{"frobnicate"}, "unknown command"},
	} {
		t.Run(test.name, func(t *testing.T) {
			code, _, stderr := ringperf(t, test.args...)
			assert.Equal(t, 1, code)
			lines := strings.Split(strings.TrimSuffix(stderr, "\n"), "\n")
			last := lines[len(lines)-1]
			assert.True(t, strings.HasPrefix(last, "ringperf: "), "error line %q", last)
			assert.Contains(t, last, test.want)
		})
	}
}

func TestReportFromArchive(t *testing.T) {
	dir := setup(t)
	dsn := filepath.Join(dir, "results.db")
	args := append([]string{"collect", "--dir", dir, "--pending", filepath.Join(dir, "pending_jobs.txt"),
		"--db-driver", "sqlite3", "--dsn", dsn}, outputArgs(dir)...)
	code, _, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)

	out := filepath.Join(dir, "again")
	require.NoError(t, os.Mkdir(out, 0777))
	args = append([]string{"report", "--db-driver", "sqlite3", "--dsn", dsn}, outputArgs(out)...)
	code, _, stderr = ringperf(t, args...)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "loaded 2 samples")

	assert.Equal(t, wantPerformance, readFile(t, filepath.Join(out, "performance_results.csv")))
	assert.Equal(t, wantScalability, readFile(t, filepath.Join(out, "scalability_results.csv")))
	assert.Equal(t, wantEfficiency, readFile(t, filepath.Join(out, "efficiency_results.csv")))
}

func TestReportUnknownCollection(t *testing.T) {
	dir := setup(t)
	dsn := filepath.Join(dir, "results.db")
	args := append([]string{"collect", "--dir", dir, "--pending", filepath.Join(dir, "pending_jobs.txt"),
		"--db-driver", "sqlite3", "--dsn", dsn}, outputArgs(dir)...)
	code, _, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)

	out := filepath.Join(dir, "again")
	require.NoError(t, os.Mkdir(out, 0777))
	args = append([]string{"report", "--db-driver", "sqlite3", "--dsn", dsn, "999"}, outputArgs(out)...)
	code, stdout, stderr := ringperf(t, args...)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no samples in collections 999")
	assert.Contains(t, stderr, "available=1")
	assert.Contains(t, stderr, "no results to report")
	assert.NoFileExists(t, filepath.Join(out, "performance_results.csv"))
}
