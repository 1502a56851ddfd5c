// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of a collection pass.
//
// Settings come from Default, overridden by an optional YAML file,
// overridden in turn by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clusterbench/ringperf/chart"
	"github.com/clusterbench/ringperf/report"
)

// Config configures collection and reporting.
type Config struct {
	// Dir is the directory holding the run logs.
	Dir string `yaml:"dir"`

	// Pending is the file listing the run identifiers to collect.
	Pending string `yaml:"pending"`

	// Workers bounds the number of logs parsed concurrently.
	Workers int `yaml:"workers"`

	Outputs Outputs `yaml:"outputs"`

	// Formats lists the formats each report is written in.
	Formats []string `yaml:"formats"`

	Charts   Charts   `yaml:"charts"`
	Database Database `yaml:"database"`
	Publish  Publish  `yaml:"publish"`
}

// Outputs names the report files. Extensions are replaced to match
// each output format.
type Outputs struct {
	Performance string `yaml:"performance"`
	Scalability string `yaml:"scalability"`
	Efficiency  string `yaml:"efficiency"`
}

// Map returns the outputs keyed by report name.
func (o Outputs) Map() map[string]string {
	return map[string]string{
		"performance": o.Performance,
		"scalability": o.Scalability,
		"efficiency":  o.Efficiency,
	}
}

// Charts configures plots of the scalability and efficiency reports.
// No charts are drawn if Dir is empty.
type Charts struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Database configures the results archive. Samples are not archived
// if Driver is empty.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Publish configures uploading of written reports. Nothing is
// uploaded if Bucket is empty.
type Publish struct {
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"`
	Credentials string `yaml:"credentials"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dir:     ".",
		Pending: "pending_jobs.txt",
		Workers: 1,
		Outputs: Outputs{
			Performance: "performance_results.csv",
			Scalability: "scalability_results.csv",
			Efficiency:  "efficiency_results.csv",
		},
		Formats: []string{"csv"},
		Charts:  Charts{Format: "png"},
	}
}

// Decode reads YAML from r on top of c. Unknown keys are an error.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Load returns the default configuration overridden by the YAML file
// at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if c.Pending == "" {
		return errors.New("config: pending list not set")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	for name, file := range c.Outputs.Map() {
		if file == "" {
			return fmt.Errorf("config: no output file for the %s report", name)
		}
	}
	if len(c.Formats) == 0 {
		return errors.New("config: no output formats")
	}
	for _, f := range c.Formats {
		if !contains(report.Formats, f) {
			return fmt.Errorf("config: unknown format %q (want one of %v)", f, report.Formats)
		}
	}
	if c.Charts.Dir != "" && !contains(chart.Formats, c.Charts.Format) {
		return fmt.Errorf("config: unknown chart format %q (want one of %v)", c.Charts.Format, chart.Formats)
	}
	if c.Database.Driver != "" && c.Database.DSN == "" {
		return fmt.Errorf("config: %s database has no dsn", c.Database.Driver)
	}
	return nil
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}
