// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").Parse(`
{{- range . -}}
<h2>{{.Name}}</h2>
<table class='ringperf'>
<tr>{{range .Header}}<th>{{.}}{{end}}
{{range $i, $rec := .Body -}}
<tr>{{range $rec}}<td>{{.}}{{end}}
{{end -}}
</table>
{{end -}}
`))

type htmlTable struct {
	Name   string
	Header []string
	Body   [][]string
}

// WriteHTML writes tables to w as a sequence of HTML tables.
func WriteHTML(w io.Writer, tables ...*Table) error {
	data := make([]htmlTable, len(tables))
	for i, t := range tables {
		recs := t.Records()
		data[i] = htmlTable{t.Name, recs[0], recs[1:]}
	}
	return htmlTemplate.Execute(w, data)
}

// HTMLHeader and HTMLFooter wrap the output of WriteHTML into a
// standalone document.
const (
	HTMLHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Ring Communication Benchmarks</title>
<style>
.ringperf { border-collapse: collapse; }
.ringperf th { border-bottom: 1px solid #666; padding: 0em 1em; }
.ringperf td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
</style>
</head>
<body>
`
	HTMLFooter = `</body>
</html>
`
)
