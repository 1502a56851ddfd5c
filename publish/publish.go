// Copyright 2026 The Ringperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish uploads written reports to Google Cloud Storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// A Publisher copies report files into a bucket.
type Publisher struct {
	// Prefix is prepended to every object name. It may be empty.
	Prefix string

	client *storage.Client
	bucket string

	// newWriter opens an object for writing. It is replaced in
	// tests.
	newWriter func(ctx context.Context, object, contentType string) io.WriteCloser
}

// NewGCS returns a Publisher writing to bucket. opts are passed to
// storage.NewClient, for example option.WithCredentialsFile.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("publish: empty bucket name")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	p := &Publisher{Prefix: prefix, client: client, bucket: bucket}
	p.newWriter = func(ctx context.Context, object, contentType string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}
	return p, nil
}

// ObjectName returns the object a local file is published as.
func (p *Publisher) ObjectName(file string) string {
	return path.Join(p.Prefix, filepath.Base(file))
}

// URL returns the gs:// location of object.
func (p *Publisher) URL(object string) string {
	return "gs://" + p.bucket + "/" + object
}

// Publish uploads each file and returns the objects written. It stops
// at the first failure.
func (p *Publisher) Publish(ctx context.Context, files ...string) ([]string, error) {
	var objects []string
	for _, file := range files {
		object := p.ObjectName(file)
		if err := p.upload(ctx, file, object); err != nil {
			return objects, fmt.Errorf("uploading %s to %s: %w", file, p.URL(object), err)
		}
		objects = append(objects, object)
	}
	return objects, nil
}

func (p *Publisher) upload(ctx context.Context, file, object string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := p.newWriter(ctx, object, contentType(file))
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return err
	}
	// The object is only committed by a successful Close.
	return w.Close()
}

func contentType(file string) string {
	switch ext := filepath.Ext(file); ext {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

// Close releases the storage client.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
