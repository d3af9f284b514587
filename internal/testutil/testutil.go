// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package testutil provides deterministic key material and file helpers for tests.
package testutil

import (
	"crypto/sha256"
	"encoding/binary"
	"os"
	"testing"
)

// Reader is an infinite deterministic byte stream: SHA-256(label || counter) blocks.
type Reader struct {
	label   []byte
	counter uint64
	buf     []byte
}

// NewReader returns a stream that yields the same bytes for the same label.
func NewReader(label string) *Reader {
	return &Reader{label: []byte(label)}
}

func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.buf) == 0 {
			var ctr [8]byte
			binary.BigEndian.PutUint64(ctr[:], r.counter)
			r.counter++
			sum := sha256.Sum256(append(append([]byte{}, r.label...), ctr[:]...))
			r.buf = sum[:]
		}
		c := copy(p[n:], r.buf)
		r.buf = r.buf[c:]
		n += c
	}
	return n, nil
}

// Entropy returns 32 bytes derived from label.
func Entropy(label string) []byte {
	sum := sha256.Sum256([]byte(label))
	return sum[:]
}

// TempFile creates a temporary file with the given content, returning the path.
// The file is removed when the test completes.
func TempFile(t *testing.T, content []byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "testfile-*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}
	return f.Name()
}
