// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_Deterministic(t *testing.T) {
	a := make([]byte, 100)
	b := make([]byte, 100)
	_, err := io.ReadFull(NewReader("x"), a)
	require.NoError(t, err)

	// Reading in small chunks yields the same stream
	r := NewReader("x")
	for i := 0; i < len(b); i += 7 {
		end := min(i+7, len(b))
		_, err := r.Read(b[i:end])
		require.NoError(t, err)
	}
	require.Equal(t, a, b)

	c := make([]byte, 100)
	_, err = io.ReadFull(NewReader("y"), c)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestEntropy(t *testing.T) {
	require.Len(t, Entropy("a"), 32)
	require.Equal(t, Entropy("a"), Entropy("a"))
	require.NotEqual(t, Entropy("a"), Entropy("b"))
}

func TestTempFile(t *testing.T) {
	path := TempFile(t, []byte("content"))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content", string(got))
}
