// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	s := String()
	require.True(t, strings.HasPrefix(s, "apkey "+Version))
	require.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
	require.Equal(t, Version, Get().Version)
}
