// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

//go:build !linux

package security

import "errors"

// ErrUnsupported is returned where the platform has no equivalent control.
var ErrUnsupported = errors.New("not supported on this platform")

func LockMemory() error {
	return ErrUnsupported
}

func DisableCoreDumps() error {
	return ErrUnsupported
}
