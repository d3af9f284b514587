// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package security hardens the process before it handles key material.
package security

import "github.com/aplane-algo/apkeys/internal/util"

// Harden disables core dumps and, when lockMemory is set, locks all pages in RAM.
// A failure to disable core dumps is logged; a failure to lock memory is returned
// because the user asked for it explicitly.
func Harden(lockMemory bool) error {
	if err := DisableCoreDumps(); err != nil {
		util.Warn("could not disable core dumps", "error", err)
	}
	if !lockMemory {
		return nil
	}
	if err := LockMemory(); err != nil {
		return err
	}
	util.Debug("memory locked")
	return nil
}
