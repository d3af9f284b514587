// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

//go:build linux

package security

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// LockMemory locks all current and future pages so secrets never reach swap.
func LockMemory() error {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		return fmt.Errorf("mlockall failed: %w\n\nTo fix this, run:\n  sudo setcap cap_ipc_lock+ep %s", err, os.Args[0])
	}
	return nil
}

// DisableCoreDumps sets RLIMIT_CORE to zero.
func DisableCoreDumps() error {
	if err := unix.Setrlimit(unix.RLIMIT_CORE, &unix.Rlimit{Cur: 0, Max: 0}); err != nil {
		return fmt.Errorf("failed to disable core dumps: %w", err)
	}
	return nil
}
