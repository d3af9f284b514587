// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// apkey creates and uses a single passphrase-encrypted wallet key.
//
// Usage:
//
//	apkey create [--type ed25519|ecc_compact] [--network mainnet|testnet] [--phrase] [--force]
//	apkey info
//	apkey phrase
//	apkey export [--format solana|base58] [-o <file>]
//	apkey sign <message>
//	apkey verify <public-key> <message> <signature>
//	apkey version
//
// The wallet lives in the data directory (-d, APKEY_DATA or ~/.apkey) unless
// -f names a file. The passphrase is read from APKEY_PASSPHRASE or prompted for.
package main

import (
	"os"

	"github.com/aplane-algo/apkeys/internal/util"
)

func main() {
	err := newRootCmd().Execute()
	util.SyncLogger()
	if err != nil {
		os.Exit(1)
	}
}
