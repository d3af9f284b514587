// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/keypair"
	"github.com/aplane-algo/apkeys/internal/wallet"
)

// loadKeypair prompts for the passphrase and decrypts the wallet.
// Caller must Zero the result.
func (a *app) loadKeypair(cmd *cobra.Command) (*keypair.Keypair, error) {
	passphrase, err := readPassphrase(cmd.Context(), cmd.ErrOrStderr(), a.config.PassphraseCommand, false)
	if err != nil {
		return nil, err
	}
	defer passphrase.Destroy()

	var kp *keypair.Keypair
	err = passphrase.WithBytes(func(b []byte) error {
		var loadErr error
		kp, loadErr = wallet.Load(a.walletPath(), b)
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	return kp, nil
}
