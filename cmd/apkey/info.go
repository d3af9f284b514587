// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/wallet"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the wallet public key without decrypting it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := wallet.ReadInfo(a.walletPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printField(out, "Wallet", info.Path)
			printField(out, "Key type", info.KeyTag.KeyType.String())
			printField(out, "Network", info.KeyTag.Network.String())
			printField(out, "Public key", info.PublicKey.String())
			if !info.CreatedAt.IsZero() {
				printField(out, "Created", info.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
