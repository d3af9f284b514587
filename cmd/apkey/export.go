// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/fsutil"
	"github.com/aplane-algo/apkeys/internal/wallet"
)

const (
	exportFormatSolana = "solana"
	exportFormatBase58 = "base58"
)

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the unencrypted Ed25519 seed for other wallets",
		Long: `Export the unencrypted Ed25519 seed (seed followed by public key).

  solana  Solana CLI keypair file, written to -o
  base58  base58 string printed to stdout or written to -o`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != exportFormatSolana && format != exportFormatBase58 {
				return fmt.Errorf("unknown export format %q (expected %s or %s)", format, exportFormatSolana, exportFormatBase58)
			}
			if format == exportFormatSolana && output == "" {
				return fmt.Errorf("--format %s requires -o <file>", exportFormatSolana)
			}

			kp, err := a.loadKeypair(cmd)
			if err != nil {
				return err
			}
			defer kp.Zero()

			seed, err := kp.UnencryptedSeed()
			if err != nil {
				return err
			}
			defer crypto.ZeroBytes(seed)

			printWarning(cmd.ErrOrStderr(), "The exported seed is NOT encrypted. Protect or delete it after import.")

			switch format {
			case exportFormatSolana:
				if err := wallet.ExportSolana(output, seed); err != nil {
					return err
				}
				printField(cmd.OutOrStdout(), "Exported", output)
			case exportFormatBase58:
				encoded, err := wallet.SeedBase58(seed)
				if err != nil {
					return err
				}
				if output == "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), encoded)
					return nil
				}
				data := []byte(encoded + "\n")
				defer crypto.ZeroBytes(data)
				if err := fsutil.WriteFileAtomic(output, data); err != nil {
					return err
				}
				printField(cmd.OutOrStdout(), "Exported", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", exportFormatSolana, "export format: solana or base58")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
