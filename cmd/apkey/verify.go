// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/keys"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <public-key> <message> <signature>",
		Short: "Verify a base58 signature against a base58check public key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := keys.PublicKeyFromString(args[0])
			if err != nil {
				return err
			}
			sig, err := base58.Decode(args[2])
			if err != nil {
				return fmt.Errorf("invalid signature encoding: %w", err)
			}
			if err := pk.Verify([]byte(args[1]), sig); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "valid %s signature\n", pk.KeyType())
			return nil
		},
	}
}
