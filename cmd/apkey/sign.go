// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/util"
)

func newSignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message with the wallet key and print the base58 signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := a.loadKeypair(cmd)
			if err != nil {
				return err
			}
			defer kp.Zero()

			sig, err := kp.Sign([]byte(args[0]))
			if err != nil {
				return err
			}
			util.Debug("signed message", "public_key", kp.PublicKey().String(), "signature_len", len(sig))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), base58.Encode(sig))
			return nil
		},
	}
}
