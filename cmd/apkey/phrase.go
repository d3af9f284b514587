// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPhraseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "phrase",
		Short: "Print the mnemonic phrase that restores the wallet key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := a.loadKeypair(cmd)
			if err != nil {
				return err
			}
			defer kp.Zero()

			words, err := kp.Phrase()
			if err != nil {
				return err
			}
			defer clear(words)

			out := cmd.OutOrStdout()
			printWarning(cmd.ErrOrStderr(), "Anyone with these words controls this key. Write them down offline.")
			for i, w := range words {
				_, _ = fmt.Fprintf(out, "%2d. %s\n", i+1, w)
			}
			return nil
		},
	}
}
