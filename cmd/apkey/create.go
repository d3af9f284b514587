// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/apkeys/internal/keypair"
	"github.com/aplane-algo/apkeys/internal/keys"
	"github.com/aplane-algo/apkeys/internal/mnemonic"
	"github.com/aplane-algo/apkeys/internal/util"
	"github.com/aplane-algo/apkeys/internal/wallet"
)

type createOptions struct {
	keyType    string
	network    string
	fromPhrase bool
	force      bool
}

func newCreateCmd(a *app) *cobra.Command {
	opts := &createOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new wallet key",
		Long: `Create a new key and save it encrypted to the wallet file.

With --phrase the key is restored from a 12 or 24 word mnemonic read from stdin
instead of being generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.keyType, "type", "", "key type: ed25519 or ecc_compact (default from config)")
	cmd.Flags().StringVar(&opts.network, "network", "", "network: mainnet or testnet (default from config)")
	cmd.Flags().BoolVar(&opts.fromPhrase, "phrase", false, "restore from a mnemonic phrase read from stdin")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing wallet file")
	return cmd
}

// keyTag merges the flags over the configured defaults.
func (o *createOptions) keyTag(config util.Config) (keys.KeyTag, error) {
	if o.keyType != "" {
		config.KeyType = o.keyType
	}
	if o.network != "" {
		config.Network = o.network
	}
	tag, err := config.KeyTag()
	if err != nil {
		return keys.KeyTag{}, err
	}
	if tag.KeyType == keys.KeyTypeMultiSig {
		return keys.KeyTag{}, &keys.InvalidKeyTypeError{Tag: tag.Byte()}
	}
	return tag, nil
}

func (a *app) runCreate(cmd *cobra.Command, opts *createOptions) error {
	tag, err := opts.keyTag(a.config)
	if err != nil {
		return err
	}
	path := a.walletPath()

	var kp *keypair.Keypair
	if opts.fromPhrase {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Enter mnemonic phrase:")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading phrase: %w", err)
			}
			return fmt.Errorf("no phrase on stdin")
		}
		kp, err = keypair.FromPhrase(tag, mnemonic.SplitPhrase(scanner.Text()))
	} else {
		kp, err = keypair.Generate(tag)
	}
	if err != nil {
		return err
	}
	defer kp.Zero()

	passphrase, err := readPassphrase(cmd.Context(), cmd.ErrOrStderr(), a.config.PassphraseCommand, true)
	if err != nil {
		return err
	}
	defer passphrase.Destroy()

	saveOpts := wallet.SaveOptions{KDF: a.config.KDF, Force: opts.force}
	err = passphrase.WithBytes(func(b []byte) error {
		return wallet.Save(path, kp, b, saveOpts)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printField(out, "Wallet", path)
	printField(out, "Key type", tag.KeyType.String())
	printField(out, "Network", tag.Network.String())
	printField(out, "Public key", kp.PublicKey().String())
	return nil
}
