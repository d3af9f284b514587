// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/util"
)

// passphraseEnvVar supplies the wallet passphrase non-interactively.
const passphraseEnvVar = "APKEY_PASSPHRASE"

var errEmptyPassphrase = errors.New("passphrase must not be empty")

// readPassphrase returns the wallet passphrase. Sources in order: APKEY_PASSPHRASE,
// the configured passphrase command, a terminal prompt on stderr. With confirm
// set, the prompt asks twice. Caller must Destroy the result.
func readPassphrase(ctx context.Context, stderr io.Writer, helper *util.PassphraseCommand, confirm bool) (*crypto.SecureString, error) {
	pass, err := passphraseFromSource(ctx, stderr, helper, confirm)
	if err != nil {
		return nil, err
	}
	if pass.IsEmpty() {
		pass.Destroy()
		return nil, errEmptyPassphrase
	}
	return pass, nil
}

func passphraseFromSource(ctx context.Context, stderr io.Writer, helper *util.PassphraseCommand, confirm bool) (*crypto.SecureString, error) {
	if env, ok := os.LookupEnv(passphraseEnvVar); ok {
		b := []byte(env)
		defer crypto.ZeroBytes(b)
		return crypto.NewSecureStringFromBytes(b), nil
	}

	if helper.Enabled() {
		b, err := helper.Run(ctx)
		if err != nil {
			return nil, err
		}
		defer crypto.ZeroBytes(b)
		return crypto.NewSecureStringFromBytes(b), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("no terminal for passphrase prompt; set %s", passphraseEnvVar)
	}

	_, _ = fmt.Fprint(stderr, "Passphrase: ")
	pass1, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	first := crypto.NewSecureStringFromBytes(pass1)
	crypto.ZeroBytes(pass1)
	if !confirm || first.IsEmpty() {
		return first, nil
	}

	_, _ = fmt.Fprint(stderr, "Confirm:    ")
	pass2, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(stderr)
	if err != nil {
		first.Destroy()
		return nil, fmt.Errorf("reading confirmation: %w", err)
	}
	second := crypto.NewSecureStringFromBytes(pass2)
	crypto.ZeroBytes(pass2)
	defer second.Destroy()

	if !first.Equal(second) {
		first.Destroy()
		return nil, errors.New("passphrases do not match")
	}
	return first, nil
}
