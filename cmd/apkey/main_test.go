// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aplane-algo/apkeys/internal/keys"
	"github.com/aplane-algo/apkeys/internal/wallet"
)

// setupDataDir creates a data directory whose config uses cheap KDF parameters.
func setupDataDir(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	config := "kdf:\n  time: 1\n  memory_kib: 64\n  threads: 1\n" + extra
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(config), 0600))
	t.Setenv(passphraseEnvVar, "test passphrase")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return stdout.String(), err
}

func TestCreateInfoSignVerify(t *testing.T) {
	dir := setupDataDir(t, "")

	out, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)
	require.Contains(t, out, "ed25519")

	info, err := wallet.ReadInfo(filepath.Join(dir, "wallet.key"))
	require.NoError(t, err)
	pub := info.PublicKey.String()
	require.Contains(t, out, pub)

	out, err = run(t, "", "-d", dir, "info")
	require.NoError(t, err)
	require.Contains(t, out, pub)
	require.Contains(t, out, "mainnet")

	out, err = run(t, "", "-d", dir, "sign", "hello")
	require.NoError(t, err)
	sig := strings.TrimSpace(out)
	require.NotEmpty(t, sig)

	out, err = run(t, "", "-d", dir, "verify", pub, "hello", sig)
	require.NoError(t, err)
	require.Contains(t, out, "valid ed25519 signature")

	_, err = run(t, "", "-d", dir, "verify", pub, "goodbye", sig)
	require.ErrorIs(t, err, keys.ErrInvalidSignature)
}

func TestCreate_RefusesOverwrite(t *testing.T) {
	dir := setupDataDir(t, "")
	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)

	_, err = run(t, "", "-d", dir, "create")
	require.ErrorIs(t, err, wallet.ErrWalletExists)

	_, err = run(t, "", "-d", dir, "create", "--force")
	require.NoError(t, err)
}

func TestCreate_FlagsOverrideConfig(t *testing.T) {
	dir := setupDataDir(t, "network: testnet\n")
	_, err := run(t, "", "-d", dir, "-f", "ecc.key", "create", "--type", "ecc_compact")
	require.NoError(t, err)

	info, err := wallet.ReadInfo(filepath.Join(dir, "ecc.key"))
	require.NoError(t, err)
	require.Equal(t, keys.KeyTag{Network: keys.TestNet, KeyType: keys.KeyTypeEccCompact}, info.KeyTag)
}

func TestCreate_Rejected(t *testing.T) {
	dir := setupDataDir(t, "")

	_, err := run(t, "", "-d", dir, "create", "--type", "secp256k1")
	var uerr *keys.UnsupportedError
	require.ErrorAs(t, err, &uerr)

	_, err = run(t, "", "-d", dir, "create", "--type", "multisig")
	var kerr *keys.InvalidKeyTypeError
	require.ErrorAs(t, err, &kerr)
}

func TestPhraseRestore(t *testing.T) {
	dir := setupDataDir(t, "")
	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)
	original, err := wallet.ReadInfo(filepath.Join(dir, "wallet.key"))
	require.NoError(t, err)

	out, err := run(t, "", "-d", dir, "phrase")
	require.NoError(t, err)
	var words []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		words = append(words, fields[1])
	}
	require.Len(t, words, 24)

	_, err = run(t, strings.Join(words, " ")+"\n", "-d", dir, "-f", "restored.key", "create", "--phrase")
	require.NoError(t, err)
	restored, err := wallet.ReadInfo(filepath.Join(dir, "restored.key"))
	require.NoError(t, err)
	require.True(t, original.PublicKey.Equal(restored.PublicKey))
}

func TestExport(t *testing.T) {
	dir := setupDataDir(t, "")
	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)

	out, err := run(t, "", "-d", dir, "export", "--format", "base58")
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(out))

	path := filepath.Join(dir, "solana.json")
	_, err = run(t, "", "-d", dir, "export", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values []int
	require.NoError(t, json.Unmarshal(data, &values))
	require.Len(t, values, 64)

	_, err = run(t, "", "-d", dir, "export")
	require.Error(t, err)

	_, err = run(t, "", "-d", dir, "export", "--format", "pem")
	require.Error(t, err)
}

func TestExport_EccCompactUnsupported(t *testing.T) {
	dir := setupDataDir(t, "key_type: ecc_compact\n")
	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)

	_, err = run(t, "", "-d", dir, "export", "--format", "base58")
	var uerr *keys.UnsupportedError
	require.ErrorAs(t, err, &uerr)
}

func TestWrongPassphrase(t *testing.T) {
	dir := setupDataDir(t, "")
	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)

	t.Setenv(passphraseEnvVar, "not it")
	_, err = run(t, "", "-d", dir, "sign", "hello")
	require.Error(t, err)
}

func TestEmptyPassphrase(t *testing.T) {
	dir := setupDataDir(t, "")
	t.Setenv(passphraseEnvVar, "")

	_, err := run(t, "", "-d", dir, "create")
	require.ErrorIs(t, err, errEmptyPassphrase)

	_, statErr := os.Stat(filepath.Join(dir, "wallet.key"))
	require.True(t, os.IsNotExist(statErr))
}

func TestVersion(t *testing.T) {
	dir := setupDataDir(t, "")
	out, err := run(t, "", "-d", dir, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "apkey "))
}

func TestPassphraseCommand(t *testing.T) {
	dir := setupDataDir(t, "passphrase_command:\n  argv: [\"helper.sh\"]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.sh"), []byte("#!/bin/sh\necho from-helper\n"), 0700))
	require.NoError(t, os.Chmod(filepath.Join(dir, "helper.sh"), 0700))

	// Registers cleanup, then removes the variable so the helper is used
	t.Setenv(passphraseEnvVar, "")
	require.NoError(t, os.Unsetenv(passphraseEnvVar))

	_, err := run(t, "", "-d", dir, "create")
	require.NoError(t, err)

	loaded, err := wallet.Load(filepath.Join(dir, "wallet.key"), []byte("from-helper"))
	require.NoError(t, err)
	loaded.Zero()

	_, err = run(t, "", "-d", dir, "sign", "hello")
	require.NoError(t, err)
}
