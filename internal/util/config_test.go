// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/keys"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "mainnet", cfg.Network)
	require.Equal(t, "ed25519", cfg.KeyType)
	require.Equal(t, filepath.Join(dir, DefaultWalletFile), cfg.WalletFile)
	require.Equal(t, crypto.DefaultKDFParams(), cfg.KDF)

	tag, err := cfg.KeyTag()
	require.NoError(t, err)
	require.Equal(t, keys.DefaultKeyTag(), tag)
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
network: testnet
key_type: ecc_compact
wallet_file: /tmp/elsewhere.key
kdf:
  time: 2
  memory_kib: 1024
  threads: 1
lock_memory: true
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	tag, err := cfg.KeyTag()
	require.NoError(t, err)
	require.Equal(t, keys.KeyTag{Network: keys.TestNet, KeyType: keys.KeyTypeEccCompact}, tag)
	require.Equal(t, "/tmp/elsewhere.key", cfg.WalletFile)
	require.Equal(t, crypto.KDFParams{Time: 2, MemoryKiB: 1024, Threads: 1}, cfg.KDF)
	require.True(t, cfg.LockMemory)
}

func TestLoadConfig_PassphraseCommand(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
passphrase_command:
  argv: ["bin/pass-helper", "wallet"]
  env:
    STORE: main
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.True(t, cfg.PassphraseCommand.Enabled())
	require.Equal(t, []string{filepath.Join(dir, "bin/pass-helper"), "wallet"}, cfg.PassphraseCommand.Argv)
	require.Equal(t, map[string]string{"STORE": "main"}, cfg.PassphraseCommand.Env)

	defaults, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.False(t, defaults.PassphraseCommand.Enabled())
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "key_type: secp256k1\n")
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "mainnet", cfg.Network)
	require.Equal(t, "secp256k1", cfg.KeyType)
	require.Equal(t, filepath.Join(dir, DefaultWalletFile), cfg.WalletFile)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"network":  "network: devnet\n",
		"key type": "key_type: rsa\n",
		"multisig": "key_type: multisig\n",
		"kdf":      "kdf:\n  time: 0\n  memory_kib: 1024\n  threads: 1\n",
		"yaml":     "network: [unterminated\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			_, err := LoadConfig(dir)
			require.Error(t, err)
		})
	}
}

func TestGetDataDir(t *testing.T) {
	require.Equal(t, "/flag", GetDataDir("/flag"))

	t.Setenv(DataDirEnvVar, "/env")
	require.Equal(t, "/env", GetDataDir(""))

	t.Setenv(DataDirEnvVar, "")
	home, err := os.UserHomeDir()
	if err == nil {
		require.Equal(t, filepath.Join(home, ".apkey"), GetDataDir(""))
	}
}

func TestGetConfigPath(t *testing.T) {
	require.Equal(t, "", GetConfigPath(""))
	require.Equal(t, filepath.Join("/data", "config.yaml"), GetConfigPath("/data"))
}

func TestResolvePath(t *testing.T) {
	require.Equal(t, "/abs/wallet.key", ResolvePath("/abs/wallet.key", "/data"))
	require.Equal(t, filepath.Join("/data", "wallet.key"), ResolvePath("wallet.key", "/data"))
	require.Equal(t, "wallet.key", ResolvePath("wallet.key", ""))
}

func TestInitLogger(t *testing.T) {
	InitLogger(true)
	require.True(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	t.Setenv(DebugEnvVar, "")
	InitLogger(false)
	require.False(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	Debug("not shown", "key", "value")
}
