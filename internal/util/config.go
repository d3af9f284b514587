// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/keys"
)

// DataDirEnvVar overrides the default data directory.
const DataDirEnvVar = "APKEY_DATA"

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "config.yaml"

// DefaultWalletFile is the wallet file name inside the data directory.
const DefaultWalletFile = "wallet.key"

// Config holds apkey configuration settings
type Config struct {
	Network    string           `yaml:"network" description:"Network for new keys (mainnet, testnet)" default:"mainnet"`
	KeyType    string           `yaml:"key_type" description:"Key type for new keys (ed25519, ecc_compact, secp256k1)" default:"ed25519"`
	WalletFile string           `yaml:"wallet_file" description:"Wallet file (relative to data dir)" default:"wallet.key"`
	KDF        crypto.KDFParams `yaml:"kdf" description:"Argon2id parameters for new wallet files"`

	LockMemory bool `yaml:"lock_memory" description:"mlock all pages (needs CAP_IPC_LOCK)" default:"false"`

	// External passphrase helper (nil = APKEY_PASSPHRASE or interactive prompt)
	PassphraseCommand *PassphraseCommand `yaml:"passphrase_command" description:"Helper that prints the wallet passphrase"`
}

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	return Config{
		Network:    keys.MainNet.String(),
		KeyType:    keys.KeyTypeEd25519.String(),
		WalletFile: DefaultWalletFile,
		KDF:        crypto.DefaultKDFParams(),
	}
}

// GetDataDir returns the data directory.
// Resolution order: -d flag > APKEY_DATA env var > ~/.apkey
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv(DataDirEnvVar); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".apkey")
}

// GetConfigPath returns the path to the config file in the data directory.
// Returns empty string if dataDir is empty.
func GetConfigPath(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, ConfigFileName)
}

// LoadConfig loads configuration from config.yaml in the data directory.
// If dataDir is empty or the file doesn't exist, returns default config.
// Relative wallet_file and passphrase_command paths are resolved against the data directory.
func LoadConfig(dataDir string) (Config, error) {
	config, err := LoadConfigFromPath(GetConfigPath(dataDir))
	if err != nil {
		return config, err
	}
	config.WalletFile = ResolvePath(config.WalletFile, dataDir)
	if config.PassphraseCommand.Enabled() {
		config.PassphraseCommand.Argv[0] = ResolvePath(config.PassphraseCommand.Argv[0], dataDir)
	}
	return config, nil
}

// LoadConfigFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadConfigFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay config file values
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in defaults for missing values
	defaults := DefaultConfig()
	if config.WalletFile == "" {
		config.WalletFile = defaults.WalletFile
	}
	if config.KDF == (crypto.KDFParams{}) {
		config.KDF = defaults.KDF
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	Debug("loaded config", "path", path, "network", config.Network, "key_type", config.KeyType)
	return config, nil
}

// Validate checks that the configured network and key type can create wallets.
func (c *Config) Validate() error {
	tag, err := c.KeyTag()
	if err != nil {
		return err
	}
	if tag.KeyType == keys.KeyTypeMultiSig {
		return fmt.Errorf("invalid key_type '%s' in config (multisig keys cannot be created)", c.KeyType)
	}
	if err := c.KDF.Validate(); err != nil {
		return fmt.Errorf("invalid kdf in config: %w", err)
	}
	return nil
}

// KeyTag returns the tag for keys created with this configuration.
func (c *Config) KeyTag() (keys.KeyTag, error) {
	network, err := keys.ParseNetwork(c.Network)
	if err != nil {
		return keys.KeyTag{}, fmt.Errorf("invalid network in config: %w", err)
	}
	kt, err := keys.ParseKeyType(c.KeyType)
	if err != nil {
		return keys.KeyTag{}, fmt.Errorf("invalid key_type in config: %w", err)
	}
	return keys.KeyTag{Network: network, KeyType: kt}, nil
}

// ResolvePath returns path unchanged if absolute, otherwise joined with baseDir.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
