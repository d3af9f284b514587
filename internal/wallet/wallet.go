// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package wallet stores a single keypair in a passphrase-encrypted JSON file.
// The header (key type, network, public key) is readable without the passphrase.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/fsutil"
	"github.com/aplane-algo/apkeys/internal/keypair"
	"github.com/aplane-algo/apkeys/internal/keys"
	"github.com/aplane-algo/apkeys/internal/util"
)

// CurrentFormatVersion is the wallet file format written by Save.
const CurrentFormatVersion = 1

var (
	// ErrWalletExists indicates Save would overwrite an existing wallet
	ErrWalletExists = errors.New("wallet file already exists")

	// ErrPublicKeyMismatch indicates the decrypted key does not match the header
	ErrPublicKeyMismatch = errors.New("wallet public key does not match encrypted key")

	// ErrUnsupportedFormat indicates a wallet written by an incompatible version
	ErrUnsupportedFormat = errors.New("unsupported wallet format")
)

// File is the on-disk JSON document.
type File struct {
	FormatVersion int              `json:"format_version"`
	KeyType       string           `json:"key_type"`
	Network       string           `json:"network"`
	PublicKey     keys.PublicKey   `json:"public_key"`
	CreatedAt     string           `json:"created_at"`
	Encrypted     *crypto.Envelope `json:"encrypted"`
}

// Info is the public part of a wallet file.
type Info struct {
	Path          string
	FormatVersion int
	KeyTag        keys.KeyTag
	PublicKey     keys.PublicKey
	CreatedAt     time.Time
}

// SaveOptions control how Save writes a wallet.
type SaveOptions struct {
	// KDF parameters for the envelope. The zero value selects crypto.DefaultKDFParams.
	KDF crypto.KDFParams

	// Force allows replacing an existing wallet file.
	Force bool
}

// Save encrypts kp under passphrase and writes it to path atomically.
func Save(path string, kp *keypair.Keypair, passphrase []byte, opts SaveOptions) error {
	if !opts.Force {
		exists, err := fsutil.Exists(path)
		if err != nil {
			return fmt.Errorf("failed to check wallet file: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrWalletExists, path)
		}
	}

	params := opts.KDF
	if params == (crypto.KDFParams{}) {
		params = crypto.DefaultKDFParams()
	}

	encoded, err := kp.MarshalBinary()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(encoded)

	envelope, err := crypto.Seal(encoded, passphrase, params)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	tag := kp.KeyTag()
	file := File{
		FormatVersion: CurrentFormatVersion,
		KeyType:       tag.KeyType.String(),
		Network:       tag.Network.String(),
		PublicKey:     kp.PublicKey(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Encrypted:     envelope,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data); err != nil {
		return err
	}

	util.Debug("wallet saved", "path", path, "key_type", file.KeyType, "network", file.Network, "public_key", file.PublicKey.String())
	return nil
}

// Load decrypts the wallet at path. The decrypted keypair must match the header public key.
func Load(path string, passphrase []byte) (*keypair.Keypair, error) {
	file, info, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if file.Encrypted == nil {
		return nil, fmt.Errorf("%w: missing encrypted key", ErrUnsupportedFormat)
	}

	plaintext, err := crypto.Open(file.Encrypted, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet %s: %w", path, err)
	}
	defer crypto.ZeroBytes(plaintext)

	var kp keypair.Keypair
	if err := kp.UnmarshalBinary(plaintext); err != nil {
		return nil, fmt.Errorf("failed to decode wallet key: %w", err)
	}
	if kp.KeyTag() != info.KeyTag || !kp.PublicKey().Equal(info.PublicKey) {
		kp.Zero()
		return nil, ErrPublicKeyMismatch
	}

	util.Debug("wallet loaded", "path", path, "key_type", info.KeyTag.KeyType.String(), "public_key", info.PublicKey.String())
	return &kp, nil
}

// ReadInfo returns the wallet header without decrypting anything.
func ReadInfo(path string) (*Info, error) {
	_, info, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func readFile(path string) (*File, *Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read wallet: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if file.FormatVersion != CurrentFormatVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrUnsupportedFormat, file.FormatVersion)
	}
	if file.PublicKey.IsZero() {
		return nil, nil, fmt.Errorf("%w: missing public key", ErrUnsupportedFormat)
	}

	tag, err := headerTag(file.KeyType, file.Network)
	if err != nil {
		return nil, nil, err
	}
	if tag != file.PublicKey.KeyTag() {
		return nil, nil, fmt.Errorf("%w: header says %s, public key is %s", ErrPublicKeyMismatch, tag, file.PublicKey.KeyTag())
	}

	info := &Info{
		Path:          path,
		FormatVersion: file.FormatVersion,
		KeyTag:        tag,
		PublicKey:     file.PublicKey,
	}
	if file.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, file.CreatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: created_at: %v", ErrUnsupportedFormat, err)
		}
		info.CreatedAt = createdAt
	}
	return &file, info, nil
}

func headerTag(keyType, network string) (keys.KeyTag, error) {
	kt, err := keys.ParseKeyType(keyType)
	if err != nil {
		return keys.KeyTag{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	n, err := keys.ParseNetwork(network)
	if err != nil {
		return keys.KeyTag{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return keys.KeyTag{Network: n, KeyType: kt}, nil
}
