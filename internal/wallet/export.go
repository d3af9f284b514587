// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package wallet

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/fsutil"
	"github.com/aplane-algo/apkeys/internal/util"
)

// SeedLength is the length of an exported Ed25519 seed: 32 byte seed || 32 byte public key.
const SeedLength = 64

// ExportSolana writes seed as a Solana CLI keypair file: a JSON array of 64 byte values.
func ExportSolana(path string, seed []byte) error {
	data, err := solanaJSON(seed)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(data)

	if err := fsutil.WriteFileAtomic(path, data); err != nil {
		return err
	}
	util.Debug("seed exported", "path", path, "format", "solana")
	return nil
}

func solanaJSON(seed []byte) ([]byte, error) {
	if len(seed) != SeedLength {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedLength, len(seed))
	}
	// json encodes []byte as base64, so widen to ints
	values := make([]int, len(seed))
	for i, b := range seed {
		values[i] = int(b)
	}
	defer clear(values)

	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal seed: %w", err)
	}
	return data, nil
}

// SeedBase58 encodes seed in the base58 form accepted by browser wallets.
func SeedBase58(seed []byte) (string, error) {
	if len(seed) != SeedLength {
		return "", fmt.Errorf("seed must be %d bytes, got %d", SeedLength, len(seed))
	}
	return base58.Encode(seed), nil
}
