// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"fmt"
	"strings"
)

// KeyType identifies the key algorithm. It occupies the low nibble of a tag byte.
type KeyType uint8

const (
	KeyTypeEccCompact KeyType = 0x00
	KeyTypeEd25519    KeyType = 0x01
	KeyTypeMultiSig   KeyType = 0x02
	KeyTypeSecp256k1  KeyType = 0x03
)

const (
	keyTypeMask = 0x0f
	networkMask = 0xf0
)

func (kt KeyType) String() string {
	switch kt {
	case KeyTypeEccCompact:
		return "ecc_compact"
	case KeyTypeEd25519:
		return "ed25519"
	case KeyTypeMultiSig:
		return "multisig"
	case KeyTypeSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("keytype(0x%02x)", uint8(kt))
	}
}

// ParseKeyType parses a key type name as used in config files and on the command line.
func ParseKeyType(s string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ecc_compact", "ecc-compact", "ecccompact":
		return KeyTypeEccCompact, nil
	case "ed25519":
		return KeyTypeEd25519, nil
	case "multisig":
		return KeyTypeMultiSig, nil
	case "secp256k1":
		return KeyTypeSecp256k1, nil
	default:
		return 0, fmt.Errorf("unknown key type %q (expected ed25519, ecc_compact or secp256k1)", s)
	}
}

// KeyTypeFromByte decodes the key type from a tag byte, ignoring the network.
func KeyTypeFromByte(tag byte) (KeyType, error) {
	switch kt := KeyType(tag & keyTypeMask); kt {
	case KeyTypeEccCompact, KeyTypeEd25519, KeyTypeMultiSig, KeyTypeSecp256k1:
		return kt, nil
	default:
		return 0, &InvalidKeyTypeError{Tag: tag}
	}
}

// Network identifies the chain a key belongs to. It occupies the high nibble of a tag byte.
type Network uint8

const (
	MainNet Network = 0x00
	TestNet Network = 0x10
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	default:
		return fmt.Sprintf("network(0x%02x)", uint8(n))
	}
}

// ParseNetwork parses a network name.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "test":
		return TestNet, nil
	default:
		return 0, fmt.Errorf("unknown network %q (expected mainnet or testnet)", s)
	}
}

// NetworkFromByte decodes the network from a tag byte.
func NetworkFromByte(tag byte) (Network, error) {
	switch n := Network(tag & networkMask); n {
	case MainNet, TestNet:
		return n, nil
	default:
		return 0, &InvalidNetworkError{Tag: tag}
	}
}

// KeyTag is the (network, key type) pair carried by the first byte of every serialized key.
type KeyTag struct {
	Network Network
	KeyType KeyType
}

// DefaultKeyTag returns the tag used when none is given: Ed25519 on MainNet.
func DefaultKeyTag() KeyTag {
	return KeyTag{Network: MainNet, KeyType: KeyTypeEd25519}
}

// Byte packs the tag into a single byte.
func (t KeyTag) Byte() byte {
	return byte(t.Network) | byte(t.KeyType)
}

func (t KeyTag) String() string {
	return t.KeyType.String() + "/" + t.Network.String()
}

// KeyTagFromByte is the inverse of KeyTag.Byte. Unknown nibbles are rejected.
func KeyTagFromByte(tag byte) (KeyTag, error) {
	kt, err := KeyTypeFromByte(tag)
	if err != nil {
		return KeyTag{}, err
	}
	network, err := NetworkFromByte(tag)
	if err != nil {
		return KeyTag{}, err
	}
	return KeyTag{Network: network, KeyType: kt}, nil
}

// expectTag decodes tag and verifies it names the wanted key type.
func expectTag(tag byte, want KeyType) (KeyTag, error) {
	kt, err := KeyTagFromByte(tag)
	if err != nil {
		return KeyTag{}, err
	}
	if kt.KeyType != want {
		return KeyTag{}, fmt.Errorf("%w: expected %s tag, got %s", ErrInvalidKey, want, kt.KeyType)
	}
	return kt, nil
}
