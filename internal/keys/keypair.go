// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"fmt"
	"io"
)

// EntropySize is the number of entropy bytes every supported key type derives from.
const EntropySize = 32

// Keypair is the per-algorithm key material. It is implemented only by
// *Ed25519Keypair, *EccCompactKeypair and *Secp256k1Keypair.
type Keypair interface {
	KeyTag() KeyTag
	PublicKey() PublicKey
	Sign(msg []byte) ([]byte, error)

	// Bytes returns the tag-prefixed keypair encoding.
	// Caller is responsible for zeroing the returned slice.
	Bytes() []byte

	// SecretBytes returns a copy of the 32-byte secret the key derives from.
	// Caller is responsible for zeroing the returned slice.
	SecretBytes() []byte

	// Zero wipes the secret. The keypair cannot sign afterwards.
	Zero()

	// Zeroed reports whether Zero has been called.
	Zeroed() bool

	sealed()
}

func validateTag(tag KeyTag) error {
	if _, err := KeyTagFromByte(tag.Byte()); err != nil {
		return err
	}
	return nil
}

// GenerateKeypair creates a fresh keypair for tag using entropy from rand.
func GenerateKeypair(tag KeyTag, rand io.Reader) (Keypair, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}
	switch tag.KeyType {
	case KeyTypeEd25519:
		kp, err := GenerateEd25519(tag.Network, rand)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeEccCompact:
		kp, err := GenerateEccCompact(tag.Network, rand)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeSecp256k1:
		kp, err := GenerateSecp256k1(tag.Network, rand)
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, &InvalidKeyTypeError{Tag: tag.Byte()}
	}
}

// KeypairFromEntropy deterministically derives a keypair for tag from entropy.
func KeypairFromEntropy(tag KeyTag, entropy []byte) (Keypair, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}
	switch tag.KeyType {
	case KeyTypeEd25519:
		kp, err := Ed25519FromEntropy(tag.Network, entropy)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeEccCompact:
		kp, err := EccCompactFromEntropy(tag.Network, entropy)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeSecp256k1:
		kp, err := Secp256k1FromEntropy(tag.Network, entropy)
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, &InvalidKeyTypeError{Tag: tag.Byte()}
	}
}

// ParseKeypair parses a tag-prefixed keypair encoding of any supported type.
func ParseKeypair(b []byte) (Keypair, error) {
	Init()
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty keypair", ErrInvalidKey)
	}
	kt, err := KeyTypeFromByte(b[0])
	if err != nil {
		return nil, err
	}
	switch kt {
	case KeyTypeEd25519:
		kp, err := ParseEd25519Keypair(b)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeEccCompact:
		kp, err := ParseEccCompactKeypair(b)
		if err != nil {
			return nil, err
		}
		return kp, nil
	case KeyTypeSecp256k1:
		kp, err := ParseSecp256k1Keypair(b)
		if err != nil {
			return nil, err
		}
		return kp, nil
	default:
		return nil, &InvalidKeyTypeError{Tag: b[0]}
	}
}

func checkEntropy(kt KeyType, entropy []byte) error {
	if len(entropy) != EntropySize {
		return fmt.Errorf("%w: %s requires %d bytes, got %d", ErrInvalidEntropy, kt, EntropySize, len(entropy))
	}
	return nil
}

func checkLength(kt KeyType, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: %s keypair must be %d bytes, got %d", ErrInvalidKey, kt, want, len(b))
	}
	return nil
}
