// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Secp256k1KeypairLength is the encoded keypair length: tag || scalar.
const Secp256k1KeypairLength = 1 + secp256k1.PrivKeyBytesLen

// Secp256k1Keypair holds a secp256k1 private scalar.
type Secp256k1Keypair struct {
	network Network
	private *secp256k1.PrivateKey
	public  PublicKey
}

func newSecp256k1(network Network, private *secp256k1.PrivateKey) *Secp256k1Keypair {
	return &Secp256k1Keypair{
		network: network,
		private: private,
		public: PublicKey{
			tag:  KeyTag{Network: network, KeyType: KeyTypeSecp256k1},
			body: private.PubKey().SerializeCompressed(),
		},
	}
}

// GenerateSecp256k1 creates a new secp256k1 keypair from rand.
func GenerateSecp256k1(network Network, rand io.Reader) (*Secp256k1Keypair, error) {
	private, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return newSecp256k1(network, private), nil
}

// Secp256k1FromEntropy uses the 32 entropy bytes as the scalar. Zero and
// values not below the group order are rejected.
func Secp256k1FromEntropy(network Network, entropy []byte) (*Secp256k1Keypair, error) {
	if err := checkEntropy(KeyTypeSecp256k1, entropy); err != nil {
		return nil, err
	}
	private, err := secp256k1Scalar(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntropy, err)
	}
	return newSecp256k1(network, private), nil
}

// ParseSecp256k1Keypair parses tag || scalar.
func ParseSecp256k1Keypair(b []byte) (*Secp256k1Keypair, error) {
	if err := checkLength(KeyTypeSecp256k1, b, Secp256k1KeypairLength); err != nil {
		return nil, err
	}
	tag, err := expectTag(b[0], KeyTypeSecp256k1)
	if err != nil {
		return nil, err
	}
	private, err := secp256k1Scalar(b[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return newSecp256k1(tag.Network, private), nil
}

func secp256k1Scalar(b []byte) (*secp256k1.PrivateKey, error) {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("secp256k1 scalar is not below the group order")
	}
	if s.IsZero() {
		return nil, fmt.Errorf("secp256k1 scalar is zero")
	}
	return secp256k1.NewPrivateKey(&s), nil
}

func (k *Secp256k1Keypair) KeyTag() KeyTag {
	return KeyTag{Network: k.network, KeyType: KeyTypeSecp256k1}
}

func (k *Secp256k1Keypair) PublicKey() PublicKey {
	return k.public
}

// Sign returns a DER-encoded ECDSA signature over sha256(msg).
func (k *Secp256k1Keypair) Sign(msg []byte) ([]byte, error) {
	if k.private == nil {
		return nil, fmt.Errorf("%w: secp256k1 key has been zeroed", ErrSigning)
	}
	digest := sha256.Sum256(msg)
	return secpecdsa.Sign(k.private, digest[:]).Serialize(), nil
}

func (k *Secp256k1Keypair) Bytes() []byte {
	out := make([]byte, Secp256k1KeypairLength)
	out[0] = k.KeyTag().Byte()
	if k.private != nil {
		k.private.Key.PutBytesUnchecked(out[1:])
	}
	return out
}

func (k *Secp256k1Keypair) SecretBytes() []byte {
	if k.private == nil {
		return make([]byte, secp256k1.PrivKeyBytesLen)
	}
	return k.private.Serialize()
}

func (k *Secp256k1Keypair) Zero() {
	if k.private != nil {
		k.private.Zero()
	}
	k.private = nil
}

func (k *Secp256k1Keypair) Zeroed() bool {
	return k.private == nil
}

func (k *Secp256k1Keypair) sealed() {}
