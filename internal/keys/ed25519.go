// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/aplane-algo/apkeys/internal/crypto"
)

// Ed25519KeypairLength is the encoded keypair length: tag || seed || public key.
const Ed25519KeypairLength = 1 + ed25519.PrivateKeySize

// Ed25519Keypair holds an Ed25519 private key (seed followed by public key).
type Ed25519Keypair struct {
	network Network
	private ed25519.PrivateKey
	public  PublicKey
}

func newEd25519(network Network, seed []byte) *Ed25519Keypair {
	private := ed25519.NewKeyFromSeed(seed)
	return &Ed25519Keypair{
		network: network,
		private: private,
		public: PublicKey{
			tag:  KeyTag{Network: network, KeyType: KeyTypeEd25519},
			body: bytes.Clone(private[ed25519.SeedSize:]),
		},
	}
}

// GenerateEd25519 creates a new Ed25519 keypair from rand.
func GenerateEd25519(network Network, rand io.Reader) (*Ed25519Keypair, error) {
	seed := make([]byte, ed25519.SeedSize)
	defer crypto.ZeroBytes(seed)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, fmt.Errorf("failed to read entropy: %w", err)
	}
	return newEd25519(network, seed), nil
}

// Ed25519FromEntropy uses the 32 entropy bytes as the Ed25519 seed.
func Ed25519FromEntropy(network Network, entropy []byte) (*Ed25519Keypair, error) {
	if err := checkEntropy(KeyTypeEd25519, entropy); err != nil {
		return nil, err
	}
	return newEd25519(network, entropy), nil
}

// ParseEd25519Keypair parses tag || seed || public key and checks that the
// public key is the one derived from the seed.
func ParseEd25519Keypair(b []byte) (*Ed25519Keypair, error) {
	if err := checkLength(KeyTypeEd25519, b, Ed25519KeypairLength); err != nil {
		return nil, err
	}
	tag, err := expectTag(b[0], KeyTypeEd25519)
	if err != nil {
		return nil, err
	}
	kp := newEd25519(tag.Network, b[1:1+ed25519.SeedSize])
	if subtle.ConstantTimeCompare(kp.private[ed25519.SeedSize:], b[1+ed25519.SeedSize:]) != 1 {
		kp.Zero()
		return nil, fmt.Errorf("%w: ed25519 public key does not match seed", ErrInvalidKey)
	}
	return kp, nil
}

func (k *Ed25519Keypair) KeyTag() KeyTag {
	return KeyTag{Network: k.network, KeyType: KeyTypeEd25519}
}

func (k *Ed25519Keypair) PublicKey() PublicKey {
	return k.public
}

func (k *Ed25519Keypair) Sign(msg []byte) ([]byte, error) {
	if len(k.private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 key has been zeroed", ErrSigning)
	}
	return ed25519.Sign(k.private, msg), nil
}

func (k *Ed25519Keypair) Bytes() []byte {
	out := make([]byte, Ed25519KeypairLength)
	out[0] = k.KeyTag().Byte()
	copy(out[1:], k.private)
	return out
}

func (k *Ed25519Keypair) SecretBytes() []byte {
	out := make([]byte, ed25519.SeedSize)
	copy(out, k.private)
	return out
}

func (k *Ed25519Keypair) Zero() {
	crypto.ZeroBytes(k.private)
	k.private = nil
}

func (k *Ed25519Keypair) Zeroed() bool {
	return k.private == nil
}

func (k *Ed25519Keypair) sealed() {}
