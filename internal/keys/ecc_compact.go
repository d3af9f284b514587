// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/aplane-algo/apkeys/internal/crypto"
)

const (
	eccCoordinateSize = 32
	eccScalarSize     = 32

	// EccCompactKeypairLength is the encoded keypair length: tag || scalar.
	EccCompactKeypairLength = 1 + eccScalarSize

	// maxCompactAttempts bounds generation. Roughly half of all scalars are compact.
	maxCompactAttempts = 256
)

var errNotCompact = errors.New("public key is not compact")

// EccCompactKeypair is a P-256 key whose public point has the smaller of the two
// possible y coordinates, so the public key is encoded as x alone.
type EccCompactKeypair struct {
	network Network
	scalar  []byte
	private *ecdsa.PrivateKey
	public  PublicKey
}

func newEccCompact(network Network, scalar []byte) (*EccCompactKeypair, error) {
	c := eccParams()
	private, err := ecdsa.ParseRawPrivateKey(c.curve, scalar)
	if err != nil {
		return nil, err
	}
	point, err := private.PublicKey.Bytes()
	if err != nil {
		return nil, err
	}
	x := point[1 : 1+eccCoordinateSize]
	y := point[1+eccCoordinateSize:]
	if !c.isCompact(y) {
		return nil, errNotCompact
	}
	return &EccCompactKeypair{
		network: network,
		scalar:  bytes.Clone(scalar),
		private: private,
		public: PublicKey{
			tag:  KeyTag{Network: network, KeyType: KeyTypeEccCompact},
			body: bytes.Clone(x),
		},
	}, nil
}

// GenerateEccCompact draws scalars from rand until one yields a compact key.
func GenerateEccCompact(network Network, rand io.Reader) (*EccCompactKeypair, error) {
	scalar := make([]byte, eccScalarSize)
	defer crypto.ZeroBytes(scalar)
	for range maxCompactAttempts {
		if _, err := io.ReadFull(rand, scalar); err != nil {
			return nil, fmt.Errorf("failed to read entropy: %w", err)
		}
		kp, err := newEccCompact(network, scalar)
		if err == nil {
			return kp, nil
		}
	}
	return nil, fmt.Errorf("no compact ecc key after %d attempts", maxCompactAttempts)
}

// EccCompactFromEntropy uses the 32 entropy bytes as the P-256 scalar. It fails
// when the scalar is out of range or its public key is not compact.
func EccCompactFromEntropy(network Network, entropy []byte) (*EccCompactKeypair, error) {
	if err := checkEntropy(KeyTypeEccCompact, entropy); err != nil {
		return nil, err
	}
	kp, err := newEccCompact(network, entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: ecc_compact: %v", ErrInvalidEntropy, err)
	}
	return kp, nil
}

// ParseEccCompactKeypair parses tag || scalar.
func ParseEccCompactKeypair(b []byte) (*EccCompactKeypair, error) {
	if err := checkLength(KeyTypeEccCompact, b, EccCompactKeypairLength); err != nil {
		return nil, err
	}
	tag, err := expectTag(b[0], KeyTypeEccCompact)
	if err != nil {
		return nil, err
	}
	kp, err := newEccCompact(tag.Network, b[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: ecc_compact: %v", ErrInvalidKey, err)
	}
	return kp, nil
}

func (k *EccCompactKeypair) KeyTag() KeyTag {
	return KeyTag{Network: k.network, KeyType: KeyTypeEccCompact}
}

func (k *EccCompactKeypair) PublicKey() PublicKey {
	return k.public
}

// Sign returns a DER-encoded ECDSA signature over sha256(msg).
func (k *EccCompactKeypair) Sign(msg []byte) ([]byte, error) {
	if k.private == nil {
		return nil, fmt.Errorf("%w: ecc_compact key has been zeroed", ErrSigning)
	}
	digest := sha256.Sum256(msg)
	sig, err := ecdsa.SignASN1(rand.Reader, k.private, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return sig, nil
}

func (k *EccCompactKeypair) Bytes() []byte {
	out := make([]byte, EccCompactKeypairLength)
	out[0] = k.KeyTag().Byte()
	copy(out[1:], k.scalar)
	return out
}

func (k *EccCompactKeypair) SecretBytes() []byte {
	return bytes.Clone(k.scalar)
}

func (k *EccCompactKeypair) Zero() {
	crypto.ZeroBytes(k.scalar)
	k.scalar = nil
	k.private = nil
}

func (k *EccCompactKeypair) Zeroed() bool {
	return k.private == nil
}

func (k *EccCompactKeypair) sealed() {}
