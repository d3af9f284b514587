// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package keypair provides the wallet Keypair: a tagged union over the supported
// key algorithms with a binary serialization that starts with one tag byte.
//
// Wire format (no length prefixes; lengths follow from the tag byte):
//
//	Ed25519:    tag || seed(32) || public(32)  ||  tag || public(32)
//	EccCompact: tag || scalar(32)              ||  tag || x(32)
//
// Secp256k1 keypairs can be generated and used for signing but are rejected
// by Write, Read and UnencryptedSeed.
package keypair

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/keys"
	"github.com/aplane-algo/apkeys/internal/mnemonic"
)

// Keypair owns the private material of one key and the public key derived from it.
type Keypair struct {
	inner keys.Keypair
}

// Generate creates a fresh keypair for tag from the system random source.
func Generate(tag keys.KeyTag) (*Keypair, error) {
	return GenerateWithReader(tag, rand.Reader)
}

// GenerateWithReader creates a fresh keypair for tag with entropy read from r.
func GenerateWithReader(tag keys.KeyTag, r io.Reader) (*Keypair, error) {
	inner, err := keys.GenerateKeypair(tag, r)
	if err != nil {
		return nil, err
	}
	return &Keypair{inner: inner}, nil
}

// GenerateFromEntropy deterministically derives a keypair from 32 bytes of entropy.
func GenerateFromEntropy(tag keys.KeyTag, entropy []byte) (*Keypair, error) {
	inner, err := keys.KeypairFromEntropy(tag, entropy)
	if err != nil {
		return nil, err
	}
	return &Keypair{inner: inner}, nil
}

// Default generates an Ed25519 MainNet keypair.
func Default() (*Keypair, error) {
	return Generate(keys.DefaultKeyTag())
}

// FromPhrase rebuilds a keypair from mnemonic words. A 12 word phrase carries
// 16 bytes of entropy, which is repeated to form the 32 byte key entropy.
func FromPhrase(tag keys.KeyTag, words []string) (*Keypair, error) {
	entropy, err := mnemonic.MnemonicToEntropy(words)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(entropy)

	switch len(entropy) {
	case keys.EntropySize:
		return GenerateFromEntropy(tag, entropy)
	case keys.EntropySize / 2:
		stretched := make([]byte, 0, keys.EntropySize)
		stretched = append(stretched, entropy...)
		stretched = append(stretched, entropy...)
		defer crypto.ZeroBytes(stretched)
		return GenerateFromEntropy(tag, stretched)
	default:
		return nil, fmt.Errorf("%w: %d word phrases are not supported, use 12 or 24 words", keys.ErrInvalidEntropy, len(words))
	}
}

// KeyTag returns the key type and network of the keypair.
func (k *Keypair) KeyTag() keys.KeyTag {
	return k.inner.KeyTag()
}

// PublicKey returns the public key derived from the private material.
func (k *Keypair) PublicKey() keys.PublicKey {
	return k.inner.PublicKey()
}

// Sign signs msg with the private key.
func (k *Keypair) Sign(msg []byte) ([]byte, error) {
	sig, err := k.inner.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign with %s key: %w", k.KeyTag().KeyType, err)
	}
	return sig, nil
}

// Phrase returns the mnemonic words that recreate this keypair. It is
// implemented here so the secret does not travel through other packages.
func (k *Keypair) Phrase() ([]string, error) {
	if k.inner.Zeroed() {
		return nil, keys.ErrKeyZeroed
	}
	entropy := k.inner.SecretBytes()
	defer crypto.ZeroBytes(entropy)

	words, err := mnemonic.EntropyToMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", keys.ErrInvalidEntropy, err)
	}
	return words, nil
}

// UnencryptedSeed returns the raw private key for import into other wallets.
// Only Ed25519 is supported: the result is the 64 byte seed || public key
// with the tag byte stripped. Caller is responsible for zeroing it.
func (k *Keypair) UnencryptedSeed() ([]byte, error) {
	if k.inner.Zeroed() {
		return nil, keys.ErrKeyZeroed
	}
	switch inner := k.inner.(type) {
	case *keys.Ed25519Keypair:
		encoded := inner.Bytes()
		defer crypto.ZeroBytes(encoded)
		seed := make([]byte, len(encoded)-1)
		copy(seed, encoded[1:])
		return seed, nil
	case *keys.EccCompactKeypair:
		return nil, &keys.UnsupportedError{KeyType: keys.KeyTypeEccCompact, Op: "unencrypted seed export"}
	case *keys.Secp256k1Keypair:
		return nil, &keys.UnsupportedError{KeyType: keys.KeyTypeSecp256k1, Op: "unencrypted seed export"}
	default:
		panic(fmt.Sprintf("keypair: unhandled key variant %T", inner))
	}
}

// Equal compares the full key material of two keypairs in constant time.
func (k *Keypair) Equal(other *Keypair) bool {
	if k == nil || other == nil {
		return k == other
	}
	if k.KeyTag() != other.KeyTag() {
		return false
	}
	a := k.inner.Bytes()
	defer crypto.ZeroBytes(a)
	b := other.inner.Bytes()
	defer crypto.ZeroBytes(b)
	return subtle.ConstantTimeCompare(a, b) == 1 && k.PublicKey().Equal(other.PublicKey())
}

// Zero wipes the private material. Afterwards Sign, Write, Phrase and
// UnencryptedSeed fail instead of emitting data for a different key.
func (k *Keypair) Zero() {
	k.inner.Zero()
}

// String never includes private material.
func (k *Keypair) String() string {
	if k == nil {
		return "Keypair(nil)"
	}
	return fmt.Sprintf("Keypair(%s, %s)", k.KeyTag(), k.PublicKey())
}

// GoString keeps %#v from printing the private fields.
func (k *Keypair) GoString() string {
	return k.String()
}

// Format routes every verb, including %x and %+v, through String.
func (k *Keypair) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, k.String())
}
