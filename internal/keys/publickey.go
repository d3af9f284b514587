// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Encoded public key lengths, including the tag byte.
const (
	Ed25519PublicKeyLength    = 1 + ed25519.PublicKeySize
	EccCompactPublicKeyLength = 1 + eccCoordinateSize
	Secp256k1PublicKeyLength  = 1 + secp256k1.PubKeyBytesLenCompressed
)

// base58Version is the version byte prepended to public keys in their text form.
const base58Version = 0x00

// ErrInvalidSignature indicates a signature that does not verify under the public key.
var ErrInvalidSignature = errors.New("invalid signature")

// PublicKey is a tagged public key. The zero value is not a valid key.
type PublicKey struct {
	tag  KeyTag
	body []byte
}

// publicKeyLength returns the encoded length for kt, or false for key types
// that have no stand-alone public key encoding.
func publicKeyLength(kt KeyType) (int, bool) {
	switch kt {
	case KeyTypeEd25519:
		return Ed25519PublicKeyLength, true
	case KeyTypeEccCompact:
		return EccCompactPublicKeyLength, true
	case KeyTypeSecp256k1:
		return Secp256k1PublicKeyLength, true
	default:
		return 0, false
	}
}

// PublicKeyFromBytes parses a tag-prefixed public key and validates the curve point.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	Init()
	if len(b) == 0 {
		return PublicKey{}, fmt.Errorf("%w: empty public key", ErrInvalidKey)
	}
	tag, err := KeyTagFromByte(b[0])
	if err != nil {
		return PublicKey{}, err
	}
	want, ok := publicKeyLength(tag.KeyType)
	if !ok {
		return PublicKey{}, &InvalidKeyTypeError{Tag: b[0]}
	}
	if len(b) != want {
		return PublicKey{}, fmt.Errorf("%w: %s public key must be %d bytes, got %d", ErrInvalidKey, tag.KeyType, want, len(b))
	}

	body := b[1:]
	switch tag.KeyType {
	case KeyTypeEd25519:
		if _, err := new(edwards25519.Point).SetBytes(body); err != nil {
			return PublicKey{}, fmt.Errorf("%w: ed25519 point: %v", ErrInvalidKey, err)
		}
	case KeyTypeEccCompact:
		if _, err := compactPublicKey(body); err != nil {
			return PublicKey{}, err
		}
	case KeyTypeSecp256k1:
		if _, err := secp256k1.ParsePubKey(body); err != nil {
			return PublicKey{}, fmt.Errorf("%w: secp256k1 point: %v", ErrInvalidKey, err)
		}
	}

	return PublicKey{tag: tag, body: bytes.Clone(body)}, nil
}

// compactPublicKey recovers the P-256 public key from its x coordinate.
func compactPublicKey(x []byte) (*ecdsa.PublicKey, error) {
	c := eccParams()
	uncompressed, err := c.decompress(x)
	if err != nil {
		return nil, fmt.Errorf("%w: x coordinate is not on P-256", ErrInvalidKey)
	}
	pub, err := ecdsa.ParseUncompressedPublicKey(c.curve, uncompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: ecc_compact point: %v", ErrInvalidKey, err)
	}
	return pub, nil
}

// PublicKeyFromString parses the base58check text form produced by String.
func PublicKeyFromString(s string) (PublicKey, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: base58: %v", ErrInvalidKey, err)
	}
	if version != base58Version {
		return PublicKey{}, fmt.Errorf("%w: unexpected base58 version 0x%02x", ErrInvalidKey, version)
	}
	return PublicKeyFromBytes(payload)
}

// ReadPublicKey reads one tag byte and the fixed-length body it implies.
func ReadPublicKey(r io.Reader) (PublicKey, error) {
	Init()
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return PublicKey{}, &StreamError{Op: "read", Err: err}
	}
	kt, err := KeyTypeFromByte(tag[0])
	if err != nil {
		return PublicKey{}, err
	}
	n, ok := publicKeyLength(kt)
	if !ok {
		return PublicKey{}, &InvalidKeyTypeError{Tag: tag[0]}
	}
	buf := make([]byte, n)
	buf[0] = tag[0]
	if _, err := io.ReadFull(r, buf[1:]); err != nil {
		return PublicKey{}, &StreamError{Op: "read", Err: err}
	}
	return PublicKeyFromBytes(buf)
}

// Write emits the tag-prefixed encoding.
func (pk PublicKey) Write(w io.Writer) error {
	if _, err := w.Write(pk.Bytes()); err != nil {
		return &StreamError{Op: "write", Err: err}
	}
	return nil
}

// Bytes returns a fresh copy of the tag-prefixed encoding.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, 1+len(pk.body))
	out[0] = pk.tag.Byte()
	copy(out[1:], pk.body)
	return out
}

func (pk PublicKey) KeyTag() KeyTag {
	return pk.tag
}

func (pk PublicKey) KeyType() KeyType {
	return pk.tag.KeyType
}

func (pk PublicKey) Network() Network {
	return pk.tag.Network
}

// IsZero reports whether pk is the zero value.
func (pk PublicKey) IsZero() bool {
	return len(pk.body) == 0
}

func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.tag == other.tag && bytes.Equal(pk.body, other.body)
}

// String returns the base58check encoding of the tag-prefixed key.
func (pk PublicKey) String() string {
	if pk.IsZero() {
		return ""
	}
	return base58.CheckEncode(pk.Bytes(), base58Version)
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	if pk.IsZero() {
		return nil, fmt.Errorf("%w: empty public key", ErrInvalidKey)
	}
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := PublicKeyFromString(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Verify checks sig over msg. Ed25519 signs msg directly; the ECDSA key types
// verify a DER signature over sha256(msg).
func (pk PublicKey) Verify(msg, sig []byte) error {
	switch pk.tag.KeyType {
	case KeyTypeEd25519:
		if len(pk.body) != ed25519.PublicKeySize || !ed25519.Verify(pk.body, msg, sig) {
			return ErrInvalidSignature
		}
		return nil
	case KeyTypeEccCompact:
		pub, err := compactPublicKey(pk.body)
		if err != nil {
			return err
		}
		digest := sha256.Sum256(msg)
		if !ecdsa.VerifyASN1(pub, digest[:], sig) {
			return ErrInvalidSignature
		}
		return nil
	case KeyTypeSecp256k1:
		pub, err := secp256k1.ParsePubKey(pk.body)
		if err != nil {
			return fmt.Errorf("%w: secp256k1 point: %v", ErrInvalidKey, err)
		}
		parsed, err := secpecdsa.ParseDERSignature(sig)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		digest := sha256.Sum256(msg)
		if !parsed.Verify(digest[:], pub) {
			return ErrInvalidSignature
		}
		return nil
	default:
		return &UnsupportedError{KeyType: pk.tag.KeyType, Op: "verify"}
	}
}
