// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keypair

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aplane-algo/apkeys/internal/crypto"
	"github.com/aplane-algo/apkeys/internal/keys"
)

// Write emits the keypair encoding followed by the public key encoding.
// Secp256k1 keypairs are rejected before anything is written.
func (k *Keypair) Write(w io.Writer) error {
	buf, err := k.encode()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(buf)

	if _, err := w.Write(buf); err != nil {
		return &keys.StreamError{Op: "write", Err: err}
	}
	return nil
}

func (k *Keypair) encode() ([]byte, error) {
	if k.inner.Zeroed() {
		return nil, keys.ErrKeyZeroed
	}
	var encoded []byte
	switch inner := k.inner.(type) {
	case *keys.Ed25519Keypair:
		encoded = inner.Bytes()
	case *keys.EccCompactKeypair:
		encoded = inner.Bytes()
	case *keys.Secp256k1Keypair:
		return nil, &keys.UnsupportedError{KeyType: keys.KeyTypeSecp256k1, Op: "write"}
	default:
		panic(fmt.Sprintf("keypair: unhandled key variant %T", inner))
	}
	defer crypto.ZeroBytes(encoded)

	pub := k.PublicKey().Bytes()
	buf := make([]byte, 0, len(encoded)+len(pub))
	buf = append(buf, encoded...)
	buf = append(buf, pub...)
	return buf, nil
}

// Read decodes a keypair written by Write. The trailing public key must match
// the one derived from the private material.
func Read(r io.Reader) (*Keypair, error) {
	keys.Init()

	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, &keys.StreamError{Op: "read", Err: err}
	}
	kt, err := keys.KeyTypeFromByte(tag[0])
	if err != nil {
		return nil, err
	}

	var size int
	switch kt {
	case keys.KeyTypeEd25519:
		size = keys.Ed25519KeypairLength
	case keys.KeyTypeEccCompact:
		size = keys.EccCompactKeypairLength
	case keys.KeyTypeMultiSig:
		return nil, &keys.InvalidKeyTypeError{Tag: tag[0]}
	case keys.KeyTypeSecp256k1:
		return nil, &keys.UnsupportedError{KeyType: keys.KeyTypeSecp256k1, Op: "read"}
	default:
		return nil, &keys.InvalidKeyTypeError{Tag: tag[0]}
	}

	buf, err := readBody(r, tag[0], size)
	defer crypto.ZeroBytes(buf)
	if err != nil {
		return nil, err
	}
	inner, err := keys.ParseKeypair(buf)
	if err != nil {
		return nil, err
	}

	pub, err := keys.ReadPublicKey(r)
	if err != nil {
		inner.Zero()
		return nil, err
	}
	if !pub.Equal(inner.PublicKey()) {
		inner.Zero()
		return nil, fmt.Errorf("%w: stored public key does not match private key", keys.ErrInvalidKey)
	}
	return &Keypair{inner: inner}, nil
}

// readBody fills a fixed-size buffer whose first byte is the already consumed tag.
func readBody(r io.Reader, tag byte, size int) ([]byte, error) {
	buf := make([]byte, size)
	buf[0] = tag
	if _, err := io.ReadFull(r, buf[1:]); err != nil {
		return buf, &keys.StreamError{Op: "read", Err: err}
	}
	return buf, nil
}

// MarshalBinary returns the Write encoding. Caller is responsible for zeroing it.
func (k *Keypair) MarshalBinary() ([]byte, error) {
	return k.encode()
}

// UnmarshalBinary decodes data produced by MarshalBinary. Trailing bytes are rejected.
func (k *Keypair) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	decoded, err := Read(r)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		decoded.Zero()
		return fmt.Errorf("%w: %d trailing bytes after keypair", keys.ErrInvalidKey, r.Len())
	}
	*k = *decoded
	return nil
}
