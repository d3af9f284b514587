// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, kt KeyType, network Network) Keypair {
	t.Helper()
	kp, err := GenerateKeypair(KeyTag{Network: network, KeyType: kt}, rand.Reader)
	require.NoError(t, err)
	return kp
}

func TestPublicKey_Lengths(t *testing.T) {
	want := map[KeyType]int{
		KeyTypeEd25519:    33,
		KeyTypeEccCompact: 33,
		KeyTypeSecp256k1:  34,
	}
	for _, kt := range supportedTypes {
		pk := generate(t, kt, MainNet).PublicKey()
		require.Len(t, pk.Bytes(), want[kt], kt.String())
		require.Equal(t, kt, pk.KeyType())
	}
}

func TestPublicKey_BinaryRoundTrip(t *testing.T) {
	for _, kt := range supportedTypes {
		for _, network := range networks {
			pk := generate(t, kt, network).PublicKey()

			var buf bytes.Buffer
			require.NoError(t, pk.Write(&buf))
			decoded, err := ReadPublicKey(&buf)
			require.NoError(t, err)
			require.True(t, pk.Equal(decoded), "%s/%s", kt, network)
			require.Equal(t, 0, buf.Len())

			fromBytes, err := PublicKeyFromBytes(pk.Bytes())
			require.NoError(t, err)
			require.True(t, pk.Equal(fromBytes))
		}
	}
}

func TestPublicKey_Base58RoundTrip(t *testing.T) {
	for _, kt := range supportedTypes {
		pk := generate(t, kt, TestNet).PublicKey()
		decoded, err := PublicKeyFromString(pk.String())
		require.NoError(t, err)
		require.True(t, pk.Equal(decoded))

		text, err := pk.MarshalText()
		require.NoError(t, err)
		var unmarshaled PublicKey
		require.NoError(t, unmarshaled.UnmarshalText(text))
		require.True(t, pk.Equal(unmarshaled))
	}
}

func TestPublicKey_BytesIsACopy(t *testing.T) {
	pk := generate(t, KeyTypeEd25519, MainNet).PublicKey()
	b := pk.Bytes()
	b[1] ^= 0xFF
	require.NotEqual(t, b, pk.Bytes())
}

func TestPublicKeyFromString_Errors(t *testing.T) {
	pk := generate(t, KeyTypeEd25519, MainNet).PublicKey()

	t.Run("bad checksum", func(t *testing.T) {
		s := []byte(pk.String())
		if s[len(s)-1] == '2' {
			s[len(s)-1] = '3'
		} else {
			s[len(s)-1] = '2'
		}
		_, err := PublicKeyFromString(string(s))
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := PublicKeyFromString(base58.CheckEncode(pk.Bytes(), 0x01))
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := PublicKeyFromString("")
		require.Error(t, err)
	})
}

func TestPublicKeyFromBytes_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := PublicKeyFromBytes(nil)
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := PublicKeyFromBytes(make([]byte, 20))
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("multisig tag", func(t *testing.T) {
		b := make([]byte, 33)
		b[0] = 0x02
		_, err := PublicKeyFromBytes(b)
		var kerr *InvalidKeyTypeError
		require.True(t, errors.As(err, &kerr))
		require.Equal(t, byte(0x02), kerr.Tag)
	})

	t.Run("ecc x above field prime", func(t *testing.T) {
		b := bytes.Repeat([]byte{0xFF}, EccCompactPublicKeyLength)
		b[0] = KeyTag{Network: MainNet, KeyType: KeyTypeEccCompact}.Byte()
		_, err := PublicKeyFromBytes(b)
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("secp256k1 bad prefix", func(t *testing.T) {
		b := make([]byte, Secp256k1PublicKeyLength)
		b[0] = KeyTag{Network: MainNet, KeyType: KeyTypeSecp256k1}.Byte()
		b[1] = 0x05
		_, err := PublicKeyFromBytes(b)
		require.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestReadPublicKey_Truncated(t *testing.T) {
	pk := generate(t, KeyTypeEccCompact, MainNet).PublicKey()
	b := pk.Bytes()

	_, err := ReadPublicKey(bytes.NewReader(b[:10]))
	var serr *StreamError
	require.True(t, errors.As(err, &serr))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadPublicKey(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestPublicKey_Verify(t *testing.T) {
	msg := []byte("transfer 10 tokens")
	for _, kt := range supportedTypes {
		kp := generate(t, kt, MainNet)
		sig, err := kp.Sign(msg)
		require.NoError(t, err)

		require.NoError(t, kp.PublicKey().Verify(msg, sig), kt.String())
		require.ErrorIs(t, kp.PublicKey().Verify([]byte("transfer 99 tokens"), sig), ErrInvalidSignature, kt.String())

		other := generate(t, kt, MainNet)
		require.Error(t, other.PublicKey().Verify(msg, sig), kt.String())
	}
}

func TestPublicKey_ZeroValue(t *testing.T) {
	var pk PublicKey
	require.True(t, pk.IsZero())
	require.Equal(t, "", pk.String())
	_, err := pk.MarshalText()
	require.ErrorIs(t, err, ErrInvalidKey)
}
