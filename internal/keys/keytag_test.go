// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyTag_ByteRoundTrip(t *testing.T) {
	allTypes := []KeyType{KeyTypeEccCompact, KeyTypeEd25519, KeyTypeMultiSig, KeyTypeSecp256k1}
	for _, network := range networks {
		for _, kt := range allTypes {
			tag := KeyTag{Network: network, KeyType: kt}
			decoded, err := KeyTagFromByte(tag.Byte())
			require.NoError(t, err)
			require.Equal(t, tag, decoded)
		}
	}
}

func TestKeyTag_KnownBytes(t *testing.T) {
	require.Equal(t, byte(0x01), DefaultKeyTag().Byte())
	require.Equal(t, byte(0x00), KeyTag{Network: MainNet, KeyType: KeyTypeEccCompact}.Byte())
	require.Equal(t, byte(0x11), KeyTag{Network: TestNet, KeyType: KeyTypeEd25519}.Byte())
	require.Equal(t, byte(0x13), KeyTag{Network: TestNet, KeyType: KeyTypeSecp256k1}.Byte())
	require.Equal(t, "ed25519/mainnet", DefaultKeyTag().String())
}

func TestKeyTagFromByte_InvalidKeyType(t *testing.T) {
	for _, b := range []byte{0x04, 0x05, 0x0f, 0x14, 0x1f} {
		_, err := KeyTagFromByte(b)
		var kerr *InvalidKeyTypeError
		require.True(t, errors.As(err, &kerr), "byte 0x%02x", b)
		require.Equal(t, b, kerr.Tag)
	}
}

func TestKeyTagFromByte_InvalidNetwork(t *testing.T) {
	for _, b := range []byte{0x21, 0x30, 0xf1} {
		_, err := KeyTagFromByte(b)
		var nerr *InvalidNetworkError
		require.True(t, errors.As(err, &nerr), "byte 0x%02x", b)
		require.Equal(t, b, nerr.Tag)
		require.Contains(t, err.Error(), "invalid network")
	}
}

func TestKeyTypeFromByte_IgnoresNetwork(t *testing.T) {
	kt, err := KeyTypeFromByte(0x21)
	require.NoError(t, err)
	require.Equal(t, KeyTypeEd25519, kt)
}

func TestParseKeyType(t *testing.T) {
	for _, kt := range []KeyType{KeyTypeEccCompact, KeyTypeEd25519, KeyTypeMultiSig, KeyTypeSecp256k1} {
		parsed, err := ParseKeyType(kt.String())
		require.NoError(t, err)
		require.Equal(t, kt, parsed)
	}
	parsed, err := ParseKeyType(" ECC-Compact ")
	require.NoError(t, err)
	require.Equal(t, KeyTypeEccCompact, parsed)

	_, err = ParseKeyType("rsa")
	require.Error(t, err)
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("testnet")
	require.NoError(t, err)
	require.Equal(t, TestNet, n)

	n, err = ParseNetwork("MainNet")
	require.NoError(t, err)
	require.Equal(t, MainNet, n)

	_, err = ParseNetwork("devnet")
	require.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "invalid key type in tag byte 0x04", (&InvalidKeyTypeError{Tag: 0x04}).Error())
	require.Equal(t, "secp256k1 key type unsupported for write",
		(&UnsupportedError{KeyType: KeyTypeSecp256k1, Op: "write"}).Error())
}
