// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package mnemonic converts key entropy to BIP-39 word sequences and back.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

var (
	// ErrInvalidEntropy indicates entropy whose length has no BIP-39 encoding
	ErrInvalidEntropy = errors.New("invalid mnemonic entropy")

	// ErrInvalidMnemonic indicates an unknown word, bad word count or checksum failure
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// Entropy sizes in bytes accepted by BIP-39 (128 to 256 bits in 32-bit steps).
const (
	MinEntropySize = 16
	MaxEntropySize = 32
)

// ValidateEntropySize checks that n bytes of entropy can be encoded.
func ValidateEntropySize(n int) error {
	if n < MinEntropySize || n > MaxEntropySize || n%4 != 0 {
		return fmt.Errorf("%w: must be 16, 20, 24, 28 or 32 bytes, got %d", ErrInvalidEntropy, n)
	}
	return nil
}

// WordCount returns the number of words that encode entropyLen bytes:
// entropy plus a checksum of one bit per 32 entropy bits, in 11-bit words.
func WordCount(entropyLen int) (int, error) {
	if err := ValidateEntropySize(entropyLen); err != nil {
		return 0, err
	}
	bits := entropyLen * 8
	return (bits + bits/32) / 11, nil
}

// ValidateWordCount checks that n is one of 12, 15, 18, 21 or 24.
func ValidateWordCount(n int) error {
	switch n {
	case 12, 15, 18, 21, 24:
		return nil
	default:
		return fmt.Errorf("%w: expected 12, 15, 18, 21 or 24 words, got %d", ErrInvalidMnemonic, n)
	}
}

// EntropyToMnemonic encodes entropy as a checksummed word sequence.
func EntropyToMnemonic(entropy []byte) ([]string, error) {
	if err := ValidateEntropySize(len(entropy)); err != nil {
		return nil, err
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntropy, err)
	}
	return strings.Fields(phrase), nil
}

// MnemonicToEntropy decodes words back to entropy, verifying the checksum.
// Words are matched case-insensitively. Caller is responsible for zeroing the result.
func MnemonicToEntropy(words []string) ([]byte, error) {
	if err := ValidateWordCount(len(words)); err != nil {
		return nil, err
	}
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = strings.ToLower(strings.TrimSpace(w))
	}
	entropy, err := bip39.EntropyFromMnemonic(strings.Join(normalized, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return entropy, nil
}

// SplitPhrase splits a space separated phrase into words.
func SplitPhrase(phrase string) []string {
	return strings.Fields(phrase)
}
