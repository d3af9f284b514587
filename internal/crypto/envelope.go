// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// EnvelopeVersion is the current envelope format version.
const EnvelopeVersion = 1

const (
	saltLen = 32
	keyLen  = 32 // AES-256
)

var (
	// ErrDecryptionFailed indicates a wrong passphrase or tampered ciphertext
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrUnsupportedEnvelope indicates an envelope version this build cannot open
	ErrUnsupportedEnvelope = errors.New("unsupported envelope version")
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time      uint32 `json:"time" yaml:"time" description:"Argon2id passes" default:"1"`
	MemoryKiB uint32 `json:"memory_kib" yaml:"memory_kib" description:"Argon2id memory in KiB" default:"65536"`
	Threads   uint8  `json:"threads" yaml:"threads" description:"Argon2id parallelism" default:"4"`
}

// Upper bounds on Argon2id cost. Envelopes are read from files, so their
// parameters are untrusted until the passphrase has been checked.
const (
	MaxKDFTime      = 64
	MaxKDFMemoryKiB = 4 * 1024 * 1024 // 4 GiB
)

// DefaultKDFParams returns the OWASP recommended Argon2id parameters.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// Validate rejects parameters argon2 cannot run with or that exceed the cost caps.
func (p KDFParams) Validate() error {
	if p.Time == 0 {
		return fmt.Errorf("kdf time must be at least 1")
	}
	if p.Time > MaxKDFTime {
		return fmt.Errorf("kdf time %d exceeds maximum %d", p.Time, MaxKDFTime)
	}
	if p.MemoryKiB > MaxKDFMemoryKiB {
		return fmt.Errorf("kdf memory %d KiB exceeds maximum %d KiB", p.MemoryKiB, MaxKDFMemoryKiB)
	}
	if p.Threads == 0 {
		return fmt.Errorf("kdf threads must be at least 1")
	}
	if p.MemoryKiB < 8*uint32(p.Threads) {
		return fmt.Errorf("kdf memory must be at least %d KiB for %d threads", 8*uint32(p.Threads), p.Threads)
	}
	return nil
}

// Envelope is a self-contained passphrase-encrypted blob. It embeds its own
// salt and KDF parameters, so the envelope and passphrase are enough to open it.
type Envelope struct {
	Version    int       `json:"version"`
	KDF        KDFParams `json:"kdf"`
	Salt       string    `json:"salt"`       // Base64-encoded Argon2id salt
	Nonce      string    `json:"nonce"`      // Base64-encoded AES-GCM nonce
	Ciphertext string    `json:"ciphertext"` // Base64-encoded sealed data
}

// DeriveKey derives an AES-256 key from passphrase and salt with Argon2id.
// Caller is responsible for zeroing the returned key.
func DeriveKey(passphrase, salt []byte, params KDFParams) []byte {
	return argon2.IDKey(passphrase, salt, params.Time, params.MemoryKiB, params.Threads, keyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext under a key derived from passphrase.
func Seal(plaintext, passphrase []byte, params KDFParams) (*Envelope, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := DeriveKey(passphrase, salt, params)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return &Envelope{
		Version:    EnvelopeVersion,
		KDF:        params,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Open decrypts an envelope produced by Seal.
// Caller is responsible for zeroing the returned plaintext.
func Open(env *Envelope, passphrase []byte) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("missing envelope")
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedEnvelope, env.Version)
	}
	if err := env.KDF.Validate(); err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key := DeriveKey(passphrase, salt, env.KDF)
	defer ZeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
