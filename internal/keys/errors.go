// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package keys

import (
	"errors"
	"fmt"
)

// Common key errors
var (
	// ErrInvalidEntropy indicates entropy that cannot seed the requested key type
	ErrInvalidEntropy = errors.New("invalid entropy")

	// ErrInvalidKey indicates a malformed key encoding or inconsistent key material
	ErrInvalidKey = errors.New("invalid key")

	// ErrSigning indicates the signing primitive rejected the operation
	ErrSigning = errors.New("signing failed")

	// ErrKeyZeroed is returned when private material is requested after Zero
	ErrKeyZeroed = fmt.Errorf("%w: key has been zeroed", ErrInvalidKey)
)

// InvalidKeyTypeError reports a tag byte whose key type is unknown or rejected.
type InvalidKeyTypeError struct {
	Tag byte
}

func (e *InvalidKeyTypeError) Error() string {
	return fmt.Sprintf("invalid key type in tag byte 0x%02x", e.Tag)
}

// InvalidNetworkError reports a tag byte whose network nibble is unknown.
type InvalidNetworkError struct {
	Tag byte
}

func (e *InvalidNetworkError) Error() string {
	return fmt.Sprintf("invalid network in tag byte 0x%02x", e.Tag)
}

// UnsupportedError reports an operation that a key type deliberately lacks.
type UnsupportedError struct {
	KeyType KeyType
	Op      string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s key type unsupported for %s", e.KeyType, e.Op)
}

// StreamError wraps a failure of the underlying byte stream.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %s failed: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
