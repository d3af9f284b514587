// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package crypto

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// ZeroBytes overwrites b with zeros. Safe on nil and empty slices.
func ZeroBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	// Keep b reachable so the store is not treated as dead.
	runtime.KeepAlive(b)
}

// SecureString holds a passphrase outside of Go's immutable string type so it
// can be wiped after use.
type SecureString struct {
	data []byte
	lock sync.RWMutex
}

// NewSecureStringFromBytes copies b into a new SecureString.
// The caller can zero b afterwards.
func NewSecureStringFromBytes(b []byte) *SecureString {
	if b == nil {
		return &SecureString{}
	}
	data := make([]byte, len(b))
	copy(data, b)
	return &SecureString{data: data}
}

// WithBytes runs fn with the underlying bytes under a read lock.
// fn must not retain the slice.
func (s *SecureString) WithBytes(fn func([]byte) error) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return fn(s.data)
}

// Equal compares two secure strings in constant time.
func (s *SecureString) Equal(other *SecureString) bool {
	if s == other {
		return true
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	other.lock.RLock()
	defer other.lock.RUnlock()
	return subtle.ConstantTimeCompare(s.data, other.data) == 1
}

// Destroy zeros the data. The SecureString must not be used afterwards.
func (s *SecureString) Destroy() {
	s.lock.Lock()
	defer s.lock.Unlock()
	ZeroBytes(s.data)
	s.data = nil
}

// IsEmpty returns true if the string is empty or destroyed.
func (s *SecureString) IsEmpty() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.data) == 0
}
