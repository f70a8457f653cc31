// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the fixed-width digest types used throughout
// the PSBT codec and the coin selector: a 32-byte Hash (the codec's
// Hash256) and a 20-byte Hash160.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the canonical Go RIPEMD160.
)

// HashSize is the size, in bytes, of a Hash.
const HashSize = 32

// Hash160Size is the size, in bytes, of a Hash160.
const Hash160Size = 20

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes",
	MaxHashStringSize)

// Hash is a 32-byte digest, used for the PSBT witness-script binding
// (SHA256) and for any consumer-supplied transaction id.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention used for Bitcoin-style transaction ids.
func (h Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		h[i], h[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(h[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (h *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, h[:])

	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v",
			len(newHash), HashSize)
	}
	copy(h[:], newHash)

	return nil
}

// IsEqual returns true if target is the same as hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// Hash160 is a 20-byte digest, used for the PSBT redeem-script binding
// (RIPEMD160(SHA256(script))).
type Hash160 [Hash160Size]byte

// String returns the Hash160 as a plain (non-reversed) hexadecimal string.
func (h Hash160) String() string {
	return hex.EncodeToString(h[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (h *Hash160) CloneBytes() []byte {
	newHash := make([]byte, Hash160Size)
	copy(newHash, h[:])

	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not Hash160Size.
func (h *Hash160) SetBytes(newHash []byte) error {
	if len(newHash) != Hash160Size {
		return fmt.Errorf("invalid hash160 length of %v, want %v",
			len(newHash), Hash160Size)
	}
	copy(h[:], newHash)

	return nil
}

// IsEqual returns true if target is the same as hash.
func (h *Hash160) IsEqual(target *Hash160) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash160 returns a new Hash160 from a byte slice. An error is returned
// if the number of bytes passed in is not Hash160Size.
func NewHash160(newHash []byte) (*Hash160, error) {
	var h Hash160
	if err := h.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &h, nil
}

// HashB calculates the SHA256 hash of the given byte slice and returns it as
// a byte slice. This is the single-round hash used to bind PSBT witness
// scripts to their keys; it is intentionally not double-hashed.
func HashB(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// HashH calculates the SHA256 hash of the given byte slice and returns it as
// a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// Hash160B calculates RIPEMD160(SHA256(b)) and returns it as a byte slice.
// This is the binding used for PSBT redeem scripts.
func Hash160B(b []byte) []byte {
	sha := sha256.Sum256(b)

	ripemd := ripemd160.New()
	// ripemd160.Write never returns an error.
	_, _ = ripemd.Write(sha[:])

	return ripemd.Sum(nil)
}

// Hash160H calculates RIPEMD160(SHA256(b)) and returns it as a Hash160.
func Hash160H(b []byte) Hash160 {
	var h Hash160
	copy(h[:], Hash160B(b))

	return h
}
