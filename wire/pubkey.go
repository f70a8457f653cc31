// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PubKey is a serialized public key, as it appears in a PSBT BIP32
// derivation record or partial signature key. It carries the raw bytes
// without interpretation until Validate is called.
type PubKey []byte

// compressedPubKeyLen and uncompressedPubKeyLen are the only two lengths a
// well-formed PubKey may have.
const (
	compressedPubKeyLen   = 33
	uncompressedPubKeyLen = 65
)

// Validate checks that the key has a valid length and decodes to a point on
// the curve. It round-trips the key through btcec's parser rather than
// checking the length alone, so a key of the right length but the wrong
// curve point is still rejected.
func (p PubKey) Validate() error {
	switch len(p) {
	case compressedPubKeyLen, uncompressedPubKeyLen:
	default:
		return fmt.Errorf("invalid public key length %d, want %d or %d",
			len(p), compressedPubKeyLen, uncompressedPubKeyLen)
	}

	if _, err := btcec.ParsePubKey(p); err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}

	return nil
}

// IsCompressed reports whether the key is in the 33-byte compressed form.
func (p PubKey) IsCompressed() bool {
	return len(p) == compressedPubKeyLen
}
