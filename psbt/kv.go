// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"io"

	"github.com/btcsuite/btcpsbt/wire"
)

// Global section type tags.
const (
	globalUnsignedTx      byte = 0x00
	globalRedeemScript    byte = 0x01
	globalWitnessScript   byte = 0x02
	globalBip32Derivation byte = 0x03
	globalInputCount      byte = 0x04
)

// Per-input section type tags.
const (
	inputNonWitnessUtxo byte = 0x00
	inputWitnessUtxo    byte = 0x01
	inputPartialSig     byte = 0x02
	inputSighashType    byte = 0x03
	inputIndex          byte = 0x04

	// Supplemental per-input tags not named by the base wire format: the
	// unkeyed redeem/witness script and the finalized scriptSig/witness,
	// carried losslessly but never interpreted.
	inputRedeemScript       byte = 0x07
	inputWitnessScript      byte = 0x08
	inputFinalScriptSig     byte = 0x09
	inputFinalScriptWitness byte = 0x0a
)

// Per-output section type tags (a disjoint tag space from the input
// section's; this section is itself a supplement to the base wire format).
const (
	outputRedeemScript  byte = 0x00
	outputWitnessScript byte = 0x01
)

// separator is the zero-length key byte that terminates every section.
const separator byte = 0x00

// maxKeyLength bounds a single record's key to guard against pathological
// allocation from an untrusted stream.
const maxKeyLength = 10_000

// maxValueLength bounds a single record's value. Embedded transactions
// dominate this, so the bound is generous but still finite.
const maxValueLength = 4_000_000

// kvRecord is one decoded key-value record. keySuffix excludes the leading
// type-tag byte; it is nil when the key is exactly one byte.
type kvRecord struct {
	keyType   byte
	keySuffix []byte
	value     []byte
}

// readKV reads one record from r. A nil *kvRecord with a nil error denotes
// the section separator (a zero-length key).
func readKV(r *offsetReader) (*kvRecord, error) {
	keyLen, err := wire.ReadCompactSize(r)
	if err != nil {
		if err == io.EOF {
			return nil, newError(ErrUnexpectedEOF,
				"stream ended before section separator", r.offset,
				err)
		}
		return nil, newError(ErrNonCanonicalCompactSize,
			"malformed key length", r.offset, err)
	}

	if keyLen == 0 {
		return nil, nil
	}
	if keyLen > maxKeyLength {
		return nil, newError(ErrBadKeyLength, "key length exceeds max",
			r.offset, nil)
	}

	keyBytes := make([]byte, keyLen)
	if _, err := io.ReadFull(r, keyBytes); err != nil {
		return nil, newError(ErrUnexpectedEOF, "truncated key", r.offset,
			err)
	}

	value, err := wire.ReadVarBytes(r, maxValueLength, "psbt value")
	if err != nil {
		return nil, newError(ErrUnexpectedEOF, "truncated value",
			r.offset, err)
	}

	rec := &kvRecord{keyType: keyBytes[0], value: value}
	if len(keyBytes) > 1 {
		rec.keySuffix = keyBytes[1:]
	}

	return rec, nil
}

// writeKV writes one record to w: the key (type tag plus suffix) and the
// value, each CompactSize length-prefixed.
func writeKV(w io.Writer, keyType byte, keySuffix, value []byte) error {
	key := make([]byte, 1+len(keySuffix))
	key[0] = keyType
	copy(key[1:], keySuffix)

	if err := wire.WriteVarBytes(w, key); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, value)
}

// writeSeparator writes the zero-length-key section terminator.
func writeSeparator(w io.Writer) error {
	return wire.WriteCompactSize(w, 0)
}
