// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// errNonCanonicalCompactSize is returned when a CompactSize is read back
// using more bytes than its canonical (shortest) encoding requires.
var errNonCanonicalCompactSize = fmt.Errorf("non-canonical compactsize encoding")

// ReadCompactSize reads a variable length integer from r and returns it as a
// uint64. The three-byte, five-byte, and nine-byte forms are only accepted
// when they encode a value too large for the next-shorter form; anything
// else is a non-canonical encoding and is rejected, per BIP-174's
// requirement that compact size integers use their shortest form.
func ReadCompactSize(r io.Reader) (uint64, error) {
	var b [9]byte
	if _, err := io.ReadFull(r, b[:1]); err != nil {
		return 0, err
	}

	switch b[0] {
	case 0xff:
		if _, err := io.ReadFull(r, b[1:9]); err != nil {
			return 0, err
		}
		val := binary.LittleEndian.Uint64(b[1:9])
		if val <= 0xffffffff {
			return 0, errNonCanonicalCompactSize
		}
		return val, nil

	case 0xfe:
		if _, err := io.ReadFull(r, b[1:5]); err != nil {
			return 0, err
		}
		val := uint64(binary.LittleEndian.Uint32(b[1:5]))
		if val <= 0xffff {
			return 0, errNonCanonicalCompactSize
		}
		return val, nil

	case 0xfd:
		if _, err := io.ReadFull(r, b[1:3]); err != nil {
			return 0, err
		}
		val := uint64(binary.LittleEndian.Uint16(b[1:3]))
		if val < 0xfd {
			return 0, errNonCanonicalCompactSize
		}
		return val, nil

	default:
		return uint64(b[0]), nil
	}
}

// WriteCompactSize writes val to w using the canonical shortest CompactSize
// encoding: a single byte for values below 0xfd, a 0xfd prefix plus a
// little-endian uint16 for values that fit in two bytes, a 0xfe prefix plus
// a little-endian uint32 for values that fit in four bytes, and a 0xff
// prefix plus a little-endian uint64 otherwise.
func WriteCompactSize(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err

	case val <= 0xffff:
		var b [3]byte
		b[0] = 0xfd
		binary.LittleEndian.PutUint16(b[1:], uint16(val))
		_, err := w.Write(b[:])
		return err

	case val <= 0xffffffff:
		var b [5]byte
		b[0] = 0xfe
		binary.LittleEndian.PutUint32(b[1:], uint32(val))
		_, err := w.Write(b[:])
		return err

	default:
		var b [9]byte
		b[0] = 0xff
		binary.LittleEndian.PutUint64(b[1:], val)
		_, err := w.Write(b[:])
		return err
	}
}

// CompactSizeSerializeSize returns the number of bytes it would take to
// serialize val as a CompactSize.
func CompactSizeSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// ReadVarBytes reads a CompactSize-prefixed byte slice from r, rejecting
// lengths above maxAllowed to bound allocation from untrusted input.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadCompactSize(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, fmt.Errorf("%s is larger than the max allowed "+
			"size (got %d, max %d)", fieldName, count, maxAllowed)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}

	return b, nil
}

// WriteVarBytes writes a CompactSize length prefix followed by b to w.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteCompactSize(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
