// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import "encoding/binary"

// leUint32 decodes a 4-byte little-endian unsigned integer. Callers must
// ensure b has at least 4 bytes.
func leUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// leUint64 decodes an 8-byte little-endian unsigned integer. Callers must
// ensure b has at least 8 bytes.
func leUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// leBytes32 encodes v as 4 little-endian bytes.
func leBytes32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// leBytes64 encodes v as 8 little-endian bytes.
func leBytes64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
