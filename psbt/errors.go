// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import "fmt"

// ErrorCode identifies a kind of PSBT codec error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidMagic indicates the stream did not begin with the
	// expected "psbt" magic word and 0xFF separator byte.
	ErrInvalidMagic ErrorCode = iota

	// ErrNonCanonicalCompactSize indicates a CompactSize was encoded
	// using more bytes than its shortest form requires.
	ErrNonCanonicalCompactSize

	// ErrUnexpectedEOF indicates the stream ended in the middle of a
	// record or before a section's separator.
	ErrUnexpectedEOF

	// ErrBadKeyLength indicates a key whose length does not match what
	// its type tag requires (e.g. a redeem-script key that isn't 21
	// bytes).
	ErrBadKeyLength

	// ErrHashMismatch indicates a script's hash does not match the hash
	// carried in its key.
	ErrHashMismatch

	// ErrUtxoMismatch indicates a non-witness UTXO's hash does not match
	// the corresponding input's previous outpoint hash.
	ErrUtxoMismatch

	// ErrIndexPolicyViolation indicates a PSBT mixes inputs with and
	// without an explicit positional index.
	ErrIndexPolicyViolation

	// ErrUnexpectedInputCount indicates the number of per-input
	// sections encountered does not match the declared num_ins.
	ErrUnexpectedInputCount

	// ErrMalformedEmbeddedTransaction indicates an embedded Transaction
	// value failed to decode.
	ErrMalformedEmbeddedTransaction
)

// errCodeNames maps each ErrorCode to a short human-readable name, used by
// Error.Error to render a descriptive message.
var errCodeNames = map[ErrorCode]string{
	ErrInvalidMagic:                 "InvalidMagic",
	ErrNonCanonicalCompactSize:      "NonCanonicalCompactSize",
	ErrUnexpectedEOF:                "UnexpectedEof",
	ErrBadKeyLength:                 "BadKeyLength",
	ErrHashMismatch:                 "HashMismatch",
	ErrUtxoMismatch:                 "UtxoMismatch",
	ErrIndexPolicyViolation:         "IndexPolicyViolation",
	ErrUnexpectedInputCount:         "UnexpectedInputCount",
	ErrMalformedEmbeddedTransaction: "MalformedEmbeddedTransaction",
}

// Error identifies a PSBT codec error. Every error produced while reading a
// byte stream carries the offset at which it was detected, so a caller can
// point a user at the exact byte that failed to parse.
type Error struct {
	Code   ErrorCode
	Desc   string
	Offset int64
	Err    error
}

// Error satisfies the error interface and prints a human-readable message
// including the error's byte offset.
func (e Error) Error() string {
	name := errCodeNames[e.Code]
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset %d)", name, e.Desc, e.Offset)
	}
	return fmt.Sprintf("%s: %s", name, e.Desc)
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// newError creates an Error given a set of arguments. offset should be -1
// when the error was not detected while reading a byte stream (e.g. a
// programmer error constructing a Packet directly).
func newError(c ErrorCode, desc string, offset int64, err error) Error {
	return Error{Code: c, Desc: desc, Offset: offset, Err: err}
}

// CodeFromError returns the ErrorCode of err if it is a psbt.Error, and
// false otherwise.
func CodeFromError(err error) (ErrorCode, bool) {
	e, ok := err.(Error)
	if !ok {
		return 0, false
	}
	return e.Code, true
}
