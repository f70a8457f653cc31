// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of coin selection failure.
type ErrorCode int

const (
	// ErrInsufficientFunds indicates the eligible pool cannot reach the
	// requested target value at all.
	ErrInsufficientFunds ErrorCode = iota

	// ErrNoSolution indicates the pool could cover the target in
	// principle, but the algorithm's search did not find an admissible
	// selection (for example, branch-and-bound exhausting its try budget
	// without finding a selection within the change window).
	ErrNoSolution

	// ErrInvalidInput indicates a precondition on the input pool or
	// parameters was violated (a negative effective value, an empty
	// pool, a non-positive target, and similar).
	ErrInvalidInput
)

var errCodeNames = map[ErrorCode]string{
	ErrInsufficientFunds: "InsufficientFunds",
	ErrNoSolution:        "NoSolution",
	ErrInvalidInput:      "InvalidInput",
}

// String returns the name of the error code.
func (c ErrorCode) String() string {
	if name, ok := errCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error represents a coin selection related error.
type Error struct {
	// Code identifies the kind of failure.
	Code ErrorCode

	// Desc describes the failure in human readable terms.
	Desc string

	// Err optionally wraps an underlying error.
	Err error
}

// Error satisfies the error interface.
func (e Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Desc, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Desc)
}

// Unwrap returns the wrapped error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// newError builds an Error value.
func newError(c ErrorCode, desc string, err error) Error {
	return Error{Code: c, Desc: desc, Err: err}
}

// CodeFromError extracts the ErrorCode from err, if err is (or wraps) an
// Error.
func CodeFromError(err error) (ErrorCode, bool) {
	var e Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Code, true
}
