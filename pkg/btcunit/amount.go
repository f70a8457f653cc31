// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcunit

import "fmt"

// Amount represents a quantity of satoshis, the smallest monetary unit this
// module's transaction primitives deal in.
type Amount int64

// String returns the amount formatted as a count of satoshis.
func (a Amount) String() string {
	return fmt.Sprintf("%d sat", int64(a))
}

// witnessScaleFactor is the factor by which serialized transaction size is
// scaled to arrive at weight units: base size counts 4x, witness-serialized
// size counts 1x. This is a protocol constant, not a consensus-validation
// routine, so it is defined locally rather than importing a full chain
// validation package for it.
const witnessScaleFactor = 4
