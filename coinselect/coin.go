// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"github.com/btcsuite/btcpsbt/pkg/btcunit"
	"github.com/btcsuite/btcpsbt/wire"
)

// InputCoin is a single spendable output together with the selection
// metadata a coin selection algorithm needs: its cost to include at the
// effective and long-term fee rates, and its size in the transaction.
type InputCoin struct {
	// OutPoint identifies the output being spent.
	OutPoint wire.OutPoint

	// TxOut is the output itself.
	TxOut wire.TxOut

	// EffectiveValue is TxOut.Value minus the fee this input would cost
	// at the selection's effective fee rate.
	EffectiveValue int64

	// Fee is the cost, in satoshis, of including this input at the
	// selection's effective fee rate.
	Fee int64

	// LongTermFee is the cost, in satoshis, of including this input at
	// the wallet's long-term, consolidation fee rate.
	LongTermFee int64

	// InputBytes is the serialized size of this input, in virtual
	// bytes, or -1 if unknown.
	InputBytes int64
}

// Less reports whether c sorts before other. InputCoin instances are
// ordered by outpoint so that a selected set has a deterministic,
// repeatable iteration order independent of any earlier sort-by-value
// performed by a selection algorithm.
func (c InputCoin) Less(other InputCoin) bool {
	return c.OutPoint.Less(other.OutPoint)
}

// NewInputCoin computes a coin's effective value and fee at feeRate, and
// its long-term fee at longTermFeeRate, given its size in virtual bytes.
func NewInputCoin(op wire.OutPoint, txOut wire.TxOut, inputVBytes int64,
	feeRate, longTermFeeRate btcunit.SatPerVByte) InputCoin {

	size := btcunit.NewVByte(uint64(inputVBytes))
	fee := int64(feeRate.FeeForVByte(size))
	longTermFee := int64(longTermFeeRate.FeeForVByte(size))

	return InputCoin{
		OutPoint:       op,
		TxOut:          txOut,
		EffectiveValue: txOut.Value - fee,
		Fee:            fee,
		LongTermFee:    longTermFee,
		InputBytes:     inputVBytes,
	}
}
