// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btcpsbt/pkg/btcunit"

// MinChange is the target minimum change amount produced by a selection, in
// satoshis.
const MinChange = 1_000_000

// CoinSelectionParams collects the fee rates and transaction-shape
// parameters a selection algorithm needs to translate a caller's requested
// payment amount into an actual, fee-inclusive selection target.
type CoinSelectionParams struct {
	// ChangeOutputSize is the serialized virtual size a change output
	// would add to the transaction, were one created.
	ChangeOutputSize int64

	// ChangeSpendSize is the serialized virtual size a change output
	// would add as an input when it is later spent.
	ChangeSpendSize int64

	// EffectiveFeeRate is the fee rate this selection pays for inputs
	// and outputs in the transaction being built.
	EffectiveFeeRate btcunit.SatPerKWeight

	// LongTermFeeRate is the fee rate assumed for spending whatever
	// change output this selection creates, used to weigh consolidating
	// many small inputs now against leaving them for later.
	LongTermFeeRate btcunit.SatPerKWeight

	// DiscardFeeRate is the fee rate below which creating a change
	// output is considered wasteful; below it, change is instead added
	// to the fee.
	DiscardFeeRate btcunit.SatPerKWeight

	// TxNoInputsSize is the virtual size of the transaction before any
	// inputs are added (version, locktime, segwit marker/flag, and the
	// recipient outputs).
	TxNoInputsSize int64

	// SubtractFeeOutputs is true if the transaction's fee is paid for
	// by deducting it from one or more of the recipient outputs, rather
	// than by the selection itself growing to cover it.
	SubtractFeeOutputs bool

	// AvoidPartialSpends is true if the selection should prefer taking
	// every output belonging to a destination it touches, rather than a
	// subset.
	AvoidPartialSpends bool
}

// CostOfChange returns the additional cost, in satoshis, of creating a
// change output now and later spending it: the change output's own
// effective-fee-rate cost plus its eventual input's effective-fee-rate
// cost.
func (p CoinSelectionParams) CostOfChange() int64 {
	createCost := p.EffectiveFeeRate.FeeForVByte(
		btcunit.NewVByte(uint64(p.ChangeOutputSize)),
	)
	spendCost := p.EffectiveFeeRate.FeeForVByte(
		btcunit.NewVByte(uint64(p.ChangeSpendSize)),
	)

	return int64(createCost) + int64(spendCost)
}

// ActualTarget converts a caller's requested payment target into the value
// a selection algorithm must actually reach: the requested value, plus the
// fee for the transaction's non-input bytes (unless the fee is instead
// subtracted from the outputs).
func (p CoinSelectionParams) ActualTarget(targetValue int64) int64 {
	if p.SubtractFeeOutputs {
		return targetValue
	}

	overhead := p.EffectiveFeeRate.FeeForVByte(
		btcunit.NewVByte(uint64(p.TxNoInputsSize)),
	)

	return targetValue + int64(overhead)
}
