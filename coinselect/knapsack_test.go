// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"testing"

	"github.com/btcsuite/btcpsbt/chainhash"
	"github.com/btcsuite/btcpsbt/wire"
	"github.com/stretchr/testify/require"
)

// nominalCoin builds an InputCoin whose nominal (TxOut) value is the given
// amount, with effective value equal to the nominal value minus fee.
func nominalCoin(idx byte, value, fee, longTermFee int64) InputCoin {
	var h chainhash.Hash
	h[0] = idx

	return InputCoin{
		OutPoint:       *wire.NewOutPoint(&h, 0),
		TxOut:          *wire.NewTxOut(value, nil),
		EffectiveValue: value - fee,
		Fee:            fee,
		LongTermFee:    longTermFee,
	}
}

// TestSelectKnapsackExactSingle covers the exact-single end-to-end
// scenario: pool [4,7,10,12], target 7 must return {7} alone.
func TestSelectKnapsackExactSingle(t *testing.T) {
	t.Parallel()

	pool := []InputCoin{
		nominalCoin(1, 4, 0, 0),
		nominalCoin(2, 7, 0, 0),
		nominalCoin(3, 10, 0, 0),
		nominalCoin(4, 12, 0, 0),
	}

	result, err := SelectKnapsack(pool, 7)
	require.NoError(t, err)

	inputs := result.Inputs()
	require.Len(t, inputs, 1)
	require.EqualValues(t, 7, inputs[0].TxOut.Value)
}

// TestSelectKnapsackFallbackLarger covers the fallback-larger end-to-end
// scenario: pool [1,2], target 10 cannot be reached by either coin and
// MIN_CHANGE puts both below the "coin_lowest_larger" threshold, so the
// selection fails with InsufficientFunds.
func TestSelectKnapsackFallbackLarger(t *testing.T) {
	t.Parallel()

	pool := []InputCoin{
		nominalCoin(1, 1, 0, 0),
		nominalCoin(2, 2, 0, 0),
	}

	_, err := SelectKnapsack(pool, 10)
	require.Error(t, err)

	code, ok := CodeFromError(err)
	require.True(t, ok)
	require.Equal(t, ErrInsufficientFunds, code)
}

// TestSelectKnapsackSufficiency checks that a successful selection's
// actual value sum is always at least the target, exercising the
// randomized approximate-subset path (no coin matches target exactly and
// MIN_CHANGE is far larger than any of these values, so every coin is
// "lesser").
func TestSelectKnapsackSufficiency(t *testing.T) {
	t.Parallel()

	pool := []InputCoin{
		nominalCoin(1, 13, 0, 0),
		nominalCoin(2, 27, 0, 0),
		nominalCoin(3, 42, 0, 0),
		nominalCoin(4, 58, 0, 0),
		nominalCoin(5, 91, 0, 0),
	}

	result, err := SelectKnapsack(pool, 100)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.GetSelectedValue(), int64(100))
}

// TestSelectKnapsackLesserPartitionExact checks the "sum of lesser equals
// target" fast path.
func TestSelectKnapsackLesserPartitionExact(t *testing.T) {
	t.Parallel()

	pool := []InputCoin{
		nominalCoin(1, 3, 0, 0),
		nominalCoin(2, 4, 0, 0),
	}

	result, err := SelectKnapsack(pool, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.GetSelectedValue())
}

// TestSelectKnapsackRejectsEmptyPool checks the InvalidInput precondition.
func TestSelectKnapsackRejectsEmptyPool(t *testing.T) {
	t.Parallel()

	_, err := SelectKnapsack(nil, 10)
	require.Error(t, err)

	code, ok := CodeFromError(err)
	require.True(t, ok)
	require.Equal(t, ErrInvalidInput, code)
}
