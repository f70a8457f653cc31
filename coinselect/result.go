// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btcpsbt/wire"

// SelectionResult is the set of inputs a selection algorithm has chosen,
// together with the fees attributable to them.
type SelectionResult struct {
	// selected indexes the chosen coins by outpoint, giving the result
	// set semantics: inserting the same outpoint twice is a no-op.
	selected map[wire.OutPoint]InputCoin

	// InputFees is the sum of the fee each selected input costs at the
	// selection's effective fee rate.
	InputFees int64
}

// NewSelectionResult returns an empty SelectionResult.
func NewSelectionResult() *SelectionResult {
	return &SelectionResult{selected: make(map[wire.OutPoint]InputCoin)}
}

// AddInput folds every coin in group into the result.
func (r *SelectionResult) AddInput(group *OutputGroup) {
	for _, coin := range group.Coins {
		r.AddCoin(coin)
	}
}

// AddCoin adds a single coin to the result. Adding a coin whose outpoint is
// already selected is a no-op.
func (r *SelectionResult) AddCoin(coin InputCoin) {
	if _, ok := r.selected[coin.OutPoint]; ok {
		return
	}
	r.selected[coin.OutPoint] = coin
	r.InputFees += coin.Fee
}

// Clear empties the result.
func (r *SelectionResult) Clear() {
	r.selected = make(map[wire.OutPoint]InputCoin)
	r.InputFees = 0
}

// Inputs returns the selected coins in deterministic outpoint order.
func (r *SelectionResult) Inputs() []InputCoin {
	out := make([]InputCoin, 0, len(r.selected))
	for _, c := range r.selected {
		out = append(out, c)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out
}

// GetSelectedValue returns the sum of the nominal (not effective) values of
// every selected coin.
func (r *SelectionResult) GetSelectedValue() int64 {
	var sum int64
	for _, c := range r.selected {
		sum += c.TxOut.Value
	}
	return sum
}

// EquivalentResult reports whether r and other select the same total value
// with the same number of coins, regardless of which specific outpoints make
// up that value.
func (r *SelectionResult) EquivalentResult(other *SelectionResult) bool {
	return r.GetSelectedValue() == other.GetSelectedValue() &&
		len(r.selected) == len(other.selected)
}

// EqualResult reports whether r and other select exactly the same set of
// outpoints.
func (r *SelectionResult) EqualResult(other *SelectionResult) bool {
	if len(r.selected) != len(other.selected) {
		return false
	}
	for op := range r.selected {
		if _, ok := other.selected[op]; !ok {
			return false
		}
	}
	return true
}
