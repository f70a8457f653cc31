// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "github.com/btcsuite/btcpsbt/pkg/btcunit"

// OutputGroup bundles together the outputs belonging to a single
// destination (or, with AvoidPartialSpends off, a single output) so a
// selection algorithm can choose to spend all of them together.
type OutputGroup struct {
	// Coins are the outputs belonging to this group.
	Coins []InputCoin

	// FromMe is true only if every output in the group was created by
	// this wallet.
	FromMe bool

	// Value is the sum of the groups's outputs' nominal values.
	Value int64

	// EffectiveValue is the sum of the group's outputs' effective
	// values, after subtracting the effective-fee-rate cost of
	// spending each of them.
	EffectiveValue int64

	// Fee is the sum of the group's outputs' fee cost at the effective
	// fee rate.
	Fee int64

	// LongTermFee is the sum of the group's outputs' fee cost at the
	// long-term fee rate.
	LongTermFee int64

	// Depth is the minimum confirmation depth across the group's
	// outputs.
	Depth int

	// Ancestors is the largest unconfirmed-ancestor count across the
	// group's outputs.
	Ancestors uint64

	// Descendants is the largest unconfirmed-descendant count across
	// the group's outputs.
	Descendants uint64

	effectiveFeeRate btcunit.SatPerVByte
	longTermFeeRate  btcunit.SatPerVByte
}

// NewOutputGroup returns an empty group that will price future insertions
// at effectiveFeeRate and longTermFeeRate.
func NewOutputGroup(effectiveFeeRate, longTermFeeRate btcunit.SatPerVByte) *OutputGroup {
	return &OutputGroup{
		FromMe:           true,
		Depth:            999,
		effectiveFeeRate: effectiveFeeRate,
		longTermFeeRate:  longTermFeeRate,
	}
}

// Insert adds coin to the group. If positiveOnly is true and the coin's
// effective value is not positive, the coin contributes nothing and Insert
// returns false; otherwise it is folded into the group's running totals and
// Insert returns true.
func (g *OutputGroup) Insert(coin InputCoin, depth int, fromMe bool,
	ancestors, descendants uint64, positiveOnly bool) bool {

	if positiveOnly && coin.EffectiveValue <= 0 {
		return false
	}

	g.Coins = append(g.Coins, coin)
	g.FromMe = g.FromMe && fromMe
	g.Value += coin.TxOut.Value
	g.EffectiveValue += coin.EffectiveValue
	g.Fee += coin.Fee
	g.LongTermFee += coin.LongTermFee

	if depth < g.Depth {
		g.Depth = depth
	}
	if ancestors > g.Ancestors {
		g.Ancestors = ancestors
	}
	if descendants > g.Descendants {
		g.Descendants = descendants
	}

	return true
}

// EligibleForSpending reports whether the group satisfies filter's
// confirmation and ancestor/descendant bounds.
func (g *OutputGroup) EligibleForSpending(filter CoinEligibilityFilter) bool {
	requiredDepth := filter.ConfTheirs
	if g.FromMe {
		requiredDepth = filter.ConfMine
	}

	return g.Depth >= requiredDepth &&
		g.Ancestors <= filter.MaxAncestors &&
		g.Descendants <= filter.MaxDescendants
}
