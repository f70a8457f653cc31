// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

// CoinEligibilityFilter describes the confirmation and ancestor/descendant
// limits a group of outputs must satisfy to be eligible for spending in a
// given selection pass.
type CoinEligibilityFilter struct {
	// ConfMine is the minimum number of confirmations required for an
	// output this wallet created itself.
	ConfMine int

	// ConfTheirs is the minimum number of confirmations required for an
	// output this wallet received from someone else.
	ConfTheirs int

	// MaxAncestors caps the number of unconfirmed ancestors a group's
	// outputs may have.
	MaxAncestors uint64

	// MaxDescendants caps the number of unconfirmed in-mempool
	// descendants a group's outputs may have.
	MaxDescendants uint64

	// IncludePartialGroups allows a group to be eligible even if not
	// every one of its member outputs individually satisfies the
	// filter (used by avoid-partial-spends passes). It is carried for the
	// caller that builds groups; OutputGroup.EligibleForSpending does not
	// read it.
	IncludePartialGroups bool
}

// NewCoinEligibilityFilter returns a filter requiring confMine confirmations
// for self-created outputs, confTheirs confirmations for received outputs,
// and no ancestor/descendant limit.
func NewCoinEligibilityFilter(confMine, confTheirs int) CoinEligibilityFilter {
	return CoinEligibilityFilter{
		ConfMine:       confMine,
		ConfTheirs:     confTheirs,
		MaxAncestors:   ^uint64(0),
		MaxDescendants: ^uint64(0),
	}
}
