// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"math"
	"sort"
)

// TotalTries bounds the number of iterations SelectBnB will perform before
// giving up and falling back to a lesser-waste selection it already found,
// or failing outright if it found none.
const TotalTries = 100_000

// bnbNode tracks, for a single depth in the search tree, whether that
// coin is currently included in the running selection and whether its
// exclusion branch has already been explored.
type bnbNode struct {
	included      bool
	excludedTried bool
}

// SelectBnB performs a branch-and-bound search over pool for a subset whose
// effective value sum falls in [actualTarget, actualTarget+costOfChange],
// minimizing the waste metric waste(S) = sum(fee-longTermFee) + excess. pool
// is sorted in place by descending effective value; this is the only
// observable side effect of a call.
//
// It fails with ErrInvalidInput if pool is empty or any coin has a
// non-positive effective value, with ErrInsufficientFunds if the pool's
// total effective value cannot reach actualTarget, and with ErrNoSolution
// if the search exhausts TotalTries without finding an admissible subset.
func SelectBnB(pool []InputCoin, actualTarget, costOfChange int64) (*SelectionResult, error) {
	if len(pool) == 0 {
		return nil, newError(ErrInvalidInput, "empty candidate pool", nil)
	}
	for _, c := range pool {
		if c.EffectiveValue <= 0 {
			return nil, newError(ErrInvalidInput,
				"coin has non-positive effective value", nil)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		return pool[i].EffectiveValue > pool[j].EffectiveValue
	})

	var total int64
	for _, c := range pool {
		total += c.EffectiveValue
	}
	if total < actualTarget {
		return nil, newError(ErrInsufficientFunds,
			"pool total effective value below target", nil)
	}

	n := len(pool)
	selection := make([]bnbNode, n)

	var bestSelection []bool
	bestWaste := int64(math.MaxInt64)

	currAvailableValue := total
	var currValue, currWaste int64
	depth := 0

	firstUnitWastes := pool[0].Fee - pool[0].LongTermFee

	for tries := TotalTries; tries > 0; tries-- {
		backtrack := false

		switch {
		case currValue+currAvailableValue < actualTarget:
			backtrack = true

		case currValue > actualTarget+costOfChange:
			backtrack = true

		case currWaste > bestWaste && firstUnitWastes > 0:
			backtrack = true

		case currValue >= actualTarget:
			excess := currValue - actualTarget
			currWaste += excess
			if currWaste <= bestWaste {
				bestSelection = snapshotSelection(selection)
				bestWaste = currWaste
			}
			currWaste -= excess
			backtrack = true

		default:
			c := pool[depth]

			prevExcluded := depth > 0 && !selection[depth-1].included
			equivalent := prevExcluded &&
				c.EffectiveValue == pool[depth-1].EffectiveValue &&
				c.Fee == pool[depth-1].Fee

			if equivalent {
				// The inclusion subtree at this depth is
				// equivalent to one already searched one
				// level up; skip straight to exclusion and
				// mark both branches as exhausted.
				selection[depth].included = false
				selection[depth].excludedTried = true
				currAvailableValue -= c.EffectiveValue
				depth++
			} else {
				currAvailableValue -= c.EffectiveValue
				currWaste += c.Fee - c.LongTermFee
				selection[depth].included = true
				currValue += c.EffectiveValue
				depth++
			}
		}

		if !backtrack {
			continue
		}

		depth--
		for depth >= 0 && selection[depth].excludedTried {
			selection[depth] = bnbNode{}
			currAvailableValue += pool[depth].EffectiveValue
			depth--
		}

		if depth < 0 {
			break
		}

		selection[depth].excludedTried = true
		selection[depth].included = false
		currValue -= pool[depth].EffectiveValue
		currWaste -= pool[depth].Fee - pool[depth].LongTermFee
		depth++
	}

	if bestSelection == nil {
		return nil, newError(ErrNoSolution,
			"branch and bound exhausted its search without a "+
				"valid selection", nil)
	}

	log.Debugf("bnb: selected %d of %d coins, waste %d",
		countSelected(bestSelection), n, bestWaste)

	result := NewSelectionResult()
	for i, included := range bestSelection {
		if included {
			result.AddCoin(pool[i])
		}
	}

	return result, nil
}

func snapshotSelection(selection []bnbNode) []bool {
	out := make([]bool, len(selection))
	for i, node := range selection {
		out[i] = node.included
	}
	return out
}

func countSelected(selection []bool) int {
	var n int
	for _, s := range selection {
		if s {
			n++
		}
	}
	return n
}
