// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import (
	"math/rand/v2"
	"sort"
)

// knapsackIterations is the number of randomized trials approximateBestSubset
// runs per invocation.
const knapsackIterations = 1000

// SelectKnapsack chooses a subset of pool whose nominal values sum to at
// least target, falling back to randomized subset-sum search when no exact
// or simple partition match exists.
//
// It fails with ErrInvalidInput if pool is empty or target is not positive,
// and ErrInsufficientFunds if pool cannot reach target at all.
func SelectKnapsack(pool []InputCoin, target int64) (*SelectionResult, error) {
	if len(pool) == 0 {
		return nil, newError(ErrInvalidInput, "empty candidate pool", nil)
	}
	if target <= 0 {
		return nil, newError(ErrInvalidInput, "target must be positive", nil)
	}

	for _, c := range pool {
		if c.TxOut.Value == target {
			result := NewSelectionResult()
			result.AddCoin(c)
			return result, nil
		}
	}

	threshold := target + MinChange

	var lesser []InputCoin
	var totalLower int64
	var lowestLarger *InputCoin

	for i := range pool {
		c := pool[i]
		switch {
		case c.TxOut.Value < threshold:
			lesser = append(lesser, c)
			totalLower += c.TxOut.Value

		case lowestLarger == nil || c.TxOut.Value < lowestLarger.TxOut.Value:
			lowestLarger = &pool[i]
		}
	}

	if totalLower == target {
		result := NewSelectionResult()
		for _, c := range lesser {
			result.AddCoin(c)
		}
		return result, nil
	}

	if totalLower < target {
		if lowestLarger == nil {
			return nil, newError(ErrInsufficientFunds,
				"pool total value below target", nil)
		}

		result := NewSelectionResult()
		result.AddCoin(*lowestLarger)
		return result, nil
	}

	sort.Slice(lesser, func(i, j int) bool {
		return lesser[i].TxOut.Value > lesser[j].TxOut.Value
	})

	values := make([]int64, len(lesser))
	for i, c := range lesser {
		values[i] = c.TxOut.Value
	}

	bestIncluded, bestTotal := approximateBestSubset(
		values, target, knapsackIterations,
	)
	if bestTotal != target && totalLower >= target+MinChange {
		included, total := approximateBestSubset(
			values, target+MinChange, knapsackIterations,
		)
		if total < bestTotal {
			bestIncluded, bestTotal = included, total
		}
	}

	// Prefer the single next-larger coin over the approximated subset if
	// the subset missed the exact target and landed short of the change
	// window, or if the next-larger coin is itself no bigger than what
	// the subset found.
	preferLarger := lowestLarger != nil &&
		((bestTotal != target && bestTotal < target+MinChange) ||
			lowestLarger.TxOut.Value <= bestTotal)

	result := NewSelectionResult()
	if preferLarger {
		result.AddCoin(*lowestLarger)
		log.Debugf("knapsack: used next-larger coin over approximated "+
			"subset of value %d", bestTotal)
		return result, nil
	}

	for i, included := range bestIncluded {
		if included {
			result.AddCoin(lesser[i])
		}
	}

	log.Debugf("knapsack: selected approximated subset of %d coins, "+
		"value %d", len(result.Inputs()), bestTotal)

	return result, nil
}

// approximateBestSubset runs iterations randomized trials over values,
// each consisting of a fair-coin inclusion pass followed by a
// forced-inclusion pass over whatever coins the first pass skipped, and
// returns the smallest total at or above target found by any trial
// together with which values it included.
func approximateBestSubset(values []int64, target int64,
	iterations int) ([]bool, int64) {

	n := len(values)
	included := make([]bool, n)

	var bestIncluded []bool
	found := false
	var bestTotal int64

	for rep := 0; rep < iterations; rep++ {
		for i := range included {
			included[i] = false
		}

		var total int64
		reachedTarget := false

		for pass := 0; pass < 2 && !reachedTarget; pass++ {
			for i := 0; i < n && !reachedTarget; i++ {
				var include bool
				if pass == 0 {
					include = rand.IntN(2) == 1
				} else {
					include = !included[i]
				}
				if !include {
					continue
				}

				total += values[i]
				included[i] = true

				if total >= target {
					reachedTarget = true
					if !found || total < bestTotal {
						bestTotal = total
						bestIncluded = append(
							[]bool(nil), included...,
						)
						found = true
					}
					total -= values[i]
					included[i] = false
				}
			}
		}

		if found && bestTotal == target {
			break
		}
	}

	return bestIncluded, bestTotal
}
