// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect

import "math/rand/v2"

// SelectSRD implements Single Random Draw: it shuffles pool and walks it in
// that order, accumulating coins until their effective value sum reaches
// target. It is a cheap, low-waste fallback for well-funded wallets where
// branch-and-bound's exactness is not needed.
//
// It fails with ErrInvalidInput if pool is empty or target is not
// positive, and ErrInsufficientFunds if pool's total effective value
// cannot reach target.
func SelectSRD(pool []InputCoin, target int64) (*SelectionResult, error) {
	if len(pool) == 0 {
		return nil, newError(ErrInvalidInput, "empty candidate pool", nil)
	}
	if target <= 0 {
		return nil, newError(ErrInvalidInput, "target must be positive", nil)
	}

	shuffled := make([]InputCoin, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	result := NewSelectionResult()
	var sum int64
	for _, c := range shuffled {
		result.AddCoin(c)
		sum += c.EffectiveValue
		if sum >= target {
			log.Debugf("srd: selected %d coins, value %d",
				len(result.Inputs()), sum)
			return result, nil
		}
	}

	return nil, newError(ErrInsufficientFunds,
		"pool total effective value below target", nil)
}
