// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import "fmt"

// defaultSighashType is the sighash flag assumed for an input that has no
// explicit SighashType set.
const defaultSighashType = 1 // SIGHASH_ALL

// CheckSigHashFlags compares the sighash flag byte trailing sig against the
// value expected for in: its explicit SighashType if set, or
// defaultSighashType otherwise. It performs no other signature validation.
func CheckSigHashFlags(sig []byte, in *PInput) bool {
	if len(sig) == 0 {
		return false
	}

	expected := uint32(defaultSighashType)
	if in.SighashType != 0 {
		expected = in.SighashType
	}

	return expected == uint32(sig[len(sig)-1])
}

// SumInputValues sums the value of whichever UTXO (witness or non-witness)
// is present for each input in p, erroring if any input has neither.
func SumInputValues(p *Packet) (int64, error) {
	if len(p.UnsignedTx.TxIn) != len(p.Inputs) {
		return 0, fmt.Errorf("transaction input count doesn't match " +
			"packet input count")
	}

	var sum int64
	for i, in := range p.Inputs {
		switch {
		case in.WitnessUtxo != nil:
			sum += in.WitnessUtxo.Value

		case in.NonWitnessUtxo != nil:
			opIdx := p.UnsignedTx.TxIn[i].PreviousOutPoint.Index
			outs := in.NonWitnessUtxo.TxOut
			if opIdx >= uint32(len(outs)) {
				return 0, fmt.Errorf("input %d references an "+
					"out-of-range previous output", i)
			}
			sum += outs[opIdx].Value

		default:
			return 0, fmt.Errorf("input %d has no UTXO information", i)
		}
	}

	return sum, nil
}

// Fee returns the transaction fee implied by p: the sum of its input values
// minus the sum of its output values. It errors under the same conditions
// as SumInputValues.
func Fee(p *Packet) (int64, error) {
	sumIn, err := SumInputValues(p)
	if err != nil {
		return 0, err
	}

	var sumOut int64
	for _, out := range p.UnsignedTx.TxOut {
		sumOut += out.Value
	}

	return sumIn - sumOut, nil
}
