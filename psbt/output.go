// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcpsbt/wire"
)

// POutput holds the supplemental per-output section state: the redeem and
// witness scripts that travel with a change output, so a combiner can spend
// it without an out-of-band lookup. This section is not part of the base
// wire format this package defines; it mirrors the input section's
// separator state machine over a disjoint, output-scoped tag space.
type POutput struct {
	RedeemScript  wire.Script
	WitnessScript wire.Script

	// Unknown holds unrecognized records for this output, keyed by the
	// full key bytes (type tag plus suffix) and preserved verbatim.
	Unknown map[string][]byte
}

func newPOutput() POutput {
	return POutput{Unknown: make(map[string][]byte)}
}

func deserializeOutput(r *offsetReader, pout *POutput) error {
	for {
		rec, err := readKV(r)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}

		switch rec.keyType {
		case outputRedeemScript:
			pout.RedeemScript = wire.Script(rec.value)
		case outputWitnessScript:
			pout.WitnessScript = wire.Script(rec.value)
		default:
			key := append([]byte{rec.keyType}, rec.keySuffix...)
			pout.Unknown[string(key)] = rec.value
		}
	}
}

func serializeOutput(w io.Writer, pout *POutput) error {
	if len(pout.RedeemScript) > 0 {
		if err := writeKV(w, outputRedeemScript, nil, pout.RedeemScript); err != nil {
			return err
		}
	}
	if len(pout.WitnessScript) > 0 {
		if err := writeKV(w, outputWitnessScript, nil, pout.WitnessScript); err != nil {
			return err
		}
	}

	for key, val := range pout.Unknown {
		if len(key) == 0 {
			return fmt.Errorf("unknown output record has empty key")
		}
		if err := writeKV(w, key[0], []byte(key[1:]), val); err != nil {
			return err
		}
	}

	return writeSeparator(w)
}
