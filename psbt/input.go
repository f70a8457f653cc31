// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcpsbt/wire"
)

// PInput holds the partial signing state carried for a single transaction
// input. At most one of NonWitnessUtxo / WitnessUtxo is populated.
type PInput struct {
	// NonWitnessUtxo is the full previous transaction referenced by this
	// input, used when spending a non-witness output.
	NonWitnessUtxo *wire.MsgTx

	// WitnessUtxo is the single previous output referenced by this
	// input, used when spending a witness output.
	WitnessUtxo *wire.TxOut

	// PartialSigs maps a signer's serialized public key to the DER
	// signature it produced for this input.
	PartialSigs map[string][]byte

	// SighashType is the sighash flag this input's signatures must use.
	// Zero means unset (callers default to SIGHASH_ALL).
	SighashType uint32

	// RedeemScript is the per-input, unkeyed redeem script supplement.
	// Unlike the Packet-level RedeemScripts table, this field carries no
	// hash-binding invariant.
	RedeemScript wire.Script

	// WitnessScript is the per-input, unkeyed witness script supplement.
	WitnessScript wire.Script

	// FinalScriptSig is the finalized scriptSig for this input, once
	// signing is complete. Carried as an opaque blob.
	FinalScriptSig wire.Script

	// FinalScriptWitness is the finalized witness stack for this input,
	// serialized as a CompactSize item count followed by length-prefixed
	// items. Carried as an opaque blob; never decoded by this package.
	FinalScriptWitness []byte

	// Index is this input's explicit positional index, present only
	// when UseInIndex is set.
	Index uint32

	// UseInIndex marks whether this input was written with an explicit
	// positional index (tag 0x04).
	UseInIndex bool

	// Unknown holds unrecognized records for this input, keyed by the
	// full key bytes (type tag plus suffix) and preserved verbatim.
	Unknown map[string][]byte
}

// newPInput returns an empty PInput with its maps initialized.
func newPInput() PInput {
	return PInput{
		PartialSigs: make(map[string][]byte),
		Unknown:     make(map[string][]byte),
	}
}

// deserializeInput reads one per-input section from r into pin, tracking
// whether an explicit index was seen so the caller can enforce the
// index-policy invariant across all inputs.
func deserializeInput(r *offsetReader, pin *PInput) error {
	for {
		rec, err := readKV(r)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}

		switch rec.keyType {
		case inputNonWitnessUtxo:
			tx := &wire.MsgTx{}
			if err := tx.Deserialize(bytes.NewReader(rec.value)); err != nil {
				return newError(ErrMalformedEmbeddedTransaction,
					"malformed non-witness UTXO", r.offset, err)
			}
			pin.NonWitnessUtxo = tx

		case inputWitnessUtxo:
			to, err := decodeTxOut(rec.value)
			if err != nil {
				return newError(ErrMalformedEmbeddedTransaction,
					"malformed witness UTXO", r.offset, err)
			}
			pin.WitnessUtxo = to

		case inputPartialSig:
			if err := wire.PubKey(rec.keySuffix).Validate(); err != nil {
				return newError(ErrBadKeyLength,
					"partial sig key suffix must be a pubkey",
					r.offset, err)
			}
			pin.PartialSigs[string(rec.keySuffix)] = rec.value

		case inputSighashType:
			if len(rec.value) != 4 {
				return newError(ErrBadKeyLength,
					"sighash type value must be 4 bytes", r.offset,
					nil)
			}
			pin.SighashType = leUint32(rec.value)

		case inputIndex:
			idx, err := wire.ReadCompactSize(bytes.NewReader(rec.value))
			if err != nil {
				return newError(ErrNonCanonicalCompactSize,
					"malformed input index", r.offset, err)
			}
			pin.Index = uint32(idx)
			pin.UseInIndex = true

		case inputRedeemScript:
			pin.RedeemScript = wire.Script(rec.value)

		case inputWitnessScript:
			pin.WitnessScript = wire.Script(rec.value)

		case inputFinalScriptSig:
			pin.FinalScriptSig = wire.Script(rec.value)

		case inputFinalScriptWitness:
			pin.FinalScriptWitness = rec.value

		default:
			key := append([]byte{rec.keyType}, rec.keySuffix...)
			pin.Unknown[string(key)] = rec.value
		}
	}
}

// serializeInput writes one per-input section for pin to w, given the
// corresponding transaction input's signature script and witness (which
// decide whether a UTXO record is emitted), and terminates it with the
// section separator.
func serializeInput(w io.Writer, pin *PInput, sigScriptEmpty,
	witnessEmpty bool) error {

	if sigScriptEmpty && witnessEmpty {
		switch {
		case pin.NonWitnessUtxo != nil:
			var buf bytes.Buffer
			if err := pin.NonWitnessUtxo.Serialize(&buf); err != nil {
				return err
			}
			if err := writeKV(w, inputNonWitnessUtxo, nil, buf.Bytes()); err != nil {
				return err
			}

		case pin.WitnessUtxo != nil:
			val := encodeTxOut(pin.WitnessUtxo)
			if err := writeKV(w, inputWitnessUtxo, nil, val); err != nil {
				return err
			}
		}
	}

	for pubKey, sig := range pin.PartialSigs {
		if err := writeKV(w, inputPartialSig, []byte(pubKey), sig); err != nil {
			return err
		}
	}

	if pin.SighashType > 0 {
		val := leBytes32(pin.SighashType)
		if err := writeKV(w, inputSighashType, nil, val); err != nil {
			return err
		}
	}

	if pin.UseInIndex {
		var buf bytes.Buffer
		if err := wire.WriteCompactSize(&buf, uint64(pin.Index)); err != nil {
			return err
		}
		if err := writeKV(w, inputIndex, nil, buf.Bytes()); err != nil {
			return err
		}
	}

	if len(pin.RedeemScript) > 0 {
		if err := writeKV(w, inputRedeemScript, nil, pin.RedeemScript); err != nil {
			return err
		}
	}
	if len(pin.WitnessScript) > 0 {
		if err := writeKV(w, inputWitnessScript, nil, pin.WitnessScript); err != nil {
			return err
		}
	}
	if len(pin.FinalScriptSig) > 0 {
		if err := writeKV(w, inputFinalScriptSig, nil, pin.FinalScriptSig); err != nil {
			return err
		}
	}
	if len(pin.FinalScriptWitness) > 0 {
		if err := writeKV(w, inputFinalScriptWitness, nil, pin.FinalScriptWitness); err != nil {
			return err
		}
	}

	for key, val := range pin.Unknown {
		if len(key) == 0 {
			return fmt.Errorf("unknown record has empty key")
		}
		if err := writeKV(w, key[0], []byte(key[1:]), val); err != nil {
			return err
		}
	}

	return writeSeparator(w)
}

// decodeTxOut decodes a TxOut from its PSBT value encoding: an 8-byte
// little-endian amount followed by a CompactSize-prefixed script.
func decodeTxOut(b []byte) (*wire.TxOut, error) {
	if len(b) < 9 {
		return nil, fmt.Errorf("witness UTXO value too short")
	}
	val := int64(leUint64(b[:8]))

	script, err := wire.ReadVarBytes(bytes.NewReader(b[8:]), maxValueLength,
		"witness UTXO script")
	if err != nil {
		return nil, err
	}

	return wire.NewTxOut(val, wire.Script(script)), nil
}

// encodeTxOut encodes a TxOut using the same layout decodeTxOut expects.
func encodeTxOut(to *wire.TxOut) []byte {
	var buf bytes.Buffer
	b := leBytes64(uint64(to.Value))
	buf.Write(b)
	_ = wire.WriteVarBytes(&buf, to.PkScript)
	return buf.Bytes()
}
