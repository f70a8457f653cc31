// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package psbt implements the Partially Signed Transaction wire codec: a
// key-typed, separator-delimited binary envelope for passing an in-flight
// transaction between signers, with cryptographically verifiable redeem and
// witness script bindings.
package psbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcpsbt/chainhash"
	"github.com/btcsuite/btcpsbt/wire"
)

// psbtMagic is the fixed 5-byte sequence every PSBT stream begins with:
// the ASCII "psbt" followed by the 0xFF head byte.
var psbtMagic = [5]byte{0x70, 0x73, 0x62, 0x74, 0xff}

// redeemScriptKeyLen and witnessScriptKeyLen are the suffix lengths
// (excluding the type tag byte) the global hash-bound records require.
const (
	redeemScriptKeyLen  = chainhash.Hash160Size
	witnessScriptKeyLen = chainhash.HashSize
)

// Packet is the PartiallySignedTransaction aggregate: the unsigned
// transaction, its per-input partial signing state, its per-output script
// supplements, and the global lookup tables that bind redeem/witness
// scripts to the hashes referencing them.
type Packet struct {
	// UnsignedTx is the transaction this packet is building signatures
	// for. Its inputs must carry no signature script or witness.
	UnsignedTx *wire.MsgTx

	// RedeemScripts maps HASH160(script) to script, for every redeem
	// script known globally to this packet.
	RedeemScripts map[chainhash.Hash160]wire.Script

	// WitnessScripts maps SHA256(script) to script, for every witness
	// script known globally to this packet.
	WitnessScripts map[chainhash.Hash]wire.Script

	// Inputs holds one PInput per transaction input, in order.
	Inputs []PInput

	// Outputs holds one POutput per transaction output, in order.
	Outputs []POutput

	// HDKeypaths maps a serialized public key to its BIP-32 derivation
	// path, as a sequence of u32 indices.
	HDKeypaths map[string][]uint32

	// Unknown holds unrecognized global records, keyed by the full key
	// bytes (type tag plus suffix) and preserved verbatim.
	Unknown map[string][]byte

	// NumIns is the declared input count from the global 0x04 record.
	// Zero means the record was absent.
	NumIns uint64

	// UseInIndex marks whether every input in this packet carries an
	// explicit positional index. It is either true for all inputs or
	// false for all of them; a packet with a mix is invalid.
	UseInIndex bool
}

// New returns an empty Packet wrapping tx, with one PInput per tx input and
// one POutput per tx output.
func New(tx *wire.MsgTx) *Packet {
	p := &Packet{
		UnsignedTx:     tx,
		RedeemScripts:  make(map[chainhash.Hash160]wire.Script),
		WitnessScripts: make(map[chainhash.Hash]wire.Script),
		HDKeypaths:     make(map[string][]uint32),
		Unknown:        make(map[string][]byte),
		Inputs:         make([]PInput, len(tx.TxIn)),
		Outputs:        make([]POutput, len(tx.TxOut)),
	}
	for i := range p.Inputs {
		p.Inputs[i] = newPInput()
	}
	for i := range p.Outputs {
		p.Outputs[i] = newPOutput()
	}

	return p
}

// Deserialize reads and validates a Packet from r. Every hash-bound script
// table entry is checked against its key before Deserialize returns; a
// mismatch fails the whole operation and no partial Packet is returned.
func Deserialize(r io.Reader) (*Packet, error) {
	or := newOffsetReader(r)

	var magic [5]byte
	if _, err := io.ReadFull(or, magic[:]); err != nil {
		return nil, newError(ErrInvalidMagic, "unable to read magic",
			or.offset, err)
	}
	if magic != psbtMagic {
		return nil, newError(ErrInvalidMagic, "bad magic bytes",
			or.offset, nil)
	}

	p := &Packet{
		RedeemScripts:  make(map[chainhash.Hash160]wire.Script),
		WitnessScripts: make(map[chainhash.Hash]wire.Script),
		HDKeypaths:     make(map[string][]uint32),
		Unknown:        make(map[string][]byte),
	}

	if err := deserializeGlobals(or, p); err != nil {
		return nil, err
	}
	if p.UnsignedTx == nil {
		return nil, newError(ErrMalformedEmbeddedTransaction,
			"missing unsigned transaction", or.offset, nil)
	}

	if p.NumIns > 0 && p.NumIns != uint64(len(p.UnsignedTx.TxIn)) {
		return nil, newError(ErrUnexpectedInputCount,
			fmt.Sprintf("declared %d inputs, transaction has %d",
				p.NumIns, len(p.UnsignedTx.TxIn)),
			or.offset, nil)
	}

	p.Inputs = make([]PInput, len(p.UnsignedTx.TxIn))
	for i := range p.Inputs {
		pin := newPInput()
		if err := deserializeInput(or, &pin); err != nil {
			return nil, err
		}

		if pin.NonWitnessUtxo != nil {
			gotHash := pin.NonWitnessUtxo.TxHash()
			wantHash := p.UnsignedTx.TxIn[i].PreviousOutPoint.Hash
			if !gotHash.IsEqual(&wantHash) {
				return nil, newError(ErrUtxoMismatch,
					fmt.Sprintf("input %d non-witness UTXO hash "+
						"does not match prevout", i), or.offset, nil)
			}
		}

		if i > 0 && pin.UseInIndex != p.Inputs[0].UseInIndex {
			return nil, newError(ErrIndexPolicyViolation,
				"inputs mix explicit and implicit positional index",
				or.offset, nil)
		}

		p.Inputs[i] = pin
	}
	if len(p.Inputs) > 0 {
		p.UseInIndex = p.Inputs[0].UseInIndex
	}

	p.Outputs = make([]POutput, len(p.UnsignedTx.TxOut))
	for i := range p.Outputs {
		pout := newPOutput()
		if err := deserializeOutput(or, &pout); err != nil {
			return nil, err
		}
		p.Outputs[i] = pout
	}

	log.Debugf("psbt: deserialized packet with %d inputs, %d outputs",
		len(p.Inputs), len(p.Outputs))

	return p, nil
}

// deserializeGlobals reads the global section, validating every hash-bound
// record as it goes.
func deserializeGlobals(or *offsetReader, p *Packet) error {
	for {
		rec, err := readKV(or)
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}

		switch rec.keyType {
		case globalUnsignedTx:
			tx := &wire.MsgTx{}
			if err := tx.Deserialize(bytes.NewReader(rec.value)); err != nil {
				return newError(ErrMalformedEmbeddedTransaction,
					"malformed unsigned transaction", or.offset, err)
			}
			p.UnsignedTx = tx

		case globalRedeemScript:
			if len(rec.keySuffix) != redeemScriptKeyLen {
				return newError(ErrBadKeyLength,
					"redeem script key must be 21 bytes", or.offset,
					nil)
			}
			var hash chainhash.Hash160
			copy(hash[:], rec.keySuffix)

			got := chainhash.Hash160H(rec.value)
			if got != hash {
				return newError(ErrHashMismatch,
					"redeem script hash160 mismatch", or.offset, nil)
			}
			p.RedeemScripts[hash] = wire.Script(rec.value)

		case globalWitnessScript:
			if len(rec.keySuffix) != witnessScriptKeyLen {
				return newError(ErrBadKeyLength,
					"witness script key must be 33 bytes", or.offset,
					nil)
			}
			var hash chainhash.Hash
			copy(hash[:], rec.keySuffix)

			got := chainhash.HashH(rec.value)
			if got != hash {
				return newError(ErrHashMismatch,
					"witness script sha256 mismatch", or.offset, nil)
			}
			p.WitnessScripts[hash] = wire.Script(rec.value)

		case globalBip32Derivation:
			if err := validatePubKeySuffix(rec.keySuffix); err != nil {
				return newError(ErrBadKeyLength, err.Error(), or.offset,
					nil)
			}
			if len(rec.value)%4 != 0 {
				return newError(ErrBadKeyLength,
					"derivation path value must be a multiple of 4 "+
						"bytes", or.offset, nil)
			}

			path := make([]uint32, len(rec.value)/4)
			for i := range path {
				path[i] = leUint32(rec.value[i*4 : i*4+4])
			}
			p.HDKeypaths[string(rec.keySuffix)] = path

		case globalInputCount:
			n, err := wire.ReadCompactSize(bytes.NewReader(rec.value))
			if err != nil {
				return newError(ErrNonCanonicalCompactSize,
					"malformed input count", or.offset, err)
			}
			p.NumIns = n

		default:
			key := append([]byte{rec.keyType}, rec.keySuffix...)
			p.Unknown[string(key)] = rec.value
		}
	}
}

// validatePubKeySuffix enforces the "key whose suffix is a pubkey must be
// of length 34 or 66" rule (counting the type tag byte): the suffix itself
// must decode as a valid pubkey.
func validatePubKeySuffix(suffix []byte) error {
	if err := wire.PubKey(suffix).Validate(); err != nil {
		return fmt.Errorf("pubkey key suffix: %w", err)
	}
	return nil
}

// Serialize writes p to w per the wire format: magic, global section,
// separator, one section per input, then one section per output.
func (p *Packet) Serialize(w io.Writer) error {
	if _, err := w.Write(psbtMagic[:]); err != nil {
		return err
	}

	if p.UnsignedTx != nil && (len(p.UnsignedTx.TxIn) > 0 ||
		len(p.UnsignedTx.TxOut) > 0) {

		var buf bytes.Buffer
		if err := p.UnsignedTx.Serialize(&buf); err != nil {
			return err
		}
		if err := writeKV(w, globalUnsignedTx, nil, buf.Bytes()); err != nil {
			return err
		}
	}

	for hash, script := range p.RedeemScripts {
		if err := writeKV(w, globalRedeemScript, hash[:], script); err != nil {
			return err
		}
	}
	for hash, script := range p.WitnessScripts {
		if err := writeKV(w, globalWitnessScript, hash[:], script); err != nil {
			return err
		}
	}
	for pubKey, path := range p.HDKeypaths {
		val := make([]byte, 4*len(path))
		for i, idx := range path {
			copy(val[i*4:i*4+4], leBytes32(idx))
		}
		if err := writeKV(w, globalBip32Derivation, []byte(pubKey), val); err != nil {
			return err
		}
	}

	if p.NumIns > 0 {
		var buf bytes.Buffer
		if err := wire.WriteCompactSize(&buf, p.NumIns); err != nil {
			return err
		}
		if err := writeKV(w, globalInputCount, nil, buf.Bytes()); err != nil {
			return err
		}
	}

	for key, val := range p.Unknown {
		if len(key) == 0 {
			return fmt.Errorf("unknown global record has empty key")
		}
		if err := writeKV(w, key[0], []byte(key[1:]), val); err != nil {
			return err
		}
	}

	if err := writeSeparator(w); err != nil {
		return err
	}

	for i := range p.Inputs {
		sigScriptEmpty := true
		witnessEmpty := true
		if p.UnsignedTx != nil && i < len(p.UnsignedTx.TxIn) {
			in := p.UnsignedTx.TxIn[i]
			sigScriptEmpty = len(in.SignatureScript) == 0
			witnessEmpty = len(in.Witness) == 0
		}

		if err := serializeInput(w, &p.Inputs[i], sigScriptEmpty,
			witnessEmpty); err != nil {

			return err
		}
	}

	for i := range p.Outputs {
		if err := serializeOutput(w, &p.Outputs[i]); err != nil {
			return err
		}
	}

	return nil
}
