// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the consensus-encoding primitives consumed by the
// PSBT codec and coin selector: CompactSize integers, outpoints, outputs,
// inputs, witnesses and the transaction they compose.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcpsbt/chainhash"
)

// maxTxInPerTx and maxTxOutPerTx bound allocation when decoding a
// transaction from an untrusted byte stream.
const (
	maxTxInPerTx  = 1_000_000
	maxTxOutPerTx = 1_000_000

	// maxScriptSize bounds a single script or witness item.
	maxScriptSize = 10_000_000
)

// Script is an opaque, ordered sequence of bytes. The codec never
// interprets its contents.
type Script []byte

// OutPoint identifies a specific output of a specific transaction by its
// hash and output index.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new OutPoint for the given hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// String returns the OutPoint as "hash:index".
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// Less reports whether o sorts before other, ordering first by hash bytes
// and then by index. InputCoin and the rest of the coin selector depend on
// OutPoint having a total order for set membership.
func (o OutPoint) Less(other OutPoint) bool {
	for i := range o.Hash {
		if o.Hash[i] != other.Hash[i] {
			return o.Hash[i] < other.Hash[i]
		}
	}
	return o.Index < other.Index
}

func readOutPoint(r io.Reader, op *OutPoint) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}

	var idx [4]byte
	if _, err := io.ReadFull(r, idx[:]); err != nil {
		return err
	}
	op.Index = binary.LittleEndian.Uint32(idx[:])

	return nil
}

func writeOutPoint(w io.Writer, op *OutPoint) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}

	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], op.Index)
	_, err := w.Write(idx[:])
	return err
}

// TxOut defines a single transaction output: an amount, in the smallest
// monetary unit, and the script that must be satisfied to spend it.
type TxOut struct {
	Value    int64
	PkScript Script
}

// NewTxOut returns a new TxOut for the given amount and script.
func NewTxOut(value int64, pkScript Script) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// SerializeSize returns the number of bytes it would take to serialize the
// output.
func (t *TxOut) SerializeSize() int {
	return 8 + CompactSizeSerializeSize(uint64(len(t.PkScript))) +
		len(t.PkScript)
}

func readTxOut(r io.Reader, to *TxOut) error {
	var val [8]byte
	if _, err := io.ReadFull(r, val[:]); err != nil {
		return err
	}
	to.Value = int64(binary.LittleEndian.Uint64(val[:]))

	script, err := ReadVarBytes(r, maxScriptSize, "pkScript")
	if err != nil {
		return err
	}
	to.PkScript = Script(script)

	return nil
}

func writeTxOut(w io.Writer, to *TxOut) error {
	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], uint64(to.Value))
	if _, err := w.Write(val[:]); err != nil {
		return err
	}

	return WriteVarBytes(w, to.PkScript)
}

// Witness is the stack of items satisfying a segregated-witness input.
type Witness [][]byte

func readWitness(r io.Reader) (Witness, error) {
	count, err := ReadCompactSize(r)
	if err != nil {
		return nil, err
	}
	if count > maxTxInPerTx {
		return nil, fmt.Errorf("witness item count %d exceeds max %d",
			count, maxTxInPerTx)
	}

	wit := make(Witness, count)
	for i := range wit {
		item, err := ReadVarBytes(r, maxScriptSize, "witness item")
		if err != nil {
			return nil, err
		}
		wit[i] = item
	}

	return wit, nil
}

func writeWitness(w io.Writer, wit Witness) error {
	if err := WriteCompactSize(w, uint64(len(wit))); err != nil {
		return err
	}
	for _, item := range wit {
		if err := WriteVarBytes(w, item); err != nil {
			return err
		}
	}

	return nil
}

// TxIn defines a single transaction input: the outpoint it spends, its
// (legacy) signature script, sequence number, and segwit witness.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  Script
	Sequence         uint32
	Witness          Witness
}

// NewTxIn returns a new TxIn spending prevOut with the given signature
// script.
func NewTxIn(prevOut *OutPoint, signatureScript Script) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// MaxTxInSequenceNum is the maximum value a TxIn's sequence field may hold.
const MaxTxInSequenceNum uint32 = 0xffffffff

func readTxIn(r io.Reader, ti *TxIn) error {
	if err := readOutPoint(r, &ti.PreviousOutPoint); err != nil {
		return err
	}

	sigScript, err := ReadVarBytes(r, maxScriptSize, "signatureScript")
	if err != nil {
		return err
	}
	ti.SignatureScript = Script(sigScript)

	var seq [4]byte
	if _, err := io.ReadFull(r, seq[:]); err != nil {
		return err
	}
	ti.Sequence = binary.LittleEndian.Uint32(seq[:])

	return nil
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	if err := writeOutPoint(w, &ti.PreviousOutPoint); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}

	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], ti.Sequence)
	_, err := w.Write(seq[:])
	return err
}

// MsgTx represents a transaction: a version, a set of inputs, a set of
// outputs, a locktime, and — when any input carries a non-empty witness —
// a witness section serialized inline with each input (BIP-144 style).
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new, empty MsgTx with the given version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn adds the passed input to the transaction.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds the passed output to the transaction.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// hasWitness reports whether any input carries a non-empty witness.
func (msg *MsgTx) hasWitness() bool {
	for _, ti := range msg.TxIn {
		if len(ti.Witness) > 0 {
			return true
		}
	}
	return false
}

// segwitMarker and segwitFlag are the BIP-144 marker/flag bytes that signal
// a witness section follows the inputs and outputs.
const (
	segwitMarker = 0x00
	segwitFlag   = 0x01
)

// Deserialize decodes a transaction from r into msg, per the host chain's
// consensus encoding. The codec treats this as a black box: it calls
// Deserialize/Serialize but never interprets scripts.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	var verBytes [4]byte
	if _, err := io.ReadFull(r, verBytes[:]); err != nil {
		return err
	}
	msg.Version = int32(binary.LittleEndian.Uint32(verBytes[:]))

	// Peek at the next two bytes to detect the BIP-144 marker/flag. We do
	// this by reading the input-count CompactSize first; a zero-length
	// input count is how BIP-144 repurposes "0 inputs" as the witness
	// marker, immediately followed by a flag byte.
	inCount, err := ReadCompactSize(r)
	if err != nil {
		return err
	}

	segwit := false
	if inCount == segwitMarker {
		var flag [1]byte
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return err
		}
		if flag[0] != segwitFlag {
			return fmt.Errorf("unsupported segwit flag 0x%x", flag[0])
		}
		segwit = true

		inCount, err = ReadCompactSize(r)
		if err != nil {
			return err
		}
	}

	if inCount > maxTxInPerTx {
		return fmt.Errorf("tx input count %d exceeds max %d", inCount,
			maxTxInPerTx)
	}

	msg.TxIn = make([]*TxIn, inCount)
	for i := range msg.TxIn {
		ti := &TxIn{}
		if err := readTxIn(r, ti); err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	outCount, err := ReadCompactSize(r)
	if err != nil {
		return err
	}
	if outCount > maxTxOutPerTx {
		return fmt.Errorf("tx output count %d exceeds max %d", outCount,
			maxTxOutPerTx)
	}

	msg.TxOut = make([]*TxOut, outCount)
	for i := range msg.TxOut {
		to := &TxOut{}
		if err := readTxOut(r, to); err != nil {
			return err
		}
		msg.TxOut[i] = to
	}

	if segwit {
		for _, ti := range msg.TxIn {
			wit, err := readWitness(r)
			if err != nil {
				return err
			}
			ti.Witness = wit
		}
	}

	var lt [4]byte
	if _, err := io.ReadFull(r, lt[:]); err != nil {
		return err
	}
	msg.LockTime = binary.LittleEndian.Uint32(lt[:])

	return nil
}

// Serialize encodes msg into w, per the host chain's consensus encoding,
// including a witness section when any input carries one.
func (msg *MsgTx) Serialize(w io.Writer) error {
	var verBytes [4]byte
	binary.LittleEndian.PutUint32(verBytes[:], uint32(msg.Version))
	if _, err := w.Write(verBytes[:]); err != nil {
		return err
	}

	segwit := msg.hasWitness()
	if segwit {
		if err := WriteCompactSize(w, segwitMarker); err != nil {
			return err
		}
		if _, err := w.Write([]byte{segwitFlag}); err != nil {
			return err
		}
	}

	if err := WriteCompactSize(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}

	if err := WriteCompactSize(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := writeTxOut(w, to); err != nil {
			return err
		}
	}

	if segwit {
		for _, ti := range msg.TxIn {
			if err := writeWitness(w, ti.Witness); err != nil {
				return err
			}
		}
	}

	var lt [4]byte
	binary.LittleEndian.PutUint32(lt[:], msg.LockTime)
	_, err := w.Write(lt[:])
	return err
}

// TxHash computes the transaction's id: the double-SHA256 of its
// non-witness serialization. Unlike the PSBT's script-binding hashes (which
// are single-round), transaction ids follow the host chain's usual
// double-hash convention.
func (msg *MsgTx) TxHash() chainhash.Hash {
	stripped := &MsgTx{
		Version:  msg.Version,
		LockTime: msg.LockTime,
		TxOut:    msg.TxOut,
	}
	stripped.TxIn = make([]*TxIn, len(msg.TxIn))
	for i, ti := range msg.TxIn {
		strippedIn := *ti
		strippedIn.Witness = nil
		stripped.TxIn[i] = &strippedIn
	}

	var buf bufferWriter
	// Serialize never fails against an in-memory buffer.
	_ = stripped.Serialize(&buf)

	first := chainhash.HashB(buf.b)
	return chainhash.HashH(first)
}

// Copy returns a deep copy of msg.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := &MsgTx{
		Version:  msg.Version,
		LockTime: msg.LockTime,
		TxIn:     make([]*TxIn, len(msg.TxIn)),
		TxOut:    make([]*TxOut, len(msg.TxOut)),
	}
	for i, ti := range msg.TxIn {
		newIn := *ti
		newIn.SignatureScript = append(Script{}, ti.SignatureScript...)
		if ti.Witness != nil {
			newIn.Witness = make(Witness, len(ti.Witness))
			for j, item := range ti.Witness {
				newIn.Witness[j] = append([]byte{}, item...)
			}
		}
		newTx.TxIn[i] = &newIn
	}
	for i, to := range msg.TxOut {
		newOut := *to
		newOut.PkScript = append(Script{}, to.PkScript...)
		newTx.TxOut[i] = &newOut
	}

	return newTx
}

// bufferWriter is a minimal io.Writer over a growable byte slice, used
// in-package to avoid importing bytes.Buffer purely for TxHash.
type bufferWriter struct {
	b []byte
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}
