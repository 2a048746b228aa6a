// Package ledger implements the pending-commitment engine for Digital
// Bearer Certificates (DBCs): transactions that consume input DBCs and
// produce output amounts, serialized against double-spend by the same
// strict-majority witness pattern StableSet uses for membership (spec §3,
// §4.4).
package ledger

import "github.com/maidsafe/stableset/internal/wire"

// TxID content-addresses a Tx by its full (inputs, outputs) value — two
// Txs that would encode identically are the same Tx as far as the ledger
// is concerned.
type TxID [32]byte

// DbcId content-addresses a Dbc by its parent Tx's inputs and its output
// index. Note it does not fold in the parent Tx's outputs: a Dbc's
// identity is "the thing that was spent to produce it, plus which output",
// matching the source this core was distilled from.
type DbcId [32]byte

// Tx transforms an ordered list of input DBCs into an ordered list of
// output amounts. Order is significant — output index is part of DbcId.
type Tx struct {
	Inputs  []Dbc
	Outputs []uint64
}

// VerifySums reports whether the sum of input amounts equals the sum of
// output amounts.
func (t Tx) VerifySums() bool {
	var in, out uint64
	for _, dbc := range t.Inputs {
		in += dbc.Amount()
	}
	for _, amount := range t.Outputs {
		out += amount
	}
	return in == out
}

// ID returns t's content address.
func (t Tx) ID() TxID {
	return TxID(wire.MustHash(t))
}

// OutputDbcs returns the DBCs this Tx produces, one per output.
func (t Tx) OutputDbcs() []Dbc {
	out := make([]Dbc, len(t.Outputs))
	for i := range t.Outputs {
		out[i] = Dbc{OutputIndex: uint64(i), Tx: t}
	}
	return out
}

// Dbc is a single output of a Tx: the transaction that produced it plus
// which output index.
type Dbc struct {
	OutputIndex uint64
	Tx          Tx
}

// dbcIdentity is the exact shape hashed to produce a DbcId — the parent
// Tx's inputs plus the output index, deliberately excluding the parent
// Tx's outputs (a Dbc's identity is defined by what was spent to create
// it, not by what else that spend produced).
type dbcIdentity struct {
	Inputs      []Dbc
	OutputIndex uint64
}

// ID returns d's content address.
func (d Dbc) ID() DbcId {
	return DbcId(wire.MustHash(dbcIdentity{Inputs: d.Tx.Inputs, OutputIndex: d.OutputIndex}))
}

// Amount returns the amount of the output this Dbc identifies.
func (d Dbc) Amount() uint64 {
	if d.OutputIndex >= uint64(len(d.Tx.Outputs)) {
		return 0
	}
	return d.Tx.Outputs[d.OutputIndex]
}

// Verify reports whether d points at a real output of a sum-balanced Tx.
// It does not check that d's parent Tx is actually committed — that is
// Ledger.ValidateTx's job — only that d is internally well-formed.
func (d Dbc) Verify() bool {
	return d.OutputIndex < uint64(len(d.Tx.Outputs)) && d.Tx.VerifySums()
}

// GenesisTx is the root of all value: no inputs, a single output of 100.
var GenesisTx = Tx{Outputs: []uint64{100}}

// GenesisDbc is the fixed, unique root DBC every other DBC ultimately
// traces back to.
var GenesisDbc = Dbc{OutputIndex: 0, Tx: GenesisTx}
