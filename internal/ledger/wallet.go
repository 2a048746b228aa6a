package ledger

import "github.com/maidsafe/stableset/internal/fakecrypto"

// Wallet is the thin, node-facing entry point onto a Ledger: it turns a
// local spend intent into a Tx and turns inbound ReqReissue traffic into
// LogTxShare calls, but leaves quorum promotion to
// Ledger.ProcessCompletedCommitments — Wallet has no state of its own
// beyond the Ledger it wraps.
type Wallet struct {
	ledger *Ledger
}

// NewWallet wraps ledger.
func NewWallet(ledger *Ledger) *Wallet {
	return &Wallet{ledger: ledger}
}

// Ledger exposes the underlying replica, for node to drive
// ProcessCompletedCommitments and read Commitments/PendingCount directly.
func (w *Wallet) Ledger() *Ledger {
	return w.ledger
}

// Reissue constructs a Tx spending inputs into outputs and validates it
// before it ever reaches the wire. The spec's reissue() is a local-only
// caller action — it constructs and broadcasts, nothing more; witnessing
// only happens on receipt, via OnReqReissue, and only an elder does that.
// It returns the Tx to broadcast as a ReqReissue and whether it was
// accepted at all; a caller whose inputs don't balance or aren't
// spendable gets ok == false and must not broadcast anything.
func (w *Wallet) Reissue(inputs []Dbc, outputs []uint64) (tx Tx, ok bool) {
	tx = Tx{Inputs: inputs, Outputs: outputs}
	if !w.ledger.ValidateTx(tx) {
		return Tx{}, false
	}
	return tx, true
}

// OnReqReissue handles an inbound ReqReissue(tx) from src: it records
// self and src as witnesses, and reports whether this is the first time
// this node has seen tx validate. A first-time-valid Tx is the signal
// node uses to gossip-amplify — re-broadcasting ReqReissue to the rest
// of the elders — so the section converges on commitment without every
// elder needing to hear from the original spender directly.
func (w *Wallet) OnReqReissue(self, src fakecrypto.Id, tx Tx) (firstTime bool) {
	return w.ledger.LogTxShare(self, tx, src)
}
