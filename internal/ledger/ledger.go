package ledger

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/maidsafe/stableset/internal/fakecrypto"
)

// DefaultCommitCacheSize bounds Ledger's accelerator cache for the
// already-committed check in ValidateTx. Like StableSet's dead-id cache,
// a miss always falls through to the authoritative commitments map, so
// this only affects throughput.
const DefaultCommitCacheSize = 1024

type pendingTx struct {
	tx        Tx
	witnesses *fakecrypto.SigSet[TxID]
}

// Ledger is a node-local replica of the section's commitment log: DBCs
// that have been irreversibly spent, and Txs still accumulating witnesses
// toward a quorum commit.
type Ledger struct {
	commitments map[DbcId]Tx
	pending     map[TxID]*pendingTx

	commitCache *lru.Cache[DbcId, struct{}]
}

// New returns an empty Ledger. The genesis DBC is not recorded in
// commitments (nothing has spent it yet); it is simply the one fixed DBC
// every validation walk is allowed to terminate at.
func New() *Ledger {
	cache, _ := lru.New[DbcId, struct{}](DefaultCommitCacheSize)
	return &Ledger{
		commitments: make(map[DbcId]Tx),
		pending:     make(map[TxID]*pendingTx),
		commitCache: cache,
	}
}

// SumUnspentOutputs sums the amounts of every output, across the genesis
// Tx and every committed Tx, that has not itself been committed as an
// input elsewhere. This must equal 100 in every reachable state (spec §8
// property 1, conservation).
func (l *Ledger) SumUnspentOutputs() uint64 {
	var sum uint64
	for _, dbc := range GenesisTx.OutputDbcs() {
		if !l.isCommitted(dbc.ID()) {
			sum += dbc.Amount()
		}
	}
	// commitments is keyed by input, so a Tx with several inputs appears
	// once per input; count each committed Tx's outputs only once.
	counted := make(map[TxID]struct{}, len(l.commitments))
	for _, tx := range l.commitments {
		id := tx.ID()
		if _, ok := counted[id]; ok {
			continue
		}
		counted[id] = struct{}{}
		for _, dbc := range tx.OutputDbcs() {
			if !l.isCommitted(dbc.ID()) {
				sum += dbc.Amount()
			}
		}
	}
	return sum
}

func (l *Ledger) isCommitted(id DbcId) bool {
	if _, ok := l.commitCache.Get(id); ok {
		return true
	}
	_, ok := l.commitments[id]
	return ok
}

// ValidateTx reports whether tx is eligible to become a pending
// commitment: its sums balance, every input is either genesis or a
// well-formed DBC whose parent Tx is itself committed, no input is
// already committed, and no input conflicts with a different pending Tx.
func (l *Ledger) ValidateTx(tx Tx) bool {
	if !tx.VerifySums() {
		return false
	}

	for _, input := range tx.Inputs {
		if !(input.Verify() || input.ID() == GenesisDbc.ID()) {
			return false
		}

		// Chain integrity: every DBC that went into producing this
		// input must itself be committed, and committed to exactly the
		// Tx this input claims as its parent.
		for _, grandparent := range input.Tx.Inputs {
			parentTx, ok := l.commitments[grandparent.ID()]
			if !ok {
				return false
			}
			if parentTx.ID() != input.Tx.ID() {
				return false
			}
		}

		if l.isCommitted(input.ID()) {
			return false
		}

		for _, pending := range l.pending {
			if pending.tx.ID() == tx.ID() {
				continue
			}
			for _, pendingInput := range pending.tx.Inputs {
				if pendingInput.ID() == input.ID() {
					return false
				}
			}
		}
	}

	return true
}

// LogTxShare records self and witness as having witnessed tx, after
// checking tx validates. Returns true iff this is the first time this
// node has seen tx and it validated — the signal the caller uses to decide
// whether to re-broadcast and amplify the gossip.
func (l *Ledger) LogTxShare(self fakecrypto.Id, tx Tx, witness fakecrypto.Id) bool {
	if !l.ValidateTx(tx) {
		return false
	}

	id := tx.ID()
	entry, exists := l.pending[id]
	if !exists {
		entry = &pendingTx{tx: tx, witnesses: fakecrypto.NewSigSet[TxID]()}
		l.pending[id] = entry
	}
	entry.witnesses.AddShare(self, fakecrypto.Sign(self, id))
	entry.witnesses.AddShare(witness, fakecrypto.Sign(witness, id))

	return !exists
}

// ProcessCompletedCommitments commits every pending Tx whose witnesses
// intersected with elders cross strict majority, and drops it from
// pending.
func (l *Ledger) ProcessCompletedCommitments(elders map[fakecrypto.Id]struct{}) bool {
	updated := false

	var ready []TxID
	for id, entry := range l.pending {
		if entry.witnesses.Verify(elders, id) {
			ready = append(ready, id)
		}
	}

	for _, id := range ready {
		entry := l.pending[id]
		for _, input := range entry.tx.Inputs {
			l.commitments[input.ID()] = entry.tx
			l.commitCache.Add(input.ID(), struct{}{})
		}
		delete(l.pending, id)
		updated = true
	}

	return updated
}

// Commitments returns a snapshot of the committed DbcId -> Tx map.
func (l *Ledger) Commitments() map[DbcId]Tx {
	out := make(map[DbcId]Tx, len(l.commitments))
	for k, v := range l.commitments {
		out[k] = v
	}
	return out
}

// PendingCount returns the number of Txs still accumulating witnesses.
func (l *Ledger) PendingCount() int {
	return len(l.pending)
}
