// Package node wires Membership and Wallet into a single per-section
// participant: on_start bootstrap, inbound message dispatch, and the two
// caller-facing actions (request to leave, request a reissue) that spec
// §5 leaves to an external driver. The driver itself — what decides when
// a node joins, leaves, or spends, and the property checker that watches
// the result — is out of scope here and reaches the node only through
// the thin Network interface and the exported methods below.
package node

import (
	"sort"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
	"github.com/maidsafe/stableset/internal/membership"
	"github.com/maidsafe/stableset/internal/protocol"
	"github.com/maidsafe/stableset/internal/stableset"
)

// Network is the thin transport contract a Node depends on (spec §6).
// Node defines this interface itself — the classic accept-an-interface
// shape — so it never needs to import whatever concretely implements
// delivery (an in-process simulation, a future real transport, a test
// double).
type Network interface {
	// Send delivers msg to to, as if sent by from. Implementations may
	// drop, duplicate, or reorder it; they must never corrupt it.
	Send(from, to fakecrypto.Id, msg protocol.Msg)
	// Broadcast delivers msg to every id in to, as if sent by from.
	Broadcast(from fakecrypto.Id, to []fakecrypto.Id, msg protocol.Msg)
}

// Node is one section participant's local state: its Membership replica,
// its Wallet, and whether it has asked to leave.
type Node struct {
	id         fakecrypto.Id
	membership *membership.Membership
	wallet     *ledger.Wallet
	network    Network
	leaving    bool
}

// New returns a Node with an empty Membership/Wallet, ready for OnStart.
func New(id fakecrypto.Id, elderCount int, network Network) *Node {
	return &Node{
		id:         id,
		membership: membership.New(elderCount),
		wallet:     ledger.NewWallet(ledger.New()),
		network:    network,
	}
}

// ID returns the node's own id.
func (n *Node) ID() fakecrypto.Id { return n.id }

// Membership exposes the node's Membership replica, for read-only
// inspection (property checking, diagnostics, the debug service).
func (n *Node) Membership() *membership.Membership { return n.membership }

// Wallet exposes the node's Wallet, for the same reasons.
func (n *Node) Wallet() *ledger.Wallet { return n.wallet }

// IsLeaving reports whether this node has asked to leave the section.
func (n *Node) IsLeaving() bool { return n.leaving }

// OnStart seeds the genesis roster and, if this node is not itself a
// genesis member, broadcasts a ReqJoin to that roster's elders. Every node — genesis or
// not — is given the same genesis list out of band (spec's design note:
// seed genesis members as already-committed rather than hand-crafting a
// base case in the quorum logic), with OrdIdx assigned by list position.
func (n *Node) OnStart(genesis []fakecrypto.Id) {
	set := n.membership.StableSet()
	isGenesis := false
	for i, id := range genesis {
		set.SeedGenesis(stableset.Member{OrdIdx: uint64(i), Id: id})
		if id == n.id {
			isGenesis = true
		}
	}
	if !isGenesis {
		n.broadcastToElders(protocol.ReqJoin(n.id))
	}
}

// CheckAutoLeave implements the model scenario's auto-leave trigger (spec
// §4.5): once this node is a committed member whose id is at least
// serverCount - serverCount/3 (ids 2 and 3 of 3, id 2 of 2), and it hasn't
// already initiated a leave, it requests one. serverCount is the section's
// total configured node count. It reports whether a leave was triggered just now.
func (n *Node) CheckAutoLeave(serverCount int) bool {
	if n.leaving || serverCount <= 0 {
		return false
	}
	threshold := fakecrypto.Id(serverCount - serverCount/3)
	if n.id < threshold {
		return false
	}
	return n.RequestLeave()
}

// RequestLeave asks the section to evict this node: it witnesses its own
// departure immediately, then broadcasts the request so every other
// member does the same (spec §4.3: "sender locally applies remove(member,
// self) then broadcasts"). A node that isn't a committed member yet has
// nothing to leave.
func (n *Node) RequestLeave() bool {
	if !n.membership.StableSet().Contains(n.id) {
		return false
	}
	n.leaving = true
	action := protocol.ReqLeave(n.id)
	n.membership.Dispatch(n.id, n.id, action)
	n.membership.ProcessReadyActions()
	n.broadcastToMembers(action)
	return true
}

// Reissue spends inputs into outputs: it validates the resulting Tx
// locally and, if sound, asks the current elders to witness it. It
// reports whether the spend was accepted at all.
func (n *Node) Reissue(inputs []ledger.Dbc, outputs []uint64) bool {
	tx, ok := n.wallet.Reissue(inputs, outputs)
	if !ok {
		return false
	}
	n.broadcastToElders(protocol.ReqReissue(tx))
	return true
}

// Deliver handles one inbound Msg from src: merge its anti-entropy
// payload, dispatch its Action, re-derive what's now ready, and decide
// what — if anything — to gossip onward. This is the single entry point
// the Network calls for every message this node receives.
func (n *Node) Deliver(src fakecrypto.Id, msg protocol.Msg) {
	merged := n.membership.Merge(n.id, src, msg.Members, msg.Joining, msg.Leaving)
	dispatched := n.membership.Dispatch(n.id, src, msg.Action)

	// Only an elder logs and amplifies a reissue witness (spec §4.4: "the
	// receiving elder calls log_tx_share..."); a non-elder has no
	// authority to vouch for a spend and, in this core, never accumulates
	// ledger state at all.
	var reissueFirstTime bool
	if msg.Action.Kind == protocol.ActionReqReissue && n.membership.IsElder(n.id) {
		reissueFirstTime = n.wallet.OnReqReissue(n.id, src, msg.Action.Tx)
	}

	membershipProgressed := n.membership.ProcessReadyActions()
	n.wallet.Ledger().ProcessCompletedCommitments(n.membership.Elders())

	// A fresh elder endorsement gets relayed on to the rest of the
	// section so quorum can accumulate without every elder needing to
	// hear the original ReqJoin directly.
	if dispatched.RelayJoin != nil {
		n.broadcastToMembers(protocol.JoinShare(*dispatched.RelayJoin))
	}

	// A Tx this node just validated for the first time gets relayed to
	// the rest of the elders — gossip amplification (spec §4.4).
	if reissueFirstTime {
		n.broadcastToElders(protocol.ReqReissue(msg.Action.Tx))
	}

	// Brand-new peers this merge just discovered get a direct Sync back,
	// so discovery doesn't wait on this node's next scheduled broadcast.
	for _, member := range merged.NewlySeen {
		if member.Id == src {
			continue
		}
		n.network.Send(n.id, member.Id, n.envelope(protocol.Sync()))
	}

	// Committed membership only re-broadcasts to the whole section when
	// it actually changed and this node is itself an elder (spec §4.5);
	// mere witness-tally churn that hasn't reached quorum yet stays
	// local until the next message naturally carries it along.
	if membershipProgressed && n.membership.IsElder(n.id) {
		n.broadcastToMembers(protocol.Sync())
	}
}

func (n *Node) broadcastToMembers(action protocol.Action) {
	n.network.Broadcast(n.id, n.membership.StableSet().Ids(), n.envelope(action))
}

func (n *Node) broadcastToElders(action protocol.Action) {
	elders := n.membership.Elders()
	dsts := make([]fakecrypto.Id, 0, len(elders))
	for id := range elders {
		dsts = append(dsts, id)
	}
	sort.Slice(dsts, func(i, j int) bool { return dsts[i] < dsts[j] })

	n.network.Broadcast(n.id, dsts, n.envelope(action))
}

// envelope wraps action with this node's current anti-entropy payload:
// committed members plus the Member keys of its own pending joiners and
// leavers (spec §4.3).
func (n *Node) envelope(action protocol.Action) protocol.Msg {
	return protocol.Msg{
		Members: n.membership.Snapshot(),
		Joining: n.membership.JoiningSnapshot(),
		Leaving: n.membership.LeavingSnapshot(),
		Action:  action,
	}
}
