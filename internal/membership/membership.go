// Package membership drives a single node's StableSet toward convergence
// with its peers by merging the anti-entropy payload piggybacked on every
// inbound Msg and dispatching that Msg's Action (spec §4.3).
package membership

import (
	"slices"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/protocol"
	"github.com/maidsafe/stableset/internal/stableset"
)

// Membership wraps a node's StableSet replica and the section's elder
// count. Elders are never cached: every derivation re-reads the current
// committed roster, because a promotion earlier in the same tick can
// change who they are.
type Membership struct {
	set        *stableset.StableSet
	elderCount int
}

// New returns a Membership over a fresh, empty StableSet. Genesis
// bootstrap is the caller's job (see node.OnStart), via StableSet().
func New(elderCount int) *Membership {
	return &Membership{set: stableset.New(), elderCount: elderCount}
}

// StableSet exposes the underlying replica, for genesis seeding and for
// node to drive ProcessReadyActions/Members/etc. directly.
func (m *Membership) StableSet() *stableset.StableSet {
	return m.set
}

// Elders returns the elderCount committed members with the smallest
// (OrdIdx, Id) — the section's most senior surviving members — as a set.
// If fewer than elderCount members are committed, all of them are elders.
func (m *Membership) Elders() map[fakecrypto.Id]struct{} {
	members := m.set.Members()
	n := m.elderCount
	if n > len(members) {
		n = len(members)
	}
	out := make(map[fakecrypto.Id]struct{}, n)
	for _, member := range members[:n] {
		out[member.Id] = struct{}{}
	}
	return out
}

// IsElder reports whether id is among the current elders.
func (m *Membership) IsElder(id fakecrypto.Id) bool {
	_, ok := m.Elders()[id]
	return ok
}

// Snapshot returns the committed roster, suitable for the Members field of
// the anti-entropy payload of an outbound Msg.
func (m *Membership) Snapshot() []stableset.Member {
	return m.set.Members()
}

// JoiningSnapshot returns the Member keys (not witness ids) of every
// pending joiner, suitable for the Joining field of an outbound Msg.
func (m *Membership) JoiningSnapshot() []stableset.Member {
	return pendingKeys(m.set.Joining())
}

// LeavingSnapshot returns the Member keys (not witness ids) of every
// pending leaver, suitable for the Leaving field of an outbound Msg.
func (m *Membership) LeavingSnapshot() []stableset.Member {
	return pendingKeys(m.set.Leaving())
}

func pendingKeys(pending map[stableset.Member][]fakecrypto.Id) []stableset.Member {
	out := make([]stableset.Member, 0, len(pending))
	for member := range pending {
		out = append(out, member)
	}
	return out
}

// ProcessReadyActions re-derives elders and promotes/evicts anything that
// has crossed strict majority. Returns whether anything changed.
func (m *Membership) ProcessReadyActions() bool {
	return m.set.ProcessReadyActions(m.Elders())
}

// MergeResult reports what a Merge call discovered, so the caller (node)
// can decide what to broadcast next.
type MergeResult struct {
	// NewlySeen holds every member from the incoming payload that this
	// node had never witnessed at all before this merge — brand-new
	// candidates this node just learned exist. node replies to the
	// sender of such members' own traffic with a direct Sync so
	// discovery doesn't depend on the next scheduled broadcast.
	NewlySeen []stableset.Member
	// Changed reports whether the merge opened a new pending join or
	// leave entry (the first witness share for that member). A share
	// added to an entry that was already pending does not set it.
	Changed bool
}

// Merge runs the merge-on-receipt procedure (spec §4.3) against the
// sender src's envelope: its committed members, and the Member keys (no
// witness ids) of its own pending joiners and leavers.
func (m *Membership) Merge(self, src fakecrypto.Id, incomingMembers, incomingJoining, incomingLeaving []stableset.Member) MergeResult {
	var newlySeen []stableset.Member
	changed := false

	// Step 1: every member the sender already considers committed is
	// witnessed, by src, as joining from this node's point of view too.
	for _, member := range incomingMembers {
		if m.set.Add(member, src) {
			newlySeen = append(newlySeen, member)
			changed = true
		}
	}

	// Step 2: same treatment for the sender's own pending joiners — this
	// node hasn't committed them yet, but the sender's mere awareness of
	// the candidate is itself one witness share.
	for _, member := range incomingJoining {
		if m.set.Add(member, src) {
			newlySeen = append(newlySeen, member)
			changed = true
		}
	}

	// Step 3: the sender's pending leavers are witnessed here too, by
	// both src and self — this is how a leave witness recorded on one
	// node's local replica reaches another node's local replica at all,
	// since there is no other channel pending leave evidence travels on.
	for _, member := range incomingLeaving {
		if m.set.Remove(member, src) {
			changed = true
		}
		if m.set.Remove(member, self) {
			changed = true
		}
	}

	// Step 4: anything this node already knows is leaving, that the
	// sender's committed view does not show as a member, gets src
	// recorded as an additional leave-witness — the sender's silence
	// about a member this node is trying to evict is itself witness
	// evidence that the sender has already dropped it, or agrees it
	// should be dropped.
	present := make(map[fakecrypto.Id]struct{}, len(incomingMembers))
	for _, member := range incomingMembers {
		present[member.Id] = struct{}{}
	}
	for member := range m.set.Leaving() {
		if _, ok := present[member.Id]; ok {
			continue
		}
		if m.set.Remove(member, src) {
			changed = true
		}
	}

	return MergeResult{NewlySeen: newlySeen, Changed: changed}
}

// DispatchResult reports the effect of handling a single Action, so node
// can decide whether and what to gossip next.
type DispatchResult struct {
	// Changed reports whether the action produced a fresh witness share.
	Changed bool
	// RelayJoin is set when this node, acting as an elder, just created
	// or endorsed a joining Member and should gossip that endorsement on
	// as an ActionJoinShare to the rest of the section.
	RelayJoin *stableset.Member
}

// Dispatch handles a single Action received from src, with self the
// local node's own id. For a locally originated ReqLeave, src is also
// self — the spec's "the sender first locally applies remove(member,
// id=self)" step before ever broadcasting.
func (m *Membership) Dispatch(self, src fakecrypto.Id, action protocol.Action) DispatchResult {
	switch action.Kind {
	case protocol.ActionSync:
		// Anti-entropy only; Merge already did the work.
		return DispatchResult{}

	case protocol.ActionReqJoin:
		candidate := action.ReqJoinID
		if !m.IsElder(self) || m.set.HasSeen(candidate) {
			return DispatchResult{}
		}
		member := stableset.Member{OrdIdx: m.set.MaxOrdIdx() + 1, Id: candidate}
		if !m.set.Add(member, self) {
			return DispatchResult{}
		}
		return DispatchResult{Changed: true, RelayJoin: &member}

	case protocol.ActionReqLeave:
		// "Receivers treat id as the witness" parallels ReqJoin's "treats
		// itself as the first witness": every receiver (not just the
		// sender) witnesses with its own id, not the sender's — the
		// candidate broadcasts directly to every member, so each elder's
		// own independent receipt is what accumulates toward quorum; no
		// relay step is needed or specified.
		member, ok := m.set.MemberByID(action.ReqLeaveID)
		if !ok {
			return DispatchResult{}
		}
		fresh := !slices.Contains(m.set.Leaving()[member], self)
		m.set.Remove(member, self)
		return DispatchResult{Changed: fresh}

	case protocol.ActionJoinShare:
		member := action.JoinShare
		if m.set.HasSeen(member.Id) {
			return DispatchResult{}
		}
		witnesses := m.set.Joining()[member]
		fresh := !slices.Contains(witnesses, src) || !slices.Contains(witnesses, self)
		m.set.Add(member, src)
		m.set.Add(member, self)
		return DispatchResult{Changed: fresh}

	default:
		// ActionReqReissue is ledger's concern, not membership's.
		// ActionStartReissue/ActionTriggerLeave are local-only triggers
		// that never reach Dispatch over the wire.
		return DispatchResult{}
	}
}
