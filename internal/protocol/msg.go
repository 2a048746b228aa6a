// Package protocol defines the single wire message shape every node
// speaks (spec §6): a piggybacked StableSet anti-entropy payload plus one
// Action. Serialization is stable, deterministic, and value-based —
// Action's ordinal and field order are fixed here and are what the
// internal/wire codec actually encodes.
package protocol

import (
	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
	"github.com/maidsafe/stableset/internal/stableset"
)

// ActionKind tags which variant of Action is populated. Ordinal values are
// part of the wire contract — do not reorder.
type ActionKind uint8

const (
	// ActionSync is anti-entropy only; the StableSet payload on the
	// envelope carries everything.
	ActionSync ActionKind = iota
	// ActionReqJoin is a candidate's request to join. An elder that
	// admits the candidate relays it as an ActionJoinShare, not as a
	// ReqJoin.
	ActionReqJoin
	// ActionReqLeave is a node's request to leave, or a peer's eviction
	// of it.
	ActionReqLeave
	// ActionJoinShare is an elder's direct endorsement of a joining
	// Member.
	ActionJoinShare
	// ActionReqReissue asks the current elders to witness a Tx.
	ActionReqReissue
	// ActionStartReissue is a node's local trigger to initiate a
	// reissue; it never crosses the wire to another node.
	ActionStartReissue
	// ActionTriggerLeave is a node's local trigger to begin leaving; it
	// never crosses the wire to another node.
	ActionTriggerLeave
)

func (k ActionKind) String() string {
	switch k {
	case ActionSync:
		return "Sync"
	case ActionReqJoin:
		return "ReqJoin"
	case ActionReqLeave:
		return "ReqLeave"
	case ActionJoinShare:
		return "JoinShare"
	case ActionReqReissue:
		return "ReqReissue"
	case ActionStartReissue:
		return "StartReissue"
	case ActionTriggerLeave:
		return "TriggerLeave"
	default:
		return "Unknown"
	}
}

// Action is the tagged union of actions a Msg can carry. Exactly the
// fields relevant to Kind are populated; the rest are zero.
type Action struct {
	Kind ActionKind

	ReqJoinID  fakecrypto.Id    // ActionReqJoin
	ReqLeaveID fakecrypto.Id    // ActionReqLeave
	JoinShare  stableset.Member // ActionJoinShare
	Tx         ledger.Tx        // ActionReqReissue
}

// Sync is a no-op action; all its information travels on the envelope's
// StableSet.
func Sync() Action { return Action{Kind: ActionSync} }

// ReqJoin requests that candidate be let in.
func ReqJoin(candidate fakecrypto.Id) Action {
	return Action{Kind: ActionReqJoin, ReqJoinID: candidate}
}

// ReqLeave requests that id be let out.
func ReqLeave(id fakecrypto.Id) Action {
	return Action{Kind: ActionReqLeave, ReqLeaveID: id}
}

// JoinShare directly propagates an elder's endorsement of member.
func JoinShare(member stableset.Member) Action {
	return Action{Kind: ActionJoinShare, JoinShare: member}
}

// ReqReissue asks the elders to witness tx.
func ReqReissue(tx ledger.Tx) Action {
	return Action{Kind: ActionReqReissue, Tx: tx}
}

// StartReissue is a local-only trigger to kick off a reissue.
func StartReissue() Action { return Action{Kind: ActionStartReissue} }

// TriggerLeave is a local-only trigger to begin leaving.
func TriggerLeave() Action { return Action{Kind: ActionTriggerLeave} }

// Msg is the only message type that flows between nodes: the sender's
// current StableSet (anti-entropy piggyback) plus one Action.
//
// Members, Joining, and Leaving carry only the Member keys of the
// sender's committed/pending sets, never their witness ids: spec §4.3 has
// the in-flight joining/leaving maps' witness evidence cleared on every
// outgoing copy, to keep the wire shape small and to stop a node
// laundering its own unwitnessed shares as if they carried the sender's
// full backing. Merging in a Member from Members or Joining records exactly
// one new witness — the sender itself; a Member from Leaving is witnessed
// by the sender and by the receiving node. Neither depends on how many
// witnesses the sender's own local copy actually has.
type Msg struct {
	Members []stableset.Member
	Joining []stableset.Member
	Leaving []stableset.Member
	Action  Action
}
