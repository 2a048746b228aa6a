// Package stableset implements the CRDT-shaped, witness-quorum-gated
// member set described in spec §3–§4.2: an ordered roster that nodes
// converge on by gossiping join/leave witnesses and promoting a pending
// member once a strict majority of the current elders have witnessed it.
package stableset

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/maidsafe/stableset/internal/fakecrypto"
)

// DefaultDeadCacheSize bounds the accelerator cache used by HasSeen. The
// cache is purely a hot-path shortcut — falling through to the
// authoritative dead set on a miss — so its size only affects throughput,
// never correctness.
const DefaultDeadCacheSize = 1024

// StableSet is a node-local replica of the section roster: committed
// members, every id ever observed to have left, and the pending
// joining/leaving witness tallies that drive promotion.
type StableSet struct {
	members map[fakecrypto.Id]Member
	dead    map[fakecrypto.Id]struct{}
	joining map[Member]*fakecrypto.SigSet[Member]
	leaving map[Member]*fakecrypto.SigSet[Member]

	deadCache *lru.Cache[fakecrypto.Id, struct{}]
}

// New returns an empty StableSet, with no members, no dead ids, and no
// pending joiners or leavers. Genesis bootstrap (seeding already-committed
// members) is the caller's job — see node.OnStart — so the standard quorum
// machinery runs uniformly from the first message rather than needing a
// special-cased base case here.
func New() *StableSet {
	cache, _ := lru.New[fakecrypto.Id, struct{}](DefaultDeadCacheSize)
	return &StableSet{
		members:   make(map[fakecrypto.Id]Member),
		dead:      make(map[fakecrypto.Id]struct{}),
		joining:   make(map[Member]*fakecrypto.SigSet[Member]),
		leaving:   make(map[Member]*fakecrypto.SigSet[Member]),
		deadCache: cache,
	}
}

// Add records witness as having witnessed member joining. Returns true iff
// member.Id had never been seen before (i.e. this is the first witness for
// a brand-new join attempt); it returns false both when the id is already
// a member/dead and when the member is merely gaining an additional
// witness on an already-pending join.
func (s *StableSet) Add(member Member, witness fakecrypto.Id) bool {
	if s.HasSeen(member.Id) {
		return false
	}

	set, exists := s.joining[member]
	if !exists {
		set = fakecrypto.NewSigSet[Member]()
		s.joining[member] = set
	}
	set.AddShare(witness, fakecrypto.Sign(witness, member))
	return !exists
}

// Remove records witness as having witnessed member leaving.
func (s *StableSet) Remove(member Member, witness fakecrypto.Id) bool {
	set, exists := s.leaving[member]
	if !exists {
		set = fakecrypto.NewSigSet[Member]()
		s.leaving[member] = set
	}
	set.AddShare(witness, fakecrypto.Sign(witness, member))
	return !exists
}

// ProcessReadyActions promotes any joining member whose witnesses
// intersected with elders cross strict majority into members, and
// symmetrically evicts any leaving member whose witnesses cross the same
// threshold, moving its id into dead. It returns true iff any change
// occurred. Elders must be recomputed by the caller on every call (spec
// design note: the elder rule is a pure function of members, never
// cached), since a promotion in this very call can shift who the elders
// are for a subsequent one.
func (s *StableSet) ProcessReadyActions(elders map[fakecrypto.Id]struct{}) bool {
	updated := false

	for _, member := range s.readyMembers(s.joining, elders) {
		delete(s.joining, member)
		updated = true
		s.promote(member)
	}

	for _, member := range s.readyMembers(s.leaving, elders) {
		delete(s.leaving, member)
		updated = true
		s.evict(member)
	}

	return updated
}

func (s *StableSet) readyMembers(pending map[Member]*fakecrypto.SigSet[Member], elders map[fakecrypto.Id]struct{}) []Member {
	var ready []Member
	for member, witnesses := range pending {
		if witnesses.Verify(elders, member) {
			ready = append(ready, member)
		}
	}
	// Deterministic order so repeated runs over the same state promote in
	// the same sequence — relevant because promote()'s tie-break depends
	// on which of two same-id candidates is processed first only in that
	// it must always pick the larger ord_idx, which is order-independent,
	// but a stable order still keeps traces reproducible for the model
	// checker.
	sort.Slice(ready, func(i, j int) bool { return ready[i].Less(ready[j]) })
	return ready
}

// promote commits member, tie-breaking against any existing member with
// the same id by keeping the larger ord_idx (a later ReqJoin observed a
// higher tail and reassigned; it supersedes).
func (s *StableSet) promote(member Member) {
	if existing, ok := s.members[member.Id]; ok {
		if existing.OrdIdx >= member.OrdIdx {
			return
		}
	}
	s.members[member.Id] = member
}

func (s *StableSet) evict(member Member) {
	if existing, ok := s.members[member.Id]; ok && existing == member {
		delete(s.members, member.Id)
	}
	s.dead[member.Id] = struct{}{}
	s.deadCache.Add(member.Id, struct{}{})
}

// SeedGenesis directly commits member, as if it had already been promoted
// with every genesis id as a witness. This is how on_start bootstraps the
// section: rather than hand-crafting a base case in the quorum logic, the
// genesis members start out already-committed, so process_ready_actions
// and the rest of the quorum machinery behave uniformly from message one.
func (s *StableSet) SeedGenesis(member Member) {
	s.members[member.Id] = member
}

// Contains reports whether id is a current (committed) member.
func (s *StableSet) Contains(id fakecrypto.Id) bool {
	_, ok := s.members[id]
	return ok
}

// HasSeen reports whether id is dead or a current member — i.e. whether a
// fresh ReqJoin for id should be accepted at all.
func (s *StableSet) HasSeen(id fakecrypto.Id) bool {
	if _, ok := s.deadCache.Get(id); ok {
		return true
	}
	if _, ok := s.dead[id]; ok {
		return true
	}
	return s.Contains(id)
}

// IsDead reports whether id was ever observed to have left.
func (s *StableSet) IsDead(id fakecrypto.Id) bool {
	if _, ok := s.dead[id]; ok {
		return true
	}
	_, ok := s.deadCache.Get(id)
	return ok
}

// Members returns the committed roster ordered by (OrdIdx, Id).
func (s *StableSet) Members() []Member {
	out := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Ids returns the ids of the committed roster, in the same order as
// Members.
func (s *StableSet) Ids() []fakecrypto.Id {
	members := s.Members()
	out := make([]fakecrypto.Id, len(members))
	for i, m := range members {
		out[i] = m.Id
	}
	return out
}

// MemberByID returns the committed member for id, if any.
func (s *StableSet) MemberByID(id fakecrypto.Id) (Member, bool) {
	m, ok := s.members[id]
	return m, ok
}

// MaxOrdIdx returns the largest OrdIdx among committed members. Callers
// assigning a new member's OrdIdx use MaxOrdIdx()+1; the set is never
// empty when this is called in practice because genesis seeds at least one
// member, but on a genuinely empty set it returns 0 so the first assigned
// index is 1 — there is no member with index 0 other than genesis, which
// is seeded directly rather than going through this path.
func (s *StableSet) MaxOrdIdx() uint64 {
	var max uint64
	for _, m := range s.members {
		if m.OrdIdx > max {
			max = m.OrdIdx
		}
	}
	return max
}

// Joining exposes the pending joiners and their current witness ids, for
// merge and diagnostics.
func (s *StableSet) Joining() map[Member][]fakecrypto.Id {
	return witnessSnapshot(s.joining)
}

// Leaving exposes the pending leavers and their current witness ids, for
// merge and diagnostics.
func (s *StableSet) Leaving() map[Member][]fakecrypto.Id {
	return witnessSnapshot(s.leaving)
}

func witnessSnapshot(pending map[Member]*fakecrypto.SigSet[Member]) map[Member][]fakecrypto.Id {
	out := make(map[Member][]fakecrypto.Id, len(pending))
	for member, set := range pending {
		out[member] = set.Ids()
	}
	return out
}

// Clone returns a deep copy of s that shares no state with it. Outbound
// messages do not use it: their anti-entropy payload is built from the
// Member key lists that Membership's Snapshot methods return.
func (s *StableSet) Clone() *StableSet {
	clone := New()
	for id, m := range s.members {
		clone.members[id] = m
	}
	for id := range s.dead {
		clone.dead[id] = struct{}{}
		clone.deadCache.Add(id, struct{}{})
	}
	for member, set := range s.joining {
		clone.joining[member] = cloneSigSet(set)
	}
	for member, set := range s.leaving {
		clone.leaving[member] = cloneSigSet(set)
	}
	return clone
}

func cloneSigSet(set *fakecrypto.SigSet[Member]) *fakecrypto.SigSet[Member] {
	clone := fakecrypto.NewSigSet[Member]()
	for id, sig := range set.Shares() {
		clone.AddShare(id, sig)
	}
	return clone
}
