package stableset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
)

func elders(ids ...fakecrypto.Id) map[fakecrypto.Id]struct{} {
	out := make(map[fakecrypto.Id]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func TestStableSetSeedGenesisIsImmediatelyCommitted(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	require.True(t, s.Contains(1))
	require.True(t, s.HasSeen(1))
}

func TestStableSetAddFirstWitnessReturnsTrueOnce(t *testing.T) {
	s := New()
	m := Member{OrdIdx: 1, Id: 2}
	require.True(t, s.Add(m, 1))
	require.False(t, s.Add(m, 3))
}

func TestStableSetAddRejectsAlreadySeenId(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	require.False(t, s.Add(Member{OrdIdx: 5, Id: 1}, 2))
}

func TestStableSetProcessReadyActionsPromotesUnderMajority(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	s.SeedGenesis(Member{OrdIdx: 1, Id: 2})
	s.SeedGenesis(Member{OrdIdx: 2, Id: 3})

	m := Member{OrdIdx: 3, Id: 4}
	s.Add(m, 1)
	require.False(t, s.ProcessReadyActions(elders(1, 2, 3)))
	require.False(t, s.Contains(4))

	s.Add(m, 2)
	require.True(t, s.ProcessReadyActions(elders(1, 2, 3)))
	require.True(t, s.Contains(4))
}

func TestStableSetProcessReadyActionsEvictsUnderMajority(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	s.SeedGenesis(Member{OrdIdx: 1, Id: 2})
	s.SeedGenesis(Member{OrdIdx: 2, Id: 3})

	target, _ := s.MemberByID(3)
	s.Remove(target, 1)
	s.Remove(target, 2)
	require.True(t, s.ProcessReadyActions(elders(1, 2, 3)))
	require.False(t, s.Contains(3))
	require.True(t, s.IsDead(3))
}

func TestStableSetPromoteTieBreaksOnLargerOrdIdx(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})

	older := Member{OrdIdx: 1, Id: 2}
	newer := Member{OrdIdx: 5, Id: 2}

	// Both candidates are pending before either is committed: Add refuses
	// an id that is already a member, so the second assignment has to be
	// recorded first. Only elder 1's witness backs older, only elder 2's
	// backs newer.
	s.Add(older, 1)
	s.Add(newer, 2)
	require.True(t, s.ProcessReadyActions(elders(1)))
	require.Equal(t, older, mustMember(t, s, 2))

	require.True(t, s.ProcessReadyActions(elders(2)))
	require.Equal(t, newer, mustMember(t, s, 2))
}

func mustMember(t *testing.T, s *StableSet, id fakecrypto.Id) Member {
	t.Helper()
	m, ok := s.MemberByID(id)
	require.True(t, ok)
	return m
}

func TestStableSetMembersAndIdsAreOrdered(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 2, Id: 3})
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	s.SeedGenesis(Member{OrdIdx: 1, Id: 2})

	require.Equal(t, []fakecrypto.Id{1, 2, 3}, s.Ids())
}

func TestStableSetCloneIsIndependent(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})
	s.Add(Member{OrdIdx: 1, Id: 2}, 1)

	clone := s.Clone()
	clone.SeedGenesis(Member{OrdIdx: 9, Id: 99})

	require.False(t, s.Contains(99))
	require.True(t, clone.Contains(99))
	require.Len(t, clone.Joining(), 1)
}

func TestStableSetJoiningAndLeavingSnapshots(t *testing.T) {
	s := New()
	s.SeedGenesis(Member{OrdIdx: 0, Id: 1})

	joiner := Member{OrdIdx: 1, Id: 2}
	s.Add(joiner, 1)
	joining := s.Joining()
	require.Contains(t, joining, joiner)
	require.Equal(t, []fakecrypto.Id{1}, joining[joiner])

	target, _ := s.MemberByID(1)
	s.Remove(target, 1)
	leaving := s.Leaving()
	require.Contains(t, leaving, target)
	require.Equal(t, []fakecrypto.Id{1}, leaving[target])
}
