package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
)

// Every scenario below runs over a non-lossy network (dropProb 0, per
// spec §1's "assumed non-lossy for liveness") with reordering and
// duplication left on, and drains to quiescence within a generous step
// bound before asserting convergence.

func newTestSim(t *testing.T, serverCount, elderCount int, seed int64, duplicateProb float64) *Sim {
	t.Helper()
	return NewSim(serverCount, elderCount, seed, 0, duplicateProb, time.Millisecond, 50*time.Millisecond)
}

// S1: single join, one elder.
func TestScenarioS1SingleJoin(t *testing.T) {
	sim := newTestSim(t, 2, 1, 1, 0.2)
	require.NoError(t, sim.Start([]fakecrypto.Id{1}))
	_, quiesced := sim.RunToQuiescence(10_000)
	require.True(t, quiesced)

	require.True(t, sim.MembershipConverged())
	for _, n := range sim.Nodes() {
		require.True(t, n.Membership().StableSet().Contains(2))
		require.Len(t, n.Membership().StableSet().Members(), 2)
		require.False(t, n.Membership().StableSet().IsDead(1))
		require.False(t, n.Membership().StableSet().IsDead(2))
	}
}

// S2: concurrent joins against two elders.
func TestScenarioS2ConcurrentJoinsTwoElders(t *testing.T) {
	sim := newTestSim(t, 4, 2, 2, 0.2)
	require.NoError(t, sim.Start([]fakecrypto.Id{1, 2}))
	_, quiesced := sim.RunToQuiescence(20_000)
	require.True(t, quiesced)

	require.True(t, sim.MembershipConverged())
	ref := sim.Node(1).Membership().StableSet().Members()
	require.Len(t, ref, 4)

	seenOrdIdx := make(map[uint64]bool)
	for _, m := range ref {
		require.False(t, seenOrdIdx[m.OrdIdx], "ord_idx %d repeated", m.OrdIdx)
		seenOrdIdx[m.OrdIdx] = true
	}
}

// S3: join then leave.
func TestScenarioS3JoinThenLeave(t *testing.T) {
	sim := newTestSim(t, 4, 1, 3, 0.1)
	require.NoError(t, sim.Start([]fakecrypto.Id{1}))
	_, quiesced := sim.RunToQuiescence(20_000)
	require.True(t, quiesced)

	for _, n := range sim.Nodes() {
		require.True(t, n.Membership().StableSet().Contains(4))
	}

	require.True(t, sim.RequestLeave(4))
	_, quiesced = sim.RunToQuiescence(20_000)
	require.True(t, quiesced)

	for _, id := range []fakecrypto.Id{1, 2, 3} {
		n := sim.Node(id)
		require.False(t, n.Membership().StableSet().Contains(4), "node %d should no longer see 4", id)
		require.True(t, n.Membership().StableSet().IsDead(4), "node %d should mark 4 dead", id)
	}
}

// S4: reissue with no churn.
func TestScenarioS4ReissueNoChurn(t *testing.T) {
	sim := newTestSim(t, 2, 1, 4, 0.1)
	require.NoError(t, sim.Start([]fakecrypto.Id{1}))
	_, quiesced := sim.RunToQuiescence(10_000)
	require.True(t, quiesced)

	require.True(t, sim.Reissue(2, []ledger.Dbc{ledger.GenesisDbc}, []uint64{40, 60}))
	_, quiesced = sim.RunToQuiescence(10_000)
	require.True(t, quiesced)

	require.Len(t, sim.Node(1).Wallet().Ledger().Commitments(), 1)
	require.True(t, sim.Conservation())
	require.Equal(t, 0, sim.PendingCount(1))
}

// S5: double-spend attempt — two Txs consuming the same DBC with
// different outputs, only one of which may ever commit.
func TestScenarioS5DoubleSpendAttempt(t *testing.T) {
	sim := newTestSim(t, 3, 1, 5, 0.1)
	require.NoError(t, sim.Start([]fakecrypto.Id{1}))
	_, quiesced := sim.RunToQuiescence(10_000)
	require.True(t, quiesced)

	require.True(t, sim.Reissue(2, []ledger.Dbc{ledger.GenesisDbc}, []uint64{40, 60}))
	require.True(t, sim.Reissue(3, []ledger.Dbc{ledger.GenesisDbc}, []uint64{50, 50}))
	_, quiesced = sim.RunToQuiescence(10_000)
	require.True(t, quiesced)

	require.True(t, sim.NoDoubleSpend())
	require.True(t, sim.Conservation())
	require.LessOrEqual(t, len(sim.Node(1).Wallet().Ledger().Commitments()), 1)
}

// S6: delayed elder — a wide, asymmetric delay spread (plus duplication)
// stands in for one elder's messages consistently arriving last; the
// model makes no ordering assumption, so convergence must still hold.
func TestScenarioS6DelayedElder(t *testing.T) {
	sim := newTestSim(t, 3, 3, 6, 0.3)
	require.NoError(t, sim.Start([]fakecrypto.Id{1, 2, 3}))
	_, quiesced := sim.RunToQuiescence(20_000)
	require.True(t, quiesced)

	require.True(t, sim.MembershipConverged())
	require.True(t, sim.Conservation())
}
