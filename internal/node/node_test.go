package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
	"github.com/maidsafe/stableset/internal/protocol"
)

// queueNet is a synchronous, in-process, FIFO Network for unit tests: no
// loss, no duplication, no reordering. internal/harness provides the
// randomized async variant used for the full section scenarios.
type queueNet struct {
	nodes map[fakecrypto.Id]*Node
	queue []delivery
}

type delivery struct {
	from, to fakecrypto.Id
	msg      protocol.Msg
}

func newQueueNet() *queueNet {
	return &queueNet{nodes: make(map[fakecrypto.Id]*Node)}
}

func (q *queueNet) add(n *Node) { q.nodes[n.ID()] = n }

func (q *queueNet) Send(from, to fakecrypto.Id, msg protocol.Msg) {
	q.queue = append(q.queue, delivery{from: from, to: to, msg: msg})
}

func (q *queueNet) Broadcast(from fakecrypto.Id, to []fakecrypto.Id, msg protocol.Msg) {
	for _, dst := range to {
		if dst == from {
			continue
		}
		q.Send(from, dst, msg)
	}
}

func (q *queueNet) drain(t *testing.T, maxSteps int) {
	t.Helper()
	steps := 0
	for len(q.queue) > 0 {
		if steps >= maxSteps {
			t.Fatalf("drain did not quiesce within %d steps", maxSteps)
		}
		d := q.queue[0]
		q.queue = q.queue[1:]
		q.nodes[d.to].Deliver(d.from, d.msg)
		steps++
	}
}

func TestNodeJoinConverges(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1, 2, 3}

	var nodes []*Node
	for _, id := range append(append([]fakecrypto.Id{}, genesis...), 4) {
		n := New(id, 3, net)
		net.add(n)
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.OnStart(genesis)
	}
	net.drain(t, 10_000)

	for _, n := range nodes {
		require.True(t, n.Membership().StableSet().Contains(4), "node %d should see 4 as a member", n.ID())
		require.Len(t, n.Membership().StableSet().Members(), 4)
	}
}

func TestNodeLeaveConverges(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1, 2, 3}

	var nodes []*Node
	for _, id := range genesis {
		n := New(id, 3, net)
		net.add(n)
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.OnStart(genesis)
	}

	require.True(t, nodes[0].RequestLeave())
	net.drain(t, 10_000)

	// The leaver's own replica is not guaranteed to observe its own
	// eviction — once the remaining members have each independently
	// witnessed the departure, they have no reason to keep gossiping
	// with a peer they've already dropped. What matters is that every
	// node that has NOT itself left converges on excluding it.
	for _, n := range nodes[1:] {
		require.False(t, n.Membership().StableSet().Contains(1), "node %d should no longer see 1 as a member", n.ID())
		require.True(t, n.Membership().StableSet().IsDead(1))
	}
}

func TestNodeCheckAutoLeaveTriggersOnlyAtOrAboveThreshold(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1, 2, 3}

	var nodes []*Node
	for _, id := range genesis {
		n := New(id, 3, net)
		net.add(n)
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.OnStart(genesis)
	}

	// serverCount=3: threshold is 3 - 3/3 = 2, so only ids >= 2 qualify.
	require.False(t, nodes[0].CheckAutoLeave(3))
	require.False(t, nodes[0].IsLeaving())

	require.True(t, nodes[1].CheckAutoLeave(3))
	require.True(t, nodes[1].IsLeaving())

	require.True(t, nodes[2].CheckAutoLeave(3))
	require.True(t, nodes[2].IsLeaving())
}

func TestNodeCheckAutoLeaveIsIdempotent(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1, 2}

	var nodes []*Node
	for _, id := range genesis {
		n := New(id, 2, net)
		net.add(n)
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.OnStart(genesis)
	}

	require.True(t, nodes[1].CheckAutoLeave(2))
	require.False(t, nodes[1].CheckAutoLeave(2), "a node already leaving must not re-trigger")
}

func TestNodeCheckAutoLeaveIgnoresNonMember(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1}

	n := New(1, 1, net)
	net.add(n)
	n.OnStart(genesis)

	nonMember := New(2, 1, net)
	net.add(nonMember)
	// nonMember never started, so it has never been seeded or admitted —
	// RequestLeave (and so CheckAutoLeave) must refuse a node that isn't a
	// committed member of its own replica yet.
	require.False(t, nonMember.CheckAutoLeave(2))
}

func TestNodeReissueConvergesAndConservesValue(t *testing.T) {
	net := newQueueNet()
	genesis := []fakecrypto.Id{1, 2, 3}

	var nodes []*Node
	for _, id := range genesis {
		n := New(id, 3, net)
		net.add(n)
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.OnStart(genesis)
	}

	ok := nodes[0].Reissue([]ledger.Dbc{ledger.GenesisDbc}, []uint64{60, 40})
	require.True(t, ok)
	net.drain(t, 10_000)

	for _, n := range nodes {
		require.Equal(t, uint64(100), n.Wallet().Ledger().SumUnspentOutputs(), "node %d should conserve total value", n.ID())
		require.Equal(t, 0, n.Wallet().Ledger().PendingCount())
	}
}
