package harness

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
	"github.com/maidsafe/stableset/internal/node"
)

// Sim orchestrates a full section simulation: a Scheduler, a SimNetwork,
// and one node.Node per configured server. It exists to run the concrete
// scenarios in spec §8 and check the properties listed there.
type Sim struct {
	RunID uuid.UUID

	scheduler  *Scheduler
	network    *SimNetwork
	elderCount int
	nodes      map[fakecrypto.Id]*node.Node
	order      []fakecrypto.Id
}

// NewSim returns a Sim with serverCount nodes numbered 1..serverCount, all
// registered on a fresh SimNetwork seeded by seed. No node has started yet
// — call Start to seed genesis and kick off any non-genesis joins.
func NewSim(serverCount, elderCount int, seed int64, dropProb, duplicateProb float64, minDelay, maxDelay SimDuration) *Sim {
	scheduler := NewScheduler()
	network := NewSimNetwork(scheduler, seed, dropProb, duplicateProb, minDelay, maxDelay)

	s := &Sim{
		RunID:      uuid.New(),
		scheduler:  scheduler,
		network:    network,
		elderCount: elderCount,
		nodes:      make(map[fakecrypto.Id]*node.Node, serverCount),
	}
	for i := 1; i <= serverCount; i++ {
		id := fakecrypto.Id(i)
		n := node.New(id, elderCount, network)
		s.nodes[id] = n
		s.order = append(s.order, id)
		network.Register(id, n)
	}
	return s
}

// Node returns the node for id, or nil if id isn't part of this Sim.
func (s *Sim) Node(id fakecrypto.Id) *node.Node { return s.nodes[id] }

// Nodes returns every node, in ascending id order.
func (s *Sim) Nodes() []*node.Node {
	out := make([]*node.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Now returns the current simulated time.
func (s *Sim) Now() SimTime { return s.scheduler.Now() }

// Start seeds genesis on every node concurrently (spec's on_start runs
// once per node at genesis; nodes have no shared state besides the
// network, so starting them concurrently is safe) and lets non-genesis
// nodes broadcast their initial ReqJoin.
func (s *Sim) Start(genesis []fakecrypto.Id) error {
	var g errgroup.Group
	for _, n := range s.nodes {
		n := n
		g.Go(func() error {
			n.OnStart(genesis)
			return nil
		})
	}
	return g.Wait()
}

// RequestLeave asks id's node to leave the section.
func (s *Sim) RequestLeave(id fakecrypto.Id) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	return n.RequestLeave()
}

// Reissue asks id's node to spend inputs into outputs.
func (s *Sim) Reissue(id fakecrypto.Id, inputs []ledger.Dbc, outputs []uint64) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	return n.Reissue(inputs, outputs)
}

// RunToQuiescence drains the scheduler until no events remain, bounded by
// maxSteps so a message-amplification bug hangs a scenario loudly instead
// of forever. It returns the number of events processed and whether the
// network quiesced within the bound.
func (s *Sim) RunToQuiescence(maxSteps int) (steps int, quiesced bool) {
	steps = s.scheduler.StepAll(maxSteps)
	return steps, s.scheduler.Empty()
}

// MembershipConverged reports whether every non-leaving node's committed
// members set is identical (property 6, restricted the same way property
// 8 is: convergence is asserted only of nodes that have not themselves
// left, since a node's own replica is not guaranteed to observe its own
// eviction once the rest of the section has dropped it).
func (s *Sim) MembershipConverged() bool {
	var reference []fakecrypto.Id
	haveReference := false
	for _, id := range s.order {
		n := s.nodes[id]
		if n.IsLeaving() {
			continue
		}
		ids := n.Membership().StableSet().Ids()
		if !haveReference {
			reference = ids
			haveReference = true
			continue
		}
		if !sameIds(reference, ids) {
			return false
		}
	}
	return true
}

func sameIds(a, b []fakecrypto.Id) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Conservation checks property 1 on every node: the sum of unspent
// output amounts (genesis plus every committed Tx) equals the genesis
// supply.
func (s *Sim) Conservation() bool {
	for _, id := range s.order {
		if s.nodes[id].Wallet().Ledger().SumUnspentOutputs() != ledger.GenesisDbc.Amount() {
			return false
		}
	}
	return true
}

// NoDoubleSpend checks property 2 across the whole section: no DbcId is
// committed to two different Txs on any node. A single node's own
// commitments map can't violate this by construction (it's keyed by
// DbcId), so the only way this can fail is if two nodes independently
// committed conflicting Txs for the same input — exactly what quorum is
// supposed to prevent.
func (s *Sim) NoDoubleSpend() bool {
	global := make(map[ledger.DbcId]ledger.TxID)
	for _, id := range s.order {
		for inputID, tx := range s.nodes[id].Wallet().Ledger().Commitments() {
			if existing, ok := global[inputID]; ok && existing != tx.ID() {
				return false
			}
			global[inputID] = tx.ID()
		}
	}
	return true
}

// PendingCount returns id's node's pending-commitment count, for test
// assertions that a scenario actually settled and isn't just stalled.
func (s *Sim) PendingCount(id fakecrypto.Id) int {
	n, ok := s.nodes[id]
	if !ok {
		return 0
	}
	return n.Wallet().Ledger().PendingCount()
}

// PrintStatus writes a one-line-per-node summary of simulated state, for
// ad hoc debugging of a scenario run.
func (s *Sim) PrintStatus() {
	fmt.Printf("sim %s at t=%v:\n", s.RunID, s.Now())
	for _, id := range s.order {
		n := s.nodes[id]
		fmt.Printf("  node %d: members=%v leaving=%v pending_tx=%d\n",
			id,
			n.Membership().StableSet().Ids(),
			n.IsLeaving(),
			n.Wallet().Ledger().PendingCount(),
		)
	}
}
