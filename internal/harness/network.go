package harness

import (
	"math/rand"
	"sync"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/protocol"
)

// Sink is whatever receives delivered messages — node.Node satisfies
// this by its Deliver method. Defined here, not imported from node, so
// harness never needs to import the package whose Network interface it
// implements.
type Sink interface {
	Deliver(src fakecrypto.Id, msg protocol.Msg)
}

// SimNetwork is an in-process simulated network driving a Scheduler. It
// models the channel spec §6 assumes every scenario runs over: unordered,
// optionally duplicating, never corrupted — and, for any configuration
// meant to be run to convergence, never lossy (dropProb 0). Non-zero
// dropProb is provided for exploring beyond the two named configurations,
// not for the canned scenarios. There are no retries or timeouts at this
// layer, or any layer above it.
type SimNetwork struct {
	mu        sync.Mutex
	scheduler *Scheduler
	rng       *rand.Rand
	sinks     map[fakecrypto.Id]Sink

	dropProb      float64
	duplicateProb float64
	minDelay      SimDuration
	maxDelay      SimDuration
}

// NewSimNetwork returns a SimNetwork driven by scheduler, seeded
// deterministically by seed. dropProb and duplicateProb are independent
// per-message probabilities in [0, 1]; delay is drawn uniformly from
// [minDelay, maxDelay) (exactly minDelay when maxDelay <= minDelay) for
// every individual delivery attempt (including
// duplicates, which are delayed independently of their original).
func NewSimNetwork(scheduler *Scheduler, seed int64, dropProb, duplicateProb float64, minDelay, maxDelay SimDuration) *SimNetwork {
	return &SimNetwork{
		scheduler:     scheduler,
		rng:           rand.New(rand.NewSource(seed)),
		sinks:         make(map[fakecrypto.Id]Sink),
		dropProb:      dropProb,
		duplicateProb: duplicateProb,
		minDelay:      minDelay,
		maxDelay:      maxDelay,
	}
}

// Register associates id with sink so messages addressed to id are
// delivered there.
func (n *SimNetwork) Register(id fakecrypto.Id, sink Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks[id] = sink
}

// Send implements node.Network: it independently rolls drop and
// duplicate for this one message, scheduling zero, one, or two delayed
// deliveries accordingly.
func (n *SimNetwork) Send(from, to fakecrypto.Id, msg protocol.Msg) {
	if n.roll() < n.dropProb {
		return
	}
	n.scheduleDelivery(from, to, msg)
	if n.roll() < n.duplicateProb {
		n.scheduleDelivery(from, to, msg)
	}
}

// Broadcast implements node.Network by sending to every id in to other
// than from, each independently subject to drop/duplicate/delay.
func (n *SimNetwork) Broadcast(from fakecrypto.Id, to []fakecrypto.Id, msg protocol.Msg) {
	for _, dst := range to {
		if dst == from {
			continue
		}
		n.Send(from, dst, msg)
	}
}

func (n *SimNetwork) scheduleDelivery(from, to fakecrypto.Id, msg protocol.Msg) {
	delay := n.randomDelay()
	n.scheduler.In(delay, func() {
		n.mu.Lock()
		sink, ok := n.sinks[to]
		n.mu.Unlock()
		if ok {
			sink.Deliver(from, msg)
		}
	})
}

func (n *SimNetwork) randomDelay() SimDuration {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.maxDelay <= n.minDelay {
		return n.minDelay
	}
	span := n.maxDelay - n.minDelay
	return n.minDelay + SimDuration(n.rng.Int63n(int64(span)))
}

func (n *SimNetwork) roll() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rng.Float64()
}
