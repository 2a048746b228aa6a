// Package debugrpc exposes a running harness.Sim for read-only remote
// inspection: per-node membership/ledger snapshots and the section-wide
// properties a model checker watches for, over a hand-rolled gRPC service
// (no protobuf — requests and responses travel as plain Go structs,
// encoded with internal/wire's codec). It is the debugging counterpart to
// the teacher's internal/grpc ledger-query service, rebuilt around this
// module's own state instead of an XRPL ledger.
package debugrpc

import (
	"context"

	"google.golang.org/grpc/encoding"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness"
	"github.com/maidsafe/stableset/internal/stableset"
)

func init() {
	encoding.RegisterCodec(wireCodec{})
}

// Service answers introspection queries against a single harness.Sim. The
// Sim itself is not goroutine-safe against concurrent node delivery and
// an RPC read racing it, so callers embedding this in a live simulation
// should serialize Sim mutation and RPC handling onto the same goroutine
// (the scenario runner does) or guard both with an external lock.
type Service struct {
	sim *harness.Sim
}

// NewService returns a Service that reports on sim's current state.
func NewService(sim *harness.Sim) *Service {
	return &Service{sim: sim}
}

// Status returns the named node's membership and ledger snapshot.
func (s *Service) Status(_ context.Context, req *StatusRequest) (*StatusResponse, error) {
	id := fakecrypto.Id(req.NodeID)
	n := s.sim.Node(id)
	if n == nil {
		return &StatusResponse{NodeID: req.NodeID, Found: false}, nil
	}

	joining := n.Membership().StableSet().Joining()
	leaving := n.Membership().StableSet().Leaving()

	return &StatusResponse{
		NodeID:         req.NodeID,
		Found:          true,
		IsLeaving:      n.IsLeaving(),
		Members:        idsToUint64(n.Membership().StableSet().Ids()),
		PendingJoiners: memberKeysToUint64(joining),
		PendingLeavers: memberKeysToUint64(leaving),
		PendingTx:      n.Wallet().Ledger().PendingCount(),
	}, nil
}

// ListNodes returns the ids of every node registered with the Sim.
func (s *Service) ListNodes(_ context.Context, _ *ListNodesRequest) (*ListNodesResponse, error) {
	var ids []uint64
	for _, n := range s.sim.Nodes() {
		ids = append(ids, uint64(n.ID()))
	}
	return &ListNodesResponse{NodeIDs: ids}, nil
}

// Properties evaluates the section-wide invariants the scenario runner
// checks after a run settles.
func (s *Service) Properties(_ context.Context, _ *PropertiesRequest) (*PropertiesResponse, error) {
	return &PropertiesResponse{
		Conservation:        s.sim.Conservation(),
		NoDoubleSpend:       s.sim.NoDoubleSpend(),
		MembershipConverged: s.sim.MembershipConverged(),
	}, nil
}

func idsToUint64(ids []fakecrypto.Id) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

// memberKeysToUint64 flattens a Member->witness-list map (StableSet's
// Joining/Leaving snapshot shape) down to just the pending members' ids,
// since a debug client cares who is pending, not who has witnessed them
// yet.
func memberKeysToUint64(pending map[stableset.Member][]fakecrypto.Id) []uint64 {
	out := make([]uint64, 0, len(pending))
	for m := range pending {
		out = append(out, uint64(m.Id))
	}
	return out
}
