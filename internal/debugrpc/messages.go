package debugrpc

// StatusRequest asks for a single node's view of the section.
type StatusRequest struct {
	NodeID uint64
}

// StatusResponse is one node's membership and ledger snapshot.
type StatusResponse struct {
	NodeID         uint64
	Found          bool
	IsLeaving      bool
	Members        []uint64
	PendingJoiners []uint64
	PendingLeavers []uint64
	PendingTx      int
}

// ListNodesRequest has no fields; it asks for every node's id.
type ListNodesRequest struct{}

// ListNodesResponse lists the ids of every node registered with the Sim.
type ListNodesResponse struct {
	NodeIDs []uint64
}

// PropertiesRequest has no fields; it asks for the section-wide
// invariant checks.
type PropertiesRequest struct{}

// PropertiesResponse reports the section-wide properties a model
// checker watches for, evaluated against the Sim's current state.
type PropertiesResponse struct {
	Conservation        bool
	NoDoubleSpend       bool
	MembershipConverged bool
}
