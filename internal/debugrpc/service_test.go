package debugrpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness"
)

func newTestSim(t *testing.T) *harness.Sim {
	t.Helper()
	sim := harness.NewSim(3, 2, 1, 0, 0, 0, harness.SimDuration(0))
	require.NoError(t, sim.Start([]fakecrypto.Id{1, 2, 3}))
	_, quiesced := sim.RunToQuiescence(10_000)
	require.True(t, quiesced)
	return sim
}

func TestServiceStatusReportsGenesisMember(t *testing.T) {
	svc := NewService(newTestSim(t))

	resp, err := svc.Status(context.Background(), &StatusRequest{NodeID: 1})
	require.NoError(t, err)
	require.True(t, resp.Found)
	require.ElementsMatch(t, []uint64{1, 2, 3}, resp.Members)
	require.False(t, resp.IsLeaving)
	require.Empty(t, resp.PendingJoiners)
	require.Empty(t, resp.PendingLeavers)
}

func TestServiceStatusUnknownNodeNotFound(t *testing.T) {
	svc := NewService(newTestSim(t))

	resp, err := svc.Status(context.Background(), &StatusRequest{NodeID: 99})
	require.NoError(t, err)
	require.False(t, resp.Found)
}

func TestServiceListNodesReturnsEveryId(t *testing.T) {
	svc := NewService(newTestSim(t))

	resp, err := svc.ListNodes(context.Background(), &ListNodesRequest{})
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{1, 2, 3}, resp.NodeIDs)
}

func TestServicePropertiesHoldOnASettledSim(t *testing.T) {
	svc := NewService(newTestSim(t))

	resp, err := svc.Properties(context.Background(), &PropertiesRequest{})
	require.NoError(t, err)
	require.True(t, resp.Conservation)
	require.True(t, resp.NoDoubleSpend)
	require.True(t, resp.MembershipConverged)
}

func TestWireCodecRoundTripsStatusResponse(t *testing.T) {
	var codec wireCodec
	want := &StatusResponse{
		NodeID:         2,
		Found:          true,
		Members:        []uint64{1, 2, 3},
		PendingJoiners: []uint64{4},
		PendingTx:      1,
	}

	data, err := codec.Marshal(want)
	require.NoError(t, err)

	got := new(StatusResponse)
	require.NoError(t, codec.Unmarshal(data, got))
	require.Equal(t, want, got)
	require.Equal(t, codecName, codec.Name())
}
