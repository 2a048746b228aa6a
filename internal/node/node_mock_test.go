package node

import (
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/harness/mocks"
	"github.com/maidsafe/stableset/internal/protocol"
	"github.com/maidsafe/stableset/internal/stableset"
)

// TestNodeOnStartBroadcastsReqJoinToEldersOnly uses a mock Network to
// assert precisely what a non-genesis node sends on OnStart, without
// needing a second node to receive it: a ReqJoin broadcast addressed to
// exactly the genesis elders (spec §4.3), nothing else.
func TestNodeOnStartBroadcastsReqJoinToEldersOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	net := mocks.NewMockNetwork(ctrl)

	n := New(4, 2, net)

	net.EXPECT().
		Broadcast(fakecrypto.Id(4), gomock.Any(), gomock.Any()).
		Do(func(from fakecrypto.Id, to []fakecrypto.Id, msg protocol.Msg) {
			require.ElementsMatch(t, []fakecrypto.Id{1, 2}, to, "only the two elders, not every genesis member")
			require.Equal(t, protocol.ActionReqJoin, msg.Action.Kind)
			require.Equal(t, fakecrypto.Id(4), msg.Action.ReqJoinID)
		})

	n.OnStart([]fakecrypto.Id{1, 2, 3})
}

// TestNodeRequestLeaveBroadcastsReqLeaveToEveryMember confirms the leave
// broadcast goes to the whole committed membership, not just elders.
func TestNodeRequestLeaveBroadcastsReqLeaveToEveryMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	net := mocks.NewMockNetwork(ctrl)

	n := New(3, 1, net)
	n.Membership().StableSet().SeedGenesis(stableset.Member{OrdIdx: 0, Id: 1})
	n.Membership().StableSet().SeedGenesis(stableset.Member{OrdIdx: 1, Id: 2})
	n.Membership().StableSet().SeedGenesis(stableset.Member{OrdIdx: 2, Id: 3})

	net.EXPECT().
		Broadcast(fakecrypto.Id(3), gomock.Any(), gomock.Any()).
		Do(func(from fakecrypto.Id, to []fakecrypto.Id, msg protocol.Msg) {
			require.ElementsMatch(t, []fakecrypto.Id{1, 2, 3}, to, "RequestLeave broadcasts to the whole committed membership, including self")
			require.Equal(t, protocol.ActionReqLeave, msg.Action.Kind)
			require.Equal(t, fakecrypto.Id(3), msg.Action.ReqLeaveID)
		})

	require.True(t, n.RequestLeave())
}
