package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maidsafe/stableset/internal/fakecrypto"
	"github.com/maidsafe/stableset/internal/ledger"
	"github.com/maidsafe/stableset/internal/stableset"
)

func TestActionConstructorsPopulateKindAndPayload(t *testing.T) {
	require.Equal(t, Action{Kind: ActionSync}, Sync())

	join := ReqJoin(7)
	require.Equal(t, ActionReqJoin, join.Kind)
	require.Equal(t, fakecrypto.Id(7), join.ReqJoinID)

	leave := ReqLeave(7)
	require.Equal(t, ActionReqLeave, leave.Kind)
	require.Equal(t, fakecrypto.Id(7), leave.ReqLeaveID)

	member := stableset.Member{OrdIdx: 3, Id: 9}
	share := JoinShare(member)
	require.Equal(t, ActionJoinShare, share.Kind)
	require.Equal(t, member, share.JoinShare)

	tx := ledger.Tx{Outputs: []uint64{1}}
	reissue := ReqReissue(tx)
	require.Equal(t, ActionReqReissue, reissue.Kind)
	require.Equal(t, tx, reissue.Tx)

	require.Equal(t, Action{Kind: ActionStartReissue}, StartReissue())
	require.Equal(t, Action{Kind: ActionTriggerLeave}, TriggerLeave())
}

func TestActionKindStringCoversEveryOrdinal(t *testing.T) {
	cases := map[ActionKind]string{
		ActionSync:         "Sync",
		ActionReqJoin:      "ReqJoin",
		ActionReqLeave:     "ReqLeave",
		ActionJoinShare:    "JoinShare",
		ActionReqReissue:   "ReqReissue",
		ActionStartReissue: "StartReissue",
		ActionTriggerLeave: "TriggerLeave",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
	require.Equal(t, "Unknown", ActionKind(255).String())
}
