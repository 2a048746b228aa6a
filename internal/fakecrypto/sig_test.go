package fakecrypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	sig := Sign(1, "payload")
	require.True(t, sig.Verify(1, "payload"))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	sig := Sign(1, "payload")
	require.False(t, sig.Verify(2, "payload"))
}

func TestVerifyRejectsWrongPayload(t *testing.T) {
	sig := Sign(1, "payload")
	require.False(t, sig.Verify(1, "other"))
}

func TestMajority(t *testing.T) {
	require.False(t, Majority(0, 1))
	require.True(t, Majority(1, 1))
	require.False(t, Majority(1, 2))
	require.True(t, Majority(2, 2))
	require.False(t, Majority(2, 3))
	require.True(t, Majority(3, 3))
	require.False(t, Majority(2, 5))
	require.True(t, Majority(3, 5))
}
