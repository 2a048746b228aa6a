package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	want := point{X: 3, Y: -7}

	data, err := Encode(want)
	require.NoError(t, err)

	var got point
	require.NoError(t, Decode(data, &got))
	require.Equal(t, want, got)
}

func TestHashIsDeterministic(t *testing.T) {
	v := point{X: 1, Y: 2}

	h1, err := Hash(v)
	require.NoError(t, err)
	h2, err := Hash(v)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestHashDistinguishesValues(t *testing.T) {
	h1 := MustHash(point{X: 1, Y: 2})
	h2 := MustHash(point{X: 2, Y: 1})
	require.NotEqual(t, h1, h2)
}

func TestHashDistinguishesFieldOrderSensitiveValues(t *testing.T) {
	type a struct{ X, Y int }
	type b struct {
		Y, X int
	}
	// StructToArray means field position, not name, drives encoding — a
	// and b with swapped field order must hash differently even though
	// both assign X=1, Y=2.
	h1 := MustHash(a{X: 1, Y: 2})
	h2 := MustHash(b{Y: 2, X: 1})
	require.NotEqual(t, h1, h2)
}

func TestMustHashPanicsOnUnhashableValue(t *testing.T) {
	require.Panics(t, func() {
		MustHash(make(chan int))
	})
}
