package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelWarn, ParseLevel("WARN"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test", LevelWarn)

	l.Infof("should not appear")
	require.Empty(t, buf.String())

	l.Warnf("should appear: %d", 7)
	require.Contains(t, buf.String(), "should appear: 7")
	require.Contains(t, buf.String(), "[WARN]")
	require.Contains(t, buf.String(), "test")
}

func TestLoggerWithScopesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "harness", LevelInfo).With("node-3")

	l.Infof("hello")
	require.True(t, strings.Contains(buf.String(), "harness.node-3"))
}
