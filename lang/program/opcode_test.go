package program

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpCodeRoundTrip(t *testing.T) {
	for op, name := range opcodeNames {
		got, ok := ParseOpCode(name)
		require.True(t, ok)
		require.Equal(t, op, got)
	}
}

func TestParseOpCodeCaseInsensitive(t *testing.T) {
	op, ok := ParseOpCode("move")
	require.True(t, ok)
	require.Equal(t, MOVE, op)

	op, ok = ParseOpCode("MoVe")
	require.True(t, ok)
	require.Equal(t, MOVE, op)
}

func TestParseOpCodeUnknown(t *testing.T) {
	_, ok := ParseOpCode("NOPE")
	require.False(t, ok)
}

func TestOpCodeStringInvalid(t *testing.T) {
	require.Equal(t, "INVALID", OpCode(0).String())
}
