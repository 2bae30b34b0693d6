package program

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/types"
)

func TestUnescape(t *testing.T) {
	require.Equal(t, "Hello World", unescape(`Hello\032World`))
	require.Equal(t, `a\b`, unescape(`a\092b`))
	require.Equal(t, "no escapes", unescape("no escapes"))
}

func TestArgumentValueInt(t *testing.T) {
	a := Argument{Type: ArgInt, Text: "42"}
	v, ierr := a.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.IntValue(42), v)

	_, ierr = Argument{Type: ArgInt, Text: "abc"}.Value()
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadOperandValue, ierr.Code)
}

func TestArgumentValueBool(t *testing.T) {
	v, ierr := Argument{Type: ArgBool, Text: "True"}.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.BoolValue(true), v)

	v, ierr = Argument{Type: ArgBool, Text: "false"}.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.BoolValue(false), v)

	v, ierr = Argument{Type: ArgBool, Text: "yes"}.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.BoolValue(false), v)
}

func TestArgumentValueString(t *testing.T) {
	v, ierr := Argument{Type: ArgString, Text: `Hello\032World`}.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.StringValue("Hello World"), v)
}

func TestArgumentValueNil(t *testing.T) {
	v, ierr := Argument{Type: ArgNil, Text: "nil"}.Value()
	require.Nil(t, ierr)
	require.Equal(t, types.NilValue{}, v)

	_, ierr = Argument{Type: ArgNil, Text: "bogus"}.Value()
	require.NotNil(t, ierr)
}

func TestArgumentFrameVar(t *testing.T) {
	frame, name, ierr := Argument{Type: ArgVar, Text: "GF@x"}.FrameVar()
	require.Nil(t, ierr)
	require.Equal(t, "GF", frame)
	require.Equal(t, "x", name)

	_, _, ierr = Argument{Type: ArgVar, Text: "XX@x"}.FrameVar()
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.UndefinedFrame, ierr.Code)

	_, _, ierr = Argument{Type: ArgVar, Text: "garbage"}.FrameVar()
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)
}
