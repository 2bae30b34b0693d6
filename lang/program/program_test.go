package program

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xsmahel/ippcode22/lang/ipperr"
)

func TestNewSortsByOrder(t *testing.T) {
	instrs := []Instruction{
		{Op: WRITE, Order: 3, Args: []Argument{{Type: ArgString, Text: "c"}}},
		{Op: WRITE, Order: 1, Args: []Argument{{Type: ArgString, Text: "a"}}},
		{Op: WRITE, Order: 2, Args: []Argument{{Type: ArgString, Text: "b"}}},
	}
	p, ierr := New(instrs)
	require.Nil(t, ierr)
	require.Equal(t, "a", p.Instructions[0].Args[0].Text)
	require.Equal(t, "b", p.Instructions[1].Args[0].Text)
	require.Equal(t, "c", p.Instructions[2].Args[0].Text)
}

func TestNewDuplicateOrder(t *testing.T) {
	instrs := []Instruction{
		{Op: WRITE, Order: 1},
		{Op: WRITE, Order: 1},
	}
	_, ierr := New(instrs)
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadInstructionOrder, ierr.Code)
}

func TestLabelTableAndResolve(t *testing.T) {
	instrs := []Instruction{
		{Op: JUMP, Order: 0, Args: []Argument{{Type: ArgLabel, Text: "L"}}},
		{Op: LABEL, Order: 1, Args: []Argument{{Type: ArgLabel, Text: "L"}}},
		{Op: WRITE, Order: 2, Args: []Argument{{Type: ArgString, Text: "x"}}},
	}
	p, ierr := New(instrs)
	require.Nil(t, ierr)

	idx, ierr := p.Resolve("L")
	require.Nil(t, ierr)
	require.Equal(t, 1, idx)

	_, ierr = p.Resolve("missing")
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.UndefinedLabel, ierr.Code)
}

func TestDuplicateLabel(t *testing.T) {
	instrs := []Instruction{
		{Op: LABEL, Order: 0, Args: []Argument{{Type: ArgLabel, Text: "L"}}},
		{Op: LABEL, Order: 1, Args: []Argument{{Type: ArgLabel, Text: "L"}}},
	}
	_, ierr := New(instrs)
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.DuplicateLabel, ierr.Code)
}

func TestLabelMissingArg(t *testing.T) {
	instrs := []Instruction{
		{Op: LABEL, Order: 0},
	}
	_, ierr := New(instrs)
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.MissingInstructionArg, ierr.Code)
}
