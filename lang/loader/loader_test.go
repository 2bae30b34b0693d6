package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/program"
)

func TestLoadHelloWorld(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode22">
	<instruction order="1" opcode="WRITE">
		<arg1 type="string">Hello\032World</arg1>
	</instruction>
</program>`
	p, ierr := Load(strings.NewReader(xml))
	require.Nil(t, ierr)
	require.Len(t, p.Instructions, 1)
	require.Equal(t, program.WRITE, p.Instructions[0].Op)
	require.Equal(t, `Hello\032World`, p.Instructions[0].Args[0].Text)
}

func TestLoadMalformedXml(t *testing.T) {
	_, ierr := Load(strings.NewReader(`<program language="IPPcode22">`))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.MalformedXml, ierr.Code)
}

func TestLoadBadRoot(t *testing.T) {
	_, ierr := Load(strings.NewReader(`<foo language="IPPcode22"></foo>`))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)

	_, ierr = Load(strings.NewReader(`<program language="other"></program>`))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)
}

func TestLoadInvalidOpcode(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="1" opcode="NOPE"></instruction>
</program>`
	_, ierr := Load(strings.NewReader(xml))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.InvalidOpCode, ierr.Code)
}

func TestLoadBadOrder(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="-1" opcode="BREAK"></instruction>
</program>`
	_, ierr := Load(strings.NewReader(xml))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadInstructionOrder, ierr.Code)
}

func TestLoadSparseArgsRejected(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="1" opcode="MOVE">
		<arg1 type="var">GF@x</arg1>
		<arg3 type="int">1</arg3>
	</instruction>
</program>`
	_, ierr := Load(strings.NewReader(xml))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)
}

func TestLoadDuplicateArgPosition(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="1" opcode="DEFVAR">
		<arg1 type="var">GF@x</arg1>
		<arg1 type="var">GF@y</arg1>
	</instruction>
</program>`
	_, ierr := Load(strings.NewReader(xml))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)
}

func TestLoadEmptyNonStringArg(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="1" opcode="PUSHS">
		<arg1 type="int"></arg1>
	</instruction>
</program>`
	_, ierr := Load(strings.NewReader(xml))
	require.NotNil(t, ierr)
	require.Equal(t, ipperr.BadXmlStructure, ierr.Code)
}

func TestLoadReindexesAndBuildsLabels(t *testing.T) {
	xml := `<program language="IPPcode22">
	<instruction order="20" opcode="JUMP"><arg1 type="label">L</arg1></instruction>
	<instruction order="10" opcode="LABEL"><arg1 type="label">L</arg1></instruction>
</program>`
	p, ierr := Load(strings.NewReader(xml))
	require.Nil(t, ierr)
	require.Equal(t, program.LABEL, p.Instructions[0].Op)
	require.Equal(t, program.JUMP, p.Instructions[1].Op)
	idx, ierr := p.Resolve("L")
	require.Nil(t, ierr)
	require.Equal(t, 0, idx)
}
