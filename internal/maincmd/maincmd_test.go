package maincmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func TestValidateHelpAlone(t *testing.T) {
	c := &Cmd{Help: true}
	c.SetArgs(nil)
	c.SetFlags(map[string]bool{"help": true})
	require.NoError(t, c.Validate())
}

func TestValidateHelpNotAlone(t *testing.T) {
	c := &Cmd{Help: true, Source: "x.xml"}
	c.SetArgs(nil)
	c.SetFlags(map[string]bool{"help": true, "source": true})
	require.Error(t, c.Validate())
}

func TestValidateRequiresSourceOrInput(t *testing.T) {
	c := &Cmd{}
	c.SetArgs(nil)
	c.SetFlags(map[string]bool{})
	require.Error(t, c.Validate())
}

func TestValidateAcceptsSourceOnly(t *testing.T) {
	c := &Cmd{Source: "prog.xml"}
	c.SetArgs(nil)
	c.SetFlags(map[string]bool{"source": true})
	require.NoError(t, c.Validate())
}

func TestValidateRejectsPositionalArgs(t *testing.T) {
	c := &Cmd{Source: "prog.xml"}
	c.SetArgs([]string{"extra"})
	c.SetFlags(map[string]bool{"source": true})
	require.Error(t, c.Validate())
}

func TestInterpretEndToEnd(t *testing.T) {
	xmlSrc := `<program language="IPPcode22">
	<instruction order="1" opcode="WRITE"><arg1 type="string">hi</arg1></instruction>
</program>`

	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.interpret(context.Background(), mainer.Stdio{
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader(xmlSrc),
	})
	require.Equal(t, mainer.Success, code)
	require.Equal(t, "hi", stdout.String())
}

func TestInterpretMapsLoaderError(t *testing.T) {
	c := &Cmd{}
	var stdout, stderr bytes.Buffer
	code := c.interpret(context.Background(), mainer.Stdio{
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader("not xml"),
	})
	require.Equal(t, MalformedXMLExit, code)
}
