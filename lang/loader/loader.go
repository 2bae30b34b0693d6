// Package loader turns an IPPcode22 XML document into a validated
// program.Program: it is the only place in the repository that knows the
// document's element and attribute names.
package loader

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/program"
)

var argTagRE = regexp.MustCompile(`^arg([1-9][0-9]*)$`)

// Load decodes r as an IPPcode22 XML document and returns the resulting
// Program, or the first *ipperr.Error encountered.
func Load(r io.Reader) (*program.Program, *ipperr.Error) {
	var doc xmlProgram
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, ipperr.Newf(ipperr.MalformedXml, "malformed XML: %s", err)
	}

	if doc.XMLName.Local != "program" || doc.Language != "IPPcode22" {
		return nil, ipperr.New(ipperr.BadXmlStructure, `root element must be <program language="IPPcode22">`)
	}

	instructions := make([]program.Instruction, 0, len(doc.Instructions))
	for _, xi := range doc.Instructions {
		instr, ierr := convertInstruction(xi)
		if ierr != nil {
			return nil, ierr
		}
		instructions = append(instructions, instr)
	}

	return program.New(instructions)
}

func convertInstruction(xi xmlInstruction) (program.Instruction, *ipperr.Error) {
	order, err := strconv.Atoi(xi.Order)
	if err != nil || order < 0 {
		return program.Instruction{}, ipperr.Newf(ipperr.BadInstructionOrder, "invalid order attribute %q", xi.Order)
	}

	op, ok := program.ParseOpCode(xi.OpCode)
	if !ok {
		return program.Instruction{}, ipperr.Newf(ipperr.InvalidOpCode, "unknown opcode %q", xi.OpCode)
	}

	args, ierr := convertArgs(xi.Args)
	if ierr != nil {
		return program.Instruction{}, ierr
	}

	return program.Instruction{Op: op, Args: args, Order: order}, nil
}

func convertArgs(xargs []xmlArg) ([]program.Argument, *ipperr.Error) {
	positioned := make(map[int]program.Argument, len(xargs))
	maxN := 0
	for _, xa := range xargs {
		m := argTagRE.FindStringSubmatch(xa.XMLName.Local)
		if m == nil {
			return nil, ipperr.Newf(ipperr.BadXmlStructure, "unexpected element %q in instruction", xa.XMLName.Local)
		}
		n, _ := strconv.Atoi(m[1])
		if _, dup := positioned[n]; dup {
			return nil, ipperr.Newf(ipperr.BadXmlStructure, "duplicate argument position arg%d", n)
		}

		at, ok := program.ParseArgType(xa.Type)
		if !ok {
			return nil, ipperr.Newf(ipperr.BadXmlStructure, "invalid argument type %q", xa.Type)
		}
		if xa.Text == "" && at != program.ArgString {
			return nil, ipperr.Newf(ipperr.BadXmlStructure, "arg%d of type %s must not be empty", n, at)
		}

		positioned[n] = program.Argument{Type: at, Text: xa.Text}
		if n > maxN {
			maxN = n
		}
	}

	if len(positioned) != maxN {
		return nil, ipperr.New(ipperr.BadXmlStructure, "argument positions must be contiguous starting at arg1")
	}

	args := make([]program.Argument, maxN)
	for n := 1; n <= maxN; n++ {
		args[n-1] = positioned[n]
	}
	return args, nil
}
