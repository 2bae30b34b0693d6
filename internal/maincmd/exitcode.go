package maincmd

import (
	"github.com/mna/mainer"

	"github.com/xsmahel/ippcode22/lang/ipperr"
)

// Exit codes beyond mainer's own Success/Failure/InvalidArgs. mainer.ExitCode
// is a plain int-backed type, so the interpreter's fixed code table is just
// more named constants of it rather than a parallel type.
const (
	BadCLIArgs       mainer.ExitCode = 10
	InputFileError   mainer.ExitCode = 11
	OutputFileError  mainer.ExitCode = 12
	MalformedXMLExit mainer.ExitCode = 31
	BadXMLExit       mainer.ExitCode = 32
	SemanticExit     mainer.ExitCode = 52
	BadOperandExit   mainer.ExitCode = 53
	NoSuchVarExit    mainer.ExitCode = 54
	NoSuchFrameExit  mainer.ExitCode = 55
	MissingValueExit mainer.ExitCode = 56
	BadValueExit     mainer.ExitCode = 57
	BadStringExit    mainer.ExitCode = 58
	InternalExit     mainer.ExitCode = 99
)

// exitCodeFor maps a closed ipperr.Code to the process exit code it produces.
// This is the only place in the repository that knows about that mapping.
func exitCodeFor(code ipperr.Code) mainer.ExitCode {
	switch code {
	case ipperr.MalformedXml:
		return MalformedXMLExit
	case ipperr.BadXmlStructure, ipperr.BadInstructionOrder, ipperr.InvalidOpCode:
		return BadXMLExit
	case ipperr.UndefinedLabel, ipperr.DuplicateLabel, ipperr.Redefinition:
		return SemanticExit
	case ipperr.BadOperandType, ipperr.MissingInstructionArg, ipperr.TooFewInstructionArgs:
		return BadOperandExit
	case ipperr.NonExistingVariable:
		return NoSuchVarExit
	case ipperr.UndefinedFrame, ipperr.EmptyLocalMemory:
		return NoSuchFrameExit
	case ipperr.GetValueFromUninitialized, ipperr.MissingValue:
		return MissingValueExit
	case ipperr.BadOperandValue, ipperr.ZeroDivision, ipperr.ExitValueOutOfRange:
		return BadValueExit
	case ipperr.BadStringUsage, ipperr.InvalidAsciiPosition, ipperr.IndexingOutsideString:
		return BadStringExit
	default:
		return InternalExit
	}
}
