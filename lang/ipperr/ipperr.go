// Package ipperr defines the closed set of error classes the loader and the
// machine can raise, and the single Error type that carries one.
//
// The driver (internal/maincmd) is the only place that turns a Code into a
// process exit code; nothing in lang/loader or lang/machine knows about exit
// codes at all.
package ipperr

import "fmt"

// Code identifies one class of interpretation failure.
type Code int

const (
	// Loader errors.
	MalformedXml Code = iota
	BadXmlStructure
	InvalidOpCode
	BadInstructionOrder
	DuplicateLabel

	// Semantic / runtime errors.
	UndefinedLabel
	Redefinition
	MissingInstructionArg
	TooFewInstructionArgs
	BadOperandType
	BadOperandValue
	BadStringUsage
	NonExistingVariable
	UndefinedFrame
	EmptyLocalMemory
	GetValueFromUninitialized
	MissingValue
	ZeroDivision
	ExitValueOutOfRange
	InvalidAsciiPosition
	IndexingOutsideString
)

var names = map[Code]string{
	MalformedXml:               "MalformedXml",
	BadXmlStructure:            "BadXmlStructure",
	InvalidOpCode:              "InvalidOpCode",
	BadInstructionOrder:        "BadInstructionOrder",
	DuplicateLabel:             "DuplicateLabel",
	UndefinedLabel:             "UndefinedLabel",
	Redefinition:               "Redefinition",
	MissingInstructionArg:      "MissingInstructionArg",
	TooFewInstructionArgs:      "TooFewInstructionArgs",
	BadOperandType:             "BadOperandType",
	BadOperandValue:            "BadOperandValue",
	BadStringUsage:             "BadStringUsage",
	NonExistingVariable:        "NonExistingVariable",
	UndefinedFrame:             "UndefinedFrame",
	EmptyLocalMemory:           "EmptyLocalMemory",
	GetValueFromUninitialized:  "GetValueFromUninitialized",
	MissingValue:               "MissingValue",
	ZeroDivision:               "ZeroDivision",
	ExitValueOutOfRange:        "ExitValueOutOfRange",
	InvalidAsciiPosition:       "InvalidAsciiPosition",
	IndexingOutsideString:      "IndexingOutsideString",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is the concrete error type raised by the loader and the machine. It
// always carries one of the Code values above.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// New returns an *Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf returns an *Error with the given code and a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}
