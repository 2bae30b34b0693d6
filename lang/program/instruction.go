package program

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/types"
)

var escapeRE = regexp.MustCompile(`\\(\d{3})`)

// unescape decodes the `\DDD` sequences IPPcode22 string literals use to
// embed whitespace and backslash characters: DDD is the decimal Unicode code
// point of the embedded rune.
func unescape(s string) string {
	return escapeRE.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}

// Argument is one positional operand of an Instruction, exactly as read from
// the XML: its declared ArgType and the raw text content. Var arguments
// resolve against memory at execution time and never materialize a Value
// here; int, bool, string and nil literals are decoded through Value each
// time it is called, and label and type arguments have no Value.
type Argument struct {
	Type ArgType
	Text string
}

// Value decodes the argument's literal into a types.Value. Only ArgInt,
// ArgBool, ArgString and ArgNil arguments have a literal value; for ArgVar,
// ArgLabel and ArgType it returns a BadOperandType error.
func (a Argument) Value() (types.Value, *ipperr.Error) {
	switch a.Type {
	case ArgInt:
		n, err := strconv.ParseInt(strings.TrimSpace(a.Text), 10, 64)
		if err != nil {
			return nil, ipperr.Newf(ipperr.BadOperandValue, "invalid int literal %q", a.Text)
		}
		return types.IntValue(n), nil
	case ArgBool:
		return types.BoolValue(strings.EqualFold(strings.TrimSpace(a.Text), "true")), nil
	case ArgString:
		return types.StringValue(unescape(a.Text)), nil
	case ArgNil:
		if a.Text != "nil" {
			return nil, ipperr.Newf(ipperr.BadOperandValue, "invalid nil literal %q", a.Text)
		}
		return types.NilValue{}, nil
	default:
		return nil, ipperr.Newf(ipperr.BadOperandType, "argument type %s has no literal value", a.Type)
	}
}

// FrameVar splits a var-typed argument's text into its frame prefix
// (GF/LF/TF) and bare variable name. It must only be called on an argument
// of ArgType Var.
func (a Argument) FrameVar() (frame, name string, ierr *ipperr.Error) {
	if len(a.Text) < 3 || a.Text[2] != '@' {
		return "", "", ipperr.Newf(ipperr.BadXmlStructure, "malformed variable reference %q", a.Text)
	}
	prefix := a.Text[:2]
	switch prefix {
	case "GF", "LF", "TF":
		return prefix, a.Text[3:], nil
	default:
		return "", "", ipperr.Newf(ipperr.UndefinedFrame, "unknown frame prefix %q", prefix)
	}
}

// Instruction is one op-code together with its positional arguments, ordered
// arg1, arg2, arg3 as declared in the XML.
type Instruction struct {
	Op   OpCode
	Args []Argument
	// Order is the original XML "order" attribute, kept for diagnostics after
	// the Program has been reindexed into execution order.
	Order int
}
