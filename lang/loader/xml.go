package loader

import "encoding/xml"

// The following types mirror the XML document shape just closely enough for
// encoding/xml to decode it; the rules the format imposes beyond
// well-formedness are checked in Load, not here. Child elements of the root
// other than <instruction> are skipped by the decoder, not rejected.

type xmlProgram struct {
	XMLName      xml.Name
	Language     string           `xml:"language,attr"`
	Instructions []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  string   `xml:"order,attr"`
	OpCode string   `xml:"opcode,attr"`
	Args   []xmlArg `xml:",any"`
}

type xmlArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}
