package program

// ArgType is the declared type of an instruction argument as written in the
// XML document. It is distinct from types.DataType: an argument of ArgType
// Var carries no value of its own until resolved through memory, and Label
// and Type are argument shapes that never appear as runtime Values.
type ArgType string

const (
	ArgInt    ArgType = "int"
	ArgBool   ArgType = "bool"
	ArgString ArgType = "string"
	ArgNil    ArgType = "nil"
	ArgLabel  ArgType = "label"
	ArgType_  ArgType = "type" // named with trailing underscore: ArgType is already the name of this type
	ArgVar    ArgType = "var"
)

var validArgTypes = map[ArgType]bool{
	ArgInt: true, ArgBool: true, ArgString: true, ArgNil: true,
	ArgLabel: true, ArgType_: true, ArgVar: true,
}

// ParseArgType resolves an XML "type" attribute value to an ArgType. Unlike
// opcodes, argument types are matched exactly: the spec mandates
// case-insensitivity only for opcodes. The second result is false if name is
// not one of the seven recognized argument shapes.
func ParseArgType(name string) (ArgType, bool) {
	at := ArgType(name)
	if validArgTypes[at] {
		return at, true
	}
	return "", false
}
