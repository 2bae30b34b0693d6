package types

import "strings"

// Ordered types support LT/GT. nil is deliberately excluded: comparing nil
// with < or > is a BadOperandType error at the call site, not here.
func orderable(t DataType) bool {
	return t == Int || t == Bool || t == String
}

// Comparable reports whether x and y may be compared for ordering with Less;
// both operands must share a type drawn from {int, bool, string}.
func Comparable(x, y Value) bool {
	return orderable(x.Type()) && x.Type() == y.Type()
}

// Less implements the LT/GT ordering: for bool, false < true; for string,
// lexicographic comparison by code point; for int, numeric comparison.
// The caller must have already checked Comparable(x, y).
func Less(x, y Value) bool {
	switch x := x.(type) {
	case IntValue:
		return x < y.(IntValue)
	case BoolValue:
		return !bool(x) && bool(y.(BoolValue))
	case StringValue:
		return strings.Compare(string(x), string(y.(StringValue))) < 0
	default:
		panic("types: Less called on non-orderable value")
	}
}

// Equal implements EQ/JUMPIFEQ/JUMPIFNEQ equality: nil equals only nil,
// everything else requires identical type and content. The caller must have
// already checked that x and y share a type, or that one of them is nil.
func Equal(x, y Value) bool {
	if x.Type() == Nil || y.Type() == Nil {
		return x.Type() == Nil && y.Type() == Nil
	}
	if x.Type() != y.Type() {
		return false
	}
	switch x := x.(type) {
	case IntValue:
		return x == y.(IntValue)
	case BoolValue:
		return x == y.(BoolValue)
	case StringValue:
		return x == y.(StringValue)
	default:
		return false
	}
}

// EqualComparable reports whether x and y are eligible for EQ: same type, or
// either one is nil.
func EqualComparable(x, y Value) bool {
	return x.Type() == y.Type() || x.Type() == Nil || y.Type() == Nil
}
