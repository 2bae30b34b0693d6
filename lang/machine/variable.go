package machine

import "github.com/xsmahel/ippcode22/lang/types"

// Variable is a named slot that may or may not hold a Value yet. Assigning a
// Value may change its dynamic type freely across the variable's lifetime.
type Variable struct {
	value types.Value
	set   bool
}

// Get returns the variable's current Value and true, or a nil Value and false
// if it has never been assigned.
func (v *Variable) Get() (types.Value, bool) {
	return v.value, v.set
}

// Set stores val as the variable's current Value.
func (v *Variable) Set(val types.Value) {
	v.value = val
	v.set = true
}

// Type returns the name of the variable's current dynamic type, or the empty
// string if it is uninitialized (the TYPE instruction's documented behavior).
func (v *Variable) Type() string {
	if !v.set {
		return ""
	}
	return string(v.value.Type())
}
