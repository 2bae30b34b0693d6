package machine

import "github.com/dolthub/swiss"

// MemoryFrame is a namespace of variables, keyed by name without its frame
// prefix. Names are unique within one frame; a variable, once defined, stays
// in the frame until the frame itself is discarded.
type MemoryFrame struct {
	vars *swiss.Map[string, *Variable]
}

// NewFrame returns an empty frame.
func NewFrame() *MemoryFrame {
	return &MemoryFrame{vars: swiss.NewMap[string, *Variable](8)}
}

// Define inserts a fresh, uninitialized Variable under name. ok is false if
// name already exists in the frame.
func (f *MemoryFrame) Define(name string) (*Variable, bool) {
	if _, exists := f.vars.Get(name); exists {
		return nil, false
	}
	v := &Variable{}
	f.vars.Put(name, v)
	return v, true
}

// Lookup returns the Variable stored under name, if any.
func (f *MemoryFrame) Lookup(name string) (*Variable, bool) {
	return f.vars.Get(name)
}
