package machine

import "github.com/xsmahel/ippcode22/lang/ipperr"

// ProcessMemory is the facade over the three memory regions a running
// program sees: the always-present global frame, the optional temporary
// frame, and the stack of local frames.
type ProcessMemory struct {
	global *MemoryFrame
	temp   *MemoryFrame // nil when absent
	locals []*MemoryFrame
}

// NewProcessMemory returns memory with a fresh, empty global frame, no
// temporary frame, and an empty local frame stack.
func NewProcessMemory() *ProcessMemory {
	return &ProcessMemory{global: NewFrame()}
}

// CreateFrame unconditionally replaces the temporary frame with a fresh
// empty one, discarding whatever was there.
func (m *ProcessMemory) CreateFrame() {
	m.temp = NewFrame()
}

// PushFrame moves the temporary frame onto the local frame stack, clearing
// the temporary slot.
func (m *ProcessMemory) PushFrame() *ipperr.Error {
	if m.temp == nil {
		return ipperr.New(ipperr.UndefinedFrame, "PUSHFRAME: no temporary frame")
	}
	m.locals = append(m.locals, m.temp)
	m.temp = nil
	return nil
}

// PopFrame moves the top local frame into the temporary slot, overwriting it.
func (m *ProcessMemory) PopFrame() *ipperr.Error {
	if len(m.locals) == 0 {
		return ipperr.New(ipperr.EmptyLocalMemory, "POPFRAME: local frame stack is empty")
	}
	top := m.locals[len(m.locals)-1]
	m.locals = m.locals[:len(m.locals)-1]
	m.temp = top
	return nil
}

// frameFor resolves a frame prefix (GF/TF/LF) to the concrete frame it names.
func (m *ProcessMemory) frameFor(prefix string) (*MemoryFrame, *ipperr.Error) {
	switch prefix {
	case "GF":
		return m.global, nil
	case "TF":
		if m.temp == nil {
			return nil, ipperr.New(ipperr.UndefinedFrame, "TF@ access with no temporary frame")
		}
		return m.temp, nil
	case "LF":
		if len(m.locals) == 0 {
			return nil, ipperr.New(ipperr.EmptyLocalMemory, "LF@ access with empty local frame stack")
		}
		return m.locals[len(m.locals)-1], nil
	default:
		return nil, ipperr.Newf(ipperr.UndefinedFrame, "unknown frame prefix %q", prefix)
	}
}

// Define creates a new uninitialized Variable named name in the frame
// selected by prefix.
func (m *ProcessMemory) Define(prefix, name string) (*Variable, *ipperr.Error) {
	frame, ierr := m.frameFor(prefix)
	if ierr != nil {
		return nil, ierr
	}
	v, ok := frame.Define(name)
	if !ok {
		return nil, ipperr.Newf(ipperr.Redefinition, "variable %s@%s already defined", prefix, name)
	}
	return v, nil
}

// Get returns the Variable named name in the frame selected by prefix.
func (m *ProcessMemory) Get(prefix, name string) (*Variable, *ipperr.Error) {
	frame, ierr := m.frameFor(prefix)
	if ierr != nil {
		return nil, ierr
	}
	v, ok := frame.Lookup(name)
	if !ok {
		return nil, ipperr.Newf(ipperr.NonExistingVariable, "variable %s@%s does not exist", prefix, name)
	}
	return v, nil
}

// LocalDepth reports the current local frame stack depth, for BREAK.
func (m *ProcessMemory) LocalDepth() int { return len(m.locals) }

// HasTemp reports whether a temporary frame is currently present, for BREAK.
func (m *ProcessMemory) HasTemp() bool { return m.temp != nil }
