package program

import (
	"golang.org/x/exp/slices"

	"github.com/xsmahel/ippcode22/lang/ipperr"
)

// Program is a fully validated, execution-ordered instruction list together
// with the label table the machine uses for JUMP/CALL targets.
type Program struct {
	Instructions []Instruction
	// Labels maps a label name to the index of its LABEL instruction, the
	// jump target a CALL/JUMP to that name resolves to.
	Labels map[string]int
}

// New sorts instructions by their XML order attribute, rejects duplicate
// order values, and builds the label table. It is the single constructor
// the loader uses once every instruction has been individually validated.
func New(instructions []Instruction) (*Program, *ipperr.Error) {
	sorted := slices.Clone(instructions)
	slices.SortFunc(sorted, func(a, b Instruction) int {
		return a.Order - b.Order
	})

	seen := make(map[int]bool, len(sorted))
	for _, instr := range sorted {
		if seen[instr.Order] {
			return nil, ipperr.Newf(ipperr.BadInstructionOrder, "duplicate instruction order %d", instr.Order)
		}
		seen[instr.Order] = true
	}

	labels := make(map[string]int)
	for i, instr := range sorted {
		if instr.Op != LABEL {
			continue
		}
		if len(instr.Args) != 1 || instr.Args[0].Type != ArgLabel {
			return nil, ipperr.New(ipperr.MissingInstructionArg, "LABEL: missing label argument")
		}
		name := instr.Args[0].Text
		if _, ok := labels[name]; ok {
			return nil, ipperr.Newf(ipperr.DuplicateLabel, "label %q redefined", name)
		}
		labels[name] = i
	}

	return &Program{Instructions: sorted, Labels: labels}, nil
}

// Resolve returns the jump target index for a label, or UndefinedLabel if no
// such label was declared anywhere in the program.
func (p *Program) Resolve(label string) (int, *ipperr.Error) {
	idx, ok := p.Labels[label]
	if !ok {
		return 0, ipperr.Newf(ipperr.UndefinedLabel, "undefined label %q", label)
	}
	return idx, nil
}
