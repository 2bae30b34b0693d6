// Package machine implements the stack-based virtual machine: process
// memory (three frame kinds), a data stack, a call stack, and the executor
// that dispatches the instruction set against them.
package machine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xsmahel/ippcode22/lang/ipperr"
	"github.com/xsmahel/ippcode22/lang/program"
	"github.com/xsmahel/ippcode22/lang/types"
)

// Config wires the executor to the process's standard streams.
type Config struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// Executor runs a program.Program against one ProcessMemory, one DataStack,
// and one CallStack. It is single-use: construct a fresh Executor per run.
type Executor struct {
	prog *program.Program
	mem  *ProcessMemory
	data DataStack
	call CallStack
	pc   int

	stdout io.Writer
	stderr io.Writer
	stdin  *bufio.Reader
}

// New returns an Executor ready to run prog.
func New(prog *program.Program, cfg Config) *Executor {
	return &Executor{
		prog:   prog,
		mem:    NewProcessMemory(),
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
		stdin:  bufio.NewReader(cfg.Stdin),
	}
}

// Run executes the program to completion. It returns (exitVal, nil) on
// normal termination or an explicit EXIT, where exitVal is 0 for normal
// termination and the EXIT argument otherwise. Any runtime error aborts the
// run and is returned instead.
func (e *Executor) Run(ctx context.Context) (int, *ipperr.Error) {
	instrs := e.prog.Instructions
	for e.pc >= 0 && e.pc < len(instrs) {
		if ctx.Err() != nil {
			return 0, nil
		}

		instr := instrs[e.pc]
		jump := -1
		exitVal, exited, ierr := e.step(instr, &jump)
		if ierr != nil {
			return 0, ierr
		}
		if exited {
			return exitVal, nil
		}
		if jump >= 0 {
			e.pc = jump
		} else {
			e.pc++
		}
	}
	return 0, nil
}

// step dispatches one instruction. If it is a control-flow instruction that
// redirects the program counter, *jump is set to the target index.
func (e *Executor) step(instr program.Instruction, jump *int) (exitVal int, exited bool, ierr *ipperr.Error) {
	switch instr.Op {
	case program.LABEL:
		return 0, false, nil

	case program.CREATEFRAME:
		if ierr := e.argc(instr, 0); ierr != nil {
			return 0, false, ierr
		}
		e.mem.CreateFrame()

	case program.PUSHFRAME:
		if ierr := e.argc(instr, 0); ierr != nil {
			return 0, false, ierr
		}
		if ierr := e.mem.PushFrame(); ierr != nil {
			return 0, false, ierr
		}

	case program.POPFRAME:
		if ierr := e.argc(instr, 0); ierr != nil {
			return 0, false, ierr
		}
		if ierr := e.mem.PopFrame(); ierr != nil {
			return 0, false, ierr
		}

	case program.DEFVAR:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		prefix, name, ierr := e.dstRef(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		if _, ierr := e.mem.Define(prefix, name); ierr != nil {
			return 0, false, ierr
		}

	case program.MOVE:
		if ierr := e.argc(instr, 2); ierr != nil {
			return 0, false, ierr
		}
		dst, ierr := e.dstVar(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		v, ierr := e.valueArg(instr, 1)
		if ierr != nil {
			return 0, false, ierr
		}
		dst.Set(v)

	case program.CALL:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		target, ierr := e.labelArg(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		e.call.Push(e.pc + 1)
		*jump = target

	case program.RETURN:
		if ierr := e.argc(instr, 0); ierr != nil {
			return 0, false, ierr
		}
		target, ierr := e.call.Pop()
		if ierr != nil {
			return 0, false, ierr
		}
		*jump = target

	case program.PUSHS:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		v, ierr := e.valueArg(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		e.data.Push(v)

	case program.POPS:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		dst, ierr := e.dstVar(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		v, ierr := e.data.Pop()
		if ierr != nil {
			return 0, false, ierr
		}
		dst.Set(v)

	case program.ADD, program.SUB, program.MUL, program.IDIV:
		return 0, false, e.arith(instr)

	case program.LT, program.GT:
		return 0, false, e.order(instr)

	case program.EQ:
		return 0, false, e.equality(instr)

	case program.AND, program.OR:
		return 0, false, e.boolBinary(instr)

	case program.NOT:
		return 0, false, e.not(instr)

	case program.INT2CHAR:
		return 0, false, e.int2char(instr)

	case program.STRI2INT:
		return 0, false, e.stri2int(instr)

	case program.READ:
		return 0, false, e.read(instr)

	case program.WRITE:
		return 0, false, e.write(instr)

	case program.CONCAT:
		return 0, false, e.concat(instr)

	case program.STRLEN:
		return 0, false, e.strlen(instr)

	case program.GETCHAR:
		return 0, false, e.getChar(instr)

	case program.SETCHAR:
		return 0, false, e.setChar(instr)

	case program.TYPE:
		return 0, false, e.typeOf(instr)

	case program.JUMP:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		target, ierr := e.labelArg(instr, 0)
		if ierr != nil {
			return 0, false, ierr
		}
		*jump = target

	case program.JUMPIFEQ, program.JUMPIFNEQ:
		return 0, false, e.jumpIf(instr, jump)

	case program.EXIT:
		if ierr := e.argc(instr, 1); ierr != nil {
			return 0, false, ierr
		}
		v, ierr := e.typedValueArg(instr, 0, types.Int)
		if ierr != nil {
			return 0, false, ierr
		}
		n := int64(v.(types.IntValue))
		if n < 0 || n > 49 {
			return 0, false, ipperr.Newf(ipperr.ExitValueOutOfRange, "EXIT value %d out of range [0,49]", n)
		}
		return int(n), true, nil

	case program.DPRINT:
		return 0, false, e.dprint(instr)

	case program.BREAK:
		if ierr := e.argc(instr, 0); ierr != nil {
			return 0, false, ierr
		}
		e.breakDump()

	default:
		return 0, false, ipperr.Newf(ipperr.InvalidOpCode, "unhandled opcode %s", instr.Op)
	}
	return 0, false, nil
}

// argc enforces the instruction's exact arity: too many positional
// arguments is TooFewInstructionArgs (the historical name; semantically a
// wrong argument count), too few is MissingInstructionArg.
func (e *Executor) argc(instr program.Instruction, want int) *ipperr.Error {
	got := len(instr.Args)
	if got > want {
		return ipperr.Newf(ipperr.TooFewInstructionArgs, "%s: expected %d arguments, got %d", instr.Op, want, got)
	}
	if got < want {
		return ipperr.Newf(ipperr.MissingInstructionArg, "%s: expected %d arguments, got %d", instr.Op, want, got)
	}
	return nil
}

// dstRef resolves a var-typed argument's frame prefix and bare name without
// looking it up in memory, for DEFVAR.
func (e *Executor) dstRef(instr program.Instruction, i int) (prefix, name string, ierr *ipperr.Error) {
	a := instr.Args[i]
	if a.Type != program.ArgVar {
		return "", "", ipperr.Newf(ipperr.BadOperandType, "%s: argument %d must be a variable", instr.Op, i+1)
	}
	return a.FrameVar()
}

// dstVar resolves a var-typed argument to its Variable handle, for writing.
func (e *Executor) dstVar(instr program.Instruction, i int) (*Variable, *ipperr.Error) {
	prefix, name, ierr := e.dstRef(instr, i)
	if ierr != nil {
		return nil, ierr
	}
	return e.mem.Get(prefix, name)
}

// valueArg resolves argument i to its current Value: literals decode
// directly, var arguments resolve through memory and must be initialized.
func (e *Executor) valueArg(instr program.Instruction, i int) (types.Value, *ipperr.Error) {
	a := instr.Args[i]
	if a.Type != program.ArgVar {
		return a.Value()
	}
	prefix, name, ierr := a.FrameVar()
	if ierr != nil {
		return nil, ierr
	}
	v, ierr := e.mem.Get(prefix, name)
	if ierr != nil {
		return nil, ierr
	}
	val, ok := v.Get()
	if !ok {
		return nil, ipperr.Newf(ipperr.GetValueFromUninitialized, "%s@%s is uninitialized", prefix, name)
	}
	return val, nil
}

// typedValueArg is valueArg plus a required dynamic type check.
func (e *Executor) typedValueArg(instr program.Instruction, i int, want types.DataType) (types.Value, *ipperr.Error) {
	v, ierr := e.valueArg(instr, i)
	if ierr != nil {
		return nil, ierr
	}
	if v.Type() != want {
		return nil, ipperr.Newf(ipperr.BadOperandType, "%s: argument %d must be %s, got %s", instr.Op, i+1, want, v.Type())
	}
	return v, nil
}

// labelArg resolves a label-typed argument to its target instruction index.
func (e *Executor) labelArg(instr program.Instruction, i int) (int, *ipperr.Error) {
	a := instr.Args[i]
	if a.Type != program.ArgLabel {
		return 0, ipperr.Newf(ipperr.BadOperandType, "%s: argument %d must be a label", instr.Op, i+1)
	}
	return e.prog.Resolve(a.Text)
}

func (e *Executor) arith(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.typedValueArg(instr, 1, types.Int)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.typedValueArg(instr, 2, types.Int)
	if ierr != nil {
		return ierr
	}
	x, y := int64(a.(types.IntValue)), int64(b.(types.IntValue))

	var result int64
	switch instr.Op {
	case program.ADD:
		result = x + y
	case program.SUB:
		result = x - y
	case program.MUL:
		result = x * y
	case program.IDIV:
		if y == 0 {
			return ipperr.New(ipperr.ZeroDivision, "IDIV by zero")
		}
		result = x / y
	}
	dst.Set(types.IntValue(result))
	return nil
}

func (e *Executor) order(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.valueArg(instr, 1)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.valueArg(instr, 2)
	if ierr != nil {
		return ierr
	}
	if !types.Comparable(a, b) {
		return ipperr.Newf(ipperr.BadOperandType, "%s: operands must share an orderable type", instr.Op)
	}
	var result bool
	if instr.Op == program.LT {
		result = types.Less(a, b)
	} else {
		result = types.Less(b, a)
	}
	dst.Set(types.BoolValue(result))
	return nil
}

func (e *Executor) equality(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.valueArg(instr, 1)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.valueArg(instr, 2)
	if ierr != nil {
		return ierr
	}
	if !types.EqualComparable(a, b) {
		return ipperr.New(ipperr.BadOperandType, "EQ: operands must share a type, or one must be nil")
	}
	dst.Set(types.BoolValue(types.Equal(a, b)))
	return nil
}

func (e *Executor) boolBinary(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.typedValueArg(instr, 1, types.Bool)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.typedValueArg(instr, 2, types.Bool)
	if ierr != nil {
		return ierr
	}
	x, y := bool(a.(types.BoolValue)), bool(b.(types.BoolValue))
	var result bool
	if instr.Op == program.AND {
		result = x && y
	} else {
		result = x || y
	}
	dst.Set(types.BoolValue(result))
	return nil
}

func (e *Executor) not(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 2); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.typedValueArg(instr, 1, types.Bool)
	if ierr != nil {
		return ierr
	}
	dst.Set(types.BoolValue(!bool(a.(types.BoolValue))))
	return nil
}

func (e *Executor) int2char(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 2); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	v, ierr := e.typedValueArg(instr, 1, types.Int)
	if ierr != nil {
		return ierr
	}
	n := int64(v.(types.IntValue))
	if n < 0 || n > 0x10FFFF {
		return ipperr.Newf(ipperr.InvalidAsciiPosition, "INT2CHAR: code point %d out of range", n)
	}
	dst.Set(types.StringValue(string(rune(n))))
	return nil
}

func (e *Executor) stri2int(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	s, ierr := e.typedValueArg(instr, 1, types.String)
	if ierr != nil {
		return ierr
	}
	idx, ierr := e.typedValueArg(instr, 2, types.Int)
	if ierr != nil {
		return ierr
	}
	runes := []rune(string(s.(types.StringValue)))
	i := int64(idx.(types.IntValue))
	if i < 0 || i >= int64(len(runes)) {
		return ipperr.Newf(ipperr.IndexingOutsideString, "STRI2INT: index %d out of range", i)
	}
	dst.Set(types.IntValue(int64(runes[i])))
	return nil
}

func (e *Executor) read(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 2); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	typeArg := instr.Args[1]
	if typeArg.Type != program.ArgType_ {
		return ipperr.Newf(ipperr.BadOperandType, "READ: argument 2 must be a type literal")
	}

	line, err := e.stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		dst.Set(types.NilValue{})
		return nil
	}

	switch typeArg.Text {
	case "int":
		n, perr := strconv.ParseInt(line, 10, 64)
		if perr != nil {
			dst.Set(types.NilValue{})
		} else {
			dst.Set(types.IntValue(n))
		}
	case "bool":
		dst.Set(types.BoolValue(strings.EqualFold(line, "true")))
	case "string":
		dst.Set(types.StringValue(line))
	default:
		return ipperr.Newf(ipperr.BadOperandType, "READ: unknown type %q", typeArg.Text)
	}
	return nil
}

func (e *Executor) write(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 1); ierr != nil {
		return ierr
	}
	v, ierr := e.valueArg(instr, 0)
	if ierr != nil {
		return ierr
	}
	fmt.Fprint(e.stdout, v.String())
	return nil
}

func (e *Executor) concat(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.typedValueArg(instr, 1, types.String)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.typedValueArg(instr, 2, types.String)
	if ierr != nil {
		return ierr
	}
	dst.Set(types.StringValue(string(a.(types.StringValue)) + string(b.(types.StringValue))))
	return nil
}

func (e *Executor) strlen(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 2); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	s, ierr := e.typedValueArg(instr, 1, types.String)
	if ierr != nil {
		return ierr
	}
	dst.Set(types.IntValue(int64(len([]rune(string(s.(types.StringValue)))))))
	return nil
}

func (e *Executor) getChar(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	s, ierr := e.typedValueArg(instr, 1, types.String)
	if ierr != nil {
		return ierr
	}
	idx, ierr := e.typedValueArg(instr, 2, types.Int)
	if ierr != nil {
		return ierr
	}
	runes := []rune(string(s.(types.StringValue)))
	i := int64(idx.(types.IntValue))
	if i < 0 || i >= int64(len(runes)) {
		return ipperr.Newf(ipperr.IndexingOutsideString, "GETCHAR: index %d out of range", i)
	}
	dst.Set(types.StringValue(string(runes[i])))
	return nil
}

func (e *Executor) setChar(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	cur, ok := dst.Get()
	if !ok {
		return ipperr.New(ipperr.GetValueFromUninitialized, "SETCHAR: destination is uninitialized")
	}
	if cur.Type() != types.String {
		return ipperr.Newf(ipperr.BadOperandType, "SETCHAR: destination must already hold a string, got %s", cur.Type())
	}
	idx, ierr := e.typedValueArg(instr, 1, types.Int)
	if ierr != nil {
		return ierr
	}
	repl, ierr := e.typedValueArg(instr, 2, types.String)
	if ierr != nil {
		return ierr
	}

	replRunes := []rune(string(repl.(types.StringValue)))
	if len(replRunes) == 0 {
		return ipperr.New(ipperr.BadStringUsage, "SETCHAR: replacement string must not be empty")
	}

	runes := []rune(string(cur.(types.StringValue)))
	i := int64(idx.(types.IntValue))
	if i < 0 || i >= int64(len(runes)) {
		return ipperr.Newf(ipperr.IndexingOutsideString, "SETCHAR: index %d out of range", i)
	}
	runes[i] = replRunes[0]
	dst.Set(types.StringValue(string(runes)))
	return nil
}

func (e *Executor) typeOf(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 2); ierr != nil {
		return ierr
	}
	dst, ierr := e.dstVar(instr, 0)
	if ierr != nil {
		return ierr
	}
	a := instr.Args[1]
	var name string
	if a.Type == program.ArgVar {
		prefix, varName, ierr := a.FrameVar()
		if ierr != nil {
			return ierr
		}
		v, ierr := e.mem.Get(prefix, varName)
		if ierr != nil {
			return ierr
		}
		name = v.Type()
	} else {
		val, ierr := a.Value()
		if ierr != nil {
			return ierr
		}
		name = string(val.Type())
	}
	dst.Set(types.StringValue(name))
	return nil
}

func (e *Executor) jumpIf(instr program.Instruction, jump *int) *ipperr.Error {
	if ierr := e.argc(instr, 3); ierr != nil {
		return ierr
	}
	target, ierr := e.labelArg(instr, 0)
	if ierr != nil {
		return ierr
	}
	a, ierr := e.valueArg(instr, 1)
	if ierr != nil {
		return ierr
	}
	b, ierr := e.valueArg(instr, 2)
	if ierr != nil {
		return ierr
	}
	if !types.EqualComparable(a, b) {
		return ipperr.Newf(ipperr.BadOperandType, "%s: operands must share a type, or one must be nil", instr.Op)
	}
	eq := types.Equal(a, b)
	if instr.Op == program.JUMPIFNEQ {
		eq = !eq
	}
	if eq {
		*jump = target
	}
	return nil
}

func (e *Executor) dprint(instr program.Instruction) *ipperr.Error {
	if ierr := e.argc(instr, 1); ierr != nil {
		return ierr
	}
	a := instr.Args[0]
	if a.Type == program.ArgVar {
		prefix, name, ierr := a.FrameVar()
		if ierr != nil {
			return ierr
		}
		v, ierr := e.mem.Get(prefix, name)
		if ierr != nil {
			return ierr
		}
		val, ok := v.Get()
		if !ok {
			fmt.Fprintf(e.stderr, "%s@%s = <uninitialized>\n", prefix, name)
			return nil
		}
		fmt.Fprintf(e.stderr, "%s@%s = %s@%s\n", prefix, name, val.Type(), val.String())
		return nil
	}
	val, ierr := a.Value()
	if ierr != nil {
		return ierr
	}
	fmt.Fprintf(e.stderr, "%s@%s\n", val.Type(), val.String())
	return nil
}

func (e *Executor) breakDump() {
	fmt.Fprintf(e.stderr, "pc=%d local-frames=%d temp-frame=%t data-stack=%d call-stack=%d\n",
		e.pc, e.mem.LocalDepth(), e.mem.HasTemp(), e.data.Len(), e.call.Len())
}
