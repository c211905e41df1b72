// Package ir is the stack-machine program produced by codegen.
package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Opcode is an IR instruction.
type Opcode uint8

const (
	OpPushInt  Opcode = iota + 1 // Int
	OpPushDec                    // Float
	OpPushBool                   // Int: 0 or 1
	OpPushChar                   // Int: code point
	OpPushStr                    // Str
	OpLoad                       // Str: variable name
	OpStore                      // Str: variable name, pops one value
	OpPop                        // discards one value
	OpUnary                      // Str: operator mnemonic
	OpBinary                     // Str: operator mnemonic
	OpTuple                      // N: arity, pops N values

	opcodeEnd
)

var opcodeNames = [...]string{
	OpPushInt:  "push.int",
	OpPushDec:  "push.dec",
	OpPushBool: "push.bool",
	OpPushChar: "push.char",
	OpPushStr:  "push.str",
	OpLoad:     "load",
	OpStore:    "store",
	OpPop:      "pop",
	OpUnary:    "unary",
	OpBinary:   "binary",
	OpTuple:    "tuple",
}

func (op Opcode) String() string {
	if op > 0 && op < opcodeEnd {
		return opcodeNames[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Opcodes lists every valid opcode.
func Opcodes() []Opcode {
	out := make([]Opcode, 0, opcodeEnd-1)
	for op := OpPushInt; op < opcodeEnd; op++ {
		out = append(out, op)
	}
	return out
}

// Instr is one instruction. Only the operand named by Op is meaningful.
type Instr struct {
	Op    Opcode  `msgpack:"op"`
	Int   int64   `msgpack:"i,omitempty"`
	Float float64 `msgpack:"f,omitempty"`
	Str   string  `msgpack:"s,omitempty"`
	N     uint32  `msgpack:"n,omitempty"`
	// Line is the 0-based source line of the expression.
	Line uint32 `msgpack:"l,omitempty"`
}

func (in Instr) String() string {
	switch in.Op {
	case OpPushInt:
		return fmt.Sprintf("%s %d", in.Op, in.Int)
	case OpPushDec:
		return fmt.Sprintf("%s %s", in.Op, strconv.FormatFloat(in.Float, 'g', -1, 64))
	case OpPushBool:
		return fmt.Sprintf("%s %t", in.Op, in.Int != 0)
	case OpPushChar:
		return fmt.Sprintf("%s %q", in.Op, rune(in.Int))
	case OpPushStr:
		return fmt.Sprintf("%s %q", in.Op, in.Str)
	case OpLoad, OpStore, OpUnary, OpBinary:
		return fmt.Sprintf("%s %s", in.Op, in.Str)
	case OpTuple:
		return fmt.Sprintf("%s %d", in.Op, in.N)
	default:
		return in.Op.String()
	}
}

// Program is the instruction list of one module.
type Program struct {
	Source string  `msgpack:"src"`
	Instrs []Instr `msgpack:"code"`
}

func NewProgram(source string) *Program {
	return &Program{Source: source}
}

// Emit appends in and returns its index.
func (p *Program) Emit(in Instr) int {
	p.Instrs = append(p.Instrs, in)
	return len(p.Instrs) - 1
}

func (p *Program) Len() int { return len(p.Instrs) }

// Truncate drops every instruction from n on; used to discard the output
// of a statement that failed halfway.
func (p *Program) Truncate(n int) {
	if n >= 0 && n < len(p.Instrs) {
		clear(p.Instrs[n:])
		p.Instrs = p.Instrs[:n]
	}
}

// Dump writes one instruction per line with its index.
func (p *Program) Dump(w io.Writer) error {
	if p.Source != "" {
		if _, err := fmt.Fprintf(w, "; %s\n", p.Source); err != nil {
			return err
		}
	}
	for i, in := range p.Instrs {
		if _, err := fmt.Fprintf(w, "%04d  %s\n", i, in); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) String() string {
	var sb strings.Builder
	_ = p.Dump(&sb) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

// Marshal encodes p with msgpack.
func (p *Program) Marshal() ([]byte, error) {
	data, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode program: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a program produced by Marshal and checks its opcodes.
func Unmarshal(data []byte) (*Program, error) {
	var p Program
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	for i, in := range p.Instrs {
		if in.Op == 0 || in.Op >= opcodeEnd {
			return nil, fmt.Errorf("decode program: instruction %d: invalid opcode %d", i, in.Op)
		}
	}
	return &p, nil
}
