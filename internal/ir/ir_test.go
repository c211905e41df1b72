package ir

import (
	"strings"
	"testing"
)

func sample() *Program {
	p := NewProgram("main.rano")
	p.Emit(Instr{Op: OpPushInt, Int: 40})
	p.Emit(Instr{Op: OpPushInt, Int: 2})
	p.Emit(Instr{Op: OpBinary, Str: "add"})
	p.Emit(Instr{Op: OpStore, Str: "x"})
	p.Emit(Instr{Op: OpPushStr, Str: "hi\n"})
	p.Emit(Instr{Op: OpPushChar, Int: 'é'})
	p.Emit(Instr{Op: OpTuple, N: 2, Line: 1})
	p.Emit(Instr{Op: OpPop, Line: 1})
	return p
}

func TestDump(t *testing.T) {
	got := sample().String()
	for _, want := range []string{
		"; main.rano",
		"0000  push.int 40",
		"0002  binary add",
		"0004  push.str \"hi\\n\"",
		"0005  push.char 'é'",
		"0006  tuple 2",
		"0007  pop",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump lacks %q:\n%s", want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	p := sample()
	p.Truncate(3)
	if p.Len() != 3 || p.Instrs[2].Op != OpBinary {
		t.Fatalf("after Truncate(3): %v", p.Instrs)
	}
	p.Truncate(10)
	if p.Len() != 3 {
		t.Fatal("Truncate past the end must be a no-op")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	p := sample()
	data, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.String() != p.String() {
		t.Errorf("round trip changed the program:\n%s\nvs\n%s", back, p)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte{0xc1}); err == nil {
		t.Error("expected decode error")
	}
	bad := &Program{Instrs: []Instr{{Op: 200}}}
	data, err := bad.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); err == nil {
		t.Error("expected invalid opcode error")
	}
}

func TestOpcodeNames(t *testing.T) {
	for _, op := range Opcodes() {
		if strings.HasPrefix(op.String(), "op(") {
			t.Errorf("opcode %d has no name", op)
		}
	}
}
