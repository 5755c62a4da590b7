package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/x86"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantMnem string
		wantOps  []string
	}{
		{"zero operand", "ret", "RET", nil},
		{"two registers", "mov rax, rbx", "MOV", []string{"rax", "rbx"}},
		{"register and immediate", "add rax, 0x10", "ADD", []string{"rax", "0x10"}},
		{"trailing comment", "nop ; no operation", "NOP", nil},
		{"blank line", "   ", "", nil},
		{"memory operand", "mov rax, [rbx+8]", "MOV", []string{"rax", "[rbx+8]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mnem, ops := x86.ParseLine(tt.line)
			if mnem != tt.wantMnem {
				t.Errorf("mnemonic = %q, want %q", mnem, tt.wantMnem)
			}
			if len(ops) != len(tt.wantOps) {
				t.Fatalf("operands = %v, want %v", ops, tt.wantOps)
			}
			for i := range ops {
				if ops[i] != tt.wantOps[i] {
					t.Errorf("operand[%d] = %q, want %q", i, ops[i], tt.wantOps[i])
				}
			}
		})
	}
}

func TestParseOperand(t *testing.T) {
	if op, ok := x86.ParseOperand("rax"); !ok || op.Kind != x86.KindReg {
		t.Errorf("ParseOperand(rax) = %+v, %v, want a register", op, ok)
	}
	if op, ok := x86.ParseOperand("0x10"); !ok || op.Kind != x86.KindImm || op.Imm.Value != 0x10 {
		t.Errorf("ParseOperand(0x10) = %+v, %v, want imm 16", op, ok)
	}
	if op, ok := x86.ParseOperand("[rax+8]"); !ok || op.Kind != x86.KindMem || op.Mem.Disp != 8 {
		t.Errorf("ParseOperand([rax+8]) = %+v, %v, want mem disp 8", op, ok)
	}
	if _, ok := x86.ParseOperand("not_a_register"); ok {
		t.Errorf("ParseOperand(not_a_register) unexpectedly succeeded")
	}
}

func TestIsLabel(t *testing.T) {
	cases := map[string]bool{
		"loop":  true,
		"loop:": true,
		"rax":   false,
		"0x10":  false,
		"42":    false,
		"":      false,
	}
	for in, want := range cases {
		if got := x86.IsLabel(in); got != want {
			t.Errorf("IsLabel(%q) = %v, want %v", in, got, want)
		}
	}
}
