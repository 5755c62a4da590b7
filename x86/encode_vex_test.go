package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/x86"
)

// TestVexRVMShapeAndPrefix exercises the 3-byte VEX prefix path common to
// both VEX and XOP classes (encode_vex.go always emits the 3-byte form;
// see DESIGN.md): vaddps xmm0, xmm1, xmm2 should begin with the VEX escape
// byte 0xC4 and end with the 0x58 opcode.
func TestVexRVMShapeAndPrefix(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	err := asm.Emit(x86.VADDPS, x86.R(x86.XMM(0)), x86.R(x86.XMM(1)), x86.R(x86.XMM(2)))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	code, err := asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	// 3-byte VEX prefix + 1-byte opcode + 1-byte ModR/M = 5 bytes for an
	// all-register operand form.
	if len(code) != 5 {
		t.Fatalf("got % X (len %d), want 5 bytes", code, len(code))
	}
	if code[0] != 0xC4 {
		t.Errorf("got % X, want VEX escape byte 0xC4 first", code)
	}
	if code[3] != 0x58 {
		t.Errorf("opcode byte = %#x, want 0x58 (VADDPS)", code[3])
	}
}
