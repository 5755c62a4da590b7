package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/x86"
)

// TestEvexBroadcastDisplacementCompression covers spec.md §8 scenario 5:
// `vaddps zmm0{k1}{z}, zmm1, dword bcst [rax+64]` compresses disp=64 to
// disp8=0x10 (N=4 for a 32-bit broadcast element under TupleFull), and sets
// the EVEX prefix's z/aaa/L'L fields.
func TestEvexBroadcastDisplacementCompression(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	mem := x86.MBcst(x86.RAX, 64)

	err := asm.WithMask(x86.K(1)).WithZeroing().Emit(
		x86.VADDPS, x86.R(x86.ZMM(0)), x86.R(x86.ZMM(1)), mem)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	code, err := asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	// 4-byte EVEX prefix (62 ...) + opcode 58 + ModR/M + disp8.
	if len(code) != 7 {
		t.Fatalf("got % X (len %d), want a 7-byte EVEX-encoded instruction", code, len(code))
	}
	if code[0] != 0x62 {
		t.Fatalf("got % X, want EVEX escape byte 0x62 first", code)
	}
	p2 := code[3]
	if p2&0x80 == 0 {
		t.Errorf("P2 byte %#x: zeroing bit (z) not set", p2)
	}
	if p2&0x10 == 0 {
		t.Errorf("P2 byte %#x: broadcast bit (b) not set", p2)
	}
	if p2&0x07 != 1 {
		t.Errorf("P2 byte %#x: aaa mask field = %d, want 1", p2, p2&0x07)
	}
	if code[6] != 0x10 {
		t.Errorf("disp8 byte = %#x, want 0x10 (64/4 compressed)", code[6])
	}
}
