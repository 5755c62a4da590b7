package compiler_test

import (
	"testing"

	"github.com/keurnel/x86asm/compiler"
	"github.com/keurnel/x86asm/x86"
)

// TestFrameSavesAndRestoresCalleeSavedRegisters covers the ABI bug where a
// frame with an assigned callee-saved register dropped its save/restore:
// push rbp; mov rbp, rsp; push rbx; push r12; pop r12; pop rbx; pop rbp; ret.
func TestFrameSavesAndRestoresCalleeSavedRegisters(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	f := compiler.NewFrame(0, []x86.Reg{x86.RBX, x86.R12})

	if err := f.EmitPrologue(asm); err != nil {
		t.Fatalf("EmitPrologue: %v", err)
	}
	if err := f.EmitEpilogue(asm); err != nil {
		t.Fatalf("EmitEpilogue: %v", err)
	}

	code, err := asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	want := []byte{
		0x55,             // push rbp
		0x48, 0x89, 0xE5, // mov rbp, rsp
		0x53,             // push rbx
		0x41, 0x54,       // push r12
		0x41, 0x5C,       // pop r12
		0x5B,             // pop rbx
		0x5D,             // pop rbp
		0xC3,             // ret
	}
	if len(code) != len(want) {
		t.Fatalf("got % X (len %d), want % X (len %d)", code, len(code), want, len(want))
	}
	for i := range want {
		if code[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x (full: % X)", i, code[i], want[i], code)
		}
	}
}

// TestFrameNoCalleeSavedMatchesPlainPrologue covers the zero-callee-saved
// case, which must still behave exactly like a leaf frame.
func TestFrameNoCalleeSavedMatchesPlainPrologue(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	f := compiler.NewFrame(16, nil)

	if err := f.EmitPrologue(asm); err != nil {
		t.Fatalf("EmitPrologue: %v", err)
	}
	if err := f.EmitEpilogue(asm); err != nil {
		t.Fatalf("EmitEpilogue: %v", err)
	}

	code, err := asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(code) == 0 || code[0] != 0x55 || code[len(code)-1] != 0xC3 {
		t.Errorf("got % X, want a push-rbp...ret frame", code)
	}
}
