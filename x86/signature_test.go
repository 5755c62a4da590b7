package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/internal/asmerr"
	"github.com/keurnel/x86asm/x86"
)

// TestPushImmediateWidthSelection exercises the Slot.ImmBits discrimination
// added to resolve PUSH's otherwise-ambiguous imm8 (0x6A) vs imm32 (0x68)
// forms: a small value picks the imm8 encoding, a large one forces imm32.
func TestPushImmediateWidthSelection(t *testing.T) {
	t.Run("fits imm8", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		if err := asm.Emit(x86.PUSH, x86.I(5)); err != nil {
			t.Fatalf("emit: %v", err)
		}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if len(got) != 2 || got[0] != 0x6A || got[1] != 0x05 {
			t.Errorf("got % X, want 6A 05", got)
		}
	})

	t.Run("forces imm32", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		if err := asm.Emit(x86.PUSH, x86.I(0x10000)); err != nil {
			t.Fatalf("emit: %v", err)
		}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if len(got) != 5 || got[0] != 0x68 {
			t.Errorf("got % X, want 5-byte 0x68 imm32 form", got)
		}
	})
}

// TestRSPCannotBeSIBIndex covers spec.md §4.4's ModR/M special case: RSP
// (and R12) cannot appear as a SIB index register.
func TestRSPCannotBeSIBIndex(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	mem := x86.MSIB(x86.RAX, x86.RSP, 1, 0)
	err := asm.MovRM(x86.RBX, mem)
	if err == nil {
		t.Fatalf("expected error using RSP as SIB index, got nil")
	}
	if !asmerr.Is(err, asmerr.InvalidMemoryOperand) {
		t.Errorf("got %v, want InvalidMemoryOperand", err)
	}
}

// TestImmediateOutOfRangeRejected checks that PUSH with an immediate wider
// than its imm8/imm32 slots is rejected with an error rather than silently
// truncated.
func TestImmediateOutOfRangeRejected(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	err := asm.Emit(x86.PUSH, x86.I(1<<40))
	if err == nil {
		t.Fatalf("expected error for oversized PUSH immediate, got nil")
	}
}
