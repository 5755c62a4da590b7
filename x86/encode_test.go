package x86_test

import (
	"bytes"
	"testing"

	"github.com/keurnel/x86asm/x86"
)

// TestEndToEndScenarios covers spec.md §8's literal input/output scenarios,
// the way the teacher's architecture/x86_64/assembler_test.go pins byte
// sequences for known-good instructions rather than only round-tripping.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("mov eax, imm32 in 32-bit mode", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch32)
		if err := asm.Emit(x86.MOV, x86.R(x86.EAX), x86.I(0x12345678)); err != nil {
			t.Fatalf("emit: %v", err)
		}
		want := []byte{0xB8, 0x78, 0x56, 0x34, 0x12}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("mov rax, imm64 in 64-bit mode", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		if err := asm.MovRI(x86.RAX, 0x1122334455667788); err != nil {
			t.Fatalf("emit: %v", err)
		}
		want := []byte{0x48, 0xB8, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("add rbx, rcx in 64-bit mode", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		if err := asm.Add(x86.RBX, x86.RCX); err != nil {
			t.Fatalf("emit: %v", err)
		}
		want := []byte{0x48, 0x01, 0xCB}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("forward short jump", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		l := asm.Label()
		if err := asm.WithPreferShort().Jmp(l); err != nil {
			t.Fatalf("emit jmp: %v", err)
		}
		for i := 0; i < 3; i++ {
			if err := asm.Nop(); err != nil {
				t.Fatalf("emit padding nop: %v", err)
			}
		}
		if err := asm.Bind(l); err != nil {
			t.Fatalf("bind: %v", err)
		}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		want := []byte{0xEB, 0x03, 0x90, 0x90, 0x90}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("pop r12 in 64-bit mode", func(t *testing.T) {
		asm := x86.NewAssembler(x86.Arch64)
		if err := asm.Pop(x86.R12); err != nil {
			t.Fatalf("emit: %v", err)
		}
		want := []byte{0x41, 0x5C}
		got, err := asm.Holder.Finalize(0)
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})
}

// TestPrefixMinimality checks spec.md §8 invariant 4: no REX byte is
// emitted for a plain low-register 32-bit operation.
func TestPrefixMinimality(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	if err := asm.Emit(x86.ADD, x86.R(x86.EAX), x86.R(x86.EBX)); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got, err := asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if len(got) == 0 || got[0]&0xF0 == 0x40 {
		t.Errorf("unexpected REX byte in % X", got)
	}
}

// TestEncodingDeterminism checks spec.md §8 invariant 3: repeated emission
// of the same (id, operands) produces identical bytes.
func TestEncodingDeterminism(t *testing.T) {
	build := func() []byte {
		asm := x86.NewAssembler(x86.Arch64)
		_ = asm.MovRI(x86.RCX, 42)
		_ = asm.Add(x86.RAX, x86.RCX)
		out, _ := asm.Holder.Finalize(0)
		return out
	}
	a, b := build(), build()
	if !bytes.Equal(a, b) {
		t.Errorf("non-deterministic encoding: % X vs % X", a, b)
	}
}
