package compiler_test

import (
	"testing"

	"github.com/keurnel/x86asm/compiler"
	"github.com/keurnel/x86asm/x86"
)

func TestAllocateFitsInRegisters(t *testing.T) {
	ranges := []compiler.LiveRange{
		{VReg: 0, Start: 0, End: 2},
		{VReg: 1, Start: 1, End: 2},
		{VReg: 2, Start: 2, End: 3},
	}
	allocs, spillBytes := compiler.Allocate(ranges)
	if spillBytes != 0 {
		t.Errorf("spillBytes = %d, want 0 for 3 short-lived vregs", spillBytes)
	}
	for _, r := range ranges {
		a, ok := allocs[r.VReg]
		if !ok || !a.InReg {
			t.Errorf("vreg %d: allocation = %+v, want a register", r.VReg, a)
		}
	}
}

func TestUsedCalleeSavedReportsAssignedRegisters(t *testing.T) {
	// 8 simultaneously-live ranges exceed the 7 caller-saved pool entries
	// (RCX, RDX, RSI, RDI, R8, R9, R10), forcing the 8th into RBX, the
	// first callee-saved register in generalPurposePool order.
	var ranges []compiler.LiveRange
	for i := 0; i < 8; i++ {
		ranges = append(ranges, compiler.LiveRange{VReg: compiler.VReg(i), Start: 0, End: 5})
	}
	allocs, spillBytes := compiler.Allocate(ranges)
	if spillBytes != 0 {
		t.Fatalf("spillBytes = %d, want 0 for 8 simultaneously-live vregs", spillBytes)
	}
	used := compiler.UsedCalleeSaved(allocs)
	if len(used) != 1 || used[0] != x86.RBX {
		t.Errorf("UsedCalleeSaved = %+v, want [RBX]", used)
	}
}

func TestUsedCalleeSavedEmptyWhenPoolSuffices(t *testing.T) {
	ranges := []compiler.LiveRange{
		{VReg: 0, Start: 0, End: 2},
		{VReg: 1, Start: 1, End: 2},
	}
	allocs, _ := compiler.Allocate(ranges)
	if used := compiler.UsedCalleeSaved(allocs); len(used) != 0 {
		t.Errorf("UsedCalleeSaved = %+v, want none", used)
	}
}

func TestAllocateSpillsWhenPoolExhausted(t *testing.T) {
	// One more simultaneously-live range than generalPurposePool has slots
	// (12 registers) forces at least one spill.
	var ranges []compiler.LiveRange
	for i := 0; i < 13; i++ {
		ranges = append(ranges, compiler.LiveRange{VReg: compiler.VReg(i), Start: 0, End: 20})
	}
	_, spillBytes := compiler.Allocate(ranges)
	if spillBytes == 0 {
		t.Errorf("spillBytes = 0, want at least one spill among 13 simultaneously-live vregs")
	}
}
