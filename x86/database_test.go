package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/x86"
)

// TestFindIDRoundTrip covers spec.md §8 invariant 1: find_id(name_of(i)) ==
// i for every registered mnemonic, and find_id returns NoInst for unknown
// strings.
func TestFindIDRoundTrip(t *testing.T) {
	mnemonics := []string{"MOV", "ADD", "SUB", "XOR", "CMP", "PUSH", "POP", "JMP", "JE", "CALL", "RET", "NOP", "LEA", "TEST"}
	for _, name := range mnemonics {
		t.Run(name, func(t *testing.T) {
			id := x86.FindID(name)
			if id == x86.NoInst {
				t.Fatalf("FindID(%q) = NoInst", name)
			}
			if got := x86.NameOf(id); got != name {
				t.Errorf("NameOf(FindID(%q)) = %q, want %q", name, got, name)
			}
		})
	}
}

func TestFindIDUnknown(t *testing.T) {
	unknown := []string{"", "NOTANINSTRUCTION", "mov", "MO"}
	for _, name := range unknown {
		if id := x86.FindID(name); id != x86.NoInst {
			t.Errorf("FindID(%q) = %v, want NoInst", name, id)
		}
	}
}
