package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/x86"
)

// TestRegisterByName mirrors the teacher's table-driven register-encoding
// tests (architecture/x86_64/registers_test.go), generalized to this
// package's RegisterByName lookup.
func TestRegisterByName(t *testing.T) {
	tests := []struct {
		name string
		want x86.Reg
	}{
		{"rax", x86.RAX},
		{"rbx", x86.RBX},
		{"rcx", x86.RCX},
		{"rdx", x86.RDX},
		{"rsp", x86.RSP},
		{"rbp", x86.RBP},
		{"r12", x86.R12},
		{"eax", x86.EAX},
		{"ebx", x86.EBX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := x86.RegisterByName(tt.name)
			if !ok {
				t.Fatalf("RegisterByName(%q) not found", tt.name)
			}
			if got != tt.want {
				t.Errorf("RegisterByName(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRegisterByNameUnknown(t *testing.T) {
	if _, ok := x86.RegisterByName("notareg"); ok {
		t.Errorf("RegisterByName(notareg) unexpectedly found")
	}
}
