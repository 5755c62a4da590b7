package compiler_test

import (
	"testing"

	"github.com/keurnel/x86asm/compiler"
	"github.com/keurnel/x86asm/x86"
)

func TestCompileSimpleFunction(t *testing.T) {
	const v0, v1, v2 = compiler.VReg(0), compiler.VReg(1), compiler.VReg(2)
	nodes := []compiler.Node{
		{Op: compiler.OpMov, Def: v0, Imm: 5, HasImm: true},
		{Op: compiler.OpMov, Def: v1, Imm: 7, HasImm: true},
		{Op: compiler.OpAdd, Def: v2, Uses: []compiler.VReg{v0, v1}},
		{Op: compiler.OpRet},
	}

	c := compiler.NewCompiler(x86.Arch64, compiler.SysV)
	if err := c.Compile(nodes); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	code, err := c.Asm.Holder.Finalize(0)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(code) == 0 {
		t.Fatalf("Compile produced no code")
	}
	// A ret instruction (0xC3) must terminate the emitted function body,
	// since the frame epilogue always emits it last.
	if code[len(code)-1] != 0xC3 {
		t.Errorf("last byte = %#x, want 0xC3 (ret)", code[len(code)-1])
	}
}

func TestFrameSizeRoundsTo16(t *testing.T) {
	cases := []struct{ spillBytes, want int }{
		{0, 0},
		{8, 16},
		{16, 16},
		{24, 32},
	}
	for _, tt := range cases {
		f := compiler.NewFrame(tt.spillBytes, nil)
		if f.Size != tt.want {
			t.Errorf("NewFrame(%d).Size = %d, want %d", tt.spillBytes, f.Size, tt.want)
		}
	}
}
