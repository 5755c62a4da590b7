package compiler_test

import (
	"testing"

	"github.com/keurnel/x86asm/compiler"
)

func TestComputeLiveness(t *testing.T) {
	// v0 = 5; v1 = 10; v2 = v0 + v1; ret v2
	const v0, v1, v2 = compiler.VReg(0), compiler.VReg(1), compiler.VReg(2)
	nodes := []compiler.Node{
		{Op: compiler.OpMov, Def: v0, Imm: 5, HasImm: true},
		{Op: compiler.OpMov, Def: v1, Imm: 10, HasImm: true},
		{Op: compiler.OpAdd, Def: v2, Uses: []compiler.VReg{v0, v1}},
		{Op: compiler.OpRet},
	}

	ranges := compiler.ComputeLiveness(nodes)
	byVReg := map[compiler.VReg]compiler.LiveRange{}
	for _, r := range ranges {
		byVReg[r.VReg] = r
	}

	if r := byVReg[v0]; r.Start != 0 || r.End != 2 {
		t.Errorf("v0 range = %+v, want Start=0 End=2", r)
	}
	if r := byVReg[v1]; r.Start != 1 || r.End != 2 {
		t.Errorf("v1 range = %+v, want Start=1 End=2", r)
	}
	if r := byVReg[v2]; r.Start != 2 || r.End != 2 {
		t.Errorf("v2 range = %+v, want Start=2 End=2", r)
	}
}
