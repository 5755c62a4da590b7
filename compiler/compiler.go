package compiler

import (
	"github.com/keurnel/x86asm/internal/asmerr"
	"github.com/keurnel/x86asm/x86"
)

// spillScratch and spillScratch2 are the two GPQ registers the compiler
// uses to materialize a spilled value into a register for one instruction,
// excluded from generalPurposePool so they are never simultaneously the
// home of a live, non-spilled virtual register.
var spillScratch, spillScratch2 = x86.RAX, x86.R11

// Compiler lowers a Node list through liveness analysis, linear-scan
// register allocation and calling-convention-driven frame synthesis into
// concrete encodings, via an *x86.Assembler.
type Compiler struct {
	Asm  *x86.Assembler
	Conv CallConv
}

// NewCompiler opens a compiler targeting arch under the given calling
// convention, with a fresh assembler.
func NewCompiler(arch x86.Arch, conv CallConv) *Compiler {
	return &Compiler{Asm: x86.NewAssembler(arch), Conv: conv}
}

// Compile allocates nodes' virtual registers, emits the function's
// prologue, lowers every node into the assembler's active section, and
// emits the epilogue.
func (c *Compiler) Compile(nodes []Node) error {
	ranges := ComputeLiveness(nodes)
	allocs, spillBytes := Allocate(ranges)
	frame := NewFrame(spillBytes, UsedCalleeSaved(allocs))
	// The spill area sits below the callee-saved pushes, so shift every
	// spill slot past them.
	pushed := 8 * len(frame.CalleeSaved)
	for v, a := range allocs {
		if !a.InReg {
			a.SpillSlot += pushed
			allocs[v] = a
		}
	}

	if err := frame.EmitPrologue(c.Asm); err != nil {
		return err
	}
	for _, n := range nodes {
		if err := c.lower(n, allocs); err != nil {
			return err
		}
	}
	return frame.EmitEpilogue(c.Asm)
}

func (c *Compiler) loadInto(v VReg, allocs map[VReg]Allocation, scratch x86.Reg) (x86.Reg, error) {
	a, ok := allocs[v]
	if !ok {
		return x86.Reg{}, asmerr.New(asmerr.Internal, "", "no allocation for vreg %d", v)
	}
	if a.InReg {
		return a.Reg, nil
	}
	if err := c.Asm.MovRM(scratch, x86.MD(x86.RBP, -int32(a.SpillSlot))); err != nil {
		return x86.Reg{}, err
	}
	return scratch, nil
}

func (c *Compiler) storeFrom(v VReg, allocs map[VReg]Allocation, value x86.Reg) error {
	a, ok := allocs[v]
	if !ok {
		return asmerr.New(asmerr.Internal, "", "no allocation for vreg %d", v)
	}
	if a.InReg {
		if a.Reg == value {
			return nil
		}
		return c.Asm.MovRR(a.Reg, value)
	}
	return c.Asm.MovMR(x86.MD(x86.RBP, -int32(a.SpillSlot)), value)
}

func (c *Compiler) lower(n Node, allocs map[VReg]Allocation) error {
	switch n.Op {
	case OpMov:
		if n.HasImm {
			dst, err := c.regFor(n.Def, allocs)
			if err != nil {
				return err
			}
			return c.Asm.MovRI(dst, n.Imm)
		}
		src, err := c.loadInto(n.Uses[0], allocs, spillScratch)
		if err != nil {
			return err
		}
		return c.storeFrom(n.Def, allocs, src)

	case OpAdd, OpSub, OpXor, OpCmp:
		left, err := c.loadInto(n.Uses[0], allocs, spillScratch)
		if err != nil {
			return err
		}
		right, err := c.loadInto(n.Uses[1], allocs, spillScratch2)
		if err != nil {
			return err
		}
		var opErr error
		switch n.Op {
		case OpAdd:
			opErr = c.Asm.Emit(x86.ADD, x86.R(left), x86.R(right))
		case OpSub:
			opErr = c.Asm.Emit(x86.SUB, x86.R(left), x86.R(right))
		case OpXor:
			opErr = c.Asm.Emit(x86.XOR, x86.R(left), x86.R(right))
		case OpCmp:
			opErr = c.Asm.Emit(x86.CMP, x86.R(left), x86.R(right))
		}
		if opErr != nil {
			return opErr
		}
		if n.Op == OpCmp {
			return nil
		}
		return c.storeFrom(n.Def, allocs, left)

	case OpCall:
		return c.Asm.Call(n.CallTarget)

	case OpRet:
		return nil // the frame epilogue emits the real RET

	default:
		return asmerr.New(asmerr.Internal, "", "unhandled node op %d", n.Op)
	}
}

func (c *Compiler) regFor(v VReg, allocs map[VReg]Allocation) (x86.Reg, error) {
	a, ok := allocs[v]
	if !ok || !a.InReg {
		return x86.Reg{}, asmerr.New(asmerr.Internal, "", "vreg %d must be register-resident for an immediate move", v)
	}
	return a.Reg, nil
}
