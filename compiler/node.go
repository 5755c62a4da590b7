package compiler

import "github.com/keurnel/x86asm/x86"

// Op is the operation a Node performs.
type Op int

const (
	OpMov Op = iota
	OpAdd
	OpSub
	OpXor
	OpCmp
	OpCall
	OpRet
)

// Node is one instruction in the virtual-register IR: at most one
// definition and up to two uses. This is intentionally a flat three-
// address shape rather than a general SSA graph — enough to exercise
// liveness, linear-scan allocation and frame synthesis without building a
// full compiler front end (see DESIGN.md).
type Node struct {
	Op   Op
	Def  VReg
	Uses []VReg

	Imm    int64
	HasImm bool

	CallTarget x86.LabelID
}
