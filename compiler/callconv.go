package compiler

import "github.com/keurnel/x86asm/x86"

// CallConv describes how integer arguments and the return value cross a
// call boundary. SysV is the only convention implemented; Win64's
// four-register-plus-shadow-space convention is a documented gap (see
// DESIGN.md) since nothing in this package's call sites targets it.
type CallConv struct {
	IntArgRegs []x86.Reg
	ReturnReg  x86.Reg
}

// SysV is the System V AMD64 ABI's integer/pointer argument-passing
// convention.
var SysV = CallConv{
	IntArgRegs: []x86.Reg{x86.RDI, x86.RSI, x86.RDX, x86.RCX, x86.R8, x86.R9},
	ReturnReg:  x86.RAX,
}
