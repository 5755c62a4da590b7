package compiler

import "github.com/keurnel/x86asm/x86"

// Frame describes one function's stack-frame layout.
type Frame struct {
	Size        int       // spill area size, padded so Size plus the callee-saved pushes is a multiple of 16
	CalleeSaved []x86.Reg // registers the allocator handed out that the ABI requires preserved
}

// NewFrame pads spillBytes so that the spill area plus the callee-saved
// pushes is a multiple of 16 bytes, preserving the System V ABI's
// stack-alignment-at-call requirement. calleeSaved is the register set
// Allocate reports via UsedCalleeSaved; the frame pushes/pops exactly these
// between the frame pointer and the spill area.
func NewFrame(spillBytes int, calleeSaved []x86.Reg) Frame {
	size := spillBytes
	if rem := (size + 8*len(calleeSaved)) % 16; rem != 0 {
		size += 16 - rem
	}
	return Frame{Size: size, CalleeSaved: calleeSaved}
}

// EmitPrologue appends `push rbp; mov rbp, rsp; push <callee-saved...>;
// sub rsp, Size`. The callee-saved pushes happen between the frame pointer
// setup and the spill-area allocation so EmitEpilogue can unwind them in
// exact mirror order.
func (f Frame) EmitPrologue(a *x86.Assembler) error {
	if err := a.Push(x86.RBP); err != nil {
		return err
	}
	if err := a.MovRR(x86.RBP, x86.RSP); err != nil {
		return err
	}
	for _, reg := range f.CalleeSaved {
		if err := a.Push(reg); err != nil {
			return err
		}
	}
	if f.Size == 0 {
		return nil
	}
	return a.Emit(x86.SUB, x86.R(x86.RSP), x86.I(int64(f.Size)))
}

// EmitEpilogue appends `add rsp, Size; pop <callee-saved in reverse>;
// pop rbp; ret`. It deliberately does not use a `mov rsp, rbp` shortcut:
// that would deallocate the callee-saved pushes without popping their
// values back into the registers, silently corrupting them for the caller.
func (f Frame) EmitEpilogue(a *x86.Assembler) error {
	if f.Size != 0 {
		if err := a.Emit(x86.ADD, x86.R(x86.RSP), x86.I(int64(f.Size))); err != nil {
			return err
		}
	}
	for i := len(f.CalleeSaved) - 1; i >= 0; i-- {
		if err := a.Pop(f.CalleeSaved[i]); err != nil {
			return err
		}
	}
	if err := a.Pop(x86.RBP); err != nil {
		return err
	}
	return a.Ret()
}
