package compiler

import "github.com/keurnel/x86asm/x86"

// Allocation is the physical-register or spill-slot assignment chosen for
// one virtual register.
type Allocation struct {
	VReg      VReg
	Reg       x86.Reg
	InReg     bool
	SpillSlot int // byte offset into the spill area; Compile adds the callee-saved push area to address it below RBP. Meaningful only when !InReg
}

// generalPurposePool lists the GPQ registers the allocator draws from, in
// assignment-preference order. RSP/RBP are reserved for the frame; RAX and
// R11 are reserved as the compiler's load/spill scratch registers and
// excluded from the pool (see compiler.go's spillScratch/spillScratch2 and
// loadInto).
var generalPurposePool = []x86.Reg{
	x86.RCX, x86.RDX, x86.RSI, x86.RDI, x86.R8, x86.R9, x86.R10,
	x86.RBX, x86.R12, x86.R13, x86.R14, x86.R15,
}

// calleeSaved is the subset of generalPurposePool the SysV AMD64 ABI
// requires a callee to preserve across a call. Whichever of these the
// allocator actually hands out must be saved and restored in the frame
// (see UsedCalleeSaved, Frame.EmitPrologue/EmitEpilogue in frame.go).
var calleeSaved = map[x86.Reg]bool{
	x86.RBX: true, x86.R12: true, x86.R13: true, x86.R14: true, x86.R15: true,
}

// Allocate runs linear-scan register allocation over ranges (Poletto &
// Sarkar's algorithm): active ranges expire as the scan passes their end,
// and when the free pool is exhausted the active range with the furthest
// remaining end is spilled in favor of the incoming one, if that is an
// improvement. Returns one Allocation per VReg and the total spill area
// size in bytes.
func Allocate(ranges []LiveRange) (map[VReg]Allocation, int) {
	type active struct {
		r   LiveRange
		reg x86.Reg
	}
	free := append([]x86.Reg(nil), generalPurposePool...)
	var actives []active
	result := map[VReg]Allocation{}
	spillBytes := 0

	expireOldRanges := func(pos int) {
		kept := actives[:0]
		for _, a := range actives {
			if a.r.End < pos {
				free = append(free, a.reg)
			} else {
				kept = append(kept, a)
			}
		}
		actives = kept
	}

	spillSlotFor := func(v VReg) int {
		spillBytes += 8
		return spillBytes
	}

	for _, r := range ranges {
		expireOldRanges(r.Start)

		if len(free) == 0 {
			spillIdx := 0
			for i, a := range actives {
				if a.r.End > actives[spillIdx].r.End {
					spillIdx = i
				}
			}
			if len(actives) > 0 && actives[spillIdx].r.End > r.End {
				spilled := actives[spillIdx]
				actives[spillIdx] = active{r: r, reg: spilled.reg}
				result[spilled.r.VReg] = Allocation{VReg: spilled.r.VReg, SpillSlot: spillSlotFor(spilled.r.VReg)}
				result[r.VReg] = Allocation{VReg: r.VReg, Reg: spilled.reg, InReg: true}
				continue
			}
			result[r.VReg] = Allocation{VReg: r.VReg, SpillSlot: spillSlotFor(r.VReg)}
			continue
		}

		reg := free[0]
		free = free[1:]
		actives = append(actives, active{r: r, reg: reg})
		result[r.VReg] = Allocation{VReg: r.VReg, Reg: reg, InReg: true}
	}
	return result, spillBytes
}

// UsedCalleeSaved returns the callee-saved registers present in allocs, in
// generalPurposePool order, so a frame can push/pop them deterministically.
func UsedCalleeSaved(allocs map[VReg]Allocation) []x86.Reg {
	used := map[x86.Reg]bool{}
	for _, a := range allocs {
		if a.InReg && calleeSaved[a.Reg] {
			used[a.Reg] = true
		}
	}
	var out []x86.Reg
	for _, reg := range generalPurposePool {
		if used[reg] {
			out = append(out, reg)
		}
	}
	return out
}
