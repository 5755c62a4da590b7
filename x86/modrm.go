package x86

import "github.com/keurnel/x86asm/internal/asmerr"

// dispClassFor decides mod and the displacement width a memory operand
// needs, applying the SDM's reserved mod=00/rm=101 encoding (RIP-relative
// in 64-bit mode, or absolute disp32 with no base) and the RBP/R13
// exception — base registers whose low 3 bits are 101 cannot use mod=00
// for "no displacement", so a disp8 of 0 is forced instead.
func dispClassFor(mem Mem) (mod byte, dispBytes int) {
	if mem.RIPRelative {
		return 0b00, 4
	}
	if !mem.HasBase {
		return 0b00, 4
	}
	low3 := mem.Base.Low3()
	switch {
	case mem.Disp == 0 && low3 != 0b101:
		return 0b00, 0
	case mem.Disp >= -128 && mem.Disp <= 127:
		return 0b01, 1
	default:
		return 0b10, 4
	}
}

func scaleBits(scale byte) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

// needsSIB reports whether mem requires a SIB byte: any indexed addressing,
// or a base register whose low 3 bits are 100 (RSP/R12), which ModR/M
// reserves to mean "SIB follows" rather than naming a base register.
func needsSIB(mem Mem) bool {
	if mem.HasIndex {
		return true
	}
	return mem.HasBase && mem.Base.Low3() == 0b100
}

// encodeRegRM appends a register-direct ModR/M byte (mod=11) for reg, rm and
// reports rm's REX.B bit.
func encodeRegRM(h *Holder, regLow3 byte, rm Reg) byte {
	h.emit(0b11<<6 | regLow3<<3 | rm.Low3())
	return rm.ExtBit()
}

// encodeMemRM appends ModR/M [+SIB] [+disp] for a memory operand, resolving
// RIP-relative label references through the holder's link/relocation
// machinery, and reports the REX.B/REX.X bits the base/index registers
// require.
func encodeMemRM(h *Holder, regLow3 byte, mem Mem) (rexB, rexX byte, err error) {
	sib := needsSIB(mem)
	mod, dispBytes := dispClassFor(mem)

	rm := byte(0b101)
	if !sib && mem.HasBase {
		rm = mem.Base.Low3()
		rexB = mem.Base.ExtBit()
	} else if sib {
		rm = 0b100
	}
	if mem.RIPRelative {
		rm = 0b101
		sib = false
	}

	h.emit(mod<<6 | regLow3<<3 | rm)

	if sib {
		base, index := byte(0b101), byte(0b100)
		if mem.HasBase {
			base = mem.Base.Low3()
			rexB = mem.Base.ExtBit()
		}
		if mem.HasIndex {
			if mem.Index.Low3() == 0b100 && mem.Index.Class == ClassGPQ {
				return 0, 0, asmerr.New(asmerr.InvalidMemoryOperand, "", "RSP/R12 cannot be used as an index register")
			}
			index = mem.Index.Low3()
			rexX = mem.Index.ExtBit()
		}
		h.emit(scaleBits(mem.Scale)<<6 | index<<3 | base)
	}

	switch {
	case mem.RIPRelative:
		err = h.referenceLabel(mem.LabelID, PatchRel32)
	case dispBytes == 1:
		h.emit(byte(int8(mem.Disp)))
	case dispBytes == 4:
		emitLE32(h, uint32(mem.Disp))
	}
	return rexB, rexX, err
}

func emitLE32(h *Holder, v uint32) {
	h.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func emitLE64(h *Holder, v uint64) {
	for i := 0; i < 8; i++ {
		h.emit(byte(v >> (8 * i)))
	}
}

// immWidthFor derives the emitted immediate width from the slot that
// matched it, defaulting to 32 bits when the slot declared no fixed width
// (ClassOI's register-sized forms carry their own explicit ImmBits, so this
// path is only taken by hand-built callers, not the database).
func immWidthFor(bits int) int {
	if bits == 0 {
		return 32
	}
	return bits
}

func emitImmediate(h *Holder, v int64, bits int) error {
	switch immWidthFor(bits) {
	case 8:
		if v < -128 || v > 255 {
			return asmerr.New(asmerr.InvalidImmediate, "", "%d does not fit imm8", v)
		}
		h.emit(byte(v))
	case 16:
		if v < -32768 || v > 65535 {
			return asmerr.New(asmerr.InvalidImmediate, "", "%d does not fit imm16", v)
		}
		h.emit(byte(v), byte(v>>8))
	case 32:
		if v < -(1<<31) || v > (1<<32)-1 {
			return asmerr.New(asmerr.InvalidImmediate, "", "%d does not fit imm32", v)
		}
		emitLE32(h, uint32(v))
	case 64:
		emitLE64(h, uint64(v))
	}
	return nil
}
