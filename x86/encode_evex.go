package x86

// EVEX encoding (spec.md §4.4 "special classes: EVEX", §8 testable
// property 5 "compressed displacement"). Only ClassEvexRVM is registered in
// the database today; EVEX's other shapes (RM, MR, VSIB gather/scatter)
// are not implemented.

func evexMapBits(m OpcodeMap) byte {
	switch m {
	case Map0F38:
		return 0b10
	case Map0F3A:
		return 0b11
	default:
		return 0b01 // Map0F
	}
}

func evexLBits(l VecLen) byte {
	switch l {
	case Len256:
		return 0b01
	case Len512:
		return 0b10
	default:
		return 0b00
	}
}

func evexRoundBits(r RoundMode) byte {
	switch r {
	case RoundDown:
		return 0b01
	case RoundUp:
		return 0b10
	case RoundTruncate:
		return 0b11
	default:
		return 0b00
	}
}

func vecLenBytes(l VecLen) int {
	switch l {
	case Len256:
		return 32
	case Len512:
		return 64
	default:
		return 16
	}
}

func elemBitsForRM(sig Signature) int {
	explicit := sig.explicitSlots()
	if len(explicit) == 0 {
		return 32
	}
	last := explicit[len(explicit)-1]
	if last.ElemBits != 0 {
		return last.ElemBits
	}
	return 32
}

func encodeEvexRVM(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	dest, vvvvReg, rm := ops[0].Reg, ops[1].Reg, ops[2]
	bExt, xExt := computeRMExtBits(rm)

	h.emit(0x62)
	p0 := (^dest.ExtBit()&1)<<7 | (^xExt&1)<<6 | (^bExt&1)<<5 | (^dest.Ext2Bit()&1)<<4 | evexMapBits(sig.Opcode.Map)
	h.emit(p0)

	w := wBitValue(sig.Opcode.W)
	p1 := w<<7 | (^vvvvField(vvvvReg)&0xF)<<3 | 1<<2 | ppBits(sig.Opcode.Prefix)
	h.emit(p1)

	broadcast := rm.Kind == KindMem && rm.Mem.Broadcast
	l2 := evexLBits(sig.Opcode.L)
	bBit := byte(0)
	if opts.HasRound {
		bBit = 1
		l2 = evexRoundBits(opts.Rounding)
	} else if opts.SuppressAllExceptions || broadcast {
		bBit = 1
	}
	z := byte(0)
	if opts.Zeroing {
		z = 1
	}
	aaa := byte(0)
	if opts.HasMask {
		aaa = vvvvField(opts.Mask) & 0x7
	}
	p2 := z<<7 | l2<<5 | bBit<<4 | (^vvvvReg.Ext2Bit()&1)<<3 | aaa
	h.emit(p2)
	h.emit(sig.Opcode.Bytes...)

	if rm.Kind == KindMem {
		_, _, err := encodeMemEvex(h, dest.Low3(), rm.Mem, sig.TupleType, elemBitsForRM(sig), vecLenBytes(sig.Opcode.L))
		return err
	}
	encodeRegRM(h, dest.Low3(), rm.Reg)
	return nil
}

// encodeMemEvex emits ModR/M [+SIB] [+disp] for an EVEX memory operand,
// using the compressed-disp8 scheme (spec.md §4.4 step 5): when the true
// displacement is an exact multiple of the tuple-derived scale N and the
// quotient fits a signed byte, mod=01 carries disp/N instead of the full
// disp32.
func encodeMemEvex(h *Holder, regLow3 byte, mem Mem, tt TupleType, elemBits, vecLen int) (rexB, rexX byte, err error) {
	if mem.RIPRelative {
		return encodeMemRM(h, regLow3, mem)
	}
	sib := needsSIB(mem)
	n := evexDispScale(tt, elemBits/8, vecLen, mem.Broadcast)
	if n == 0 {
		n = 1
	}

	var mod byte
	var compressed int32
	useDisp32 := false
	if !mem.HasBase {
		mod, useDisp32 = 0b00, true
	} else {
		low3 := mem.Base.Low3()
		switch {
		case mem.Disp == 0 && low3 != 0b101:
			mod = 0b00
		case mem.Disp%int32(n) == 0 && mem.Disp/int32(n) >= -128 && mem.Disp/int32(n) <= 127:
			mod = 0b01
			compressed = mem.Disp / int32(n)
		default:
			mod, useDisp32 = 0b10, true
		}
	}

	rm := byte(0b101)
	if !sib && mem.HasBase {
		rm = mem.Base.Low3()
		rexB = mem.Base.ExtBit()
	} else if sib {
		rm = 0b100
	}
	h.emit(mod<<6 | regLow3<<3 | rm)

	if sib {
		base, index := byte(0b101), byte(0b100)
		if mem.HasBase {
			base = mem.Base.Low3()
			rexB = mem.Base.ExtBit()
		}
		if mem.HasIndex {
			index = mem.Index.Low3()
			rexX = mem.Index.ExtBit()
		}
		h.emit(scaleBits(mem.Scale)<<6 | index<<3 | base)
	}

	switch {
	case useDisp32:
		emitLE32(h, uint32(mem.Disp))
	case mod == 0b01:
		h.emit(byte(int8(compressed)))
	}
	return rexB, rexX, nil
}
