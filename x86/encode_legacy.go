package x86

// encodeZO handles zero-operand instructions: just the opcode bytes, no
// ModR/M, no operands to drive REX.
func encodeZO(h *Holder, sig Signature, opts EmitOptions) error {
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)
	if needsREX(w, 0, 0, 0, false) {
		emitREX(h, w, 0, 0, 0)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)
	return nil
}

// encodeO handles PUSH/POP-style "register encoded in the opcode's low 3
// bits" forms (+rd/+rb).
func encodeO(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	reg := ops[0].Reg
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)
	b := reg.ExtBit()
	if needsREX(w, 0, 0, b, reg.RequiresREX()) {
		emitREX(h, w, 0, 0, b)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	bytes := append([]byte(nil), sig.Opcode.Bytes...)
	bytes[len(bytes)-1] += reg.Low3()
	h.emit(bytes...)
	return nil
}

// encodeM handles single-r/m-operand, /digit-extension forms (INC/DEC/NOT/
// NEG/MUL/IMUL/DIV/IDIV, PUSH m64, POP m64, CALL indirect).
func encodeM(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	op := ops[0]
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)

	var rexB, rexX byte
	forced := anyOperandForcesREX(ops)
	if op.Kind == KindMem {
		rexB, rexX = memExtBits(op.Mem)
	} else {
		rexB = op.Reg.ExtBit()
	}
	if needsREX(w, 0, rexX, rexB, forced) {
		emitREX(h, w, 0, rexX, rexB)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)

	digit := byte(sig.Opcode.ModRMExt)
	if op.Kind == KindMem {
		_, _, err := encodeMemRM(h, digit, op.Mem)
		return err
	}
	encodeRegRM(h, digit, op.Reg)
	return nil
}

// encodeRM handles "reg, r/m" forms where the register operand is the
// destination (ModR/M.reg) and the second operand is the r/m.
func encodeRM(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	return encodeRegRMPair(h, sig, ops[0].Reg, ops[1], opts)
}

// encodeMR handles "r/m, reg" forms where the register operand is the
// source (ModR/M.reg) and the first operand is the r/m (destination).
func encodeMR(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	return encodeRegRMPair(h, sig, ops[1].Reg, ops[0], opts)
}

// encodeRegRMPair is the shared RM/MR body: regOperand always lands in
// ModR/M.reg; rmOperand (register or memory) lands in ModR/M.rm [+SIB+disp].
func encodeRegRMPair(h *Holder, sig Signature, regOperand Reg, rmOperand Operand, opts EmitOptions) error {
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)
	r := regOperand.ExtBit()

	var rexB, rexX byte
	if rmOperand.Kind == KindMem {
		rexB, rexX = memExtBits(rmOperand.Mem)
	} else {
		rexB = rmOperand.Reg.ExtBit()
	}
	forced := regOperand.RequiresREX() || (rmOperand.Kind == KindReg && rmOperand.Reg.RequiresREX()) ||
		(rmOperand.Kind == KindMem && memForcesREX(rmOperand.Mem))
	if needsREX(w, r, rexX, rexB, forced) {
		emitREX(h, w, r, rexX, rexB)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)

	if rmOperand.Kind == KindMem {
		_, _, err := encodeMemRM(h, regOperand.Low3(), rmOperand.Mem)
		return err
	}
	encodeRegRM(h, regOperand.Low3(), rmOperand.Reg)
	return nil
}

// encodeMI handles r/m, imm forms (ALU group-1 0x81, shift group 0xC1,
// TEST 0xF7).
func encodeMI(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	rm := ops[0]
	imm := ops[1]
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)

	var rexB, rexX byte
	if rm.Kind == KindMem {
		rexB, rexX = memExtBits(rm.Mem)
	} else {
		rexB = rm.Reg.ExtBit()
	}
	forced := anyOperandForcesREX(ops[:1])
	if needsREX(w, 0, rexX, rexB, forced) {
		emitREX(h, w, 0, rexX, rexB)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)

	digit := byte(sig.Opcode.ModRMExt)
	if rm.Kind == KindMem {
		if _, _, err := encodeMemRM(h, digit, rm.Mem); err != nil {
			return err
		}
	} else {
		encodeRegRM(h, digit, rm.Reg)
	}
	return emitImmediate(h, imm.Imm.Value, explicitImmBits(sig, 1))
}

// encodeOI handles register-in-opcode + trailing immediate forms (MOV
// r, imm).
func encodeOI(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	reg := ops[0].Reg
	imm := ops[1]
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)
	b := reg.ExtBit()
	if needsREX(w, 0, 0, b, reg.RequiresREX()) {
		emitREX(h, w, 0, 0, b)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	bytes := append([]byte(nil), sig.Opcode.Bytes...)
	bytes[len(bytes)-1] += reg.Low3()
	h.emit(bytes...)
	return emitImmediate(h, imm.Imm.Value, explicitImmBits(sig, 1))
}

// encodeI handles a bare immediate with no ModR/M (PUSH imm, RET imm16).
func encodeI(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	w := wBitValue(sig.Opcode.W)
	if needsREX(w, 0, 0, 0, false) {
		emitREX(h, w, 0, 0, 0)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)
	return emitImmediate(h, ops[0].Imm.Value, explicitImmBits(sig, 0))
}

// encodeD handles relative branch displacements (JMP/Jcc/CALL/LOOP*/JCXZ).
// It chooses short (rel8) vs near (rel32) form per spec.md §4.4's "jumps"
// special case: prefer the short alternate when one exists and the label
// is already bound close enough; otherwise use the near/only form and let
// the label manager patch the displacement at Bind time (or relocate_to
// for cross-section targets).
func encodeD(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	target := ops[0].Label
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)

	op := sig.Opcode
	kind := PatchRel32
	if sig.Opcode.RelWidth == 8 {
		kind = PatchRel8
	}
	// A label already bound behind the current position can be measured
	// exactly; prefer the short form whenever it reaches. A forward
	// reference has no known distance yet, so a caller that knows it fits
	// signals that via opts.PreferShort rather than the encoder guessing.
	if sig.HasAlt {
		if reach, ok := h.backwardReachesRel8(target); ok && reach {
			op, kind = sig.AltOpcode, PatchRel8
		} else if opts.PreferShort {
			op, kind = sig.AltOpcode, PatchRel8
		}
	}
	emitOpcodeMapEscape(h, op.Map)
	h.emit(op.Bytes...)
	return h.referenceLabel(target, kind)
}

// encodeEnter emits ENTER imm16, imm8.
func encodeEnter(h *Holder, sig Signature, ops []Operand, opts EmitOptions) error {
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, opts)
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)
	h.emit(byte(ops[0].Imm.Value), byte(ops[0].Imm.Value>>8))
	h.emit(byte(ops[1].Imm.Value))
	return nil
}

// encodeString emits a zero-operand string instruction with its optional
// sticky rep/repe/repne prefix.
func encodeString(h *Holder, sig Signature, opts EmitOptions) error {
	switch opts.Rep {
	case Rep, RepE:
		h.emit(0xF3)
	case RepNE:
		h.emit(0xF2)
	}
	emitLegacyPrefixBytes(h, sig.Opcode.Prefix, EmitOptions{})
	w := wBitValue(sig.Opcode.W)
	if needsREX(w, 0, 0, 0, false) {
		emitREX(h, w, 0, 0, 0)
	}
	emitOpcodeMapEscape(h, sig.Opcode.Map)
	h.emit(sig.Opcode.Bytes...)
	return nil
}

func memExtBits(m Mem) (rexB, rexX byte) {
	if m.HasBase {
		rexB = m.Base.ExtBit()
	}
	if m.HasIndex {
		rexX = m.Index.ExtBit()
	}
	return
}

func memForcesREX(m Mem) bool {
	if m.HasBase && m.Base.RequiresREX() {
		return true
	}
	if m.HasIndex && m.Index.RequiresREX() {
		return true
	}
	return false
}

// explicitImmBits finds the ImmBits declared on the nth explicit slot (skip
// implicit slots, which never reach the encoder as caller-supplied ops).
func explicitImmBits(sig Signature, explicitIndex int) int {
	explicit := sig.explicitSlots()
	if explicitIndex >= len(explicit) {
		return 0
	}
	return explicit[explicitIndex].ImmBits
}
