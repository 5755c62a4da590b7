package x86

// Arithmetic and logical instructions. The "group 1" ALU ops (ADD/OR/ADC/
// SBB/AND/SUB/XOR/CMP) all share one opcode layout (see Intel SDM table
// A-1): an MR byte pair at base+0/base+1 for the 8-bit/wide reg-reg forms
// and a shared 0x81 /digit immediate form. aluGroup1 builds all of them
// once instead of repeating the teacher's per-mnemonic literal table
// (architecture/x86_64/instructions.go's hand-written ADD form list) for
// every one of the eight mnemonics that share it.
func aluGroup1(mnemonic string, base8, baseWide byte, digit int8) InstID {
	return register(mnemonic,
		Signature{ArchMask: ArchBoth, Class: ClassMR,
			Slots:  []Slot{{Kinds: KGPB8 | KGPB8H, Mem: M8, Access: AccessReadWrite}, roSlot(KGPB8|KGPB8H, 0)},
			Opcode: OpcodeWord{Bytes: []byte{base8}}},
		Signature{ArchMask: ArchBoth, Class: ClassMR,
			Slots:  []Slot{{Kinds: KGPD, Mem: M32, Access: AccessReadWrite}, roSlot(KGPD, 0)},
			Opcode: OpcodeWord{Bytes: []byte{baseWide}}},
		Signature{ArchMask: Arch64, Class: ClassMR,
			Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessReadWrite}, roSlot(KGPQ, 0)},
			Opcode: OpcodeWord{Bytes: []byte{baseWide}, W: W1}},
		Signature{ArchMask: ArchBoth, Class: ClassMI,
			Slots:  []Slot{{Kinds: KGPD, Mem: M32, Access: AccessReadWrite}, {Kinds: KImm, Access: AccessRead, ImmBits: 32}},
			Opcode: OpcodeWord{Bytes: []byte{0x81}, ModRMExt: digit}},
		Signature{ArchMask: Arch64, Class: ClassMI,
			Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessReadWrite}, {Kinds: KImm, Access: AccessRead, ImmBits: 32}},
			Opcode: OpcodeWord{Bytes: []byte{0x81}, ModRMExt: digit, W: W1}},
	)
}

var (
	ADD = aluGroup1("ADD", 0x00, 0x01, 0)
	OR  = aluGroup1("OR", 0x08, 0x09, 1)
	ADC = aluGroup1("ADC", 0x10, 0x11, 2)
	SBB = aluGroup1("SBB", 0x18, 0x19, 3)
	AND = aluGroup1("AND", 0x20, 0x21, 4)
	SUB = aluGroup1("SUB", 0x28, 0x29, 5)
	XOR = aluGroup1("XOR", 0x30, 0x31, 6)
	CMP = aluGroup1("CMP", 0x38, 0x39, 7)
)

var TEST = register("TEST",
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots:  []Slot{roSlot(KGPB8|KGPB8H, M8), roSlot(KGPB8|KGPB8H, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x84}}},
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots:  []Slot{roSlot(KGPD, M32), roSlot(KGPD, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x85}}},
	Signature{ArchMask: Arch64, Class: ClassMR,
		Slots:  []Slot{roSlot(KGPQ, M64), roSlot(KGPQ, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x85}, W: W1}},
	Signature{ArchMask: ArchBoth, Class: ClassMI,
		Slots:  []Slot{roSlot(KGPD, M32), {Kinds: KImm, Access: AccessRead, ImmBits: 32}},
		Opcode: OpcodeWord{Bytes: []byte{0xF7}, ModRMExt: 0}},
)

// unaryM builds the "group 3/5-style" single r/m-operand, opcode-extension
// encodings shared by INC/DEC/NEG/NOT/MUL/IMUL/DIV/IDIV.
func unaryM(mnemonic string, opcode8, opcodeWide byte, digit int8, access Access) InstID {
	return register(mnemonic,
		Signature{ArchMask: ArchBoth, Class: ClassM,
			Slots:  []Slot{{Kinds: KGPB8 | KGPB8H, Mem: M8, Access: access}},
			Opcode: OpcodeWord{Bytes: []byte{opcode8}, ModRMExt: digit}},
		Signature{ArchMask: ArchBoth, Class: ClassM,
			Slots:  []Slot{{Kinds: KGPD, Mem: M32, Access: access}},
			Opcode: OpcodeWord{Bytes: []byte{opcodeWide}, ModRMExt: digit}},
		Signature{ArchMask: Arch64, Class: ClassM,
			Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: access}},
			Opcode: OpcodeWord{Bytes: []byte{opcodeWide}, ModRMExt: digit, W: W1}},
	)
}

var (
	INC  = unaryM("INC", 0xFE, 0xFF, 0, AccessReadWrite)
	DEC  = unaryM("DEC", 0xFE, 0xFF, 1, AccessReadWrite)
	NOT  = unaryM("NOT", 0xF6, 0xF7, 2, AccessReadWrite)
	NEG  = unaryM("NEG", 0xF6, 0xF7, 3, AccessReadWrite)
	MUL  = unaryM("MUL", 0xF6, 0xF7, 4, AccessRead)
	IMUL = unaryM("IMUL", 0xF6, 0xF7, 5, AccessRead)
	DIV  = unaryM("DIV", 0xF6, 0xF7, 6, AccessRead)
	IDIV = unaryM("IDIV", 0xF6, 0xF7, 7, AccessRead)
)

// shiftGroup builds the shift/rotate "group 2" encodings (SHL/SHR/SAR/ROL/
// ROR) with a CL-count form (0xD3 /digit) — the count is implicit in CL,
// which is why the second slot is AccessImplicitRead with a fixed register
// (spec.md §4.3 step 2, "implicit AX" style slots).
func shiftGroup(mnemonic string, digit int8) InstID {
	return register(mnemonic,
		Signature{ArchMask: ArchBoth, Class: ClassMI,
			Slots: []Slot{{Kinds: KGPD, Mem: M32, Access: AccessReadWrite}, {Kinds: KImm, Access: AccessRead, ImmBits: 8}},
			Opcode: OpcodeWord{Bytes: []byte{0xC1}, ModRMExt: digit}},
		Signature{ArchMask: Arch64, Class: ClassMI,
			Slots: []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessReadWrite}, {Kinds: KImm, Access: AccessRead, ImmBits: 8}},
			Opcode: OpcodeWord{Bytes: []byte{0xC1}, ModRMExt: digit, W: W1}},
		Signature{ArchMask: ArchBoth, Class: ClassM,
			Slots: []Slot{
				{Kinds: KGPD, Mem: M32, Access: AccessReadWrite},
				{Kinds: KGPB8, Access: AccessImplicitRead, Fixed: FixedReg{HasFixedReg: true, Class: ClassGPB8Lo, ID: 1}},
			},
			Opcode: OpcodeWord{Bytes: []byte{0xD3}, ModRMExt: digit}},
	)
}

var (
	SHL = shiftGroup("SHL", 4)
	SHR = shiftGroup("SHR", 5)
	SAR = shiftGroup("SAR", 7)
	ROL = shiftGroup("ROL", 0)
	ROR = shiftGroup("ROR", 1)
)
