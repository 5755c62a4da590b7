package x86

// Stack-frame instructions: PUSH/POP (register-in-opcode and immediate
// forms), ENTER/LEAVE.

var PUSH = register("PUSH",
	Signature{ArchMask: Arch64, Class: ClassO,
		Slots:  []Slot{roSlot(KGPQ, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x50}}},
	Signature{ArchMask: ArchBoth, Class: ClassI,
		Slots:  []Slot{{Kinds: KImm, Access: AccessRead, ImmBits: 8}},
		Opcode: OpcodeWord{Bytes: []byte{0x6A}}},
	Signature{ArchMask: ArchBoth, Class: ClassI,
		Slots:  []Slot{{Kinds: KImm, Access: AccessRead, ImmBits: 32}},
		Opcode: OpcodeWord{Bytes: []byte{0x68}}},
	Signature{ArchMask: Arch64, Class: ClassM,
		Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessRead}},
		Opcode: OpcodeWord{Bytes: []byte{0xFF}, ModRMExt: 6}},
)

var POP = register("POP",
	Signature{ArchMask: Arch64, Class: ClassO,
		Slots:  []Slot{rwSlot(KGPQ, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x58}}},
	Signature{ArchMask: Arch64, Class: ClassM,
		Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessWrite}},
		Opcode: OpcodeWord{Bytes: []byte{0x8F}, ModRMExt: 0}},
)

var ENTER = register("ENTER",
	Signature{ArchMask: ArchBoth, Class: ClassEnter,
		Slots:  []Slot{{Kinds: KImm, Access: AccessRead, ImmBits: 16}, {Kinds: KImm, Access: AccessRead, ImmBits: 8}},
		Opcode: OpcodeWord{Bytes: []byte{0xC8}}},
)

var LEAVE = register("LEAVE",
	Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xC9}}},
)
