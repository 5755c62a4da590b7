package x86

// Data movement instructions: MOV and its zero/sign-extending and
// load-effective-address relatives, grouped the way the teacher's
// architecture/x86_64/instructions.go groups "Data Movement Instructions".

func rwSlot(k OpKind, mem MemForm) Slot { return Slot{Kinds: k, Mem: mem, Access: AccessWrite} }
func roSlot(k OpKind, mem MemForm) Slot { return Slot{Kinds: k, Mem: mem, Access: AccessRead} }

var MOV = register("MOV",
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots: []Slot{rwSlot(KGPB8|KGPB8H, M8), roSlot(KGPB8|KGPB8H, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x88}}},
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots: []Slot{rwSlot(KGPW, M16), roSlot(KGPW, 0)},
		Opcode: OpcodeWord{Prefix: PrefixGroup66, Bytes: []byte{0x89}}},
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots: []Slot{rwSlot(KGPD, M32), roSlot(KGPD, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x89}}},
	Signature{ArchMask: Arch64, Class: ClassMR,
		Slots: []Slot{rwSlot(KGPQ, M64), roSlot(KGPQ, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x89}, W: W1}},
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPB8|KGPB8H, 0), roSlot(KGPB8|KGPB8H, M8)},
		Opcode: OpcodeWord{Bytes: []byte{0x8A}}},
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), roSlot(KGPD, M32)},
		Opcode: OpcodeWord{Bytes: []byte{0x8B}}},
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), roSlot(KGPQ, M64)},
		Opcode: OpcodeWord{Bytes: []byte{0x8B}, W: W1}},
	Signature{ArchMask: ArchBoth, Class: ClassOI,
		Slots: []Slot{rwSlot(KGPB8, 0), {Kinds: KImm, Access: AccessRead, ImmBits: 8}},
		Opcode: OpcodeWord{Bytes: []byte{0xB0}}},
	Signature{ArchMask: ArchBoth, Class: ClassOI,
		Slots: []Slot{rwSlot(KGPD, 0), {Kinds: KImm, Access: AccessRead, ImmBits: 32}},
		Opcode: OpcodeWord{Bytes: []byte{0xB8}}},
	Signature{ArchMask: Arch64, Class: ClassOI,
		Slots: []Slot{rwSlot(KGPQ, 0), {Kinds: KImm, Access: AccessRead, ImmBits: 64}},
		Opcode: OpcodeWord{Bytes: []byte{0xB8}, W: W1}},
)

var MOVZX = register("MOVZX",
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), roSlot(KGPB8|KGPB8H, M8)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xB6}}},
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), roSlot(KGPW, M16)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xB7}}},
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), roSlot(KGPB8|KGPB8H, M8)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xB6}, W: W1}},
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), roSlot(KGPW, M16)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xB7}, W: W1}},
)

var MOVSX = register("MOVSX",
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), roSlot(KGPB8|KGPB8H, M8)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xBE}}},
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), roSlot(KGPW, M16)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xBF}}},
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), roSlot(KGPB8|KGPB8H, M8)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xBE}, W: W1}},
)

var MOVSXD = register("MOVSXD",
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), roSlot(KGPD, M32)},
		Opcode: OpcodeWord{Bytes: []byte{0x63}, W: W1}},
)

var LEA = register("LEA",
	Signature{ArchMask: ArchBoth, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPD, 0), {Kinds: KMem, Mem: MAny, Access: AccessRead}},
		Opcode: OpcodeWord{Bytes: []byte{0x8D}}},
	Signature{ArchMask: Arch64, Class: ClassRM,
		Slots: []Slot{rwSlot(KGPQ, 0), {Kinds: KMem, Mem: MAny, Access: AccessRead}},
		Opcode: OpcodeWord{Bytes: []byte{0x8D}, W: W1}},
)

var XCHG = register("XCHG",
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots: []Slot{{Kinds: KGPB8 | KGPB8H, Mem: M8, Access: AccessReadWrite}, roSlot(KGPB8|KGPB8H, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x86}}},
	Signature{ArchMask: ArchBoth, Class: ClassMR,
		Slots: []Slot{{Kinds: KGPD, Mem: M32, Access: AccessReadWrite}, roSlot(KGPD, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x87}}},
	Signature{ArchMask: Arch64, Class: ClassMR,
		Slots: []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessReadWrite}, roSlot(KGPQ, 0)},
		Opcode: OpcodeWord{Bytes: []byte{0x87}, W: W1}},
)
