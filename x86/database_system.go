package x86

// Zero-operand and miscellaneous system instructions.

var (
	NOP     = register("NOP", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0x90}}})
	HLT     = register("HLT", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xF4}}})
	INT3    = register("INT3", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xCC}}})
	CPUID   = register("CPUID", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0xA2}}})
	SYSCALL = register("SYSCALL", Signature{ArchMask: Arch64, Class: ClassZO,
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x05}}, Feature: FeatureLongModeOnly})
	CDQ = register("CDQ", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0x99}}})
	CQO = register("CQO", Signature{ArchMask: Arch64, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0x99}, W: W1}})
	CLC = register("CLC", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xF8}}})
	STC = register("STC", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xF9}}})
	CLD = register("CLD", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xFC}}})
	STD = register("STD", Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xFD}}})
)
