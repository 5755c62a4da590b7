package x86

// String instructions. These take no explicit operands — they always
// operate on [RSI]/[RDI] — but accept a sticky rep/repe/repne prefix option
// set on the emitter (spec.md §4.4 "string ops (emit rep/repe/repne prefix
// if requested)"), modeled in the emitter as EmitOptions.Rep.

var (
	MOVSB = register("MOVSB", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xA4}}})
	MOVSW = register("MOVSW", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Prefix: PrefixGroup66, Bytes: []byte{0xA5}}})
	MOVSD = register("MOVSD", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xA5}}})
	MOVSQ = register("MOVSQ", Signature{ArchMask: Arch64, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xA5}, W: W1}})
	STOSB = register("STOSB", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xAA}}})
	STOSQ = register("STOSQ", Signature{ArchMask: Arch64, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xAB}, W: W1}})
	CMPSB = register("CMPSB", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xA6}}})
	LODSB = register("LODSB", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xAC}}})
	SCASB = register("SCASB", Signature{ArchMask: ArchBoth, Class: ClassString, Opcode: OpcodeWord{Bytes: []byte{0xAE}}})
)
