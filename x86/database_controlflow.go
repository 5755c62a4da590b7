package x86

// Control-flow instructions: unconditional/conditional jumps, calls,
// returns and the loop family. All of these use EncodingClass ClassD, whose
// bounded-growth short/near selection is implemented once in encodeD
// (encode_legacy.go)
// rather than per mnemonic (spec.md §4.4 "jumps (choose rel8 vs rel32...)").

func jumpFamily(mnemonic string, nearOpcodeMap OpcodeMap, nearBytes []byte, shortByte byte) InstID {
	return register(mnemonic,
		Signature{ArchMask: ArchBoth, Class: ClassD,
			Slots: []Slot{{Kinds: KRel, Access: AccessRead}},
			Opcode: OpcodeWord{Map: nearOpcodeMap, Bytes: nearBytes},
			AltOpcode: OpcodeWord{Bytes: []byte{shortByte}},
			HasAlt: true,
		},
	)
}

var (
	JMP  = jumpFamily("JMP", MapOneByte, []byte{0xE9}, 0xEB)
	JE   = jumpFamily("JE", Map0F, []byte{0x84}, 0x74)
	JNE  = jumpFamily("JNE", Map0F, []byte{0x85}, 0x75)
	JZ   = jumpFamily("JZ", Map0F, []byte{0x84}, 0x74)
	JNZ  = jumpFamily("JNZ", Map0F, []byte{0x85}, 0x75)
	JL   = jumpFamily("JL", Map0F, []byte{0x8C}, 0x7C)
	JGE  = jumpFamily("JGE", Map0F, []byte{0x8D}, 0x7D)
	JLE  = jumpFamily("JLE", Map0F, []byte{0x8E}, 0x7E)
	JG   = jumpFamily("JG", Map0F, []byte{0x8F}, 0x7F)
	JB   = jumpFamily("JB", Map0F, []byte{0x82}, 0x72)
	JAE  = jumpFamily("JAE", Map0F, []byte{0x83}, 0x73)
	JBE  = jumpFamily("JBE", Map0F, []byte{0x86}, 0x76)
	JA   = jumpFamily("JA", Map0F, []byte{0x87}, 0x77)
	JS   = jumpFamily("JS", Map0F, []byte{0x88}, 0x78)
	JNS  = jumpFamily("JNS", Map0F, []byte{0x89}, 0x79)
	JO   = jumpFamily("JO", Map0F, []byte{0x80}, 0x70)
	JNO  = jumpFamily("JNO", Map0F, []byte{0x81}, 0x71)
	JP   = jumpFamily("JP", Map0F, []byte{0x8A}, 0x7A)
	JNP  = jumpFamily("JNP", Map0F, []byte{0x8B}, 0x7B)
	JCXZ = register("JCXZ",
		Signature{ArchMask: ArchBoth, Class: ClassD,
			Slots:  []Slot{{Kinds: KRel, Access: AccessRead}},
			Opcode: OpcodeWord{Bytes: []byte{0xE3}, RelWidth: 8}},
	)
)

var CALL = register("CALL",
	Signature{ArchMask: ArchBoth, Class: ClassD,
		Slots:  []Slot{{Kinds: KRel, Access: AccessRead}},
		Opcode: OpcodeWord{Bytes: []byte{0xE8}, RelWidth: 32}},
	Signature{ArchMask: Arch64, Class: ClassM,
		Slots:  []Slot{{Kinds: KGPQ, Mem: M64, Access: AccessRead}},
		Opcode: OpcodeWord{Bytes: []byte{0xFF}, ModRMExt: 2}},
)

var RET = register("RET",
	Signature{ArchMask: ArchBoth, Class: ClassZO, Opcode: OpcodeWord{Bytes: []byte{0xC3}}},
	Signature{ArchMask: ArchBoth, Class: ClassI,
		Slots:  []Slot{{Kinds: KImm, Access: AccessRead, ImmBits: 16}},
		Opcode: OpcodeWord{Bytes: []byte{0xC2}}},
)

var (
	LOOP = register("LOOP",
		Signature{ArchMask: ArchBoth, Class: ClassD,
			Slots:  []Slot{{Kinds: KRel, Access: AccessRead}},
			Opcode: OpcodeWord{Bytes: []byte{0xE2}, RelWidth: 8}},
	)
	LOOPE = register("LOOPE",
		Signature{ArchMask: ArchBoth, Class: ClassD,
			Slots:  []Slot{{Kinds: KRel, Access: AccessRead}},
			Opcode: OpcodeWord{Bytes: []byte{0xE1}, RelWidth: 8}},
	)
	LOOPNE = register("LOOPNE",
		Signature{ArchMask: ArchBoth, Class: ClassD,
			Slots:  []Slot{{Kinds: KRel, Access: AccessRead}},
			Opcode: OpcodeWord{Bytes: []byte{0xE0}, RelWidth: 8}},
	)
)
