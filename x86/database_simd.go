package x86

// SSE, AVX, AVX-512 and XOP vector instructions. A handful of
// representative mnemonics exercise every prefix family and every
// EncodingClass the encoder supports, per spec.md §4.4's "Special classes"
// list, without hand-authoring the full ~1,400-mnemonic database (see
// DESIGN.md for why that full table is out of scope for this exercise).

func xmmRW(mem MemForm) Slot  { return Slot{Kinds: KXMM, Mem: mem, Access: AccessReadWrite} }
func xmmRO(mem MemForm) Slot  { return Slot{Kinds: KXMM, Mem: mem, Access: AccessRead} }
func xmmWO(mem MemForm) Slot  { return Slot{Kinds: KXMM, Mem: mem, Access: AccessWrite} }

// Classic SSE (legacy-prefix, non-VEX) forms: MOVAPS/ADDPS/MULPS.
var MOVAPS = register("MOVAPS",
	Signature{ArchMask: ArchBoth, Class: ClassRM, Feature: FeatureSSE,
		Slots:  []Slot{xmmWO(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x28}}},
	Signature{ArchMask: ArchBoth, Class: ClassMR, Feature: FeatureSSE,
		Slots:  []Slot{xmmWO(M128), xmmRO(0)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x29}}},
)

var ADDPS = register("ADDPS",
	Signature{ArchMask: ArchBoth, Class: ClassRM, Feature: FeatureSSE,
		Slots:  []Slot{xmmRW(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x58}}},
)

var MULPS = register("MULPS",
	Signature{ArchMask: ArchBoth, Class: ClassRM, Feature: FeatureSSE,
		Slots:  []Slot{xmmRW(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x59}}},
)

// MOVSD means a zero-operand string instruction (database_string.go) or a
// scalar SSE2 move depending on operand count; extend() appends the scalar
// reading to the same InstRecord instead of colliding on the name table.
// MOVSS has no string reading here, so extend() registers it fresh.
func init() {
	extend("MOVSD",
		Signature{ArchMask: ArchBoth, Class: ClassRM, Feature: FeatureSSE2,
			Slots:  []Slot{xmmWO(0), xmmRO(M64)},
			Opcode: OpcodeWord{Prefix: PrefixGroupF2, Map: Map0F, Bytes: []byte{0x10}}},
		Signature{ArchMask: ArchBoth, Class: ClassMR, Feature: FeatureSSE2,
			Slots:  []Slot{xmmWO(M64), xmmRO(0)},
			Opcode: OpcodeWord{Prefix: PrefixGroupF2, Map: Map0F, Bytes: []byte{0x11}}},
	)
	extend("MOVSS",
		Signature{ArchMask: ArchBoth, Class: ClassRM, Feature: FeatureSSE,
			Slots:  []Slot{xmmWO(0), xmmRO(M32)},
			Opcode: OpcodeWord{Prefix: PrefixGroupF3, Map: Map0F, Bytes: []byte{0x10}}},
	)
}

// AVX (VEX-encoded) forms: VMOVAPS (2-operand), VADDPS/VMULPS (3-operand
// RVM, vvvv = first source).
var VMOVAPS = register("VMOVAPS",
	Signature{ArchMask: ArchBoth, Class: ClassVexRM, Feature: FeatureAVX,
		Slots:  []Slot{xmmWO(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x28}, L: Len128, W: WIG}},
	Signature{ArchMask: ArchBoth, Class: ClassVexMR, Feature: FeatureAVX,
		Slots:  []Slot{xmmWO(M128), xmmRO(0)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x29}, L: Len128, W: WIG}},
	Signature{ArchMask: ArchBoth, Class: ClassVexRM, Feature: FeatureAVX,
		Slots:  []Slot{{Kinds: KYMM, Access: AccessWrite}, {Kinds: KYMM, Mem: M256, Access: AccessRead}},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x28}, L: Len256, W: WIG}},
)

var VADDPS = register("VADDPS",
	Signature{ArchMask: ArchBoth, Class: ClassVexRVM, Feature: FeatureAVX,
		Slots:  []Slot{xmmWO(0), xmmRO(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x58}, L: Len128, W: WIG}},
	Signature{ArchMask: ArchBoth, Class: ClassVexRVM, Feature: FeatureAVX,
		Slots: []Slot{
			{Kinds: KYMM, Access: AccessWrite}, {Kinds: KYMM, Access: AccessRead},
			{Kinds: KYMM, Mem: M256, Access: AccessRead},
		},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x58}, L: Len256, W: WIG}},
	// EVEX.512: zmm{k}{z} <- zmm, zmm/m512/m32bcst — the spec.md §8 scenario
	// "vaddps zmm0{k1}{z}, zmm1, dword bcst [rax+64]".
	Signature{ArchMask: ArchBoth, Class: ClassEvexRVM, Feature: FeatureAVX512F, TupleType: TupleFull,
		Slots: []Slot{
			{Kinds: KZMM, Access: AccessWrite}, {Kinds: KZMM, Access: AccessRead},
			{Kinds: KZMM, Mem: M512, ElemBits: 32, Access: AccessRead},
		},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x58}, L: Len512, W: W0}},
)

var VMULPS = register("VMULPS",
	Signature{ArchMask: ArchBoth, Class: ClassVexRVM, Feature: FeatureAVX,
		Slots:  []Slot{xmmWO(0), xmmRO(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: Map0F, Bytes: []byte{0x59}, L: Len128, W: WIG}},
)

// VBLENDVPS is a VEX RVMR form: the 4th operand (a select mask register) is
// packed into imm8[7:4] rather than occupying a ModR/M/SIB field
// (spec.md §4.4 step 6, "imm8 holding a register id for VEX RVMR forms'
// fourth operand").
var VBLENDVPS = register("VBLENDVPS",
	Signature{ArchMask: ArchBoth, Class: ClassVexRVMR, Feature: FeatureAVX,
		Slots:  []Slot{xmmWO(0), xmmRO(0), xmmRO(M128), xmmRO(0)},
		Opcode: OpcodeWord{Prefix: PrefixGroup66, Map: Map0F3A, Bytes: []byte{0x4A}, L: Len128, W: W0}},
)

// VPROTB is an XOP.M9 RVM instruction; XOP shares the VEX RVM encoder path
// (the 3-byte prefix layout differs only in its leading escape byte and map
// field, resolved from Opcode.Map in encode_vex.go).
var VPROTB = register("VPROTB",
	Signature{ArchMask: ArchBoth, Class: ClassVexRVM, Feature: FeatureXOP,
		Slots:  []Slot{xmmWO(0), xmmRO(0), xmmRO(M128)},
		Opcode: OpcodeWord{Map: MapXOP_M9, Bytes: []byte{0x90}, L: Len128, W: W0}},
)
