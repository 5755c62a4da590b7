package x86

import "github.com/keurnel/x86asm/internal/asmerr"

// OpKind is a bitset of the operand kinds a signature slot accepts, per
// spec.md §3's per-slot "bitset of allowed operand kinds".
type OpKind uint32

const (
	KGPB8 OpKind = 1 << iota // r8 (low-byte, REX-addressable)
	KGPB8H                   // r8 (AH/CH/DH/BH, incompatible with REX)
	KGPW                     // r16
	KGPD                     // r32
	KGPQ                     // r64
	KMMX                     // mm
	KXMM                     // xmm
	KYMM                     // ymm
	KZMM                     // zmm
	KMask                    // k0-k7
	KST                      // x87 stack register
	KSeg                     // segment register
	KCtrl                    // control register
	KDebug                   // debug register
	KBnd                     // bound register
	KMem                     // memory of an allowed form (see MemForm)
	KImm                     // immediate in the slot's declared width
	KRel                     // relative branch displacement
	KImplicit                // implicit fixed operand, consumes no explicit argument
)

// MemForm is a bitset of the memory addressing forms a slot accepts.
type MemForm uint32

const (
	MAny MemForm = 1 << iota
	M8
	M16
	M32
	M48
	M64
	M80
	M128
	M256
	M512
	M1024
	MBaseOnly
	MVM32X // VSIB, xmm index
	MVM32Y // VSIB, ymm index
	MVM32Z // VSIB, zmm index
	MVM64X
	MVM64Y
	MVM64Z
	MMib // MPX mib form
)

// Access describes how an instruction uses an operand slot.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
	AccessImplicitRead
)

// Arch is a bitmask of the processor modes a signature is valid in.
type Arch uint8

const (
	Arch32 Arch = 1 << iota
	Arch64
	ArchBoth = Arch32 | Arch64
)

// FixedReg, when HasFixedReg is true, restricts a slot to one specific
// physical register (e.g. the implicit AX in an I/O instruction, or the
// count operand of a shift-by-CL form naming CL).
type FixedReg struct {
	HasFixedReg bool
	Class       RegisterClass
	ID          uint8
}

// Slot is one operand position in a Signature.
type Slot struct {
	Kinds    OpKind
	Mem      MemForm
	Access   Access
	Fixed    FixedReg
	ElemBits int // nonzero only for EVEX tuple-scaled memory slots; see evexDispScale
	ImmBits  int // meaningful only when Kinds&KImm != 0: 8/16/32/64
}

// immFits reports whether v can be represented in an immediate slot of the
// declared width, per spec.md §4.3's per-slot width check. A width of 0
// (no declared width) and a width of 64 always match.
func immFits(v int64, bits int) bool {
	switch bits {
	case 8:
		return v >= -128 && v <= 255
	case 16:
		return v >= -32768 && v <= 65535
	case 32:
		return v >= -(1<<31) && v <= (1<<32)-1
	case 64, 0:
		return true
	default:
		return true
	}
}

// SingleRegPolicy tags how an instruction's signature treats a degenerate
// encoding where destination and first source name the same register
// (spec.md §4.4 "single-register aliasing policy").
type SingleRegPolicy int

const (
	SingleRegNone SingleRegPolicy = iota
	SingleRegRO
	SingleRegWO
)

// Signature is one accepted operand-shape for a mnemonic, matching the
// teacher's InstructionForm (architecture/x86_64/instruction_form.go) but
// widened with the bitset/access/arch metadata spec.md §3 requires instead
// of a single concrete OperandType per slot.
type Signature struct {
	Slots      []Slot
	ArchMask   Arch
	Class      EncodingClass
	Opcode     OpcodeWord
	AltOpcode  OpcodeWord
	HasAlt     bool
	SingleReg  SingleRegPolicy
	TupleType  TupleType // EVEX only; Full/Half/Tuple1Scalar/... (spec.md §3)
	Feature    Feature
}

// ImplicitOperandCount returns how many slots, in any position, are AccessImplicitRead
// and therefore do not consume an explicit caller-supplied operand.
func (s Signature) ImplicitOperandCount() int {
	n := 0
	for _, sl := range s.Slots {
		if sl.Access == AccessImplicitRead {
			n++
		}
	}
	return n
}

// explicitSlots returns the slots that DO consume an explicit operand, in
// order — implicit slots are matched separately by the validator.
func (s Signature) explicitSlots() []Slot {
	out := make([]Slot, 0, len(s.Slots))
	for _, sl := range s.Slots {
		if sl.Access != AccessImplicitRead {
			out = append(out, sl)
		}
	}
	return out
}

// matchSlot tests one concrete operand against one signature slot, per
// spec.md §4.3 step 2.
func matchSlot(sl Slot, op Operand, arch Arch) bool {
	switch op.Kind {
	case KindReg:
		return matchRegSlot(sl, op.Reg)
	case KindMem:
		return matchMemSlot(sl, op.Mem, arch)
	case KindImm:
		return sl.Kinds&KImm != 0 && immFits(op.Imm.Value, sl.ImmBits)
	case KindLabel:
		return sl.Kinds&KRel != 0
	default:
		return false
	}
}

func matchRegSlot(sl Slot, r Reg) bool {
	var want OpKind
	switch r.Class {
	case ClassGPB8Lo:
		want = KGPB8
	case ClassGPB8Hi:
		want = KGPB8H
	case ClassGPW:
		want = KGPW
	case ClassGPD:
		want = KGPD
	case ClassGPQ:
		want = KGPQ
	case ClassMMX:
		want = KMMX
	case ClassXMM:
		want = KXMM
	case ClassYMM:
		want = KYMM
	case ClassZMM:
		want = KZMM
	case ClassK:
		want = KMask
	case ClassST:
		want = KST
	case ClassSeg:
		want = KSeg
	case ClassCR:
		want = KCtrl
	case ClassDR:
		want = KDebug
	case ClassBND:
		want = KBnd
	}
	if sl.Kinds&want == 0 {
		return false
	}
	if sl.Fixed.HasFixedReg {
		return sl.Fixed.Class == r.Class && sl.Fixed.ID == r.ID
	}
	return true
}

func matchMemSlot(sl Slot, m Mem, arch Arch) bool {
	// A slot accepts memory when it lists KMem or names any MemForm.
	if sl.Kinds&KMem == 0 && sl.Mem == 0 {
		return false
	}
	if sl.HasIndex(m) && !vsibMatches(sl.Mem, m) {
		// A vector-indexed memory operand (VSIB) is only valid against a
		// signature that explicitly allows the matching vmNx/y/z form
		// (spec.md §8 testable property 7, "VSIB rejection").
		return false
	}
	if m.HasIndex && m.Index.Class != ClassGPQ && m.Index.Class != ClassGPD {
		// index is a vector register: must be one of the VSIB forms.
		return sl.Mem&(MVM32X|MVM32Y|MVM32Z|MVM64X|MVM64Y|MVM64Z) != 0
	}
	if sl.Mem&MAny != 0 {
		return true
	}
	if m.SizeHint != 0 && !memFormAllowsSize(sl.Mem, m.SizeHint) {
		return false
	}
	if arch == Arch32 && m.HasBase && (m.Base.Class == ClassGPQ) {
		return false
	}
	return true
}

// HasIndex is a helper retained for readability at the call site above; it
// always reports false for non-vector indices, which is the common case.
func (sl Slot) HasIndex(m Mem) bool {
	return m.HasIndex && m.Index.Class != ClassGPQ && m.Index.Class != ClassGPD
}

func vsibMatches(allowed MemForm, m Mem) bool {
	switch m.Index.Class {
	case ClassXMM:
		return allowed&(MVM32X|MVM64X) != 0
	case ClassYMM:
		return allowed&(MVM32Y|MVM64Y) != 0
	case ClassZMM:
		return allowed&(MVM32Z|MVM64Z) != 0
	default:
		return true
	}
}

func memFormAllowsSize(form MemForm, bits int) bool {
	switch bits {
	case 8:
		return form&M8 != 0
	case 16:
		return form&M16 != 0
	case 32:
		return form&M32 != 0
	case 48:
		return form&M48 != 0
	case 64:
		return form&M64 != 0
	case 80:
		return form&M80 != 0
	case 128:
		return form&M128 != 0
	case 256:
		return form&M256 != 0
	case 512:
		return form&M512 != 0
	case 1024:
		return form&M1024 != 0
	default:
		return false
	}
}

// Selected is what the validator hands to the encoder: the chosen signature
// plus the operand tuple it matched, including any implicit operands needed
// at encode time (spec.md §4.3 "Output").
type Selected struct {
	Sig  Signature
	Ops  []Operand
}

// Validate matches (mnemonic, ops) against the database, per spec.md §4.3.
// Candidates are walked in database order and the first full match wins —
// the database is authored so earlier signatures are the preferred
// tie-break (shorter encodings before longer, reg-reg before mem). target is
// the configured CPU-feature mask (spec.md §3's "no encoding is emitted
// whose CPU-feature set is not a subset of the configured target"); pass
// FeatureAll for an unrestricted target.
func Validate(mnemonicID InstID, ops []Operand, arch Arch, target Feature) (Selected, error) {
	rec, ok := GetInst(mnemonicID)
	if !ok {
		return Selected{}, asmerr.New(asmerr.InvalidOperandCombination, "", "unknown instruction id %d", mnemonicID)
	}
	incompatible := false
	for _, sig := range rec.Signatures {
		if sig.ArchMask&arch == 0 {
			continue
		}
		explicit := sig.explicitSlots()
		if len(explicit) != len(ops) {
			continue
		}
		ok := true
		for i, sl := range explicit {
			if !matchSlot(sl, ops[i], arch) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if sig.Feature&^target != 0 {
			incompatible = true
			continue
		}
		if err := postCheck(rec, sig, ops, arch); err != nil {
			continue
		}
		return Selected{Sig: sig, Ops: ops}, nil
	}
	if incompatible {
		return Selected{}, asmerr.New(asmerr.IncompatibleInstruction, rec.Mnemonic,
			"matching signature requires a CPU feature outside the configured target")
	}
	return Selected{}, asmerr.New(asmerr.InvalidOperandCombination, rec.Mnemonic,
		"no signature matches %d operand(s)", len(ops))
}

// postCheck performs the defense-in-depth cross-validation spec.md §4.3
// step 4 calls for: REX/AH conflicts and 16-bit addressing under EVEX.
func postCheck(rec InstRecord, sig Signature, ops []Operand, arch Arch) error {
	hasHiByte, hasExtended := false, false
	for _, op := range ops {
		if op.Kind == KindReg {
			if op.Reg.Class == ClassGPB8Hi {
				hasHiByte = true
			}
			if op.Reg.RequiresREX() {
				hasExtended = true
			}
		}
	}
	if hasHiByte && hasExtended {
		return asmerr.New(asmerr.InvalidOperandCombination, rec.Mnemonic,
			"AH/BH/CH/DH cannot be combined with a REX-forcing operand")
	}
	if sig.Class == ClassEvexRVM {
		for _, op := range ops {
			if op.Kind == KindMem && ((op.Mem.HasBase && op.Mem.Base.Class == ClassGPW) ||
				(op.Mem.HasIndex && op.Mem.Index.Class == ClassGPW)) {
				return asmerr.New(asmerr.InvalidMemoryOperand, rec.Mnemonic,
					"EVEX encodings cannot use 16-bit addressing")
			}
		}
	}
	return nil
}
