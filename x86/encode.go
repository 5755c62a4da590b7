package x86

import "github.com/keurnel/x86asm/internal/asmerr"

// RepPrefix is the sticky rep/repe/repne prefix an emitter call can request
// for a string instruction (spec.md §4.4 "string ops").
type RepPrefix int

const (
	RepNone RepPrefix = iota
	Rep               // F3, used by MOVS/STOS/LODS
	RepE              // F3, used by CMPS/SCAS ("repeat while equal")
	RepNE             // F2, used by CMPS/SCAS ("repeat while not equal")
)

// RoundMode is an EVEX static-rounding-control selector, valid only with
// EVEX.b=1 and a register (not memory) source operand.
type RoundMode int

const (
	RoundNearest RoundMode = iota
	RoundDown
	RoundUp
	RoundTruncate
)

// EmitOptions carries the one-shot, sticky-per-call settings spec.md §6
// groups under "emitter options": lock, rep, a segment override, and the
// EVEX masking/zeroing/rounding settings (broadcast is carried on the memory
// operand, Mem.Broadcast). Every field is consumed at
// most once, by the single Encode call it was passed to.
type EmitOptions struct {
	Lock       bool
	Rep        RepPrefix
	Segment    Reg
	HasSegment bool

	Mask     Reg
	HasMask  bool
	Zeroing  bool
	Rounding RoundMode
	HasRound bool
	SuppressAllExceptions bool

	// PreferShort tells a ClassD encode call to use a jump's short (rel8)
	// alternate even though the target is a forward, not-yet-bound label.
	// The assembler facade never sets it on its own; a caller opts in via
	// Assembler.WithPreferShort when it knows the eventual distance fits.
	// Encode alone cannot know a forward label's final offset.
	PreferShort bool
}

func segmentOverrideByte(r Reg) byte {
	switch r.ID {
	case 0:
		return 0x26 // ES
	case 1:
		return 0x2E // CS
	case 2:
		return 0x36 // SS
	case 3:
		return 0x3E // DS
	case 4:
		return 0x64 // FS
	case 5:
		return 0x65 // GS
	default:
		return 0
	}
}

func emitLegacyPrefixBytes(h *Holder, prefix PrefixGroup, opts EmitOptions) {
	if opts.Lock {
		h.emit(0xF0)
	}
	if opts.HasSegment {
		h.emit(segmentOverrideByte(opts.Segment))
	}
	switch prefix {
	case PrefixGroup66:
		h.emit(0x66)
	case PrefixGroupF2:
		h.emit(0xF2)
	case PrefixGroupF3:
		h.emit(0xF3)
	case PrefixGroup9B:
		h.emit(0x9B)
	}
}

func emitOpcodeMapEscape(h *Holder, m OpcodeMap) {
	switch m {
	case Map0F:
		h.emit(0x0F)
	case Map0F38:
		h.emit(0x0F, 0x38)
	case Map0F3A:
		h.emit(0x0F, 0x3A)
	case Map0F01:
		h.emit(0x0F, 0x01)
	}
}

func needsREX(w, r, x, b byte, forced bool) bool {
	return w == 1 || r == 1 || x == 1 || b == 1 || forced
}

func emitREX(h *Holder, w, r, x, b byte) {
	h.emit(0x40 | w<<3 | r<<2 | x<<1 | b)
}

// anyOperandForcesREX reports whether any register operand in ops demands a
// REX prefix independent of size/extension (SPL/BPL/SIL/DIL), per spec.md
// §8 testable property 4 ("prefix minimality").
func anyOperandForcesREX(ops []Operand) bool {
	for _, op := range ops {
		if op.Kind == KindReg && op.Reg.RequiresREX() {
			return true
		}
		if op.Kind == KindMem {
			if op.Mem.HasBase && op.Mem.Base.RequiresREX() {
				return true
			}
			if op.Mem.HasIndex && op.Mem.Index.RequiresREX() {
				return true
			}
		}
	}
	return false
}

func wBitValue(w WBit) byte {
	if w == W1 {
		return 1
	}
	return 0
}

// Encode appends sel's chosen signature, with concrete ops, to h's active
// section. This is the C4 dispatch point: each EncodingClass has its own
// byte-layout routine, shared across every mnemonic that uses that class
// (spec.md §4.4).
func Encode(h *Holder, sel Selected, opts EmitOptions) error {
	sig := sel.Sig
	switch sig.Class {
	case ClassZO:
		return encodeZO(h, sig, opts)
	case ClassO:
		return encodeO(h, sig, sel.Ops, opts)
	case ClassM:
		return encodeM(h, sig, sel.Ops, opts)
	case ClassRM:
		return encodeRM(h, sig, sel.Ops, opts)
	case ClassMR:
		return encodeMR(h, sig, sel.Ops, opts)
	case ClassMI:
		return encodeMI(h, sig, sel.Ops, opts)
	case ClassOI:
		return encodeOI(h, sig, sel.Ops, opts)
	case ClassI:
		return encodeI(h, sig, sel.Ops, opts)
	case ClassD:
		return encodeD(h, sig, sel.Ops, opts)
	case ClassEnter:
		return encodeEnter(h, sig, sel.Ops, opts)
	case ClassString:
		return encodeString(h, sig, opts)
	case ClassVexRM:
		return encodeVexRM(h, sig, sel.Ops, opts)
	case ClassVexMR:
		return encodeVexMR(h, sig, sel.Ops, opts)
	case ClassVexRVM:
		return encodeVexRVM(h, sig, sel.Ops, opts)
	case ClassVexRVMR:
		return encodeVexRVMR(h, sig, sel.Ops, opts)
	case ClassEvexRVM:
		return encodeEvexRVM(h, sig, sel.Ops, opts)
	default:
		return asmerr.New(asmerr.InvalidOperandCombination, "", "unhandled encoding class %d", sig.Class)
	}
}
