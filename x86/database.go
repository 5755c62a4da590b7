package x86

import "sort"

// InstID is a dense integer indexing the instruction database. Identifier 0
// denotes "no instruction", per spec.md §3.
type InstID int

// NoInst is the sentinel "no instruction" id.
const NoInst InstID = 0

// PrefixGroup is the mandatory-prefix family an opcode word requires.
type PrefixGroup byte

const (
	PrefixGroupNone PrefixGroup = iota
	PrefixGroup66
	PrefixGroupF2
	PrefixGroupF3
	PrefixGroup9B
)

// OpcodeMap is the opcode-map escape an opcode word is read from.
type OpcodeMap byte

const (
	MapOneByte OpcodeMap = iota
	Map0F
	Map0F38
	Map0F3A
	Map0F01
	MapXOP_M8
	MapXOP_M9
)

// VecLen is the VEX/EVEX vector length field, L (and L' for EVEX).
type VecLen byte

const (
	LenLIG VecLen = iota // length-ignored (GPR-destination VEX forms)
	Len128
	Len256
	Len512
)

// WBit is the VEX.W / EVEX.W / REX.W field.
type WBit byte

const (
	W0 WBit = iota
	W1
	WIG
)

// TupleType is the EVEX displacement-compression tuple type, which
// determines the scale N used to decide disp8 eligibility (spec.md §3, §4.4
// step 5, §8 testable property 5).
type TupleType int

const (
	TupleNone TupleType = iota
	TupleFull           // FV: N = vector length (or element size under broadcast)
	TupleHalf           // HV: N = vector length / 2 (or element size under broadcast)
	TupleTuple1Scalar   // T1S: N = element size
	TupleTuple1Fixed    // T1F: N = fixed operand size, no broadcast
	TupleMem128         // M128: N = 16 always
)

// Feature is a bitmask of CPU-feature requirements an encoding record may
// carry (spec.md §3 "operation_index ... CPU-feature requirements").
type Feature uint64

const (
	FeatureBase Feature = 0
	FeatureSSE Feature = 1 << iota
	FeatureSSE2
	FeatureAVX
	FeatureAVX2
	FeatureAVX512F
	FeatureAVX512BW
	FeatureBMI1
	FeatureBMI2
	FeatureXOP
	FeatureLongModeOnly // only encodable in 64-bit mode (e.g. SYSCALL)

	// FeatureAll is every feature bit set, the "unrestricted" target mask:
	// sig.Feature &^ FeatureAll is always 0, so Validate never rejects a
	// signature on feature grounds when no target profile is configured.
	FeatureAll Feature = ^Feature(0)
)

// EncodingClass is the C4 dispatch tag describing an encoding's overall
// shape (spec.md §3 "encoding_class").
type EncodingClass int

const (
	ClassZO      EncodingClass = iota // no operands
	ClassO                            // register encoded in opcode's low 3 bits (+rd/+rb)
	ClassM                            // single r/m operand, /digit opcode extension
	ClassRM                           // reg, r/m (register is destination)
	ClassMR                           // r/m, reg (register is source)
	ClassMI                           // r/m, imm
	ClassOI                           // opcode+reg, imm
	ClassI                            // single immediate (no ModR/M)
	ClassD                            // relative branch displacement (jmp/jcc/call/loop)
	ClassEnter                        // ENTER imm16, imm8
	ClassString                       // string op, optional rep/repe/repne prefix
	ClassVexRM                        // VEX, reg <- r/m (2-operand)
	ClassVexMR                        // VEX, r/m <- reg (2-operand, store direction)
	ClassVexRVM                       // VEX (or XOP, via Opcode.Map), reg <- reg, r/m (3-operand, vvvv = middle source)
	ClassVexRVMR                      // VEX reg <- reg, r/m, reg (4th source register packed into imm8[7:4])
	ClassEvexRVM                      // EVEX, reg{k}{z} <- reg, r/m (masking + optional broadcast)
)

// OpcodeWord is the packed-opcode metadata spec.md §3 describes as a single
// 32-bit field; this reimplementation keeps the same fields but as a
// regular struct, which is the idiomatic Go rendering of that packing (see
// DESIGN.md).
type OpcodeWord struct {
	Prefix   PrefixGroup
	Map      OpcodeMap
	Bytes    []byte // one or two opcode bytes, after the map escape
	ModRMExt int8   // /digit extension; left 0 and unused when the ModR/M reg field carries a real register
	L        VecLen
	W        WBit
	EVEXW    WBit  // distinct from legacy/VEX W for instructions with two encodings
	RelWidth int8  // ClassD only, when the signature has no short/near alternate: 8 or 32
}

// InstRecord is one mnemonic's database entry (spec.md §3 "Instruction
// record (C1)").
type InstRecord struct {
	ID         InstID
	Mnemonic   string
	Signatures []Signature
}

var (
	instTable    = []InstRecord{{ID: NoInst, Mnemonic: ""}}
	nameToID     = map[string]InstID{}
	nameBuckets  = map[byte][]nameEntry{}
	bucketsDirty = false
)

type nameEntry struct {
	name string
	id   InstID
}

// register adds a mnemonic with its accepted signatures to the database and
// returns its dense id. Called from package-init var declarations in the
// database_*.go files, grouped by instruction category the way the
// teacher's architecture/x86_64/instructions.go groups MOV/ADD/etc. under
// comment banners.
func register(mnemonic string, sigs ...Signature) InstID {
	id := InstID(len(instTable))
	instTable = append(instTable, InstRecord{ID: id, Mnemonic: mnemonic, Signatures: sigs})
	nameToID[mnemonic] = id
	bucket := mnemonic[0]
	nameBuckets[bucket] = append(nameBuckets[bucket], nameEntry{name: mnemonic, id: id})
	bucketsDirty = true
	return id
}

// extend appends additional signatures to an already-registered mnemonic,
// for names such as MOVSD that mean one thing as a zero-operand string
// instruction and another as an SSE/AVX scalar move — real assemblers
// disambiguate purely by operand count, which the validator already does
// per signature, so both readings live under one InstRecord instead of
// colliding name-table entries. A name not yet registered (MOVSS here) is
// registered fresh.
func extend(mnemonic string, sigs ...Signature) {
	id, ok := nameToID[mnemonic]
	if !ok {
		register(mnemonic, sigs...)
		return
	}
	instTable[id].Signatures = append(instTable[id].Signatures, sigs...)
}

func ensureBucketsSorted() {
	if !bucketsDirty {
		return
	}
	for k, entries := range nameBuckets {
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		nameBuckets[k] = entries
	}
	bucketsDirty = false
}

// GetInst looks up a mnemonic's database record by id (spec.md §4.1
// contract `get_inst(id) -> InstRecord`).
func GetInst(id InstID) (InstRecord, bool) {
	if id <= NoInst || int(id) >= len(instTable) {
		return InstRecord{}, false
	}
	return instTable[id], true
}

// FindID resolves a mnemonic name to its id via binary search within the
// name's initial-letter bucket (spec.md §4.1: "names are stored sorted
// within each initial-letter bucket; lookup is binary search within the
// bucket"). Returns NoInst when the name is unknown.
func FindID(name string) InstID {
	if name == "" {
		return NoInst
	}
	ensureBucketsSorted()
	bucket := nameBuckets[name[0]]
	lo, hi := 0, len(bucket)
	for lo < hi {
		mid := (lo + hi) / 2
		if bucket[mid].name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(bucket) && bucket[lo].name == name {
		return bucket[lo].id
	}
	return NoInst
}

// NameOf returns the mnemonic spelling for an id, or "" if unknown / NoInst.
func NameOf(id InstID) string {
	rec, ok := GetInst(id)
	if !ok {
		return ""
	}
	return rec.Mnemonic
}

// evexDispScale computes N, the EVEX compressed-displacement scale, from the
// signature's tuple type and the memory operand's effective element size
// (spec.md §3, §4.4 step 5, §8 testable property 5).
func evexDispScale(tt TupleType, elemBytes, vecLenBytes int, broadcast bool) int {
	switch tt {
	case TupleFull:
		if broadcast {
			return elemBytes
		}
		return vecLenBytes
	case TupleHalf:
		if broadcast {
			return elemBytes
		}
		if vecLenBytes/2 > 0 {
			return vecLenBytes / 2
		}
		return elemBytes
	case TupleTuple1Scalar, TupleTuple1Fixed:
		return elemBytes
	case TupleMem128:
		return 16
	default:
		if elemBytes > 0 {
			return elemBytes
		}
		return 1
	}
}
