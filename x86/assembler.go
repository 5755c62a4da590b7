package x86

// Assembler is the C7 facade combining the validator (C3), the encoder
// (C4) and a holder (C5) behind a single Emit call, the way the teacher's
// architecture/x86_64/assembler.go wraps ParseLine + AssembleInstruction +
// the two-pass label table into one Assembler type — generalized here from
// a fixed line-oriented text format to a programmatic (mnemonic, operands)
// call per spec.md §6.
type Assembler struct {
	Holder *Holder

	arch    Arch
	feature Feature
	pending EmitOptions
	err     error // first error from Emit, latched per spec.md §7
}

// NewAssembler opens a fresh assembler targeting arch, with its holder's
// default ".text" section active and an unrestricted CPU-feature mask.
func NewAssembler(arch Arch) *Assembler {
	return &Assembler{Holder: NewHolder(arch), arch: arch, feature: FeatureAll}
}

// NewAssemblerWithFeature opens an assembler restricted to feature (e.g.
// from config.TargetProfile.Feature()): Emit rejects any signature whose
// Feature bits are not a subset of feature with asmerr.IncompatibleInstruction.
func NewAssemblerWithFeature(arch Arch, feature Feature) *Assembler {
	return &Assembler{Holder: NewHolder(arch), arch: arch, feature: feature}
}

// SetFeature restricts the CPU-feature mask subsequent Emit calls validate
// against.
func (a *Assembler) SetFeature(feature Feature) { a.feature = feature }

// WithLock, WithRep, WithSegment, WithMask, WithZeroing, WithRounding,
// WithSuppressAllExceptions and WithPreferShort set one-shot emitter
// options consumed by the very next Emit call and then cleared — spec.md
// §6's "sticky one-shot emitter options" contract.
func (a *Assembler) WithLock() *Assembler { a.pending.Lock = true; return a }

func (a *Assembler) WithRep(r RepPrefix) *Assembler { a.pending.Rep = r; return a }

func (a *Assembler) WithSegment(r Reg) *Assembler {
	a.pending.Segment, a.pending.HasSegment = r, true
	return a
}

func (a *Assembler) WithMask(r Reg) *Assembler {
	a.pending.Mask, a.pending.HasMask = r, true
	return a
}

func (a *Assembler) WithZeroing() *Assembler { a.pending.Zeroing = true; return a }

func (a *Assembler) WithRounding(r RoundMode) *Assembler {
	a.pending.Rounding, a.pending.HasRound = r, true
	return a
}

func (a *Assembler) WithSuppressAllExceptions() *Assembler {
	a.pending.SuppressAllExceptions = true
	return a
}

func (a *Assembler) WithPreferShort() *Assembler { a.pending.PreferShort = true; return a }

// Emit validates (id, ops) against the instruction database, encodes the
// matched signature into the holder's active section, and resets any
// pending sticky options back to their defaults. Per spec.md §7, the first
// error Emit produces is latched: subsequent Emit calls become no-ops that
// return the same error, and Finalize resurfaces it.
func (a *Assembler) Emit(id InstID, ops ...Operand) error {
	if a.err != nil {
		return a.err
	}
	sel, err := Validate(id, ops, a.arch, a.feature)
	if err != nil {
		a.pending = EmitOptions{}
		a.err = err
		return err
	}
	opts := a.pending
	a.pending = EmitOptions{}
	if err := Encode(a.Holder, sel, opts); err != nil {
		a.err = err
		return err
	}
	return nil
}

// Finalize resurfaces any error latched by Emit before delegating to the
// holder's own Finalize, which checks for unbound labels.
func (a *Assembler) Finalize(base uint64) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.Holder.Finalize(base)
}

// Label allocates a new unbound label.
func (a *Assembler) Label() LabelID { return a.Holder.NewLabel() }

// Bind binds a label at the holder's current position.
func (a *Assembler) Bind(id LabelID) error { return a.Holder.Bind(id) }

// Section switches the holder's active section.
func (a *Assembler) Section(name string) error { return a.Holder.Attach(a.Holder.Section(name)) }

// The following are typed convenience wrappers over Emit for the
// highest-traffic mnemonics, mirroring the teacher's per-instruction
// helper methods (architecture/x86_64/assembler.go's AssembleInstruction
// switch) but generalized to return a plain error instead of panicking.

func (a *Assembler) MovRR(dst, src Reg) error { return a.Emit(MOV, R(dst), R(src)) }
func (a *Assembler) MovRI(dst Reg, imm int64) error { return a.Emit(MOV, R(dst), I(imm)) }
func (a *Assembler) MovRM(dst Reg, mem Operand) error { return a.Emit(MOV, R(dst), mem) }
func (a *Assembler) MovMR(mem Operand, src Reg) error { return a.Emit(MOV, mem, R(src)) }

func (a *Assembler) Lea(dst Reg, mem Operand) error { return a.Emit(LEA, R(dst), mem) }

func (a *Assembler) Add(dst, src Reg) error  { return a.Emit(ADD, R(dst), R(src)) }
func (a *Assembler) Sub(dst, src Reg) error  { return a.Emit(SUB, R(dst), R(src)) }
func (a *Assembler) Xor(dst, src Reg) error  { return a.Emit(XOR, R(dst), R(src)) }
func (a *Assembler) Cmp(dst, src Reg) error  { return a.Emit(CMP, R(dst), R(src)) }
func (a *Assembler) Test(dst, src Reg) error { return a.Emit(TEST, R(dst), R(src)) }

func (a *Assembler) Push(r Reg) error { return a.Emit(PUSH, R(r)) }
func (a *Assembler) Pop(r Reg) error  { return a.Emit(POP, R(r)) }

func (a *Assembler) Jmp(label LabelID) error  { return a.Emit(JMP, L(label)) }
func (a *Assembler) Je(label LabelID) error   { return a.Emit(JE, L(label)) }
func (a *Assembler) Jne(label LabelID) error  { return a.Emit(JNE, L(label)) }
func (a *Assembler) Call(label LabelID) error { return a.Emit(CALL, L(label)) }
func (a *Assembler) Ret() error               { return a.Emit(RET) }

func (a *Assembler) Nop() error  { return a.Emit(NOP) }
func (a *Assembler) Hlt() error  { return a.Emit(HLT) }
func (a *Assembler) Int3() error { return a.Emit(INT3) }
