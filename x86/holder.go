package x86

import "github.com/keurnel/x86asm/internal/asmerr"

// Holder owns every Section, label and relocation produced during a single
// assembly/compilation session — spec.md §6's "CodeHolder" external
// interface, renamed to match the teacher's preference for short
// domain nouns (architecture/x86_64's Assembler plays an analogous
// aggregating role).
type Holder struct {
	sections    []Section
	sectionIdx  map[string]SectionID
	active      SectionID
	labels      []labelRecord
	links       []linkRecord
	relocations []Relocation
	arch        Arch
}

// NewHolder creates an empty holder targeting the given architecture mode
// (Arch32 or Arch64), with a default ".text" section already active —
// spec.md §6 `new_code_holder(arch)`.
func NewHolder(arch Arch) *Holder {
	h := &Holder{sectionIdx: map[string]SectionID{}, arch: arch}
	id := h.addSection(".text", SectionExec|SectionRead, 16)
	h.active = id
	return h
}

func (h *Holder) addSection(name string, flags SectionFlags, align int) SectionID {
	id := SectionID(len(h.sections))
	h.sections = append(h.sections, Section{ID: id, Name: name, Flags: flags, Align: align})
	h.sectionIdx[name] = id
	return id
}

// Section returns (or lazily creates) the named section — spec.md §6
// `section(name)`. Lookups are by convention: ".text" is
// exec+read, ".data" is read+write, ".bss" is read+write with no
// backing Data bytes expected to be appended directly.
func (h *Holder) Section(name string) SectionID {
	if id, ok := h.sectionIdx[name]; ok {
		return id
	}
	flags := SectionRead
	switch name {
	case ".text":
		flags |= SectionExec
	case ".data", ".bss":
		flags |= SectionWrite
	}
	return h.addSection(name, flags, 16)
}

// Attach switches the holder's active section — spec.md §6 `attach(section)`.
// Subsequent Emit/Bind calls append to it until the next Attach/Detach.
func (h *Holder) Attach(id SectionID) error {
	if int(id) < 0 || int(id) >= len(h.sections) {
		return asmerr.New(asmerr.Internal, "", "attach: unknown section id %d", id)
	}
	h.active = id
	return nil
}

// Detach resets the active section back to ".text" — spec.md §6
// `detach()`.
func (h *Holder) Detach() { h.active = h.Section(".text") }

func (h *Holder) activeSection() *Section { return &h.sections[h.active] }

// ActiveSection exposes the holder's currently attached section id.
func (h *Holder) ActiveSection() SectionID { return h.active }

// Arch reports the architecture mode this holder was opened for.
func (h *Holder) Arch() Arch { return h.arch }

// CodeSize returns the active section's current length in bytes — spec.md
// §6 `code_size()`.
func (h *Holder) CodeSize() int { return h.activeSection().Position() }

// emit appends raw bytes to the active section. Encoders call this; it is
// not part of the public contract.
func (h *Holder) emit(bs ...byte) { h.activeSection().appendBytes(bs...) }

// layout assigns each section a VirtAddr by walking them in registration
// order and packing them contiguously, respecting each section's Align.
func (h *Holder) layout() {
	var offset uint64
	for i := range h.sections {
		s := &h.sections[i]
		if align := uint64(s.Align); align > 1 {
			if rem := offset % align; rem != 0 {
				offset += align - rem
			}
		}
		s.VirtAddr = offset
		offset += uint64(len(s.Data))
	}
}

// CopyFlattened lays out every section starting at base (see layout),
// resolves all outstanding relocations against that base, and returns the
// bytes in section order with zero padding up to each section's aligned
// VirtAddr — spec.md §6 `copy_flattened(base)`.
func (h *Holder) CopyFlattened(base uint64) ([]byte, error) {
	h.layout()
	if err := h.RelocateTo(base); err != nil {
		return nil, err
	}
	total := 0
	for i := range h.sections {
		total += len(h.sections[i].Data)
	}
	out := make([]byte, 0, total)
	for i := range h.sections {
		for uint64(len(out)) < h.sections[i].VirtAddr {
			out = append(out, 0)
		}
		out = append(out, h.sections[i].Data...)
	}
	return out, nil
}

// UnresolvedLabels reports ids of every label created but never bound,
// surfaced so callers can turn a silent miscompile into an explicit error
// before CopyFlattened/RelocateTo (spec.md §7's UnboundLabel kind).
func (h *Holder) UnresolvedLabels() []LabelID {
	var out []LabelID
	for i, l := range h.labels {
		if l.state == LabelUnbound {
			out = append(out, LabelID(i))
		}
	}
	return out
}

// Finalize checks that every label was bound, then calls CopyFlattened.
func (h *Holder) Finalize(base uint64) ([]byte, error) {
	if unresolved := h.UnresolvedLabels(); len(unresolved) > 0 {
		return nil, asmerr.New(asmerr.UnboundLabel, "", "%d label(s) never bound", len(unresolved))
	}
	return h.CopyFlattened(base)
}
