package x86

import "github.com/keurnel/x86asm/internal/asmerr"

// LabelID identifies a label entry within a Holder.
type LabelID int32

// LabelState is whether a label has been bound to a concrete position yet.
type LabelState int

const (
	LabelUnbound LabelState = iota
	LabelBound
)

// PatchKind is the width/shape of a placeholder a forward reference writes,
// per spec.md §3 "Label entry (C5)".
type PatchKind int

const (
	PatchRel8 PatchKind = iota
	PatchRel32
	PatchAbs32
	PatchAbs64
)

func (k PatchKind) size() int {
	switch k {
	case PatchRel8:
		return 1
	case PatchRel32, PatchAbs32:
		return 4
	case PatchAbs64:
		return 8
	default:
		return 0
	}
}

// linkRecord is one unresolved forward reference, stored in an arena and
// chained via Next (spec.md §9: "an arena of link nodes indexed by 32-bit
// ids, no owning pointers").
type linkRecord struct {
	section SectionID
	offset  int
	kind    PatchKind
	next    int32 // -1 terminates the chain
}

// labelRecord is one label's bookkeeping (spec.md §3 "Label entry (C5)").
type labelRecord struct {
	state        LabelState
	section      SectionID
	offset       int
	firstLink    int32 // head of the Unbound link chain, -1 if none
}

// Relocation records a patch that must be resolved against a final base
// address rather than in-place during emission — cross-section references
// and absolute (non-PC-relative) label uses (spec.md §4.5 "Relocation
// descriptors").
type Relocation struct {
	Section SectionID
	Offset  int
	Target  LabelID
	Kind    PatchKind
}

// createLabel allocates a new Unbound label with no pending links.
func (h *Holder) createLabel() LabelID {
	id := LabelID(len(h.labels))
	h.labels = append(h.labels, labelRecord{state: LabelUnbound, firstLink: -1})
	return id
}

// NewLabel is the public C5 contract `create_label() -> id`.
func (h *Holder) NewLabel() LabelID { return h.createLabel() }

// addLink prepends a new forward-reference link to label id's chain.
func (h *Holder) addLink(id LabelID, sec SectionID, offset int, kind PatchKind) {
	linkIdx := int32(len(h.links))
	h.links = append(h.links, linkRecord{section: sec, offset: offset, kind: kind, next: h.labels[id].firstLink})
	h.labels[id].firstLink = linkIdx
}

// Bind is the public C5 contract `bind_label(id)`: binds label id at the
// current position of the holder's active section (spec.md §4.5).
func (h *Holder) Bind(id LabelID) error {
	if int(id) < 0 || int(id) >= len(h.labels) {
		return asmerr.New(asmerr.Internal, "", "bind: unknown label id %d", id)
	}
	rec := &h.labels[id]
	if rec.state == LabelBound {
		return asmerr.New(asmerr.Internal, "", "label %d already bound", id)
	}
	sec := h.activeSection()
	pos := sec.Position()

	link := rec.firstLink
	for link != -1 {
		l := h.links[link]
		if l.section == sec.ID {
			disp := pos - (l.offset + l.kind.size())
			if err := patchDisplacement(sec, l.offset, l.kind, disp); err != nil {
				return err
			}
		} else {
			h.relocations = append(h.relocations, Relocation{Section: l.section, Offset: l.offset, Target: id, Kind: l.kind})
		}
		link = h.links[link].next
	}

	rec.state = LabelBound
	rec.section = sec.ID
	rec.offset = pos
	rec.firstLink = -1
	return nil
}

// referenceLabel is called by the encoder when an operand names a label. It
// either patches in place (label bound, same section), queues a
// relocation (label bound, different section) or appends a link record
// (label unbound), per spec.md §4.5 `reference_label`.
func (h *Holder) referenceLabel(id LabelID, kind PatchKind) error {
	sec := h.activeSection()
	offset := sec.Position()

	// Reserve the placeholder bytes now; bind()/finalize() overwrite them.
	for i := 0; i < kind.size(); i++ {
		sec.appendByte(0)
	}

	if int(id) < 0 || int(id) >= len(h.labels) {
		return asmerr.New(asmerr.Internal, "", "reference: unknown label id %d", id)
	}
	rec := h.labels[id]
	if rec.state == LabelBound {
		if rec.section == sec.ID {
			disp := rec.offset - (offset + kind.size())
			return patchDisplacement(sec, offset, kind, disp)
		}
		h.relocations = append(h.relocations, Relocation{Section: sec.ID, Offset: offset, Target: id, Kind: kind})
		return nil
	}
	h.addLink(id, sec.ID, offset, kind)
	return nil
}

func patchDisplacement(sec *Section, offset int, kind PatchKind, disp int) error {
	switch kind {
	case PatchRel8:
		if disp < -128 || disp > 127 {
			return asmerr.New(asmerr.LabelTooFar, "", "displacement %d out of rel8 range at offset %d", disp, offset)
		}
		sec.Data[offset] = byte(int8(disp))
	case PatchRel32:
		putLE32(sec.Data[offset:], uint32(int32(disp)))
	case PatchAbs32:
		putLE32(sec.Data[offset:], uint32(int32(disp)))
	case PatchAbs64:
		putLE64(sec.Data[offset:], uint64(int64(disp)))
	}
	return nil
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// backwardReachesRel8 reports whether id is already bound, in the active
// section, behind the current position, and within rel8 range from here —
// the one case an encoder can decide short-vs-near on its own without a
// sizing pre-pass. ok is false for a forward or cross-section reference.
func (h *Holder) backwardReachesRel8(id LabelID) (reach bool, ok bool) {
	if int(id) < 0 || int(id) >= len(h.labels) {
		return false, false
	}
	rec := h.labels[id]
	if rec.state != LabelBound {
		return false, false
	}
	sec := h.activeSection()
	if rec.section != sec.ID {
		return false, false
	}
	// +2 accounts for the short form's 1 opcode byte + 1 rel8 byte, the
	// tightest possible encoding, so this is a conservative reach check.
	disp := rec.offset - (sec.Position() + 2)
	return disp >= -128 && disp <= 127, true
}

// RelocateTo resolves every outstanding cross-section/absolute relocation
// against base, returning the first error met, per spec.md §4.5
// `relocate_to(base_address)`.
func (h *Holder) RelocateTo(base uint64) error {
	for _, r := range h.relocations {
		sec := &h.sections[r.Section]
		target := h.labels[r.Target]
		if target.state != LabelBound {
			return asmerr.New(asmerr.Internal, "", "relocation target label %d never bound", r.Target)
		}
		absolute := base + h.sections[target.section].VirtAddr + uint64(target.offset)
		switch r.Kind {
		case PatchAbs64:
			putLE64(sec.Data[r.Offset:], absolute)
		case PatchAbs32:
			putLE32(sec.Data[r.Offset:], uint32(absolute))
		case PatchRel32:
			pc := base + sec.VirtAddr + uint64(r.Offset) + 4
			putLE32(sec.Data[r.Offset:], uint32(int32(int64(absolute)-int64(pc))))
		case PatchRel8:
			pc := base + sec.VirtAddr + uint64(r.Offset) + 1
			disp := int64(absolute) - int64(pc)
			if disp < -128 || disp > 127 {
				return asmerr.New(asmerr.LabelTooFar, "", "cross-section rel8 relocation out of range")
			}
			sec.Data[r.Offset] = byte(int8(disp))
		}
	}
	return nil
}
