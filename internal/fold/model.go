package fold

import (
	"cmp"
	"slices"

	"jfold/internal/source"
)

// Identity names an installed entry. Identities grow monotonically and are
// never handed out twice by the same model.
type Identity uint64

// Position is a line-aligned range of the document. Deleted is set when an
// edit swallowed the whole range; such positions are skipped by the next pass.
type Position struct {
	Offset  uint32
	Length  uint32
	Deleted bool
}

// End is the exclusive end offset.
func (p Position) End() uint32 {
	return p.Offset + p.Length
}

// Span converts the position to a span of file.
func (p Position) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: p.Offset, End: p.End()}
}

// Lines returns the first and last line the position covers.
func (p Position) Lines(doc *source.File) (first, last uint32) {
	first = doc.LineOf(p.Offset)
	last = first
	if p.Length > 0 {
		last = doc.LineOf(p.End() - 1)
	}
	return first, last
}

// Entry is one installed region.
type Entry struct {
	ID        Identity
	Position  Position
	Collapsed bool
	IsComment bool
	Owner     Owner
	Kind      RegionKind
}

// Model is the installed set of regions. The reconciliation pass is its only
// writer; renderers read it between passes.
type Model struct {
	entries map[Identity]*Entry
	next    Identity
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{entries: make(map[Identity]*Entry), next: 1}
}

// RestoreModel rebuilds a model from saved entries. next is the first
// identity the restored model may hand out; it is raised above every saved
// identity if needed.
func RestoreModel(entries []Entry, next Identity) *Model {
	m := NewModel()
	m.next = max(next, 1)
	for _, e := range entries {
		cp := e
		m.entries[e.ID] = &cp
		if e.ID >= m.next {
			m.next = e.ID + 1
		}
	}
	return m
}

// NextIdentity returns the identity the next inserted entry will get.
func (m *Model) NextIdentity() Identity {
	return m.next
}

func (m *Model) Len() int {
	return len(m.entries)
}

// Get returns a copy of the entry with the given identity.
func (m *Model) Get(id Identity) (Entry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries ordered by offset, outer regions first.
func (m *Model) Entries() []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	sortEntries(out)
	return out
}

func sortEntries(es []Entry) {
	slices.SortFunc(es, func(a, b Entry) int {
		if c := cmp.Compare(a.Position.Offset, b.Position.Offset); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Position.Length, a.Position.Length); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// At returns the entries whose first line is line.
func (m *Model) At(doc *source.File, line uint32) []Entry {
	var out []Entry
	for _, e := range m.Entries() {
		if e.Position.Deleted {
			continue
		}
		if first, _ := e.Position.Lines(doc); first == line {
			out = append(out, e)
		}
	}
	return out
}

// HiddenLines reports, per line of doc, whether a collapsed entry hides it.
// The first line of a collapsed entry stays visible.
func (m *Model) HiddenLines(doc *source.File) []bool {
	hidden := make([]bool, doc.LineCount())
	for _, e := range m.entries {
		if !e.Collapsed || e.Position.Deleted || e.Position.Length == 0 {
			continue
		}
		first, last := e.Position.Lines(doc)
		for l := first + 1; l <= last && int(l) < len(hidden); l++ {
			hidden[l] = true
		}
	}
	return hidden
}

// Toggle flips the collapse state of an entry and returns the new state.
func (m *Model) Toggle(id Identity) (collapsed, ok bool) {
	e, ok := m.entries[id]
	if !ok {
		return false, false
	}
	e.Collapsed = !e.Collapsed
	return e.Collapsed, true
}

// SetCollapsed sets the collapse state of an entry. It reports whether the
// state changed.
func (m *Model) SetCollapsed(id Identity, collapsed bool) bool {
	e, ok := m.entries[id]
	if !ok || e.Collapsed == collapsed {
		return false
	}
	e.Collapsed = collapsed
	return true
}

// Track moves every position across a document edit, the way a document keeps
// its positions current. Positions whose whole range is replaced are marked
// deleted.
func (m *Model) Track(edit source.Edit) {
	for _, e := range m.entries {
		if e.Position.Deleted {
			continue
		}
		e.Position = trackPosition(e.Position, edit)
	}
}

func trackPosition(p Position, edit source.Edit) Position {
	start, end := p.Offset, p.End()
	if edit.Length > 0 && edit.Offset <= start && edit.End() >= end {
		p.Deleted = true
		return p
	}

	var newStart uint32
	switch {
	case start >= edit.End():
		newStart = uint32(int64(start) + edit.Delta())
	case start > edit.Offset:
		newStart = edit.Offset + uint32(len(edit.Text))
	default:
		newStart = start
	}
	newEnd := edit.MapOffset(end, true)
	if newEnd <= newStart {
		p.Deleted = true
		return p
	}
	p.Offset = newStart
	p.Length = newEnd - newStart
	return p
}

func (m *Model) insert(e Entry) Entry {
	e.ID = m.next
	m.next++
	cp := e
	m.entries[e.ID] = &cp
	return e
}

func (m *Model) remove(id Identity) {
	delete(m.entries, id)
}

// live returns pointers to the entries for in-place updates by the pass.
func (m *Model) live() []*Entry {
	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		if c := cmp.Compare(a.Position.Offset, b.Position.Offset); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
