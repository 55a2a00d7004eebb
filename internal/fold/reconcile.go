package fold

import (
	"slices"
)

// reconcile diffs a fresh candidate set against the installed model and
// applies the difference. allowCollapse permits collapse-state changes on
// matched entries and default collapsing of new ones.
//
// Matching runs in three steps:
//
//  1. direct: a candidate takes over the entry with the same owner and
//     comment flag;
//  2. malformed: an unmatched candidate that starts at offset 0 yet has a
//     nested owner is dropped, and an unmatched entry of that owner is kept
//     as it is;
//  3. rescue: an entry left without a candidate takes over a new candidate
//     of the same comment flag starting at the same offset. Entries matched
//     in step 1 are never taken over.
//
// Entries whose position an edit deleted are removed without matching.
func reconcile(m *Model, cands []Candidate, allowCollapse bool) Changeset {
	var (
		byOwner   = make(map[Owner][]*Entry)
		ownerless []*Entry
		gone      []*Entry
	)
	for _, e := range m.live() {
		switch {
		case e.Position.Deleted:
			gone = append(gone, e)
		case e.Owner.IsZero():
			ownerless = append(ownerless, e)
		default:
			byOwner[e.Owner] = append(byOwner[e.Owner], e)
		}
	}

	var (
		additions []Candidate
		updated   []*Entry
	)
	for _, c := range cands {
		if c.Owner.IsZero() {
			additions = append(additions, c)
			continue
		}
		list := byOwner[c.Owner]
		i := slices.IndexFunc(list, func(e *Entry) bool { return e.IsComment == c.IsComment })
		if i < 0 {
			additions = append(additions, c)
			continue
		}
		e := list[i]
		byOwner[c.Owner] = slices.Delete(list, i, i+1)
		if c.Malformed() {
			continue
		}
		if applyCandidate(e, c, allowCollapse) {
			updated = append(updated, e)
		}
	}

	deletions := ownerless
	for _, list := range byOwner {
		deletions = append(deletions, list...)
	}
	slices.SortFunc(deletions, func(a, b *Entry) int { return compareEntries(a, b) })

	additions = slices.DeleteFunc(additions, func(c Candidate) bool {
		if !c.Malformed() {
			return false
		}
		deletions = slices.DeleteFunc(deletions, func(e *Entry) bool { return e.Owner == c.Owner })
		return true
	})

	var removed []*Entry
	for _, d := range deletions {
		if j := slices.IndexFunc(additions, func(c Candidate) bool {
			return c.IsComment == d.IsComment && c.Position.Offset == d.Position.Offset
		}); j >= 0 {
			c := additions[j]
			additions = slices.Delete(additions, j, j+1)
			if d.Position != c.Position || d.Owner != c.Owner || d.Kind != c.Kind {
				d.Position, d.Owner, d.Kind = c.Position, c.Owner, c.Kind
				updated = append(updated, d)
			}
			continue
		}
		removed = append(removed, d)
	}

	var cs Changeset
	for _, e := range append(removed, gone...) {
		cs.Deleted = append(cs.Deleted, *e)
		m.remove(e.ID)
	}
	for _, e := range updated {
		cs.Updated = append(cs.Updated, *e)
	}
	for _, c := range additions {
		cs.Added = append(cs.Added, m.insert(Entry{
			Position:  c.Position,
			Collapsed: c.Collapse && allowCollapse,
			IsComment: c.IsComment,
			Owner:     c.Owner,
			Kind:      c.Kind,
		}))
	}
	cs.sort()
	return cs
}

// applyCandidate moves e to c's position. The collapse flag only follows
// the candidate when allowed. It reports whether anything changed.
func applyCandidate(e *Entry, c Candidate, allowCollapse bool) bool {
	changed := false
	if e.Position != c.Position {
		e.Position = c.Position
		changed = true
	}
	if e.Kind != c.Kind {
		e.Kind = c.Kind
		changed = true
	}
	if allowCollapse && e.Collapsed != c.Collapse {
		e.Collapsed = c.Collapse
		changed = true
	}
	return changed
}

func compareEntries(a, b *Entry) int {
	switch {
	case a.Position.Offset != b.Position.Offset:
		if a.Position.Offset < b.Position.Offset {
			return -1
		}
		return 1
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
