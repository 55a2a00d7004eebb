// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"errors"
	"fmt"

	"jfold/internal/fold"
	"jfold/internal/source"
)

type slot struct {
	owner   string
	comment bool
}

// CheckModel verifies the invariants every installed model must hold after a
// pass over doc:
//  1. identities are non-zero and unique
//  2. no entry is marked deleted
//  3. every entry lies within doc and spans at least two lines
//  4. an owner holds at most one code entry and one comment entry
func CheckModel(doc *source.File, entries []fold.Entry) error {
	if doc == nil {
		return errors.New("nil document")
	}
	var errs []error
	ids := make(map[fold.Identity]bool, len(entries))
	slots := make(map[slot]fold.Identity, len(entries))
	for _, e := range entries {
		if e.ID == 0 {
			errs = append(errs, fmt.Errorf("entry at %d has zero identity", e.Position.Offset))
		}
		if ids[e.ID] {
			errs = append(errs, fmt.Errorf("identity %d is used twice", e.ID))
		}
		ids[e.ID] = true

		if e.Position.Deleted {
			errs = append(errs, fmt.Errorf("entry %d is marked deleted", e.ID))
			continue
		}
		if e.Position.End() > doc.Len() {
			errs = append(errs, fmt.Errorf("entry %d ends at %d past the document end %d", e.ID, e.Position.End(), doc.Len()))
			continue
		}
		if first, last := e.Position.Lines(doc); first >= last {
			errs = append(errs, fmt.Errorf("entry %d covers a single line %d", e.ID, first))
		}

		if e.Owner.IsZero() {
			continue
		}
		key := slot{owner: e.Owner.Key, comment: e.IsComment}
		if prev, dup := slots[key]; dup {
			errs = append(errs, fmt.Errorf("owner %q (comment=%v) holds entries %d and %d", e.Owner.Key, e.IsComment, prev, e.ID))
		}
		slots[key] = e.ID
	}
	return errors.Join(errs...)
}

// CheckChangeset verifies that cs describes the step from before to after:
// additions are new identities, deletions are gone, updates survived.
func CheckChangeset(before, after []fold.Entry, cs fold.Changeset) error {
	had := make(map[fold.Identity]bool, len(before))
	for _, e := range before {
		had[e.ID] = true
	}
	has := make(map[fold.Identity]bool, len(after))
	for _, e := range after {
		has[e.ID] = true
	}
	var errs []error
	for _, e := range cs.Added {
		if had[e.ID] || !has[e.ID] {
			errs = append(errs, fmt.Errorf("added entry %d is not new", e.ID))
		}
	}
	for _, e := range cs.Updated {
		if !had[e.ID] || !has[e.ID] {
			errs = append(errs, fmt.Errorf("updated entry %d did not survive", e.ID))
		}
	}
	for _, e := range cs.Deleted {
		if !had[e.ID] || has[e.ID] {
			errs = append(errs, fmt.Errorf("deleted entry %d is still installed", e.ID))
		}
	}
	return errors.Join(errs...)
}
