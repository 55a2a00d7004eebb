package driver

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/pmezard/go-difflib/difflib"

	"jfold/internal/fold"
	"jfold/internal/observ"
	"jfold/internal/source"
	"jfold/internal/trace"
)

// splitLines splits s after every newline, keeping them.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Edits computes line-granular edits turning oldText into newText. They are ordered
// from the end of the document to the start, so each one can be applied (or
// tracked) in turn using offsets of the original text.
func Edits(oldText, newText []byte) ([]source.Edit, error) {
	a, b := splitLines(string(oldText)), splitLines(string(newText))
	offsets := make([]int, len(a)+1)
	for i, l := range a {
		offsets[i+1] = offsets[i] + len(l)
	}

	var edits []source.Edit
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		off, err := safecast.Conv[uint32](offsets[op.I1])
		if err != nil {
			return nil, err
		}
		length, err := safecast.Conv[uint32](offsets[op.I2] - offsets[op.I1])
		if err != nil {
			return nil, err
		}
		edits = append(edits, source.Edit{
			Offset: off,
			Length: length,
			Text:   strings.Join(b[op.J1:op.J2], ""),
		})
	}
	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}
	return edits, nil
}

// Patch renders a unified diff between two revisions.
func Patch(oldName, newName string, oldText, newText []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(string(oldText)),
		B:        splitLines(string(newText)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	})
}

// DiffResult is the outcome of replaying one revision onto another.
type DiffResult struct {
	Old, New *Result
	Edits    []source.Edit
	Changes  fold.Changeset
	Model    *fold.Model
}

// Diff folds oldFile (on top of prior when given, so saved collapse state
// carries over), tracks the textual edits to newFile through the model and
// runs a change pass on newFile.
func Diff(ctx context.Context, oldFile, newFile *source.File, opts Options, prior *fold.Model) (*DiffResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeFile, "driver.diff", newFile.Path)
	defer span.End("")

	before, err := Fold(ctx, oldFile, opts, prior)
	if err != nil {
		return nil, err
	}
	edits, err := Edits(oldFile.Content, newFile.Content)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", newFile.Path, err)
	}
	for _, e := range edits {
		before.Model.Track(e)
	}

	timer := observ.NewTimer()
	phase := timer.Begin("parse")
	tree, bag, err := Parse(newFile, opts.MaxDiagnostics)
	timer.End(phase, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", newFile.Path, err)
	}
	s := fold.NewSession(opts.Prefs, before.Model)
	phase = timer.Begin("fold")
	cs, err := s.OnChange(ctx, fold.Input{File: newFile, Tree: tree})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", newFile.Path, err)
	}
	timer.End(phase, fmt.Sprintf("+%d ~%d -%d", len(cs.Added), len(cs.Updated), len(cs.Deleted)))
	after := &Result{
		Path:    newFile.Path,
		File:    newFile,
		Tree:    tree,
		Bag:     bag,
		Model:   s.Model(),
		Changes: cs,
		Timings: timer.Report(),
	}
	return &DiffResult{Old: before, New: after, Edits: edits, Changes: cs, Model: s.Model()}, nil
}
