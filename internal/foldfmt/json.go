package foldfmt

import (
	"encoding/json"
	"io"

	"jfold/internal/fold"
	"jfold/internal/source"
	"jfold/internal/token"
)

// EntryJSON is one region in JSON output. Lines are 1-based.
type EntryJSON struct {
	ID        uint64 `json:"id"`
	Kind      string `json:"kind"`
	Owner     string `json:"owner,omitempty"`
	OwnerKind string `json:"owner_kind,omitempty"`
	Offset    uint32 `json:"offset"`
	Length    uint32 `json:"length"`
	FirstLine uint32 `json:"first_line,omitempty"`
	LastLine  uint32 `json:"last_line,omitempty"`
	Collapsed bool   `json:"collapsed"`
	Comment   bool   `json:"comment"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// ModelOutput is the root of `fold --format json`.
type ModelOutput struct {
	File    string      `json:"file"`
	Regions []EntryJSON `json:"regions"`
	Count   int         `json:"count"`
}

// ChangesetOutput is the root of `diff --format json`.
type ChangesetOutput struct {
	File    string      `json:"file"`
	Added   []EntryJSON `json:"added"`
	Updated []EntryJSON `json:"updated"`
	Deleted []EntryJSON `json:"deleted"`
}

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

func entryJSON(file *source.File, e fold.Entry) EntryJSON {
	out := EntryJSON{
		ID:        uint64(e.ID),
		Kind:      e.Kind.String(),
		Offset:    e.Position.Offset,
		Length:    e.Position.Length,
		Collapsed: e.Collapsed,
		Comment:   e.IsComment,
		Deleted:   e.Position.Deleted,
	}
	if !e.Owner.IsZero() {
		out.Owner = e.Owner.Key
		out.OwnerKind = e.Owner.Kind.String()
	}
	if file != nil && !e.Position.Deleted {
		first, last := e.Position.Lines(file)
		out.FirstLine, out.LastLine = first+1, last+1
	}
	return out
}

func entriesJSON(file *source.File, entries []fold.Entry) []EntryJSON {
	out := make([]EntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON(file, e))
	}
	return out
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewModelOutput converts entries of file for JSON output.
func NewModelOutput(file *source.File, entries []fold.Entry) ModelOutput {
	return ModelOutput{
		File:    file.Path,
		Regions: entriesJSON(file, entries),
		Count:   len(entries),
	}
}

// ModelJSON writes entries as a ModelOutput.
func ModelJSON(w io.Writer, file *source.File, entries []fold.Entry) error {
	return encode(w, NewModelOutput(file, entries))
}

// ModelsJSON writes several models as one JSON array.
func ModelsJSON(w io.Writer, models []ModelOutput) error {
	if models == nil {
		models = []ModelOutput{}
	}
	return encode(w, models)
}

// ChangesetJSON writes cs as a ChangesetOutput. Deleted entries carry their
// last known offsets; their lines are omitted.
func ChangesetJSON(w io.Writer, file *source.File, cs fold.Changeset) error {
	deleted := entriesJSON(nil, cs.Deleted)
	return encode(w, ChangesetOutput{
		File:    file.Path,
		Added:   entriesJSON(file, cs.Added),
		Updated: entriesJSON(file, cs.Updated),
		Deleted: deleted,
	})
}

// TokensJSON writes tokens up to and including EOF.
func TokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span})
		if tok.Kind == token.EOF {
			break
		}
	}
	return encode(w, out)
}
