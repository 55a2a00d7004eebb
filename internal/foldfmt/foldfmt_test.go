package foldfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/diag"
	"jfold/internal/fold"
	"jfold/internal/source"
)

func sample() (*source.FileSet, *source.File, []fold.Entry) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("A.java", []byte("class A {\n    void m() {\n        x();\n    }\n}\n")))
	entries := []fold.Entry{{
		ID:        7,
		Position:  fold.Position{Offset: 10, Length: file.LineStart(4) - 10},
		Collapsed: true,
		Owner:     fold.Owner{Key: "A#m()", Kind: fold.OwnerMember},
		Kind:      fold.RegionMember,
	}}
	return fs, file, entries
}

func TestModelPretty(t *testing.T) {
	_, file, entries := sample()
	var buf bytes.Buffer
	require.NoError(t, Model(&buf, file, entries, Options{Preview: true, Width: 6}))
	line := buf.String()
	assert.Contains(t, line, "2-4")
	assert.Contains(t, line, "member")
	assert.Contains(t, line, "A#m()")
	assert.Contains(t, line, "[collapsed]")
	assert.Contains(t, line, "void …")
	assert.NotContains(t, line, "\x1b[", "colors are off")
}

func TestChangesetPretty(t *testing.T) {
	_, file, entries := sample()
	var buf bytes.Buffer
	require.NoError(t, Changeset(&buf, file, fold.Changeset{Added: entries}, Options{}))
	assert.True(t, strings.HasPrefix(buf.String(), "+ "))

	buf.Reset()
	require.NoError(t, Changeset(&buf, file, fold.Changeset{}, Options{}))
	assert.Equal(t, "no changes\n", buf.String())
}

func TestModelJSON(t *testing.T) {
	_, file, entries := sample()
	var buf bytes.Buffer
	require.NoError(t, ModelJSON(&buf, file, entries))

	var out ModelOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	got := out.Regions[0]
	assert.Equal(t, "A#m()", got.Owner)
	assert.Equal(t, "member", got.OwnerKind)
	assert.Equal(t, uint32(2), got.FirstLine)
	assert.Equal(t, uint32(4), got.LastLine)
	assert.True(t, got.Collapsed)
}

func TestDiagnostics(t *testing.T) {
	fs, file, _ := sample()
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedTopLevel,
		Message:  "unexpected top-level construct",
		Primary:  source.Span{File: file.ID, Start: 10, End: 14},
	})
	var buf bytes.Buffer
	require.NoError(t, Diagnostics(&buf, fs, bag, Options{}))
	assert.Equal(t, "A.java:2:1: error "+diag.SynUnexpectedTopLevel.ID()+": unexpected top-level construct\n", buf.String())
}
