package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFile(content string) *File {
	fs := NewFileSet()
	return fs.Get(fs.AddVirtual("test.java", []byte(content)))
}

func TestLineOfAndLineStart(t *testing.T) {
	f := addFile("ab\ncd\n\nef")
	require.Equal(t, uint32(4), f.LineCount())

	cases := []struct {
		off  uint32
		line uint32
	}{
		{0, 0}, {1, 0}, {2, 0}, // the newline belongs to line 0
		{3, 1}, {5, 1},
		{6, 2},
		{7, 3}, {8, 3}, {9, 3}, {100, 3},
	}
	for _, c := range cases {
		assert.Equalf(t, c.line, f.LineOf(c.off), "offset %d", c.off)
	}

	assert.Equal(t, uint32(0), f.LineStart(0))
	assert.Equal(t, uint32(3), f.LineStart(1))
	assert.Equal(t, uint32(6), f.LineStart(2))
	assert.Equal(t, uint32(7), f.LineStart(3))
	assert.Equal(t, f.Len(), f.LineStart(9))
	assert.Equal(t, "cd", f.LineText(1))
	assert.Equal(t, "", f.LineText(2))
	assert.Equal(t, "ef", f.LineText(3))
}

func TestTrailingNewlineOpensEmptyLine(t *testing.T) {
	f := addFile("x\n")
	assert.Equal(t, uint32(2), f.LineCount())
	assert.Equal(t, uint32(2), f.LineStart(1))
	assert.Equal(t, "", f.LineText(1))
}

func TestIndent(t *testing.T) {
	f := addFile("a\n    b\n\tc\n   \n")
	w, ok := f.Indent(0, 4)
	assert.True(t, ok)
	assert.Equal(t, 0, w)

	w, ok = f.Indent(1, 4)
	assert.True(t, ok)
	assert.Equal(t, 4, w)

	w, ok = f.Indent(2, 4)
	assert.True(t, ok)
	assert.Equal(t, 4, w)

	_, ok = f.Indent(3, 4)
	assert.False(t, ok, "blank line has no indentation")
}

func TestLineCol(t *testing.T) {
	f := addFile("one\ntwo")
	assert.Equal(t, LineCol{Line: 2, Col: 2}, f.LineCol(5))
}

func TestFileSetRevisions(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a/../A.java", []byte("class A {}"))
	second := fs.AddVirtual("A.java", []byte("class A { }"))

	latest, ok := fs.GetLatest("A.java")
	require.True(t, ok)
	assert.Equal(t, second, latest)
	assert.Equal(t, "class A {}", string(fs.Get(first).Content))
	assert.Equal(t, 2, fs.Len())
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	assert.True(t, changed)
	assert.Equal(t, "a\nb\rc", string(out))

	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	assert.True(t, had)
	assert.Equal(t, "x", string(out))
}
