package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/source"
)

func docOf(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("Doc.java", []byte(src)))
}

func TestAlignInclusive(t *testing.T) {
	doc := docOf("a\n  bb {\n  }\nz\n")
	// from "bb" to the closing brace
	pos, ok := Align(doc, source.Span{Start: 4, End: 12}, AlignInclusive)
	require.True(t, ok)
	assert.Equal(t, Position{Offset: 2, Length: 11}, pos)
}

func TestAlignInclusiveAtEndOfDocument(t *testing.T) {
	doc := docOf("x {\n}")
	pos, ok := Align(doc, source.Span{Start: 0, End: 5}, AlignInclusive)
	require.True(t, ok)
	assert.Equal(t, Position{Offset: 0, Length: 5}, pos)
}

func TestAlignExclusiveKeepsLastLine(t *testing.T) {
	doc := docOf("if {\n  a;\n} else {\n")
	pos, ok := Align(doc, source.Span{Start: 0, End: 11}, AlignExclusive)
	require.True(t, ok)
	assert.Equal(t, Position{Offset: 0, Length: 10}, pos)
}

func TestAlignRejectsShortSpans(t *testing.T) {
	doc := docOf("one line\n{\n}\n")
	_, ok := Align(doc, source.Span{Start: 0, End: 8}, AlignInclusive)
	assert.False(t, ok, "single line")

	_, ok = Align(doc, source.Span{Start: 9, End: 12}, AlignExclusive)
	assert.False(t, ok, "exclusive needs two lines before the last")

	_, ok = Align(doc, source.Span{Start: 5, End: 5}, AlignInclusive)
	assert.False(t, ok, "empty")

	_, ok = Align(doc, source.Span{Start: 40, End: 50}, AlignInclusive)
	assert.False(t, ok, "out of range")
}

func TestTrailingMode(t *testing.T) {
	cases := []struct {
		src  string
		want AlignMode
	}{
		{"}\n", AlignInclusive},
		{"}", AlignInclusive},
		{"} else {\n", AlignExclusive},
		{"} catch (E e) {\n", AlignExclusive},
		{"}   // done\n", AlignInclusive},
		{"});\n", AlignInclusive},
		{"} @Ann int x;\n", AlignExclusive},
		{"} {\n", AlignExclusive},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			assert.Equal(t, tc.want, trailingMode(docOf(tc.src), 1))
		})
	}
}
