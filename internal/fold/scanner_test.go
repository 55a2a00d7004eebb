package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/source"
	"jfold/internal/token"
)

func TestScannerResetsToSubRanges(t *testing.T) {
	doc := docOf("int a; /* one */ int b; // two\n")
	s := NewScanner(doc)

	s.Reset(source.Span{Start: 7, End: 23})
	var kinds []token.Kind
	for {
		tok, err := s.NextToken()
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	assert.Equal(t, []token.Kind{token.BlockComment, token.Ident, token.Ident, token.Semicolon, token.EOF}, kinds)

	s.Reset(source.Span{Start: 24, End: 500})
	tok, err := s.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.LineComment, tok.Kind)
	assert.Equal(t, tok.Span, s.CurrentRange())
}

func TestScannerReportsInvalidInput(t *testing.T) {
	s := NewScanner(docOf("a /* never closed"))
	s.Reset(source.Span{Start: 1, End: 17})
	_, err := s.NextToken()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkerText(t *testing.T) {
	cases := map[string]string{
		"// region A":     "region A",
		"//region":        "region",
		"/* endregion */": "endregion */",
		"/** * region */": "region */",
		"/// region doc":  "region doc",
	}
	for src, want := range cases {
		doc := docOf(src)
		s := NewScanner(doc)
		tok, err := s.NextToken()
		require.NoError(t, err)
		assert.Equal(t, want, markerText(tok), src)
	}
}
