package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jfold/internal/diag"
	"jfold/internal/lexer"
	"jfold/internal/source"
	"jfold/internal/token"
)

func makeTestLexer(input string, keepComments bool) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("Test.java", []byte(input)))
	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepComments: keepComments})
	return lx, bag
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestCommentSubKinds(t *testing.T) {
	src := "// line\n/* block */\n/** doc */\n/// markdown\n//// banner\n/**/"
	lx, bag := makeTestLexer(src, true)
	assert.Equal(t, []token.Kind{
		token.LineComment,
		token.BlockComment,
		token.DocComment,
		token.MarkdownDoc,
		token.LineComment,
		token.BlockComment,
		token.EOF,
	}, collectKinds(lx))
	assert.Equal(t, 0, bag.Len())
}

func TestCommentsSkippedByDefault(t *testing.T) {
	lx, _ := makeTestLexer("class /* x */ A { } // tail", false)
	assert.Equal(t, []token.Kind{token.KwClass, token.Ident, token.LBrace, token.RBrace, token.EOF}, collectKinds(lx))
}

func TestOperatorsAndGenerics(t *testing.T) {
	lx, _ := makeTestLexer("Map<String, List<Integer>> m = x -> y::z;", false)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Lt, token.Ident, token.Comma, token.Ident, token.Lt, token.Ident,
		token.Gt, token.Gt, token.Ident, token.Assign, token.Ident, token.Arrow, token.Ident,
		token.ColonColon, token.Ident, token.Semicolon, token.EOF,
	}, collectKinds(lx))
}

func TestLiterals(t *testing.T) {
	lx, bag := makeTestLexer(`1 0x1F 1.5e-3f 'c' "s\"q" """
text
""" 10L`, false)
	assert.Equal(t, []token.Kind{
		token.IntLit, token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.TextBlock, token.IntLit, token.EOF,
	}, collectKinds(lx))
	assert.Equal(t, 0, bag.Len())
}

func TestUnterminatedBlockCommentIsInvalid(t *testing.T) {
	lx, bag := makeTestLexer("class A /* never closed", true)
	kinds := collectKinds(lx)
	require.Contains(t, kinds, token.Invalid)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.LexUnterminatedBlockComment, bag.Items()[0].Code)
}

func TestResetToSubRange(t *testing.T) {
	src := "int a; /* c */ int b;"
	lx, _ := makeTestLexer(src, true)
	lx.Reset(source.Span{Start: 7, End: 14})
	tok := lx.Next()
	assert.Equal(t, token.BlockComment, tok.Kind)
	assert.Equal(t, "/* c */", tok.Text)
	assert.Equal(t, token.EOF, lx.Next().Kind)

	lx.Reset(source.Span{Start: 15, End: uint32(len(src))})
	assert.Equal(t, "int", lx.Next().Text)
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b", false)
	assert.Equal(t, "a", lx.Peek().Text)
	assert.Equal(t, "a", lx.Next().Text)
	assert.Equal(t, "b", lx.Next().Text)
}

func TestUnicodeIdentifier(t *testing.T) {
	lx, _ := makeTestLexer("int größe = 1;", false)
	lx.Next()
	tok := lx.Next()
	assert.Equal(t, token.Ident, tok.Kind)
	assert.Equal(t, "größe", tok.Text)
}
