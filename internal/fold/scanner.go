package fold

import (
	"fmt"

	"jfold/internal/lexer"
	"jfold/internal/source"
	"jfold/internal/token"
)

// Scanner adapts the lexer for region extraction: comments are part of the
// stream, the scanned range can be reset any number of times within a pass,
// and malformed input surfaces as ErrInvalidInput.
//
// A Scanner belongs to one pass at a time.
type Scanner struct {
	file *source.File
	lx   *lexer.Lexer
	cur  token.Token
}

// NewScanner returns a scanner over the whole of file.
func NewScanner(file *source.File) *Scanner {
	s := &Scanner{}
	s.Bind(file)
	return s
}

// Bind points the scanner at another document and resets it to its full range.
func (s *Scanner) Bind(file *source.File) {
	s.file = file
	s.lx = lexer.New(file, lexer.Options{KeepComments: true})
	s.cur = token.Token{Kind: token.EOF, Span: source.Span{File: file.ID}}
}

// File returns the bound document.
func (s *Scanner) File() *source.File {
	return s.file
}

// Reset re-positions the scanner on sp, clamped to the document.
func (s *Scanner) Reset(sp source.Span) {
	if sp.End > s.file.Len() {
		sp.End = s.file.Len()
	}
	if sp.Start > sp.End {
		sp.Start = sp.End
	}
	sp.File = s.file.ID
	s.lx.Reset(sp)
	s.cur = token.Token{Kind: token.EOF, Span: source.Span{File: sp.File, Start: sp.Start, End: sp.Start}}
}

// NextToken returns the next token of the range, or an EOF token at its end.
func (s *Scanner) NextToken() (token.Token, error) {
	tok := s.lx.Next()
	s.cur = tok
	if tok.Kind == token.Invalid {
		return tok, fmt.Errorf("%w: %q at offset %d", ErrInvalidInput, clip(tok.Text, 16), tok.Span.Start)
	}
	return tok, nil
}

// CurrentRange returns the span of the last token returned.
func (s *Scanner) CurrentRange() source.Span {
	return s.cur.Span
}

// isDocComment reports whether k is one of the documentation comment kinds.
func isDocComment(k token.Kind) bool {
	return k == token.DocComment || k == token.MarkdownDoc
}

// foldableComment reports whether a comment of kind k gets a region of its
// own. Line comments only fold as part of the header or custom regions.
func foldableComment(k token.Kind) bool {
	switch k {
	case token.BlockComment, token.DocComment, token.MarkdownDoc:
		return true
	default:
		return false
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
