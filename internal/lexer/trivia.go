package lexer

import (
	"jfold/internal/diag"
	"jfold/internal/token"
)

// scanComment recognizes //, ///, /* */ and /** */. It returns ok=false (and
// leaves the cursor untouched) when the slash starts an operator instead.
// Block comments do not nest. An unterminated block comment yields Invalid.
func (lx *Lexer) scanComment() (token.Token, bool) {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind := token.LineComment
		if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/' {
			kind = token.MarkdownDoc
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(kind, start), true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind := token.BlockComment
		// "/**/" is an empty block comment, not a doc comment.
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
			kind = token.DocComment
		}
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return lx.emit(kind, start), true
			}
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
		return tok, true

	default:
		return token.Token{}, false
	}
}
