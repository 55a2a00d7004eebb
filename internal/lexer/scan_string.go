package lexer

import (
	"jfold/internal/diag"
	"jfold/internal/token"
)

// scanString scans "..." with escapes. A newline or the end of range terminates it as Invalid.
func (lx *Lexer) scanString() token.Token {
	return lx.scanQuoted('"', token.StringLit, diag.LexUnterminatedString, "unterminated string literal")
}

// scanChar scans '...'.
func (lx *Lexer) scanChar() token.Token {
	return lx.scanQuoted('\'', token.CharLit, diag.LexUnterminatedChar, "unterminated character literal")
}

func (lx *Lexer) scanQuoted(quote byte, kind token.Kind, code diag.Code, msg string) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			lx.cursor.Bump()
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(code, tok.Span, msg)
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(code, tok.Span, msg)
	return tok
}

// scanTextBlock scans a """ ... """ text block which may span lines.
func (lx *Lexer) scanTextBlock() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == '"' && lx.cursor.PeekAt(1) == '"' && lx.cursor.PeekAt(2) == '"' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(token.TextBlock, start)
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedTextBlock, tok.Span, "unterminated text block")
	return tok
}
