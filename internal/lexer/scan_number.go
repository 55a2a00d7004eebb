package lexer

import (
	"jfold/internal/token"
)

// scanNumber is deliberately lax: folding only needs token boundaries, so digits,
// letters (hex digits, suffixes, exponents), underscores, one fraction dot and a
// signed exponent are swallowed into a single literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	hex := lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X')
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '.' && kind == token.IntLit && isDec(lx.cursor.PeekAt(1)):
			kind = token.FloatLit
			lx.cursor.Bump()
		case b == '.' && kind == token.IntLit && lx.cursor.Off > uint32(start) && !isIdentStartByte(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '.':
			// "1." is a float literal; "1.foo" and "1..2" are not.
			kind = token.FloatLit
			lx.cursor.Bump()
		case (b == '+' || b == '-') && !hex && lx.exponentBefore():
			kind = token.FloatLit
			lx.cursor.Bump()
		case isNumberTail(b):
			lx.cursor.Bump()
		default:
			return lx.emit(kind, start)
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) exponentBefore() bool {
	if lx.cursor.Off == 0 {
		return false
	}
	prev := lx.file.Content[lx.cursor.Off-1]
	return prev == 'e' || prev == 'E'
}
