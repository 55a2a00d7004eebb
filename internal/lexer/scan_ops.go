package lexer

import (
	"jfold/internal/diag"
	"jfold/internal/token"
)

// operator sequences, longest first; all of them map to token.Operator except
// the few the parser needs to tell apart.
var longOps = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.Operator},
	{"...", token.Ellipsis},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"==", token.Operator},
	{"!=", token.Operator},
	{"<=", token.Operator},
	{"&&", token.Operator},
	{"||", token.Operator},
	{"++", token.Operator},
	{"--", token.Operator},
	{"+=", token.Operator},
	{"-=", token.Operator},
	{"*=", token.Operator},
	{"/=", token.Operator},
	{"%=", token.Operator},
	{"&=", token.Operator},
	{"|=", token.Operator},
	{"^=", token.Operator},
}

// scanOperatorOrPunct scans punctuation greedily. '>' is always a single token so
// that closing generic brackets (List<List<T>>) stay balanced; ">=", ">>" and
// ">>>" therefore arrive as several tokens, which is harmless for folding.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range longOps {
		if lx.matchAhead(op.text) {
			for range len(op.text) {
				lx.cursor.Bump()
			}
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '.':
		return lx.emit(token.Dot, start)
	case '@':
		return lx.emit(token.At, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '?':
		return lx.emit(token.Question, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '+', '-', '*', '/', '%', '!', '~', '&', '|', '^':
		return lx.emit(token.Operator, start)
	default:
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
		return tok
	}
}

func (lx *Lexer) matchAhead(s string) bool {
	for i := range len(s) {
		if lx.cursor.PeekAt(uint32(i)) != s[i] {
			return false
		}
	}
	return true
}
