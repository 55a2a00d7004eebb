package token

import (
	"jfold/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsComment reports whether the token is any of the comment sub-kinds.
func (t Token) IsComment() bool {
	return t.Kind.IsComment()
}

// IsComment reports whether k is one of LineComment, BlockComment, DocComment or MarkdownDoc.
func (k Kind) IsComment() bool {
	switch k {
	case LineComment, BlockComment, DocComment, MarkdownDoc:
		return true
	default:
		return false
	}
}

// IsModifier reports whether the token can start a declaration as a modifier.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwAbstract, KwFinal, KwNative, KwPrivate, KwProtected, KwPublic, KwStatic,
		KwStrictfp, KwSynchronized, KwTransient, KwVolatile, KwDefault:
		return true
	case Ident:
		return t.Text == "sealed"
	default:
		return false
	}
}

// IsTypeKeyword reports whether the token introduces a type declaration.
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwClass, KwInterface, KwEnum:
		return true
	case Ident:
		return t.Text == "record"
	default:
		return false
	}
}

// Is reports whether the token is an identifier spelled word.
func (t Token) Is(word string) bool {
	return t.Kind == Ident && t.Text == word
}

// CommentOpenLen returns the length of the comment opening sequence for a comment kind.
func CommentOpenLen(k Kind) int {
	switch k {
	case LineComment, BlockComment:
		return 2
	case DocComment, MarkdownDoc:
		return 3
	default:
		return 0
	}
}
