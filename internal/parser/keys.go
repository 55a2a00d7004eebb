package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/source"
	"jfold/internal/token"
)

const (
	importsKey = "<imports>"
	// HeaderKey is the owner key of the file header comment.
	HeaderKey = "<header>"
)

// keyTable hands out node keys. Keys only depend on names and on the ordinal
// of a construct among its same-kind siblings, so they survive edits that do
// not restructure the enclosing declaration.
type keyTable struct {
	used     map[string]struct{}
	ordinals map[string]int
}

func newKeyTable() keyTable {
	return keyTable{
		used:     make(map[string]struct{}),
		ordinals: make(map[string]int),
	}
}

func (k *keyTable) next(prefix string) int {
	n := k.ordinals[prefix]
	k.ordinals[prefix] = n + 1
	return n
}

// claim registers key. A clash (two methods with the same signature, say) gets
// a numeric suffix and a warning.
func (p *Parser) claim(key string, at source.Span) string {
	if _, dup := p.keys.used[key]; !dup {
		p.keys.used[key] = struct{}{}
		return key
	}
	p.report(diag.SynDuplicateKey, diag.SevWarning, at, "duplicate declaration "+key)
	for i := 1; ; i++ {
		alt := key + "~" + strconv.Itoa(i)
		if _, dup := p.keys.used[alt]; !dup {
			p.keys.used[alt] = struct{}{}
			return alt
		}
	}
}

// ctxKey returns the key of the nearest keyed node at or above id.
func (p *Parser) ctxKey(id ast.NodeID) string {
	for n := p.tree.Get(id); n != nil; n = p.tree.Get(n.Parent) {
		if n.Key != "" {
			return n.Key
		}
	}
	return ""
}

func (p *Parser) typeKey(parent ast.NodeID, name string, at source.Span) string {
	pn := p.tree.Get(parent)
	switch pn.Kind {
	case ast.KindFile:
		return p.claim(name, at)
	case ast.KindTypeDecl, ast.KindAnonClass:
		return p.claim(pn.Key+"."+name, at)
	default:
		return p.claim(p.ctxKey(parent)+"$"+name, at)
	}
}

func (p *Parser) anonKey(parent ast.NodeID, at source.Span) string {
	ctx := p.ctxKey(parent)
	return p.claim(ctx+"$"+strconv.Itoa(p.keys.next(ctx+"$")+1), at)
}

func (p *Parser) stmtKey(parent ast.NodeID, label string, at source.Span) string {
	prefix := p.ctxKey(parent) + "/" + label
	return p.claim(prefix+"["+strconv.Itoa(p.keys.next(prefix))+"]", at)
}

func (p *Parser) initKey(owner ast.NodeID, static bool, at source.Span) string {
	prefix := p.tree.Get(owner).Key + "#{}"
	if static {
		prefix = p.tree.Get(owner).Key + "#static{}"
	}
	return p.claim(prefix+strconv.Itoa(p.keys.next(prefix)), at)
}

// signature renders the parameter types of toks (the tokens strictly between
// the parentheses) as `int,List<String>`. Annotations, `final` and parameter
// names are dropped.
func signature(toks []token.Token) string {
	var (
		b      strings.Builder
		param  []token.Token
		depth  int
		params int
	)
	flush := func() {
		param = dropAnnotations(param)
		if len(param) > 1 && param[len(param)-1].Kind == token.Ident {
			param = param[:len(param)-1]
		}
		if len(param) == 0 {
			return
		}
		if params > 0 {
			b.WriteByte(',')
		}
		for _, t := range param {
			b.WriteString(normalize(t.Text))
		}
		params++
	}
	for _, t := range toks {
		switch t.Kind {
		case token.Lt, token.LParen, token.LBracket:
			depth++
		case token.Gt, token.RParen, token.RBracket:
			depth--
		case token.Comma:
			if depth == 0 {
				flush()
				param = param[:0]
				continue
			}
		}
		param = append(param, t)
	}
	flush()
	return b.String()
}

func dropAnnotations(toks []token.Token) []token.Token {
	out := toks[:0:0]
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == token.KwFinal:
			continue
		case t.Kind == token.At:
			// @Name(.Name)* ( ... )?
			i++
			for i+2 < len(toks) && toks[i+1].Kind == token.Dot {
				i += 2
			}
			if i+1 < len(toks) && toks[i+1].Kind == token.LParen {
				depth := 0
				for i++; i < len(toks); i++ {
					if toks[i].Kind == token.LParen {
						depth++
					} else if toks[i].Kind == token.RParen {
						depth--
						if depth == 0 {
							break
						}
					}
				}
			}
			continue
		}
		out = append(out, t)
	}
	return out
}

// normalize puts identifiers into NFC so that keys compare equal across
// differently composed but canonically equivalent spellings.
func normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
