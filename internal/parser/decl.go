package parser

import (
	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/source"
	"jfold/internal/token"
)

// skipModifiers consumes annotations and modifier keywords, including the
// three-token `non-sealed`.
func (p *Parser) skipModifiers() {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.At && p.peekAt(1).Kind != token.KwInterface:
			p.skipAnnotation()
		case tok.IsModifier():
			p.advance()
		case tok.Is("non") && p.peekAt(1).Kind == token.Operator && p.peekAt(1).Text == "-" && p.peekAt(2).Is("sealed"):
			p.advance()
			p.advance()
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) skipAnnotation() {
	p.advance() // @
	p.skipQualifiedName()
	if p.at(token.LParen) {
		p.skipBalanced(token.LParen, token.RParen)
	}
}

func (p *Parser) skipQualifiedName() {
	if !p.at(token.Ident) {
		return
	}
	p.advance()
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		p.advance()
	}
}

// atTypeDecl reports whether the next tokens start a type declaration.
// `record` is contextual: it only counts when followed by `Name(` or `Name<`.
func (p *Parser) atTypeDecl() bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.At:
		return p.peekAt(1).Kind == token.KwInterface
	case tok.Is("record"):
		next := p.peekAt(2).Kind
		return p.peekAt(1).Kind == token.Ident && (next == token.LParen || next == token.Lt)
	default:
		return tok.IsTypeKeyword()
	}
}

// parseTypeDecl parses `class|interface|enum|record|@interface Name ... { body }`.
// startIdx is the index of the first modifier token.
func (p *Parser) parseTypeDecl(parent ast.NodeID, startIdx int) ast.NodeID {
	start := p.toks[startIdx].Span
	flavor := ast.FlavorClass
	switch tok := p.advance(); {
	case tok.Kind == token.At:
		p.advance() // interface
		flavor = ast.FlavorAnnotation
	case tok.Kind == token.KwInterface:
		flavor = ast.FlavorInterface
	case tok.Kind == token.KwEnum:
		flavor = ast.FlavorEnum
	case tok.Is("record"):
		flavor = ast.FlavorRecord
	}

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		p.resyncTop()
		return ast.NoNodeID
	}
	id := p.tree.New(ast.Node{
		Kind:   ast.KindTypeDecl,
		Name:   name.Span,
		Flavor: flavor,
		Key:    p.typeKey(parent, normalize(name.Text), name.Span),
	})
	p.tree.Adopt(parent, id)

	// header: generics, record components, extends/implements/permits
	for !p.at(token.LBrace) && !p.at(token.EOF) && !p.at(token.Semicolon) && !p.at(token.RBrace) {
		switch p.peek().Kind {
		case token.Lt:
			p.skipAngles()
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		default:
			p.advance()
		}
	}
	n := p.tree.Get(id)
	n.HeaderEnd = p.lastSpan.End
	if !p.at(token.LBrace) {
		p.report(diag.SynExpectBody, diag.SevError, p.diagSpan(), "expected '{' to open the type body")
		p.tree.Get(id).Span = start.Cover(p.lastSpan)
		return id
	}
	body := p.parseClassBody(id, flavor == ast.FlavorEnum)
	n = p.tree.Get(id)
	n.BodySpan = body
	n.Span = start.Cover(body)
	return id
}

// parseClassBody parses `{ members }` for owner and returns the span of the braces.
func (p *Parser) parseClassBody(owner ast.NodeID, isEnum bool) source.Span {
	open := p.advance()
	if isEnum {
		p.parseEnumConstants(owner)
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		p.parseMember(owner)
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close the type body")
	return open.Span.Cover(p.lastSpan)
}

func (p *Parser) parseEnumConstants(owner ast.NodeID) {
	for !p.at(token.EOF) {
		for p.at(token.At) {
			p.skipAnnotation()
		}
		if !p.at(token.Ident) {
			break
		}
		p.advance()
		if p.at(token.LParen) {
			p.skimParens(owner)
		}
		if p.at(token.LBrace) {
			p.parseAnonBody(owner)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseAnonBody parses an anonymous class body at the current `{`.
func (p *Parser) parseAnonBody(parent ast.NodeID) ast.NodeID {
	open := p.peek()
	id := p.tree.New(ast.Node{
		Kind: ast.KindAnonClass,
		Name: open.Span,
		Key:  p.anonKey(parent, open.Span),
	})
	p.tree.Adopt(parent, id)
	body := p.parseClassBody(id, false)
	n := p.tree.Get(id)
	n.BodySpan = body
	n.Span = body
	return id
}

func (p *Parser) parseMember(owner ast.NodeID) {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	startIdx := p.pos
	if p.at(token.LBrace) || (p.at(token.KwStatic) && p.peekAt(1).Kind == token.LBrace) {
		p.parseInitializer(owner, startIdx)
		return
	}
	p.skipModifiers()
	if p.atTypeDecl() {
		p.parseTypeDecl(owner, startIdx)
		return
	}
	if p.at(token.Lt) {
		p.skipAngles()
	}

	isRecord := p.tree.Get(owner).Flavor == ast.FlavorRecord && p.tree.Get(owner).Kind == ast.KindTypeDecl
	switch {
	case p.at(token.Ident) && p.peekAt(1).Kind == token.LParen:
		p.parseMethod(owner, startIdx, p.advance(), true)
		return
	case isRecord && p.at(token.Ident) && p.peekAt(1).Kind == token.LBrace:
		// compact canonical constructor
		p.parseMethod(owner, startIdx, p.advance(), false)
		return
	}

	p.skipType()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
	if !ok {
		p.resyncMember()
		return
	}
	if p.at(token.LParen) {
		p.parseMethod(owner, startIdx, name, true)
		return
	}
	p.parseField(owner, startIdx, name)
}

// resyncMember skips to the next `;` or past a balanced block, stopping at
// the closing brace of the type body.
func (p *Parser) resyncMember() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		default:
			p.advance()
		}
	}
}

// skipType consumes a type reference such as `java.util.Map<K, V>[]`.
func (p *Parser) skipType() {
	for p.at(token.At) {
		p.skipAnnotation()
	}
	switch p.peek().Kind {
	case token.Ident, token.KwVoid:
		p.advance()
	default:
		return
	}
	for {
		switch {
		case p.at(token.Lt):
			p.skipAngles()
		case p.at(token.Dot) && p.peekAt(1).Kind == token.Ident:
			p.advance()
			p.advance()
		case p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket:
			p.advance()
			p.advance()
		case p.at(token.Ellipsis):
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) parseMethod(owner ast.NodeID, startIdx int, name token.Token, hasParams bool) {
	sig := ""
	if hasParams {
		open := p.pos
		p.skipBalanced(token.LParen, token.RParen)
		if end := p.pos - 1; end > open {
			sig = signature(p.toks[open+1 : end])
		}
	}
	ownerKey := p.tree.Get(owner).Key
	id := p.tree.New(ast.Node{
		Kind: ast.KindMethod,
		Name: name.Span,
		Key:  p.claim(ownerKey+"#"+normalize(name.Text)+"("+sig+")", name.Span),
	})
	p.tree.Adopt(owner, id)

	// throws clause, array dims, annotation defaults
	for !p.at(token.LBrace) && !p.at(token.Semicolon) && !p.at(token.EOF) && !p.at(token.RBrace) {
		if p.at(token.KwDefault) {
			p.advance()
			p.skimExpr(id, token.Semicolon)
			continue
		}
		p.advance()
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	if p.at(token.LBrace) {
		body := p.parseBlock(id)
		p.tree.Get(id).Body = body
	} else {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected method body or ';'")
	}
	p.tree.Get(id).Span = p.toks[startIdx].Span.Cover(p.lastSpan)
}

func (p *Parser) parseField(owner ast.NodeID, startIdx int, name token.Token) {
	id := p.tree.New(ast.Node{
		Kind: ast.KindField,
		Name: name.Span,
		Key:  p.claim(p.tree.Get(owner).Key+"."+normalize(name.Text), name.Span),
	})
	p.tree.Adopt(owner, id)
	p.skimExpr(id, token.Semicolon)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field declaration")
	p.tree.Get(id).Span = p.toks[startIdx].Span.Cover(p.lastSpan)
}

func (p *Parser) parseInitializer(owner ast.NodeID, startIdx int) {
	static := p.at(token.KwStatic)
	if static {
		p.advance()
	}
	first := p.toks[startIdx].Span
	id := p.tree.New(ast.Node{
		Kind: ast.KindInitializer,
		Name: first,
		Key:  p.initKey(owner, static, first),
	})
	p.tree.Adopt(owner, id)
	body := p.parseBlock(id)
	n := p.tree.Get(id)
	n.Body = body
	n.Span = first.Cover(p.lastSpan)
}
