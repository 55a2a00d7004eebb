package parser

import (
	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/source"
	"jfold/internal/token"
)

// parseBlock parses `{ statements }`. Blocks share the key of their parent so
// that statement ordinals run across sibling blocks of one construct.
func (p *Parser) parseBlock(parent ast.NodeID) ast.NodeID {
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{'")
	if !ok {
		return ast.NoNodeID
	}
	id := p.tree.New(ast.Node{Kind: ast.KindBlock})
	p.tree.Adopt(parent, id)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		p.parseStatement(id)
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close the block")
	n := p.tree.Get(id)
	n.Span = open.Span.Cover(p.lastSpan)
	n.BodySpan = n.Span
	return id
}

// parseStatement parses one statement and returns its node, or NoNodeID for
// an empty statement.
func (p *Parser) parseStatement(parent ast.NodeID) ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock(parent)
	case token.Semicolon:
		p.advance()
		return ast.NoNodeID
	case token.KwIf:
		return p.parseIf(parent)
	case token.KwFor:
		return p.parseFor(parent)
	case token.KwWhile:
		return p.parseWhile(parent)
	case token.KwDo:
		return p.parseDo(parent)
	case token.KwTry:
		return p.parseTry(parent)
	case token.KwSwitch:
		id := p.parseSwitch(parent)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return id
	case token.KwSynchronized:
		if p.peekAt(1).Kind == token.LParen {
			return p.parseSynchronized(parent)
		}
	case token.KwBreak:
		return p.parseSimple(parent, ast.KindBreak)
	case token.Ident:
		if p.peekAt(1).Kind == token.Colon {
			// label
			p.advance()
			p.advance()
			return p.parseStatement(parent)
		}
		if tok.Is("yield") && p.isYield() {
			return p.parseSimple(parent, ast.KindYield)
		}
	}

	if tok.IsModifier() || tok.Kind == token.At || tok.IsTypeKeyword() {
		startIdx := p.pos
		p.skipModifiers()
		if p.atTypeDecl() {
			return p.parseTypeDecl(parent, startIdx)
		}
		p.pos = startIdx
	}
	return p.parseSimple(parent, ast.KindStmt)
}

// isYield tells `yield value;` from uses of an identifier named yield.
func (p *Parser) isYield() bool {
	switch next := p.peekAt(1); next.Kind {
	case token.Assign, token.Dot, token.LBracket, token.Semicolon:
		return false
	case token.Operator:
		return next.Text != "++" && next.Text != "--" && next.Text[len(next.Text)-1] != '='
	default:
		return true
	}
}

// parseSimple parses an expression-like statement up to its `;`.
func (p *Parser) parseSimple(parent ast.NodeID, kind ast.Kind) ast.NodeID {
	first := p.peek().Span
	id := p.tree.New(ast.Node{Kind: kind})
	p.tree.Adopt(parent, id)
	p.skimExpr(id, token.Semicolon)
	if p.at(token.Semicolon) {
		p.advance()
	} else if !p.at(token.RBrace) {
		p.report(diag.SynExpectSemicolon, diag.SevError, p.diagSpan(), "expected ';'")
	}
	p.tree.Get(id).Span = first.Cover(p.lastSpan)
	return id
}

func (p *Parser) newStmt(parent ast.NodeID, kind ast.Kind, label string, at source.Span) ast.NodeID {
	id := p.tree.New(ast.Node{Kind: kind, Name: at, Key: p.stmtKey(parent, label, at)})
	p.tree.Adopt(parent, id)
	return id
}

func (p *Parser) finish(id ast.NodeID, first source.Span) ast.NodeID {
	p.tree.Get(id).Span = first.Cover(p.lastSpan)
	return id
}

func (p *Parser) parseIf(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindIf, "if", kw.Span)
	if p.at(token.LParen) {
		p.skimParens(id)
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	then := p.parseStatement(id)
	p.tree.Get(id).Then = then
	if p.at(token.KwElse) {
		p.advance()
		els := p.parseStatement(id)
		p.tree.Get(id).Else = els
	}
	return p.finish(id, kw.Span)
}

func (p *Parser) parseFor(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	kind, label := ast.KindFor, "for"
	if p.forEachHeader() {
		kind, label = ast.KindForEach, "foreach"
	}
	id := p.newStmt(parent, kind, label, kw.Span)
	if p.at(token.LParen) {
		p.skimParens(id)
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	body := p.parseStatement(id)
	p.tree.Get(id).Body = body
	return p.finish(id, kw.Span)
}

// forEachHeader reports whether the parenthesized for header at the cursor
// contains a top-level `:`.
func (p *Parser) forEachHeader() bool {
	if !p.at(token.LParen) {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
			if depth == 0 {
				return false
			}
		case token.Colon:
			if depth == 1 {
				return true
			}
		case token.Semicolon:
			if depth == 1 {
				return false
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseWhile(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindWhile, "while", kw.Span)
	if p.at(token.LParen) {
		p.skimParens(id)
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	body := p.parseStatement(id)
	p.tree.Get(id).Body = body
	return p.finish(id, kw.Span)
}

func (p *Parser) parseDo(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindDo, "do", kw.Span)
	p.tree.Get(id).HeaderEnd = kw.Span.End
	body := p.parseStatement(id)
	p.tree.Get(id).Body = body
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"); ok {
		if p.at(token.LParen) {
			p.skimParens(id)
		}
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after do-while")
	}
	return p.finish(id, kw.Span)
}

func (p *Parser) parseTry(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindTry, "try", kw.Span)
	if p.at(token.LParen) {
		p.skimParens(id)
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	body := p.parseBlock(id)
	p.tree.Get(id).Body = body

	for p.at(token.KwCatch) {
		ckw := p.advance()
		c := p.newStmt(id, ast.KindCatch, "catch", ckw.Span)
		if p.at(token.LParen) {
			p.skimParens(c)
		}
		p.tree.Get(c).HeaderEnd = p.lastSpan.End
		cbody := p.parseBlock(c)
		p.tree.Get(c).Body = cbody
		p.finish(c, ckw.Span)
		n := p.tree.Get(id)
		n.Catches = append(n.Catches, c)
	}
	if p.at(token.KwFinally) {
		p.advance()
		fin := p.parseBlock(id)
		p.tree.Get(id).Finally = fin
	}
	return p.finish(id, kw.Span)
}

func (p *Parser) parseSynchronized(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindSynchronized, "synchronized", kw.Span)
	p.skimParens(id)
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	body := p.parseBlock(id)
	p.tree.Get(id).Body = body
	return p.finish(id, kw.Span)
}

// parseSwitch parses a switch statement or expression, with either colon
// or arrow cases.
func (p *Parser) parseSwitch(parent ast.NodeID) ast.NodeID {
	kw := p.advance()
	id := p.newStmt(parent, ast.KindSwitch, "switch", kw.Span)
	if p.at(token.LParen) {
		p.skimParens(id)
	}
	p.tree.Get(id).HeaderEnd = p.lastSpan.End
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' to open the switch body")
	if !ok {
		return p.finish(id, kw.Span)
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwCase) || p.at(token.KwDefault) {
			p.parseCase(id)
			continue
		}
		p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span, "expected 'case' or 'default'")
		before := p.pos
		p.parseStatement(id)
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close the switch body")
	p.tree.Get(id).BodySpan = open.Span.Cover(p.lastSpan)
	return p.finish(id, kw.Span)
}

func (p *Parser) parseCase(sw ast.NodeID) {
	kw := p.advance()
	id := p.tree.New(ast.Node{Kind: ast.KindCase, Name: kw.Span})
	p.tree.Adopt(sw, id)
	p.skimExpr(id, token.Colon, token.Arrow)

	switch {
	case p.at(token.Arrow):
		p.advance()
		p.tree.Get(id).Arrow = true
		p.tree.Get(id).HeaderEnd = p.lastSpan.End
		if p.at(token.LBrace) {
			p.parseBlock(id)
		} else {
			p.parseStatement(id)
		}
	case p.at(token.Colon):
		p.advance()
		p.tree.Get(id).HeaderEnd = p.lastSpan.End
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.pos
			p.parseStatement(id)
			if p.pos == before {
				p.advance()
			}
		}
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, p.diagSpan(), "expected ':' or '->' after case label")
	}
	p.finish(id, kw.Span)
}
