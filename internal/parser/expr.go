package parser

import (
	"slices"

	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/token"
)

// skimExpr consumes expression tokens until one of stops at depth zero, an
// unmatched closer, or EOF. Nested constructs that carry their own regions
// (block lambdas, anonymous classes, switch expressions) become children of
// owner.
func (p *Parser) skimExpr(owner ast.NodeID, stops ...token.Kind) {
	for !p.at(token.EOF) {
		tok := p.peek()
		if slices.Contains(stops, tok.Kind) {
			return
		}
		switch tok.Kind {
		case token.RParen, token.RBracket, token.RBrace:
			return
		case token.LParen:
			p.skimParens(owner)
		case token.LBracket:
			p.advance()
			p.skimExpr(owner)
			p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'")
		case token.LBrace:
			if p.prev().Kind == token.Arrow {
				p.parseLambda(owner)
				continue
			}
			// array initializer
			p.advance()
			p.skimExpr(owner)
			p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close the initializer")
		case token.KwNew:
			p.skimNew(owner)
		case token.KwSwitch:
			p.parseSwitch(owner)
		default:
			p.advance()
		}
	}
}

// skimParens consumes a parenthesized group at the cursor.
func (p *Parser) skimParens(owner ast.NodeID) {
	p.advance()
	p.skimExpr(owner)
	p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
}

// parseLambda parses a block lambda body; the cursor is on `{` right after `->`.
func (p *Parser) parseLambda(owner ast.NodeID) {
	arrow := p.prev()
	id := p.newStmt(owner, ast.KindLambda, "lambda", arrow.Span)
	p.tree.Get(id).HeaderEnd = arrow.Span.End
	body := p.parseBlock(id)
	p.tree.Get(id).Body = body
	p.finish(id, arrow.Span)
}

// skimNew consumes `new T(args)`, `new T[n]...` and `new T(args) { body }`.
func (p *Parser) skimNew(owner ast.NodeID) {
	p.advance() // new
	if p.at(token.Lt) {
		p.skipAngles()
	}
	for p.at(token.At) {
		p.skipAnnotation()
	}
	if p.at(token.Ident) {
		p.advance()
	}
name:
	for {
		switch {
		case p.at(token.Lt):
			p.skipAngles()
		case p.at(token.Dot) && p.peekAt(1).Kind == token.Ident:
			p.advance()
			p.advance()
		default:
			break name
		}
	}
	switch {
	case p.at(token.LBracket):
		for p.at(token.LBracket) {
			p.advance()
			p.skimExpr(owner)
			p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'")
		}
	case p.at(token.LParen):
		p.skimParens(owner)
		if p.at(token.LBrace) {
			p.parseAnonBody(owner)
		}
	}
}
