package parser

import (
	"jfold/internal/ast"
	"jfold/internal/diag"
	"jfold/internal/lexer"
	"jfold/internal/source"
	"jfold/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parser holds the state for one file. It works on a pre-scanned token slice
// without comments, so arbitrary lookahead is a slice index.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	tree     *ast.Tree
	opts     Options
	lastSpan source.Span
	keys     keyTable
}

// ParseFile builds the structural tree of file. It never fails: malformed
// input produces diagnostics and a best-effort tree.
func ParseFile(file *source.File, opts Options) Result {
	p := Parser{
		file:     file,
		toks:     scan(file, opts.Reporter),
		tree:     ast.NewTree(file.ID, 0),
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
		keys:     newKeyTable(),
	}
	p.parseFile()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Tree: p.tree, Bag: bag}
}

// scan tokenizes without comments and drops Invalid tokens, which the lexer
// has already reported.
func scan(file *source.File, r diag.Reporter) []token.Token {
	raw := lexer.Tokenize(file, lexer.Options{Reporter: r})
	out := raw[:0]
	for _, t := range raw {
		if t.Kind != token.Invalid {
			out = append(out, t)
		}
	}
	return out
}

func (p *Parser) parseFile() {
	root := p.tree.New(ast.Node{
		Kind: ast.KindFile,
		Span: source.Span{File: p.file.ID, Start: 0, End: p.file.Len()},
	})
	p.tree.Root = root

	imports := ast.NoNodeID
	for !p.at(token.EOF) {
		switch {
		case p.at(token.Semicolon):
			p.advance()
		case p.at(token.KwPackage):
			p.skipPast(token.Semicolon)
		case p.at(token.KwImport):
			start := p.peek().Span
			p.skipPast(token.Semicolon)
			sp := start.Cover(p.lastSpan)
			if !imports.IsValid() {
				imports = p.tree.New(ast.Node{Kind: ast.KindImportGroup, Span: sp, Key: importsKey})
				p.tree.Adopt(root, imports)
			} else {
				n := p.tree.Get(imports)
				n.Span = n.Span.Cover(sp)
			}
		default:
			startIdx := p.pos
			p.skipModifiers()
			if p.atTypeDecl() {
				id := p.parseTypeDecl(root, startIdx)
				if !p.tree.FirstType.IsValid() {
					p.tree.FirstType = id
				}
				continue
			}
			p.pos = startIdx
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.peek().Span, "unexpected top-level construct")
			p.resyncTop()
		}
	}
}

// resyncTop skips to just past the next `;` or balanced `{...}` group.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			return
		case token.KwClass, token.KwInterface, token.KwEnum, token.KwImport:
			return
		default:
			p.advance()
		}
	}
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// prev returns the last consumed token.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return token.Token{Kind: token.Invalid}
	}
	return p.toks[p.pos-1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, diag.SevError, p.diagSpan(), msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// diagSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagSpan() source.Span {
	if p.at(token.EOF) {
		return source.Span{File: p.file.ID, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.peek().Span
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// skipPast consumes tokens up to and including the first k at depth zero.
func (p *Parser) skipPast(k token.Kind) {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case k:
			p.advance()
			return
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		case token.RBrace:
			return
		default:
			p.advance()
		}
	}
}

// skipBalanced consumes an open token and everything up to its matching close.
func (p *Parser) skipBalanced(open, closing token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case closing:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
	code := diag.SynUnclosedBrace
	if open == token.LParen {
		code = diag.SynUnclosedParen
	}
	p.report(code, diag.SevError, p.diagSpan(), "unbalanced "+open.String())
}

// skipAngles consumes a generic argument list. It gives up at tokens that
// cannot appear inside one so a stray `<` comparison does not eat a body.
func (p *Parser) skipAngles() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Semicolon, token.LBrace, token.RBrace:
			return
		}
		p.advance()
		if depth <= 0 {
			return
		}
	}
}
