package fold

import (
	"bytes"
	"strconv"

	"jfold/internal/ast"
	"jfold/internal/source"
)

const tabWidth = 4

// emit applies the per-construct policy to one node.
func (e *extractor) emit(id ast.NodeID, n *ast.Node) {
	switch n.Kind {
	case ast.KindImportGroup:
		e.add(n.Span, AlignInclusive, e.owner(n, OwnerImports), false, RegionImports, e.prefs.CollapseImports)
		return
	case ast.KindTypeDecl:
		if !e.tree.IsTopLevel(id) {
			e.code(e.span(n.Name.Start, n.Span.End), e.owner(n, OwnerType), RegionType, e.prefs.CollapseInnerTypes)
		}
		return
	case ast.KindAnonClass:
		e.code(n.BodySpan, e.owner(n, OwnerType), RegionType, e.prefs.CollapseInnerTypes)
		return
	case ast.KindMethod, ast.KindField:
		e.code(e.span(n.Name.Start, n.Span.End), e.owner(n, OwnerMember), RegionMember, e.prefs.CollapseMembers)
		return
	case ast.KindInitializer:
		e.code(n.Span, e.owner(n, OwnerMember), RegionMember, e.prefs.CollapseMembers)
		return
	}
	if !e.structural() {
		return
	}

	switch n.Kind {
	case ast.KindIf:
		e.emitIf(id, n)
	case ast.KindFor, ast.KindForEach, ast.KindWhile:
		e.emitLoop(n)
	case ast.KindDo:
		if body := e.tree.Get(n.Body); body != nil {
			e.statement(e.span(n.Span.Start, body.Span.End), e.owner(n, OwnerStatement))
		}
	case ast.KindTry:
		e.emitTry(n)
	case ast.KindCatch, ast.KindSynchronized:
		e.statement(n.Span, e.owner(n, OwnerStatement))
	case ast.KindLambda:
		if body := e.tree.Get(n.Body); body != nil {
			e.statement(body.Span, e.owner(n, OwnerStatement))
		}
	case ast.KindSwitch:
		e.emitSwitch(n)
	}
}

func (e *extractor) span(start, end uint32) source.Span {
	return source.Span{File: e.doc.ID, Start: start, End: end}
}

func (e *extractor) owner(n *ast.Node, kind OwnerKind) Owner {
	if n.Key == "" {
		return Owner{}
	}
	return Owner{Key: n.Key, Kind: kind}
}

// code records a declaration region; the mode follows what trails its end.
func (e *extractor) code(sp source.Span, owner Owner, kind RegionKind, collapse bool) {
	e.add(sp, trailingMode(e.doc, sp.End), owner, false, kind, collapse)
}

// statement records a statement region. Statements never collapse by default.
func (e *extractor) statement(sp source.Span, owner Owner) {
	e.code(sp, owner, RegionStatement, false)
}

// emitIf folds the then-branch from `if`, and a plain else-branch from its
// `else` keyword. An else-if is an If of its own and starts at its `else`.
func (e *extractor) emitIf(id ast.NodeID, n *ast.Node) {
	thenEnd := n.HeaderEnd
	if then := e.tree.Get(n.Then); then != nil {
		thenEnd = then.Span.End
	}

	start := n.Span.Start
	if parent := e.tree.Get(n.Parent); parent != nil && parent.Kind == ast.KindIf && parent.Else == id {
		if kw, ok := e.keywordBefore("else", parent.Span.Start, n.Span.Start); ok {
			start = kw
		}
	}
	e.statement(e.span(start, thenEnd), e.owner(n, OwnerStatement))

	els := e.tree.Get(n.Else)
	if els == nil || els.Kind == ast.KindIf {
		return
	}
	start = els.Span.Start
	if kw, ok := e.keywordBefore("else", n.Span.Start, els.Span.Start); ok {
		start = kw
	}
	e.statement(e.span(start, els.Span.End), e.branchOwner(n, "else"))
}

// branchOwner names a branch that has no node of its own.
func (e *extractor) branchOwner(n *ast.Node, branch string) Owner {
	if n.Key == "" {
		return Owner{}
	}
	return Owner{Key: n.Key + "/" + branch, Kind: OwnerStatement}
}

// emitLoop folds a loop from its keyword to the end of its body. A body that
// is not a block folds only when the next line is indented deeper than the
// loop header's last line.
func (e *extractor) emitLoop(n *ast.Node) {
	owner := e.owner(n, OwnerStatement)
	if body := e.tree.Get(n.Body); body != nil && body.Kind == ast.KindBlock {
		e.statement(e.span(n.Span.Start, body.Span.End), owner)
		return
	}

	headerEnd := max(n.HeaderEnd, n.Span.Start+1)
	last := e.doc.LineOf(headerEnd - 1)
	next := last + 1
	end := e.doc.LineStart(next)
	if next < e.doc.LineCount() {
		lastIndent, ok1 := e.doc.Indent(last, tabWidth)
		nextIndent, ok2 := e.doc.Indent(next, tabWidth)
		if ok1 && ok2 && nextIndent > lastIndent {
			end = e.doc.LineEnd(next)
		}
	}
	e.add(e.span(n.Span.Start, end), AlignInclusive, owner, false, RegionStatement, false)
}

// emitTry folds the try body and the finally body; catches fold on their own.
func (e *extractor) emitTry(n *ast.Node) {
	body := e.tree.Get(n.Body)
	if body == nil {
		return
	}
	e.statement(e.span(n.Span.Start, body.Span.End), e.owner(n, OwnerStatement))

	fin := e.tree.Get(n.Finally)
	if fin == nil {
		return
	}
	from := body.Span.End
	if k := len(n.Catches); k > 0 {
		from = e.tree.Get(n.Catches[k-1]).Span.End
	}
	start := fin.Span.Start
	if kw, ok := e.keywordBefore("finally", from, fin.Span.Start); ok {
		start = kw
	}
	e.statement(e.span(start, fin.Span.End), e.branchOwner(n, "finally"))
}

// emitSwitch folds each run of colon cases from its first label to the
// break or yield ending it; a trailing run without one folds to the end of
// the switch body, keeping a closing brace on its own line visible. Arrow
// cases with a block fold individually.
func (e *extractor) emitSwitch(n *ast.Node) {
	var cases []*ast.Node
	for _, c := range n.Children {
		if cn := e.tree.Get(c); cn.Kind == ast.KindCase {
			cases = append(cases, cn)
		}
	}

	run := 0
	owner := func() Owner {
		o := e.branchOwner(n, "case["+strconv.Itoa(run)+"]")
		run++
		return o
	}

	open := -1
	for i, c := range cases {
		if c.Arrow {
			if len(c.Children) > 0 && e.tree.Get(c.Children[0]).Kind == ast.KindBlock {
				e.statement(c.Span, owner())
			}
			continue
		}
		if open < 0 {
			open = i
		}
		if term := e.terminator(c); term != nil {
			e.statement(e.span(cases[open].Span.Start, term.Span.End), owner())
			open = -1
		}
	}
	if open >= 0 {
		end, mode := cases[len(cases)-1].Span.End, AlignInclusive
		if body := n.BodySpan; body.End > body.Start {
			end, mode = body.End, e.closingMode(body.End-1)
		}
		e.add(e.span(cases[open].Span.Start, end), mode, owner(), false, RegionStatement, false)
	}
}

// closingMode keeps the line of the brace at off visible when nothing but
// indentation precedes it.
func (e *extractor) closingMode(off uint32) AlignMode {
	text := e.doc.Text()
	if off >= e.doc.Len() || text[off] != '}' {
		return AlignInclusive
	}
	for i := off; i > e.doc.LineStart(e.doc.LineOf(off)); i-- {
		if c := text[i-1]; c != ' ' && c != '\t' {
			return AlignInclusive
		}
	}
	return AlignExclusive
}

// terminator returns the first break or yield directly inside c, looking into
// blocks that are direct statements of c as well.
func (e *extractor) terminator(c *ast.Node) *ast.Node {
	for _, id := range c.Children {
		s := e.tree.Get(id)
		switch s.Kind {
		case ast.KindBreak, ast.KindYield:
			return s
		case ast.KindBlock:
			for _, inner := range s.Children {
				if in := e.tree.Get(inner); in.Kind == ast.KindBreak || in.Kind == ast.KindYield {
					return in
				}
			}
		}
	}
	return nil
}

// keywordBefore finds the last whole-word occurrence of word in [lo, hi).
func (e *extractor) keywordBefore(word string, lo, hi uint32) (uint32, bool) {
	if hi > e.doc.Len() || lo >= hi {
		return 0, false
	}
	text := e.doc.Text()
	w := []byte(word)
	for end := hi; end > lo; {
		i := bytes.LastIndex(text[lo:end], w)
		if i < 0 {
			return 0, false
		}
		at := lo + uint32(i)
		after := at + uint32(len(w))
		if (at == 0 || !isWordByte(text[at-1])) && (after >= e.doc.Len() || !isWordByte(text[after])) {
			return at, true
		}
		end = at
	}
	return 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
