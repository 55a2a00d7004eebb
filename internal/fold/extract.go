package fold

import (
	"fmt"

	"jfold/internal/ast"
	"jfold/internal/parser"
	"jfold/internal/source"
	"jfold/internal/token"
	"jfold/internal/trace"
)

// Input is the read-only view of one document a pass works on.
type Input struct {
	File *source.File
	Tree *ast.Tree
}

// Candidate is a region proposed by one pass. Candidates only live for the
// duration of that pass.
type Candidate struct {
	Raw       source.Span // as extracted, before alignment
	Position  Position    // line-aligned
	IsComment bool
	Collapse  bool // collapse-by-default, before the trigger's permission
	Owner     Owner
	Kind      RegionKind
}

// Malformed reports whether the candidate looks like an error-recovery
// artifact: it starts at offset 0 yet belongs to a nested construct.
func (c Candidate) Malformed() bool {
	return c.Position.Offset == 0 && c.Owner.Nested()
}

type slot struct {
	owner   Owner
	comment bool
}

type extractor struct {
	doc    *source.File
	tree   *ast.Tree
	scan   *Scanner
	prefs  Preferences
	custom *customMatcher
	header source.Span

	out     []Candidate
	seen    map[slot]struct{}
	skipped int

	tracer trace.Tracer
	parent uint64
}

// Extract computes the candidate regions of in. scan must be bound to
// in.File and is not used by anyone else until Extract returns. Scanner
// failures only drop the range being scanned; they are counted in skipped.
func Extract(in Input, scan *Scanner, prefs Preferences, tracer trace.Tracer, parent uint64) (cands []Candidate, skipped int) {
	if tracer == nil {
		tracer = trace.Nop
	}
	e := &extractor{
		doc:    in.File,
		tree:   in.Tree,
		scan:   scan,
		prefs:  prefs,
		custom: newCustomMatcher(in.File, prefs),
		seen:   make(map[slot]struct{}),
		tracer: tracer,
		parent: parent,
	}
	e.headerComment()
	e.node(in.Tree.Root)
	for _, sp := range e.custom.take() {
		e.add(sp, AlignInclusive, Owner{}, true, RegionCustom, prefs.CollapseCustomRegions)
	}
	return e.out, e.skipped
}

func (e *extractor) structural() bool {
	return e.prefs.UseStructuralExtraction
}

// node emits the regions of id, then walks its children, scanning the text
// between them for comments. Each comment is therefore seen exactly once, by
// the innermost node around it.
func (e *extractor) node(id ast.NodeID) {
	n := e.tree.Get(id)
	if n == nil {
		return
	}
	scope := e.isScope(n.Kind)
	if scope {
		e.custom.enter()
	}
	e.emit(id, n)

	cursor := n.Span.Start
	for _, c := range e.children(id) {
		cn := e.tree.Get(c)
		e.gap(cursor, cn.Span.Start, c)
		e.node(c)
		cursor = max(cursor, cn.Span.End)
	}
	e.gap(cursor, n.Span.End, ast.NoNodeID)

	if scope {
		e.custom.leave(e.scopeEnd(n))
	}
}

// isScope reports whether a node opens a fresh custom-marker scope.
// Statements other than blocks are transparent.
func (e *extractor) isScope(k ast.Kind) bool {
	switch k {
	case ast.KindFile, ast.KindTypeDecl, ast.KindAnonClass, ast.KindMethod, ast.KindInitializer:
		return true
	case ast.KindBlock, ast.KindSwitch, ast.KindLambda:
		return e.structural()
	default:
		return false
	}
}

// scopeEnd is where frames still open at the end of a scope close in overlap
// mode: the start of the closing brace's line when the brace stands alone.
func (e *extractor) scopeEnd(n *ast.Node) uint32 {
	if n.Kind == ast.KindFile || n.Span.End == 0 {
		return n.Span.End
	}
	return e.lineBoundary(n.Span.End - 1)
}

// lineBoundary returns the start of off's line when only blanks precede off
// on it, and off otherwise.
func (e *extractor) lineBoundary(off uint32) uint32 {
	ls := e.doc.LineStart(e.doc.LineOf(off))
	for _, c := range e.doc.Text()[ls:off] {
		if c != ' ' && c != '\t' {
			return off
		}
	}
	return ls
}

// children returns the nodes node() descends into. Without structural
// extraction only declarations are visited; statements are plain text.
func (e *extractor) children(id ast.NodeID) []ast.NodeID {
	n := e.tree.Get(id)
	if e.structural() {
		return n.Children
	}
	var out []ast.NodeID
	var collect func(ids []ast.NodeID)
	collect = func(ids []ast.NodeID) {
		for _, c := range ids {
			cn := e.tree.Get(c)
			if cn.Kind.IsElement() {
				out = append(out, c)
				continue
			}
			collect(cn.Children)
		}
	}
	collect(n.Children)
	return out
}

// gap scans [start, end) for comments. Foldable comments become comment
// regions; the last one right before the element next (if any) is owned by it.
func (e *extractor) gap(start, end uint32, next ast.NodeID) {
	if end <= start {
		return
	}
	e.scan.Reset(source.Span{File: e.doc.ID, Start: start, End: end})

	var (
		comments  []token.Token
		codeAfter bool
	)
	for {
		tok, err := e.scan.NextToken()
		if err != nil {
			e.skipped++
			trace.Error(e.tracer, trace.ScopeNode, "fold.scan", err, e.parent)
			break
		}
		if tok.Kind == token.EOF {
			break
		}
		if !tok.IsComment() {
			codeAfter = len(comments) > 0
			continue
		}
		e.custom.comment(tok)
		if !foldableComment(tok.Kind) || e.header.Contains(tok.Span) {
			continue
		}
		codeAfter = false
		if n := len(comments); n > 0 && e.continuesDocRun(comments[n-1], tok) {
			comments[n-1].Span.End = tok.Span.End
			continue
		}
		comments = append(comments, tok)
	}

	leading := e.leadingOwner(next)
	for i, c := range comments {
		owner := Owner{}
		if i == len(comments)-1 && !codeAfter {
			owner = leading
		}
		kind := RegionComment
		if isDocComment(c.Kind) {
			kind = RegionDoc
		}
		e.add(c.Span, trailingMode(e.doc, c.Span.End), owner, true, kind, e.prefs.CollapseJavadoc)
	}
}

// continuesDocRun reports whether tok extends a run of `///` lines.
func (e *extractor) continuesDocRun(prev, tok token.Token) bool {
	if prev.Kind != token.MarkdownDoc || tok.Kind != token.MarkdownDoc {
		return false
	}
	return e.doc.LineOf(tok.Span.Start) == e.doc.LineOf(prev.Span.End)+1
}

// leadingOwner returns the owner a comment right before id documents.
func (e *extractor) leadingOwner(id ast.NodeID) Owner {
	n := e.tree.Get(id)
	if n == nil || n.Key == "" {
		return Owner{}
	}
	switch n.Kind {
	case ast.KindTypeDecl:
		if e.tree.IsTopLevel(id) {
			return Owner{Key: n.Key, Kind: OwnerTopType}
		}
		return Owner{Key: n.Key, Kind: OwnerType}
	case ast.KindMethod, ast.KindField, ast.KindInitializer:
		return Owner{Key: n.Key, Kind: OwnerMember}
	default:
		return Owner{}
	}
}

// headerComment finds the comment block at the top of the file: from the
// first comment up to the last one before any code, and never past the
// first type declaration.
func (e *extractor) headerComment() {
	end := e.doc.Len()
	if ft := e.tree.Get(e.tree.FirstType); ft != nil {
		end = ft.Span.Start
	}
	e.scan.Reset(source.Span{File: e.doc.ID, Start: 0, End: end})

	var (
		sp    source.Span
		found bool
	)
	for {
		tok, err := e.scan.NextToken()
		if err != nil {
			e.skipped++
			trace.Error(e.tracer, trace.ScopeNode, "fold.header", err, e.parent)
			break
		}
		if tok.Kind == token.EOF {
			break
		}
		if tok.IsComment() {
			if !found {
				sp = tok.Span
				found = true
			}
			sp.End = tok.Span.End
			continue
		}
		if found {
			// package, import or anything else ends the header
			break
		}
	}
	if !found {
		return
	}
	e.header = sp
	e.add(sp, trailingMode(e.doc, sp.End), Owner{Key: parser.HeaderKey, Kind: OwnerHeader}, true, RegionHeader, e.prefs.CollapseHeaderComments)
}

// add aligns raw and records it. A second region for an owner slot that is
// already taken loses its owner.
func (e *extractor) add(raw source.Span, mode AlignMode, owner Owner, isComment bool, kind RegionKind, collapse bool) {
	pos, ok := Align(e.doc, raw, mode)
	if !ok {
		return
	}
	if !owner.IsZero() {
		s := slot{owner: owner, comment: isComment}
		if _, dup := e.seen[s]; dup {
			owner = Owner{}
		} else {
			e.seen[s] = struct{}{}
		}
	}
	e.out = append(e.out, Candidate{
		Raw:       raw,
		Position:  pos,
		IsComment: isComment,
		Collapse:  collapse,
		Owner:     owner,
		Kind:      kind,
	})
	if e.tracer.Level() >= trace.LevelDebug {
		trace.Point(e.tracer, trace.ScopeNode, "fold.region",
			fmt.Sprintf("%s %s [%d,%d)", kind, owner, pos.Offset, pos.End()), e.parent)
	}
}
