package fold

import (
	"strings"

	"jfold/internal/source"
	"jfold/internal/token"
)

// customMatcher pairs begin/end marker comments. Every nesting scope of the
// tree gets its own stack of open frames; a frame never pairs with a marker
// of an enclosing or nested scope.
type customMatcher struct {
	doc     *source.File
	enabled bool
	overlap bool
	begin   string
	end     string

	stack []uint32   // open frames of the current scope (begin offsets)
	saved [][]uint32 // stacks of the enclosing scopes
	spans []source.Span
}

func newCustomMatcher(doc *source.File, prefs Preferences) *customMatcher {
	return &customMatcher{
		doc:     doc,
		enabled: prefs.customRegions(),
		overlap: prefs.overlap(),
		begin:   strings.TrimSpace(prefs.CustomRegionBegin),
		end:     strings.TrimSpace(prefs.CustomRegionEnd),
	}
}

// enter starts a fresh scope; the current stack is kept aside until leave.
func (m *customMatcher) enter() {
	m.saved = append(m.saved, m.stack)
	m.stack = nil
}

// leave closes the current scope at boundary and resumes the enclosing one.
// In overlap mode every frame still open closes at boundary; otherwise
// unpaired frames are dropped.
func (m *customMatcher) leave(boundary uint32) {
	if m.overlap {
		for i := len(m.stack) - 1; i >= 0; i-- {
			m.add(m.stack[i], boundary)
		}
	}
	if n := len(m.saved); n > 0 {
		m.stack = m.saved[n-1]
		m.saved = m.saved[:n-1]
	} else {
		m.stack = nil
	}
}

// comment feeds one comment token. End and begin checks are independent, so
// in overlap mode one comment can close a region and open the next.
func (m *customMatcher) comment(tok token.Token) {
	if !m.enabled {
		return
	}
	text := markerText(tok)
	if text == "" {
		return
	}
	if strings.HasPrefix(text, m.end) && len(m.stack) > 0 {
		start := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		stop := tok.Span.End
		if !m.overlap {
			// the end marker's own line stays visible
			stop = m.doc.LineStart(m.doc.LineOf(tok.Span.Start))
		}
		m.add(start, stop)
	}
	if strings.HasPrefix(text, m.begin) {
		m.stack = append(m.stack, tok.Span.Start)
	}
}

func (m *customMatcher) add(start, stop uint32) {
	if stop <= start {
		return
	}
	m.spans = append(m.spans, source.Span{File: m.doc.ID, Start: start, End: stop})
}

// take returns and clears the regions paired so far.
func (m *customMatcher) take() []source.Span {
	out := m.spans
	m.spans = nil
	return out
}

// markerText is the comment body after the opening sequence and leading
// blanks (and the `*` of a block comment).
func markerText(tok token.Token) string {
	open := token.CommentOpenLen(tok.Kind)
	if open == 0 || open > len(tok.Text) {
		return ""
	}
	return strings.TrimLeft(tok.Text[open:], " \t*")
}
