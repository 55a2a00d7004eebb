package fold

import (
	"jfold/internal/source"
)

// AlignMode selects where an aligned region ends.
type AlignMode uint8

const (
	// AlignInclusive ends at the start of the line after the last line, so the
	// last line folds away too.
	AlignInclusive AlignMode = iota
	// AlignExclusive ends at the start of the last line, which stays visible
	// because it carries sibling content such as `} else {`.
	AlignExclusive
)

func (m AlignMode) String() string {
	if m == AlignExclusive {
		return "exclusive"
	}
	return "inclusive"
}

// Align snaps sp to whole lines. It reports false for spans that do not
// cover at least two lines once aligned.
func Align(doc *source.File, sp source.Span, mode AlignMode) (Position, bool) {
	if doc == nil || sp.End <= sp.Start || sp.Start >= doc.Len() {
		return Position{}, false
	}
	end := min(sp.End, doc.Len())
	startLine := doc.LineOf(sp.Start)
	endLine := doc.LineOf(end - 1)
	if startLine == endLine {
		return Position{}, false
	}

	start := doc.LineStart(startLine)
	var stop uint32
	switch mode {
	case AlignExclusive:
		// the last line stays visible, so two full lines must remain before it
		if endLine-1 <= startLine {
			return Position{}, false
		}
		stop = doc.LineStart(endLine)
	default:
		if endLine+1 >= doc.LineCount() {
			stop = doc.Len()
		} else {
			stop = doc.LineStart(endLine + 1)
		}
	}
	return Position{Offset: start, Length: stop - start}, true
}

// trailingMode picks the alignment for a region ending at end: exclusive when
// the rest of the last line starts another construct (`} else {`,
// `} catch (E e) {`, `} int next;`), inclusive otherwise.
func trailingMode(doc *source.File, end uint32) AlignMode {
	content := doc.Text()
	for i := end; i < doc.Len(); i++ {
		switch c := content[i]; {
		case c == ' ' || c == '\t' || c == '\r':
			continue
		case c == '\n':
			return AlignInclusive
		case c == '/' && i+1 < doc.Len() && (content[i+1] == '/' || content[i+1] == '*'):
			return AlignInclusive
		case c == '{' || c == '@' || c == '_' || c == '$' || c >= 0x80 ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			return AlignExclusive
		default:
			return AlignInclusive
		}
	}
	return AlignInclusive
}
