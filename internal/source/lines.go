package source

import (
	"sort"

	"fortio.org/safecast"
)

// Len returns the document length in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content))
}

// Text returns the raw document bytes. Callers must not modify them.
func (f *File) Text() []byte {
	return f.Content
}

// LineCount returns the number of lines; a trailing newline opens one more (empty) line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1
}

// LineOf returns the 0-based line containing off. A newline belongs to the line it ends.
// Offsets past the end map to the last line.
func (f *File) LineOf(off uint32) uint32 {
	i := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	line, err := safecast.Conv[uint32](i)
	if err != nil {
		return f.LineCount() - 1
	}
	return line
}

// LineStart returns the offset of the first byte of a 0-based line.
// Lines past the end map to the document length.
func (f *File) LineStart(line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if int(line-1) >= len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[line-1] + 1
}

// LineEnd returns the offset of the newline terminating line (or the document length).
func (f *File) LineEnd(line uint32) uint32 {
	if int(line) >= len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[line]
}

// LineText returns the text of a 0-based line without its newline.
func (f *File) LineText(line uint32) string {
	if line >= f.LineCount() {
		return ""
	}
	return string(f.Content[f.LineStart(line):f.LineEnd(line)])
}

// Indent returns the width of the leading whitespace of a line; a tab counts as tabWidth.
// A blank line reports ok=false.
func (f *File) Indent(line uint32, tabWidth int) (width int, ok bool) {
	if line >= f.LineCount() {
		return 0, false
	}
	for _, b := range f.Content[f.LineStart(line):f.LineEnd(line)] {
		switch b {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width, true
		}
	}
	return width, false
}

// LineCol converts a byte offset into a 1-based line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	line := f.LineOf(off)
	return LineCol{Line: line + 1, Col: off - f.LineStart(line) + 1}
}
