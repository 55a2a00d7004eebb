package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jfold/internal/fold"
	"jfold/internal/source"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	placeholderSty = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Viewer is a Bubble Tea model that shows a document with its folds applied.
// Folds are toggled in place; the bulk keys go through the session.
type Viewer struct {
	doc     *source.File
	session *fold.Session
	keys    keyMap
	help    help.Model
	vp      viewport.Model

	cursor  uint32 // 0-based document line, always visible
	visible []uint32
	status  string
	width   int
	ready   bool
}

// NewViewer returns a viewer over doc. The session must already hold the
// model for doc.
func NewViewer(doc *source.File, session *fold.Session) *Viewer {
	v := &Viewer{
		doc:     doc,
		session: session,
		keys:    defaultKeys(),
		help:    help.New(),
		vp:      viewport.New(80, 20),
		width:   80,
	}
	v.refresh()
	return v
}

func (v *Viewer) Init() tea.Cmd {
	return nil
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		v.vp.Width = msg.Width
		v.vp.Height = max(msg.Height-3, 1)
		v.ready = true
		v.refresh()
		return v, nil
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return tea.Quit
	case key.Matches(msg, v.keys.Up):
		v.move(-1)
	case key.Matches(msg, v.keys.Down):
		v.move(1)
	case key.Matches(msg, v.keys.PageUp):
		v.move(-v.vp.Height)
	case key.Matches(msg, v.keys.PageDown):
		v.move(v.vp.Height)
	case key.Matches(msg, v.keys.Toggle):
		v.toggle()
	case key.Matches(msg, v.keys.Members):
		v.report("collapsed", v.session.CollapseMembers())
	case key.Matches(msg, v.keys.Comments):
		v.report("collapsed", v.session.CollapseComments())
	case key.Matches(msg, v.keys.ExpandAll):
		v.expandAll()
	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
	}
	v.refresh()
	return nil
}

// Cursor returns the 0-based document line under the cursor.
func (v *Viewer) Cursor() uint32 {
	return v.cursor
}

// VisibleLines returns the 0-based document lines currently shown.
func (v *Viewer) VisibleLines() []uint32 {
	return slices.Clone(v.visible)
}

func (v *Viewer) move(delta int) {
	i, _ := slices.BinarySearch(v.visible, v.cursor)
	i = min(max(i+delta, 0), len(v.visible)-1)
	if i >= 0 {
		v.cursor = v.visible[i]
	}
}

// toggle flips the outermost fold starting on the cursor line.
func (v *Viewer) toggle() {
	entries := v.session.Model().At(v.doc, v.cursor)
	if len(entries) == 0 {
		v.status = "no fold here"
		return
	}
	target := entries[0]
	for _, e := range entries[1:] {
		if e.Position.Length > target.Position.Length {
			target = e
		}
	}
	collapsed, _ := v.session.Model().Toggle(target.ID)
	state := "expanded"
	if collapsed {
		state = "collapsed"
	}
	v.status = fmt.Sprintf("%s %s", state, describe(target))
}

func (v *Viewer) expandAll() {
	var cs fold.Changeset
	for _, e := range v.session.Model().Entries() {
		if v.session.Model().SetCollapsed(e.ID, false) {
			cs.Updated = append(cs.Updated, e)
		}
	}
	v.report("expanded", cs)
}

func (v *Viewer) report(verb string, cs fold.Changeset) {
	v.status = fmt.Sprintf("%s %d region(s)", verb, len(cs.Updated))
}

func describe(e fold.Entry) string {
	if e.Owner.IsZero() {
		return e.Kind.String()
	}
	return e.Kind.String() + " " + e.Owner.Key
}

// refresh recomputes the visible lines and re-renders the viewport content.
func (v *Viewer) refresh() {
	hidden := v.session.Model().HiddenLines(v.doc)
	v.visible = v.visible[:0]
	for line := range v.doc.LineCount() {
		if !hidden[line] {
			v.visible = append(v.visible, line)
		}
	}
	// a collapse may have hidden the cursor; move it up to the fold's first line
	for v.cursor > 0 && hidden[v.cursor] {
		v.cursor--
	}

	collapsedAt := make(map[uint32]fold.Entry)
	foldAt := make(map[uint32]bool)
	for _, e := range v.session.Model().Entries() {
		if e.Position.Deleted {
			continue
		}
		first, _ := e.Position.Lines(v.doc)
		foldAt[first] = true
		if e.Collapsed {
			if prev, ok := collapsedAt[first]; !ok || e.Position.Length > prev.Position.Length {
				collapsedAt[first] = e
			}
		}
	}

	numWidth := len(fmt.Sprint(v.doc.LineCount()))
	textWidth := max(v.width-numWidth-3, 10)
	var b strings.Builder
	cursorRow := 0
	for row, line := range v.visible {
		marker := " "
		text := runewidth.Truncate(strings.ReplaceAll(v.doc.LineText(line), "\t", "    "), textWidth, "…")
		if e, ok := collapsedAt[line]; ok {
			marker = "▸"
			_, last := e.Position.Lines(v.doc)
			text += placeholderSty.Render(fmt.Sprintf(" … %d lines", last-line))
		} else if foldAt[line] {
			marker = "▾"
		}
		if line == v.cursor {
			cursorRow = row
			text = cursorStyle.Render(text)
		}
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%*d", numWidth, line+1)))
		b.WriteString(" ")
		b.WriteString(markerStyle.Render(marker))
		b.WriteString(" ")
		b.WriteString(text)
		if row < len(v.visible)-1 {
			b.WriteString("\n")
		}
	}
	v.vp.SetContent(b.String())

	switch {
	case cursorRow < v.vp.YOffset:
		v.vp.SetYOffset(cursorRow)
	case cursorRow >= v.vp.YOffset+v.vp.Height:
		v.vp.SetYOffset(cursorRow - v.vp.Height + 1)
	}
}

func (v *Viewer) View() string {
	header := titleStyle.Render(fmt.Sprintf("%s  (%d regions)", v.doc.Path, v.session.Model().Len()))
	footer := statusStyle.Render(v.status)
	return header + "\n" + v.vp.View() + "\n" + footer + "\n" + v.help.View(v.keys)
}
