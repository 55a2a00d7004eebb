package foldfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jfold/internal/diag"
	"jfold/internal/fold"
	"jfold/internal/source"
	"jfold/internal/token"
)

type palette struct {
	kind      map[fold.RegionKind]*color.Color
	dim       *color.Color
	collapsed *color.Color
	added     *color.Color
	updated   *color.Color
	deleted   *color.Color
	severity  map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		kind: map[fold.RegionKind]*color.Color{
			fold.RegionImports:   color.New(color.FgMagenta),
			fold.RegionType:      color.New(color.FgYellow, color.Bold),
			fold.RegionMember:    color.New(color.FgYellow),
			fold.RegionStatement: color.New(color.FgCyan),
			fold.RegionComment:   color.New(color.FgGreen),
			fold.RegionDoc:       color.New(color.FgGreen, color.Bold),
			fold.RegionHeader:    color.New(color.FgGreen, color.Faint),
			fold.RegionCustom:    color.New(color.FgBlue, color.Bold),
		},
		dim:       color.New(color.Faint),
		collapsed: color.New(color.FgRed),
		added:     color.New(color.FgGreen, color.Bold),
		updated:   color.New(color.FgYellow, color.Bold),
		deleted:   color.New(color.FgRed, color.Bold),
		severity: map[diag.Severity]*color.Color{
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
	}
	all := []*color.Color{p.dim, p.collapsed, p.added, p.updated, p.deleted}
	for _, c := range p.kind {
		all = append(all, c)
	}
	for _, c := range p.severity {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Model prints one line per entry:
//
//	3-8    member     A#m()  [collapsed]  void m() {
func Model(w io.Writer, file *source.File, entries []fold.Entry, opts Options) error {
	p := newPalette(opts.Color)
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, entryLine(p, file, e, opts)); err != nil {
			return err
		}
	}
	return nil
}

// Changeset prints additions, updates and deletions, one entry per line.
func Changeset(w io.Writer, file *source.File, cs fold.Changeset, opts Options) error {
	p := newPalette(opts.Color)
	groups := []struct {
		mark    string
		c       *color.Color
		entries []fold.Entry
	}{
		{"+", p.added, cs.Added},
		{"~", p.updated, cs.Updated},
		{"-", p.deleted, cs.Deleted},
	}
	for _, g := range groups {
		for _, e := range g.entries {
			line := entryLine(p, file, e, Options{Color: opts.Color, Width: opts.Width, Preview: opts.Preview && g.mark != "-"})
			if _, err := fmt.Fprintf(w, "%s %s\n", g.c.Sprint(g.mark), line); err != nil {
				return err
			}
		}
	}
	if cs.Empty() {
		_, err := fmt.Fprintln(w, p.dim.Sprint("no changes"))
		return err
	}
	return nil
}

func entryLine(p palette, file *source.File, e fold.Entry, opts Options) string {
	var b strings.Builder
	lines := "deleted"
	if !e.Position.Deleted {
		first, last := e.Position.Lines(file)
		lines = fmt.Sprintf("%d-%d", first+1, last+1)
	}
	fmt.Fprintf(&b, "%5d  %-9s ", e.ID, lines)

	kc := p.kind[e.Kind]
	if kc == nil {
		kc = p.dim
	}
	b.WriteString(kc.Sprintf("%-10s", e.Kind))
	b.WriteString(" ")
	b.WriteString(e.Owner.String())
	if e.Collapsed {
		b.WriteString(" ")
		b.WriteString(p.collapsed.Sprint("[collapsed]"))
	}
	if opts.Preview && !e.Position.Deleted {
		first, _ := e.Position.Lines(file)
		preview := strings.TrimSpace(file.LineText(first))
		if opts.Width > 0 {
			preview = runewidth.Truncate(preview, opts.Width, "…")
		}
		b.WriteString("  ")
		b.WriteString(p.dim.Sprint(preview))
	}
	return b.String()
}

// Tokens prints one token per line with its position.
func Tokens(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// Diagnostics prints `<path>:<line>:<col>: <SEV> <CODE>: <message>` per item.
func Diagnostics(w io.Writer, fs *source.FileSet, bag *diag.Bag, opts Options) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	bag.Sort()
	for _, d := range bag.Items() {
		path := ""
		var pos source.LineCol
		if fs != nil && int(d.Primary.File) < fs.Len() {
			path = fs.Get(d.Primary.File).Path
			pos, _ = fs.Resolve(d.Primary)
		}
		sev := p.severity[d.Severity]
		if sev == nil {
			sev = p.dim
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, pos.Line, pos.Col, sev.Sprint(d.Severity), d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
