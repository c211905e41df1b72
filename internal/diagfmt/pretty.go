package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ranoc/internal/diag"
	"ranoc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид в порядке bag.Items().
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, по опции, Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sb.WriteString(location(fs, d.File, d.Primary, opts.PathMode))
	sb.WriteString(": ")
	sb.WriteString(pal.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteByte(' ')
	sb.WriteString(pal.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteByte('\n')

	writeSnippet(&sb, fs, d.File, d.Primary, int(opts.Context), pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, d.File, n.Span, opts.PathMode), n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// location is "path:line:col", or just "path" when sp carries no position.
func location(fs *source.FileSet, id source.FileID, sp source.Span, mode PathMode) string {
	path := displayPath(fs, id, mode)
	if fs == nil || sp.IsEmpty() {
		return path
	}
	start, _ := fs.Resolve(id, sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSnippet prints up to context lines before the primary line, the
// primary line and a caret line under the span. Spans across lines are
// underlined to the end of their first line.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, id source.FileID, sp source.Span, context int, pal palette) {
	if fs == nil || sp.IsEmpty() {
		return
	}
	f := fs.Get(id)
	if f == nil {
		return
	}
	start, end := fs.Resolve(id, sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	for context > 0 && first > 1 {
		first--
		context--
	}
	gw := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(sb, " %s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := 1
	if to > from {
		width = max(1, runewidth.StringWidth(expandTabs(line[from:to])))
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Summary prints "N errors, M warnings" and how many diagnostics did not
// fit into the bag. Nothing is printed for an empty bag.
func Summary(w io.Writer, bag *diag.Bag, colored bool) error {
	var errs, warns int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 && bag.Dropped() == 0 {
		return nil
	}
	pal := newPalette(colored)
	parts := []string{}
	if errs > 0 {
		parts = append(parts, pal.err.Sprint(plural(errs, "error")))
	}
	if warns > 0 {
		parts = append(parts, pal.warn.Sprint(plural(warns, "warning")))
	}
	if n := bag.Dropped(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d more not shown", n))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ", "))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
