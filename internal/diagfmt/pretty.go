package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ircmsg/internal/diag"
	"ircmsg/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Порядок сохраняется (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range items {
		d := &items[i]
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			position(fs, d.Primary, opts.PathMode),
			sev.Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, opts, p, sev)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n",
					p.note.Sprint("note:"),
					position(fs, note.Loc, opts.PathMode),
					note.Msg)
			}
		}
	}
}

// Short prints one line per diagnostic, without source context.
func Short(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, mode PathMode) {
	for i := range items {
		d := &items[i]
		fmt.Fprintf(w, "%s: %s %s: %s\n", position(fs, d.Primary, mode), d.Severity, d.Code.ID(), d.Message)
	}
}

func position(fs *source.FileSet, loc source.Location, mode PathMode) string {
	start, _ := fs.Resolve(loc)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, loc.File, mode), start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, loc source.Location, opts PrettyOpts, p palette, sev *color.Color) {
	if int(loc.File) >= fs.Len() {
		return
	}
	f := fs.Get(loc.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(loc)
	text := f.GetLine(start.Line)

	first := start.Line
	if opts.Context > 0 {
		first = start.Line - min(start.Line-1, uint32(opts.Context))
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for n := first; n <= start.Line; n++ {
		line := expandTabs(f.GetLine(n))
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "...")
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), line)
	}

	// колонки байтовые, ширина считается по отображаемым символам
	startCol := int(start.Col) - 1
	endCol := len(text)
	if end.Line == start.Line {
		endCol = int(end.Col) - 1
	}
	startCol = min(max(startCol, 0), len(text))
	endCol = min(max(endCol, startCol), len(text))

	pad := runewidth.StringWidth(expandTabs(text[:startCol]))
	span := runewidth.StringWidth(expandTabs(text[startCol:endCol]))
	if opts.Width > 0 && pad >= int(opts.Width) {
		return
	}
	mark := "^"
	if span > 1 {
		mark += strings.Repeat("~", span-1)
	}
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), sev.Sprint(mark))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
