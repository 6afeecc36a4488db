package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sable/internal/diag"
	"sable/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
)

// Pretty renders every diagnostic in the bag as
//
//	<path>:<line>:<col>: <SEVERITY>[<CODE>]: <message>
//
// followed by the offending source line with a ^~~~ underline and, with
// ShowNotes, the attached notes. The bag renders in its stored order;
// callers sort it first. Program-level diagnostics (an empty span at
// offset zero) print line and column 0 and carry no source context.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for i, d := range bag.Items() {
		if i > 0 && opts.Context > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path := renderPath(fs, d.Primary.File, opts.PathMode)
	line, col := primaryPosition(fs, d.Primary)

	label := d.Severity.String() + "[" + d.Code.ID() + "]"
	if opts.Color {
		label = severityColor(d.Severity).Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, line, col, label, d.Message)

	if opts.Context >= 0 && !programLevel(d.Primary) {
		writeContext(w, d, fs, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			writeNote(w, n, fs, opts)
		}
	}
}

// programLevel reports whether the span is the empty offset-zero span
// carried by diagnostics with no single source position.
func programLevel(span source.Span) bool {
	return span.Empty() && span.Start == 0
}

func primaryPosition(fs *source.FileSet, span source.Span) (line, col uint32) {
	if programLevel(span) {
		return 0, 0
	}
	start, _ := fs.Resolve(span)
	return start.Line, start.Col
}

func writeContext(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	lineCount, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		return
	}
	lineCount++

	surround := uint32(0)
	if opts.Context > 0 {
		surround = uint32(opts.Context)
	}
	first := uint32(1)
	if start.Line > surround {
		first = start.Line - surround
	}
	last := start.Line + surround
	if last > lineCount {
		last = lineCount
	}

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		shown := text
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%5d | %s\n", ln, shown)
		if ln == start.Line {
			underline := buildUnderline(text, start, end)
			if opts.Color {
				underline = severityColor(d.Severity).Sprint(underline)
			}
			fmt.Fprintf(w, "%5s | %s\n", "", underline)
		}
	}
}

// buildUnderline places a caret under the span start and tildes under
// the rest of the span on its first line. Tabs in the prefix copy
// through so the underline stays aligned at any tab width; other runes
// pad by their display width.
func buildUnderline(line string, start, end source.LineCol) string {
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}

	var b strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	b.WriteByte('^')

	stop := len(line)
	if end.Line == start.Line && int(end.Col)-1 < stop {
		stop = int(end.Col) - 1
	}
	if stop > col {
		if width := runewidth.StringWidth(line[col:stop]); width > 1 {
			b.WriteString(strings.Repeat("~", width-1))
		}
	}
	return b.String()
}

func writeNote(w io.Writer, n diag.Note, fs *source.FileSet, opts PrettyOpts) {
	if programLevel(n.Span) {
		fmt.Fprintf(w, "  note: %s\n", n.Msg)
		return
	}
	path := renderPath(fs, n.Span.File, opts.PathMode)
	start, _ := fs.Resolve(n.Span)
	fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", path, start.Line, start.Col, n.Msg)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
