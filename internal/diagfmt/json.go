package diagfmt

import (
	"encoding/json"
	"io"

	"sable/internal/diag"
	"sable/internal/source"
)

// LocationJSON is a span rendered for JSON output. Byte offsets are
// always present; line/col fields appear only when requested and stay
// absent for program-level spans, which have no single position.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in JSON form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the diagnostics JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      renderPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if !includePositions || programLevel(span) {
		return loc
	}

	startPos, endPos := fs.Resolve(span)
	loc.StartLine = startPos.Line
	loc.StartCol = startPos.Col
	loc.EndLine = endPos.Line
	loc.EndCol = endPos.Col
	return loc
}

func makeNotes(notes []diag.Note, fs *source.FileSet, opts JSONOpts) []NoteJSON {
	if len(notes) == 0 {
		return nil
	}
	out := make([]NoteJSON, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteJSON{
			Message:  n.Msg,
			Location: makeLocation(n.Span, fs, opts.PathMode, opts.IncludePositions),
		})
	}
	return out
}

// BuildDiagnosticsOutput shapes the JSON document without serializing
// it. Max truncates the output, never the bag itself.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	diagnostics := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		entry := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}

		// Timing diagnostics carry their payload in a note; JSON output
		// would be useless without it.
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			entry.Notes = makeNotes(d.Notes, fs, opts)
		}

		diagnostics = append(diagnostics, entry)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON writes the bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
