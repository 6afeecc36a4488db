package diag

import (
	"sable/internal/source"
)

// Note attaches secondary context to a diagnostic, e.g. the site of a
// previous declaration.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by every pipeline phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
