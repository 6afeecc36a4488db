package lexer

import (
	"sable/internal/diag"
	"sable/internal/source"
)

// Options configure a Lexer. A nil Reporter silently drops lex errors;
// the lexer still emits Invalid tokens so the parser can resynchronize.
type Options struct {
	Reporter diag.Reporter
}

func DefaultOptions() Options {
	return Options{Reporter: diag.NopReporter{}}
}

func (lx *Lexer) errLex(code diag.Code, span source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, span, msg).Emit()
}
