package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// scanString scans a "..." literal. Token.Text keeps the quotes.
// Escaped byte pairs are consumed together, which stops \" from
// closing the literal early; escape decoding itself is not done here.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	fail := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return fail("unterminated string literal")
			}
			lx.cursor.Bump()
		case '\n':
			return fail("newline in string literal")
		default:
			lx.cursor.Bump()
		}
	}
	return fail("unterminated string literal")
}
