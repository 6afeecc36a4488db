package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// collectLeadingTrivia consumes whitespace and comments in front of the
// next token and stores them in lx.hold. Runs of spaces/tabs coalesce
// into a single TriviaSpace, runs of line breaks into one TriviaNewline.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t':
			start := lx.cursor.Mark()
			for {
				b = lx.cursor.Peek()
				if b != ' ' && b != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n' || b == '\r':
			start := lx.cursor.Mark()
			for {
				b = lx.cursor.Peek()
				if b != '\n' && b != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '/':
			if !lx.scanCommentIntoHold() {
				// bare '/' is an operator, not trivia
				return
			}

		default:
			return
		}
	}
}

// scanCommentIntoHold handles '//' and '/* */' comments. Returns false
// when the slash does not start a comment; the cursor is rewound so the
// operator scanner sees it untouched.
func (lx *Lexer) scanCommentIntoHold() bool {
	mark := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}

	switch b1 {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, mark)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		for depth > 0 {
			if lx.cursor.EOF() {
				sp := lx.cursor.SpanFrom(mark)
				lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
				break
			}
			c0, c1, ok2 := lx.cursor.Peek2()
			switch {
			case ok2 && c0 == '/' && c1 == '*':
				depth++
				lx.cursor.Bump()
				lx.cursor.Bump()
			case ok2 && c0 == '*' && c1 == '/':
				depth--
				lx.cursor.Bump()
				lx.cursor.Bump()
			default:
				lx.cursor.Bump()
			}
		}
		lx.pushTrivia(token.TriviaBlockComment, mark)
		return true

	default:
		lx.cursor.Reset(mark)
		return false
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start uint32) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
