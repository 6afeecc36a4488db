package lexer

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/token"
)

// Two-byte operators match before one-byte ones so "<=" never splits
// into "<" "=".
var twoByteOps = []struct {
	a, b byte
	kind token.Kind
}{
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
}

// oneByteOps maps an ASCII byte to its kind; the zero entry marks
// bytes that are not operators.
var oneByteOps = [utf8RuneSelf]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

// scanOperatorOrPunct scans operators and punctuation, longest match
// first. Unknown input is reported once per rune and surfaces as an
// Invalid token so the parser can step over it.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Peek()
	if ch >= utf8RuneSelf {
		r, _ := lx.peekRune()
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	lx.cursor.Bump()
	if k := oneByteOps[ch]; k != token.Invalid {
		return emit(k)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", rune(ch)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
