package token

import (
	"sable/internal/source"
)

// Token is one lexed unit: its kind, where it sits in the source, the
// raw text, and any comment trivia collected before it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// The predicates below lean on Kind declaration order: keywords,
// literals, and operator kinds each occupy one contiguous run.

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind >= KwIf && t.Kind <= KwVoid }

// IsType reports whether the token names one of the primitive types.
func (t Token) IsType() bool { return t.Kind >= KwInt && t.Kind <= KwVoid }

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool { return t.Kind >= IntLit && t.Kind <= StringLit }

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool { return t.Kind >= Plus && t.Kind <= RBrace }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
