package lexer

import (
	"sable/internal/source"
	"sable/internal/token"
)

// Lexer produces tokens for one file. It keeps a one-token lookahead
// buffer for Peek and accumulates leading trivia (whitespace, comments)
// onto the next real token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look *token.Token
	hold []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token. Comments and whitespace never surface as
// tokens; they arrive as Leading trivia on the token that follows them.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
		tok.Leading = lx.takeHold()
		return tok
	}

	var tok token.Token
	b := lx.cursor.Peek()
	switch {
	case b == '"':
		tok = lx.scanString()
	case isDec(b) || lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case isIdentStartByte(b) || b >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.Leading = lx.takeHold()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	held := lx.hold
	lx.hold = nil
	return held
}

// EmptySpan is a zero-length span at the cursor's current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
