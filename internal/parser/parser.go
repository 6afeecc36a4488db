package parser

import (
	"slices"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent. Zero means
// unlimited.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseFile parses one file into the builder's arenas. The lexer must
// be positioned at the start of the file.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) atType() bool {
	return p.lx.Peek().IsType()
}

// parseItems is the top-level loop: items until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the first token. A type keyword opens a
// declaration (global variable or function, disambiguated after the
// name); everything else is a top-level statement.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	if p.atType() {
		return p.parseDeclItem()
	}

	switch p.lx.Peek().Kind {
	case token.KwIf, token.KwWhile, token.KwFor, token.KwReturn,
		token.LBrace, token.Semicolon,
		token.Ident, token.KwMain, token.IntLit, token.FloatLit, token.StringLit,
		token.Minus, token.Bang, token.LParen:
		stmtID, ok := p.parseStmt()
		if !ok {
			return ast.NoItemID, false
		}
		span := p.arenas.Stmts.Get(stmtID).Span
		return p.arenas.Items.NewStmtItem(stmtID, span), true
	default:
		p.err(diag.SynUnexpectedTopLevel,
			"unexpected token \""+p.lx.Peek().Text+"\" at top level")
		return ast.NoItemID, false
	}
}

// resyncTop skips to the next plausible item start after a top-level
// error: a ';' (consumed), a type keyword, or a statement keyword.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon,
		token.KwInt, token.KwFloat, token.KwDouble, token.KwString, token.KwVoid,
		token.KwIf, token.KwWhile, token.KwFor, token.KwReturn, token.LBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}

// parseTypeRef expects a type keyword and keeps its original spelling.
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	if p.atType() {
		tok := p.advance()
		return ast.TypeRef{Name: p.arenas.Intern(tok.Text), Span: tok.Span}, true
	}
	p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
	return ast.TypeRef{}, false
}
