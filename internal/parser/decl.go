package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// parseDeclItem parses a top-level declaration that starts with a type
// keyword. The shared prefix "type name" is consumed first; a '('
// afterwards means a function, anything else a global variable.
func (p *Parser) parseDeclItem() (ast.ItemID, bool) {
	typ, ok := p.parseTypeRef()
	if !ok {
		return ast.NoItemID, false
	}

	name, nameSpan, entryWord, ok := p.parseDeclName()
	if !ok {
		return ast.NoItemID, false
	}

	if p.at(token.LParen) {
		return p.parseFnRest(typ, name, nameSpan, entryWord)
	}
	return p.parseGlobalRest(typ, name, nameSpan)
}

// parseDeclName accepts a plain identifier or the reserved entry
// keyword. The keyword's text takes precedence over a generic
// identifier when naming a declaration.
func (p *Parser) parseDeclName() (source.StringID, source.Span, bool, bool) {
	switch p.lx.Peek().Kind {
	case token.KwMain:
		tok := p.advance()
		return p.arenas.Intern(tok.Text), tok.Span, true, true
	case token.Ident:
		tok := p.advance()
		return p.arenas.Intern(tok.Text), tok.Span, false, true
	default:
		p.err(diag.SynExpectIdentifier,
			"expected name after type, got \""+p.lx.Peek().Text+"\"")
		return source.NoStringID, p.getDiagnosticSpan(), false, false
	}
}

// parseGlobalRest finishes a global declaration after "type name":
// an optional initializer, then ';'.
func (p *Parser) parseGlobalRest(typ ast.TypeRef, name source.StringID, nameSpan source.Span) (ast.ItemID, bool) {
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoItemID, false
		}
		init = expr
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after variable declaration")
	if !ok {
		return ast.NoItemID, false
	}

	span := typ.Span.Cover(semi.Span)
	return p.arenas.Items.NewGlobal(typ, name, nameSpan, init, span), true
}

// parseFnRest finishes a function declaration after "type name": the
// parameter list and the body block.
func (p *Parser) parseFnRest(returnType ast.TypeRef, name source.StringID, nameSpan source.Span, entryWord bool) (ast.ItemID, bool) {
	params, ok := p.parseParams()
	if !ok {
		return ast.NoItemID, false
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to open function body")
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := returnType.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Items.NewFn(name, nameSpan, entryWord, returnType, params, body, span), true
}

// parseParams parses "(" [param {"," param}] ")".
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}

	var params []ast.Param
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}

	for {
		param, ok := p.parseParam()
		if !ok {
			p.resyncUntil(token.Comma, token.RParen, token.LBrace)
		} else {
			params = append(params, param)
		}

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam() (ast.Param, bool) {
	typ, ok := p.parseTypeRef()
	if !ok {
		return ast.Param{}, false
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.Param{}, false
	}
	return ast.Param{
		Type:     typ,
		Name:     name,
		NameSpan: nameSpan,
		Span:     typ.Span.Cover(nameSpan),
	}, true
}
