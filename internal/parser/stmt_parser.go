package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/token"
)

// parseBlock parses "{" stmt* "}".
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		return ast.NoStmtID, false
	}

	openTok := p.advance()
	var stmtIDs []ast.StmtID

	for !p.at(token.EOF) && !p.at(token.RBrace) {
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}

		p.resyncStatement()
		if p.at(token.Semicolon) {
			p.advance()
		}
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	span := openTok.Span
	if ok {
		span = openTok.Span.Cover(closeTok.Span)
	}
	return p.arenas.Stmts.NewBlock(span, stmtIDs), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	default:
		if p.atType() {
			return p.parseVarDeclStmt()
		}
		return p.parseExprStmt()
	}
}

// parseVarDeclStmt parses "type name [= expr] ;".
func (p *Parser) parseVarDeclStmt() (ast.StmtID, bool) {
	typ, ok := p.parseTypeRef()
	if !ok {
		return ast.NoStmtID, false
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		init = expr
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after variable declaration")
	if !ok {
		return ast.NoStmtID, false
	}

	span := typ.Span.Cover(semi.Span)
	return p.arenas.Stmts.NewVarDecl(span, typ, name, nameSpan, init), true
}

// parseReturnStmt parses "return [expr] ;".
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = expr
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after return statement")
	if !ok {
		return ast.NoStmtID, false
	}

	span := retTok.Span.Cover(semi.Span)
	return p.arenas.Stmts.NewReturn(span, value), true
}

// parseExprStmt parses "expr ;".
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon,
		"expected ';' after expression")
	if !ok {
		return ast.NoStmtID, false
	}

	span := p.arenas.Exprs.Get(expr).Span.Cover(semi.Span)
	return p.arenas.Stmts.NewExprStmt(span, expr), true
}

// resyncStatement skips to the next statement boundary: ';', '}', or a
// token that can begin a statement.
func (p *Parser) resyncStatement() {
	p.resyncUntil(token.Semicolon, token.RBrace,
		token.KwInt, token.KwFloat, token.KwDouble, token.KwString, token.KwVoid,
		token.KwIf, token.KwWhile, token.KwFor, token.KwReturn, token.LBrace)
}
