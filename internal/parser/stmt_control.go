package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/token"
)

// parseIfStmt parses "if (expr) stmt [else stmt]".
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()

	cond, ok := p.parseParenCond("if")
	if !ok {
		return ast.NoStmtID, false
	}

	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	endSpan := p.arenas.Stmts.Get(then).Span
	if p.at(token.KwElse) {
		p.advance()
		elseStmt, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		els = elseStmt
		endSpan = p.arenas.Stmts.Get(elseStmt).Span
	}

	span := ifTok.Span.Cover(endSpan)
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

// parseWhileStmt parses "while (expr) stmt".
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()

	cond, ok := p.parseParenCond("while")
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}

	span := whileTok.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Stmts.NewWhile(span, cond, body), true
}

// parseForStmt parses "for (init?; cond?; post?) stmt". All three
// header slots may be empty; the init is either a variable declaration
// or an expression statement (both consume their own ';').
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()

	if _, ok := p.expect(token.LParen, diag.SynForBadHeader, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.atType():
		stmt, ok := p.parseVarDeclStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		init = stmt
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		semi, semiOK := p.expect(token.Semicolon, diag.SynForBadHeader,
			"expected ';' after for-loop initializer")
		if !semiOK {
			return ast.NoStmtID, false
		}
		span := p.arenas.Exprs.Get(expr).Span.Cover(semi.Span)
		init = p.arenas.Stmts.NewExprStmt(span, expr)
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		cond = expr
	}
	if _, ok := p.expect(token.Semicolon, diag.SynForBadHeader,
		"expected ';' after for-loop condition"); !ok {
		return ast.NoStmtID, false
	}

	post := ast.NoExprID
	if !p.at(token.RParen) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		post = expr
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen,
		"expected ')' to close for-loop header"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}

	span := forTok.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Stmts.NewFor(span, init, cond, post, body), true
}

// parseParenCond parses "( expr )" after a control keyword. The
// returned expression's span covers the condition without the parens,
// which keeps condition snapshots clean.
func (p *Parser) parseParenCond(kw string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken,
		"expected '(' after '"+kw+"'"); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen,
		"expected ')' after "+kw+" condition"); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}
