package parser

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/token"
)

// parseExpr is the entry point for expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is a Pratt loop over the operator table. Assignment
// sits at the lowest precedence and is right-associative; it builds an
// Assign node instead of a Binary one so the analyzer can treat targets
// specially.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after \""+opTok.Text+"\"")
			return ast.NoExprID, false
		}

		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		span := leftSpan.Cover(rightSpan)

		if opTok.Kind == token.Assign {
			left = p.arenas.Exprs.NewAssign(span, left, right)
		} else {
			left = p.arenas.Exprs.NewBinary(span, binaryOp(opTok.Kind), left, right)
		}
	}

	return left, true
}

// parseUnaryExpr handles prefix '-' and '!'.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	var op ast.ExprUnaryOp
	switch tok.Kind {
	case token.Minus:
		op = ast.ExprUnaryNeg
	case token.Bang:
		op = ast.ExprUnaryNot
	default:
		return p.parsePostfixExpr()
	}

	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		p.err(diag.SynExpectExpression, "expected expression after \""+opTok.Text+"\"")
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parsePostfixExpr parses a primary with an optional call suffix.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	primary, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if !p.at(token.LParen) {
		return primary, true
	}

	p.advance() // '('
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen,
		"expected ')' to close argument list")
	if !ok {
		return ast.NoExprID, false
	}

	span := p.arenas.Exprs.Get(primary).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, primary, args), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, p.arenas.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.arenas.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, p.arenas.Intern(tok.Text)), true
	case token.Ident, token.KwMain:
		// the entry keyword doubles as an identifier in expressions
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Intern(tok.Text)), true
	case token.LParen:
		openTok := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen,
			"expected ')' to close expression")
		if !ok {
			return ast.NoExprID, false
		}
		span := openTok.Span.Cover(closeTok.Span)
		return p.arenas.Exprs.NewParen(span, inner), true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}
