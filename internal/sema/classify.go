package sema

import (
	"strings"

	"sable/internal/ast"
	"sable/internal/source"
	"sable/internal/symbols"
)

// classify tags a fully walked function. The entry name wins outright,
// case-insensitively, even when the function also calls itself; after
// that one shallow scan over the body's call targets decides recursive
// versus normal. The scan matches names exactly, the way identifiers
// resolve everywhere else, and re-runs no validation.
func (c *checker) classify(fn *symbols.Function, body ast.StmtID) {
	if strings.EqualFold(c.name(fn.Name), c.entryName) {
		fn.Class = symbols.ClassEntry
		return
	}
	if c.stmtCallsName(body, fn.Name) {
		fn.Class = symbols.ClassRecursive
		return
	}
	fn.Class = symbols.ClassNormal
}

func (c *checker) stmtCallsName(id ast.StmtID, name source.StringID) bool {
	if !id.IsValid() {
		return false
	}
	stmt := c.arenas.Stmts.Get(id)
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		if data, ok := c.arenas.Stmts.Block(id); ok {
			for _, child := range data.Stmts {
				if c.stmtCallsName(child, name) {
					return true
				}
			}
		}
	case ast.StmtVarDecl:
		if data, ok := c.arenas.Stmts.VarDecl(id); ok {
			return c.exprCallsName(data.Init, name)
		}
	case ast.StmtIf:
		if data, ok := c.arenas.Stmts.If(id); ok {
			return c.exprCallsName(data.Cond, name) ||
				c.stmtCallsName(data.Then, name) ||
				c.stmtCallsName(data.Else, name)
		}
	case ast.StmtWhile:
		if data, ok := c.arenas.Stmts.While(id); ok {
			return c.exprCallsName(data.Cond, name) ||
				c.stmtCallsName(data.Body, name)
		}
	case ast.StmtFor:
		if data, ok := c.arenas.Stmts.For(id); ok {
			return c.stmtCallsName(data.Init, name) ||
				c.exprCallsName(data.Cond, name) ||
				c.exprCallsName(data.Post, name) ||
				c.stmtCallsName(data.Body, name)
		}
	case ast.StmtReturn:
		if data, ok := c.arenas.Stmts.Return(id); ok {
			return c.exprCallsName(data.Value, name)
		}
	case ast.StmtExpr:
		if data, ok := c.arenas.Stmts.ExprStmt(id); ok {
			return c.exprCallsName(data.Expr, name)
		}
	case ast.StmtEmpty:
	}
	return false
}

func (c *checker) exprCallsName(id ast.ExprID, name source.StringID) bool {
	if !id.IsValid() {
		return false
	}
	expr := c.arenas.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprCall:
		data, ok := c.arenas.Exprs.Call(id)
		if !ok {
			return false
		}
		if callee, isIdent := c.arenas.Exprs.Ident(data.Callee); isIdent && callee.Name == name {
			return true
		}
		if c.exprCallsName(data.Callee, name) {
			return true
		}
		for _, arg := range data.Args {
			if c.exprCallsName(arg, name) {
				return true
			}
		}
	case ast.ExprUnary:
		if data, ok := c.arenas.Exprs.Unary(id); ok {
			return c.exprCallsName(data.Operand, name)
		}
	case ast.ExprBinary:
		if data, ok := c.arenas.Exprs.Binary(id); ok {
			return c.exprCallsName(data.Left, name) ||
				c.exprCallsName(data.Right, name)
		}
	case ast.ExprParen:
		if data, ok := c.arenas.Exprs.Paren(id); ok {
			return c.exprCallsName(data.Inner, name)
		}
	case ast.ExprAssign:
		if data, ok := c.arenas.Exprs.Assign(id); ok {
			return c.exprCallsName(data.Target, name) ||
				c.exprCallsName(data.Value, name)
		}
	case ast.ExprIdent, ast.ExprLit:
	}
	return false
}
