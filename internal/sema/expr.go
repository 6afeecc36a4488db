package sema

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
)

// checkExpr validates identifier uses and call arity inside one
// expression tree. This is a name-resolution surface scan: operator and
// operand types are never compared.
func (c *checker) checkExpr(id ast.ExprID, fn *symbols.Function) {
	if !id.IsValid() {
		return
	}
	expr := c.arenas.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := c.arenas.Exprs.Ident(id); ok {
			c.checkIdentUse(data.Name, expr.Span, fn)
		}
	case ast.ExprLit:
		// Literals carry no names.
	case ast.ExprUnary:
		if data, ok := c.arenas.Exprs.Unary(id); ok {
			c.checkExpr(data.Operand, fn)
		}
	case ast.ExprBinary:
		if data, ok := c.arenas.Exprs.Binary(id); ok {
			c.checkExpr(data.Left, fn)
			c.checkExpr(data.Right, fn)
		}
	case ast.ExprParen:
		if data, ok := c.arenas.Exprs.Paren(id); ok {
			c.checkExpr(data.Inner, fn)
		}
	case ast.ExprAssign:
		c.checkAssign(id, fn)
	case ast.ExprCall:
		c.checkCall(id, fn)
	}
}

// checkIdentUse covers an identifier that is not a call target: the
// name must resolve as a declared variable or a declared function.
func (c *checker) checkIdentUse(name source.StringID, sp source.Span, fn *symbols.Function) {
	if _, ok := c.program.LookupVariable(fn, name); ok {
		return
	}
	if c.program.HasFunction(name) {
		return
	}
	c.errorf(diag.SemaUndeclaredVariable, sp,
		"use of undeclared variable '%s'", c.name(name))
}

// checkAssign handles the plain `name = value` form: the target must be
// a declared variable, never a function. Anything fancier on the left
// degrades to a plain scan of that subtree.
func (c *checker) checkAssign(id ast.ExprID, fn *symbols.Function) {
	data, ok := c.arenas.Exprs.Assign(id)
	if !ok {
		return
	}
	if target, isIdent := c.arenas.Exprs.Ident(data.Target); isIdent {
		if _, declared := c.program.LookupVariable(fn, target.Name); !declared {
			c.errorf(diag.SemaAssignUndeclared, c.arenas.Exprs.Get(data.Target).Span,
				"assignment to undeclared variable '%s'", c.name(target.Name))
		}
	} else {
		c.checkExpr(data.Target, fn)
	}
	c.checkExpr(data.Value, fn)
}

// checkCall resolves a plain-identifier callee against the function
// table and compares declared parameter count with supplied arguments.
func (c *checker) checkCall(id ast.ExprID, fn *symbols.Function) {
	data, ok := c.arenas.Exprs.Call(id)
	if !ok {
		return
	}
	if callee, isIdent := c.arenas.Exprs.Ident(data.Callee); isIdent {
		if target, declared := c.program.Function(callee.Name); declared {
			if target.Arity() != len(data.Args) {
				c.errorf(diag.SemaArityMismatch, c.arenas.Exprs.Get(id).Span,
					"function '%s' expects %d arguments but got %d",
					c.name(callee.Name), target.Arity(), len(data.Args))
			}
		} else {
			c.errorf(diag.SemaUndefinedFunction, c.arenas.Exprs.Get(data.Callee).Span,
				"call to undefined function '%s'", c.name(callee.Name))
		}
	} else {
		c.checkExpr(data.Callee, fn)
	}
	for _, arg := range data.Args {
		c.checkExpr(arg, fn)
	}
}
