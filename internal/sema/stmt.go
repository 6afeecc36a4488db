package sema

import (
	"sable/internal/ast"
	"sable/internal/source"
	"sable/internal/symbols"
)

// checkStmt dispatches one statement. fn is nil at top level; depth
// counts the control structures enclosing this statement and feeds the
// recorded snapshots.
func (c *checker) checkStmt(id ast.StmtID, fn *symbols.Function, depth uint32) error {
	if !id.IsValid() {
		return nil
	}
	stmt := c.arenas.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		if data, ok := c.arenas.Stmts.Block(id); ok {
			for _, child := range data.Stmts {
				if err := c.checkStmt(child, fn, depth); err != nil {
					return err
				}
			}
		}
	case ast.StmtVarDecl:
		if data, ok := c.arenas.Stmts.VarDecl(id); ok {
			return c.declareVariable(data.Type, data.Name, data.NameSpan, data.Init, fn)
		}
	case ast.StmtIf:
		return c.checkIf(id, stmt, fn, depth)
	case ast.StmtWhile:
		return c.checkWhile(id, stmt, fn, depth)
	case ast.StmtFor:
		return c.checkFor(id, stmt, fn, depth)
	case ast.StmtReturn:
		if data, ok := c.arenas.Stmts.Return(id); ok {
			c.checkExpr(data.Value, fn)
		}
	case ast.StmtExpr:
		if data, ok := c.arenas.Stmts.ExprStmt(id); ok {
			c.checkExpr(data.Expr, fn)
		}
	case ast.StmtEmpty:
		// Nothing to do.
	}
	return nil
}

func (c *checker) checkIf(id ast.StmtID, stmt *ast.Stmt, fn *symbols.Function, depth uint32) error {
	data, ok := c.arenas.Stmts.If(id)
	if !ok {
		return nil
	}
	kind := symbols.CtrlIf
	if data.Else.IsValid() {
		kind = symbols.CtrlIfElse
	}
	c.recordControl(fn, kind, stmt.Span, c.condText(data.Cond), depth)
	c.checkExpr(data.Cond, fn)
	if err := c.checkStmt(data.Then, fn, depth+1); err != nil {
		return err
	}
	return c.checkStmt(data.Else, fn, depth+1)
}

func (c *checker) checkWhile(id ast.StmtID, stmt *ast.Stmt, fn *symbols.Function, depth uint32) error {
	data, ok := c.arenas.Stmts.While(id)
	if !ok {
		return nil
	}
	c.recordControl(fn, symbols.CtrlWhile, stmt.Span, c.condText(data.Cond), depth)
	c.checkExpr(data.Cond, fn)
	return c.checkStmt(data.Body, fn, depth+1)
}

func (c *checker) checkFor(id ast.StmtID, stmt *ast.Stmt, fn *symbols.Function, depth uint32) error {
	data, ok := c.arenas.Stmts.For(id)
	if !ok {
		return nil
	}
	// The snapshot carries the loop test only, empty when absent; the
	// init and post slots are walked but never quoted.
	c.recordControl(fn, symbols.CtrlFor, stmt.Span, c.condText(data.Cond), depth)
	if err := c.checkStmt(data.Init, fn, depth); err != nil {
		return err
	}
	c.checkExpr(data.Cond, fn)
	c.checkExpr(data.Post, fn)
	return c.checkStmt(data.Body, fn, depth+1)
}

// recordControl appends the snapshot to the owning function's list.
// Top-level control statements are walked like any other statement but
// recorded nowhere.
func (c *checker) recordControl(fn *symbols.Function, kind symbols.ControlKind, span source.Span, cond string, depth uint32) {
	if fn == nil {
		return
	}
	fn.AddControl(symbols.ControlStructure{
		Kind:      kind,
		StartLine: c.lineOf(span),
		EndLine:   c.endLineOf(span),
		Depth:     depth,
		Condition: cond,
	})
}

func (c *checker) condText(id ast.ExprID) string {
	if !id.IsValid() {
		return ""
	}
	expr := c.arenas.Exprs.Get(id)
	if expr == nil {
		return ""
	}
	return c.text(expr.Span)
}
