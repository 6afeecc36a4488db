package sema

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
)

func (c *checker) checkItem(id ast.ItemID) error {
	item := c.arenas.Items.Get(id)
	if item == nil {
		return nil
	}
	switch item.Kind {
	case ast.ItemGlobal:
		if g, ok := c.arenas.Items.Global(id); ok {
			return c.checkGlobal(g)
		}
	case ast.ItemFn:
		if f, ok := c.arenas.Items.Fn(id); ok {
			return c.checkFn(f)
		}
	case ast.ItemStmt:
		if stmtID, ok := c.arenas.Items.Stmt(id); ok {
			return c.checkStmt(stmtID, nil, 0)
		}
	}
	return nil
}

func (c *checker) checkGlobal(g *ast.GlobalItem) error {
	return c.declareVariable(g.Type, g.Name, g.NameSpan, g.Init, nil)
}

// declareVariable handles one variable declaration, global or local:
// build the Variable, reject duplicates in the owning scope before the
// initializer is even looked at, evaluate the initializer, insert.
// A declaration statement outside any function owns a global.
func (c *checker) declareVariable(typ ast.TypeRef, name source.StringID, nameSpan source.Span, init ast.ExprID, fn *symbols.Function) error {
	prim, err := c.resolveType(typ)
	if err != nil {
		return err
	}
	v := &symbols.Variable{
		Name:   name,
		Type:   prim,
		Global: fn == nil,
		Line:   c.lineOf(nameSpan),
		Span:   nameSpan,
	}

	if fn == nil {
		if _, exists := c.program.Global(name); exists {
			c.errorf(diag.SemaDuplicateVariable, nameSpan,
				"duplicate global variable '%s'", c.name(name))
			return nil
		}
		c.applyInitializer(v, init, nil)
		c.program.AddGlobal(v)
		return nil
	}

	if _, exists := fn.LookupOwn(name); exists {
		c.errorf(diag.SemaDuplicateVariable, nameSpan,
			"duplicate local variable '%s'", c.name(name))
		return nil
	}
	c.applyInitializer(v, init, fn)
	fn.AddLocal(v)
	return nil
}

// checkFn processes one function declaration. A duplicate name discards
// the whole declaration, body included. Registration happens only after
// the body walk and classification, so calls inside the body resolve
// against previously declared functions only.
func (c *checker) checkFn(f *ast.FnItem) error {
	ret, err := c.resolveType(f.ReturnType)
	if err != nil {
		return err
	}
	if c.program.HasFunction(f.Name) {
		c.errorf(diag.SemaDuplicateFunction, f.NameSpan,
			"duplicate function '%s'", c.name(f.Name))
		return nil
	}

	fn := symbols.NewFunction(f.Name, ret, c.lineOf(f.NameSpan), f.NameSpan)
	for _, p := range c.arenas.Items.FnParams(f) {
		if err := c.declareParam(p, fn); err != nil {
			return err
		}
	}
	if err := c.checkStmt(f.Body, fn, 0); err != nil {
		return err
	}
	c.classify(fn, f.Body)
	c.program.AddFunction(fn)
	return nil
}

func (c *checker) declareParam(p ast.Param, fn *symbols.Function) error {
	prim, err := c.resolveType(p.Type)
	if err != nil {
		return err
	}
	v := &symbols.Variable{
		Name: p.Name,
		Type: prim,
		Line: c.lineOf(p.NameSpan),
		Span: p.NameSpan,
	}
	if !fn.AddParam(v) {
		c.errorf(diag.SemaDuplicateVariable, p.NameSpan,
			"duplicate parameter '%s'", c.name(p.Name))
	}
	return nil
}
