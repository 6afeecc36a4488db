package sema

import (
	"strconv"
	"strings"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
	"sable/internal/types"
)

// compoundMarks routes an initializer to expression validation instead
// of literal parsing when any of them appears in its source text. The
// test is textual on purpose, quirks included: a quoted string holding
// a '-' counts as compound and loses its stored value. A structural
// replacement would change only looksCompound.
const compoundMarks = "+-*/("

func looksCompound(text string) bool {
	return strings.ContainsAny(text, compoundMarks)
}

// applyInitializer resolves a declaration's `= expr` part. Compound-
// looking text gets identifier and arity validation only and stores no
// value; bare literals parse according to the declared type.
func (c *checker) applyInitializer(v *symbols.Variable, init ast.ExprID, fn *symbols.Function) {
	if !init.IsValid() {
		return
	}
	expr := c.arenas.Exprs.Get(init)
	if expr == nil {
		return
	}
	text := c.text(expr.Span)
	if looksCompound(text) {
		c.checkExpr(init, fn)
		return
	}
	c.storeLiteral(v, text, expr.Span)
}

// storeLiteral parses text per the declared type and records it on the
// variable. A failed parse reports the value and leaves it unset; a
// quoted string only sheds its quotes and cannot fail. Void has no
// literal form, so the value stays unset without complaint.
func (c *checker) storeLiteral(v *symbols.Variable, text string, sp source.Span) {
	switch v.Type {
	case types.Int:
		if _, err := strconv.Atoi(text); err != nil {
			c.reportBadLiteral(v, text, sp)
			return
		}
		v.SetValue(text)
	case types.Float, types.Double:
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			c.reportBadLiteral(v, text, sp)
			return
		}
		v.SetValue(text)
	case types.String:
		v.SetValue(strings.Trim(text, `"`))
	case types.Void, types.Invalid:
	}
}

func (c *checker) reportBadLiteral(v *symbols.Variable, text string, sp source.Span) {
	c.errorf(diag.SemaInvalidInitializer, sp,
		"invalid value for type %s: '%s'", v.Type, text)
}
