package ast

import (
	"sable/internal/source"
)

// Exprs allocates expression nodes. Every node lives in the shared
// Arena; its kind-specific fields live in the matching payload arena.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Assigns  *Arena[ExprAssignData]
	Calls    *Arena[ExprCallData]
	Parens   *Arena[ExprParenData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Parens:   NewArena[ExprParenData](capHint),
	}
}

// newExpr stores payload data and the node that points at it.
func newExpr[T any](e *Exprs, payloads *Arena[T], kind ExprKind, span source.Span, data T) ExprID {
	payload := payloads.Allocate(data)
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// exprPayload resolves id's payload when the node has the wanted kind.
func exprPayload[T any](e *Exprs, payloads *Arena[T], id ExprID, kind ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return nil, false
	}
	return payloads.Get(uint32(expr.Payload)), true
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return newExpr(e, e.Idents, ExprIdent, span, ExprIdentData{Name: name})
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	return exprPayload(e, e.Idents, id, ExprIdent)
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	return newExpr(e, e.Literals, ExprLit, span, ExprLiteralData{Kind: kind, Value: value})
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	return exprPayload(e, e.Literals, id, ExprLit)
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return newExpr(e, e.Unaries, ExprUnary, span, ExprUnaryData{Op: op, Operand: operand})
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return exprPayload(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return newExpr(e, e.Binaries, ExprBinary, span, ExprBinaryData{Op: op, Left: left, Right: right})
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return exprPayload(e, e.Binaries, id, ExprBinary)
}

func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	return newExpr(e, e.Assigns, ExprAssign, span, ExprAssignData{Target: target, Value: value})
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	return exprPayload(e, e.Assigns, id, ExprAssign)
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return newExpr(e, e.Calls, ExprCall, span, ExprCallData{Callee: callee, Args: args})
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return exprPayload(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	return newExpr(e, e.Parens, ExprParen, span, ExprParenData{Inner: inner})
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	return exprPayload(e, e.Parens, id, ExprParen)
}
