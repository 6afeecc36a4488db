package ast

import (
	"sable/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtExpr
	StmtEmpty
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "block"
	case StmtVarDecl:
		return "var-decl"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtFor:
		return "for"
	case StmtReturn:
		return "return"
	case StmtExpr:
		return "expr"
	case StmtEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtBlockData struct {
	Stmts []StmtID
}

// StmtVarDeclData is a local (or top-level) variable declaration.
type StmtVarDeclData struct {
	Type     TypeRef
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID when uninitialized
}

// StmtIfData: Else is NoStmtID when the else branch is absent.
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData: all three header slots are optional. Init is a wrapped
// var-decl or expression statement.
type StmtForData struct {
	Init StmtID // NoStmtID when absent
	Cond ExprID // NoExprID when absent
	Post ExprID // NoExprID when absent
	Body StmtID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare return
}

type StmtExprData struct {
	Expr ExprID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[StmtBlockData]
	VarDecls *Arena[StmtVarDeclData]
	Ifs      *Arena[StmtIfData]
	Whiles   *Arena[StmtWhileData]
	Fors     *Arena[StmtForData]
	Returns  *Arena[StmtReturnData]
	Exprs    *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[StmtBlockData](capHint),
		VarDecls: NewArena[StmtVarDeclData](capHint),
		Ifs:      NewArena[StmtIfData](capHint),
		Whiles:   NewArena[StmtWhileData](capHint),
		Fors:     NewArena[StmtForData](capHint),
		Returns:  NewArena[StmtReturnData](capHint),
		Exprs:    NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// newStmt stores payload data and the node that points at it.
func newStmt[T any](s *Stmts, payloads *Arena[T], kind StmtKind, span source.Span, data T) StmtID {
	payload := payloads.Allocate(data)
	return s.new(kind, span, PayloadID(payload))
}

// stmtPayload resolves id's payload when the node has the wanted kind.
func stmtPayload[T any](s *Stmts, payloads *Arena[T], id StmtID, kind StmtKind) (*T, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind || !stmt.Payload.IsValid() {
		return nil, false
	}
	return payloads.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return newStmt(s, s.Blocks, StmtBlock, span, StmtBlockData{Stmts: stmts})
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	return stmtPayload(s, s.Blocks, id, StmtBlock)
}

func (s *Stmts) NewVarDecl(span source.Span, typ TypeRef, name source.StringID, nameSpan source.Span, init ExprID) StmtID {
	return newStmt(s, s.VarDecls, StmtVarDecl, span, StmtVarDeclData{
		Type:     typ,
		Name:     name,
		NameSpan: nameSpan,
		Init:     init,
	})
}

func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	return stmtPayload(s, s.VarDecls, id, StmtVarDecl)
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return newStmt(s, s.Ifs, StmtIf, span, StmtIfData{Cond: cond, Then: then, Else: els})
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	return stmtPayload(s, s.Ifs, id, StmtIf)
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return newStmt(s, s.Whiles, StmtWhile, span, StmtWhileData{Cond: cond, Body: body})
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	return stmtPayload(s, s.Whiles, id, StmtWhile)
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	return newStmt(s, s.Fors, StmtFor, span, StmtForData{Init: init, Cond: cond, Post: post, Body: body})
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	return stmtPayload(s, s.Fors, id, StmtFor)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return newStmt(s, s.Returns, StmtReturn, span, StmtReturnData{Value: value})
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	return stmtPayload(s, s.Returns, id, StmtReturn)
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	return newStmt(s, s.Exprs, StmtExpr, span, StmtExprData{Expr: expr})
}

func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	return stmtPayload(s, s.Exprs, id, StmtExpr)
}

// NewEmpty records a lone ';'. It carries no payload.
func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
