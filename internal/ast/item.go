package ast

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/source"
)

type ItemKind uint8

const (
	ItemGlobal ItemKind = iota
	ItemFn
	ItemStmt
)

func (k ItemKind) String() string {
	switch k {
	case ItemGlobal:
		return "global"
	case ItemFn:
		return "fn"
	case ItemStmt:
		return "stmt"
	default:
		return "unknown"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// TypeRef is a type annotation as written: the interned original
// spelling plus its span. Resolution to a primitive type happens in
// the analyzer, never here.
type TypeRef struct {
	Name source.StringID
	Span source.Span
}

// GlobalItem is a file-scope variable declaration.
type GlobalItem struct {
	Type     TypeRef
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID when uninitialized
	Span     source.Span
}

// FnItem is a function declaration. EntryWord marks a name spelled with
// the reserved entry keyword rather than a plain identifier.
type FnItem struct {
	Name       source.StringID
	NameSpan   source.Span
	EntryWord  bool
	ReturnType TypeRef
	ParamStart ParamID
	ParamCount uint32
	Body       StmtID
	Span       source.Span
}

// Param is one function parameter. Parameters of a function occupy a
// contiguous run in the params arena.
type Param struct {
	Type     TypeRef
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
}

// StmtItem wraps a statement that appears at file scope.
type StmtItem struct {
	Stmt StmtID
}

type Items struct {
	Arena     *Arena[Item]
	Globals   *Arena[GlobalItem]
	Fns       *Arena[FnItem]
	Params    *Arena[Param]
	StmtItems *Arena[StmtItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Globals:   NewArena[GlobalItem](capHint),
		Fns:       NewArena[FnItem](capHint),
		Params:    NewArena[Param](capHint),
		StmtItems: NewArena[StmtItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NewGlobal allocates a file-scope variable declaration item.
func (i *Items) NewGlobal(typ TypeRef, name source.StringID, nameSpan source.Span, init ExprID, span source.Span) ItemID {
	payload := i.Globals.Allocate(GlobalItem{
		Type:     typ,
		Name:     name,
		NameSpan: nameSpan,
		Init:     init,
		Span:     span,
	})
	return i.new(ItemGlobal, span, PayloadID(payload))
}

// Global returns the payload of an ItemGlobal.
func (i *Items) Global(id ItemID) (*GlobalItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemGlobal || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Globals.Get(uint32(item.Payload)), true
}

// NewFn allocates a function declaration item. Params are copied into a
// contiguous run of the params arena.
func (i *Items) NewFn(
	name source.StringID,
	nameSpan source.Span,
	entryWord bool,
	returnType TypeRef,
	params []Param,
	body StmtID,
	span source.Span,
) ItemID {
	paramStart, paramCount := i.allocateParams(params)
	payload := i.Fns.Allocate(FnItem{
		Name:       name,
		NameSpan:   nameSpan,
		EntryWord:  entryWord,
		ReturnType: returnType,
		ParamStart: paramStart,
		ParamCount: paramCount,
		Body:       body,
		Span:       span,
	})
	return i.new(ItemFn, span, PayloadID(payload))
}

// Fn returns the payload of an ItemFn.
func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn || !item.Payload.IsValid() {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// FnParams returns a copy of the parameter run of fn.
func (i *Items) FnParams(fn *FnItem) []Param {
	if fn == nil || fn.ParamCount == 0 || !fn.ParamStart.IsValid() {
		return nil
	}
	result := make([]Param, 0, fn.ParamCount)
	base := uint32(fn.ParamStart)
	for offset := uint32(0); offset < fn.ParamCount; offset++ {
		p := i.Params.Get(base + offset)
		if p == nil {
			continue
		}
		result = append(result, *p)
	}
	return result
}

// NewStmtItem wraps a top-level statement as an item.
func (i *Items) NewStmtItem(stmt StmtID, span source.Span) ItemID {
	payload := i.StmtItems.Allocate(StmtItem{Stmt: stmt})
	return i.new(ItemStmt, span, PayloadID(payload))
}

// Stmt returns the wrapped statement of an ItemStmt.
func (i *Items) Stmt(id ItemID) (StmtID, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStmt || !item.Payload.IsValid() {
		return NoStmtID, false
	}
	payload := i.StmtItems.Get(uint32(item.Payload))
	if payload == nil {
		return NoStmtID, false
	}
	return payload.Stmt, true
}

func (i *Items) allocateParams(params []Param) (ParamID, uint32) {
	if len(params) == 0 {
		return NoParamID, 0
	}
	var start ParamID
	for idx, p := range params {
		id := ParamID(i.Params.Allocate(p))
		if idx == 0 {
			start = id
		}
	}
	count, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("param count overflow: %w", err))
	}
	return start, count
}
