// Package symbols holds the analyzer's output model: variables,
// functions with their recorded control structures, and the Program
// aggregate. The namespace is flat: one global table, one combined
// parameter+local table per function, no shadowing.
package symbols

import (
	"sable/internal/source"
	"sable/internal/types"
)

// Variable is one declared name. Value carries the initial literal in
// string form and stays unset when the declaration had no initializer,
// the initializer looked compound, or the literal failed to parse.
type Variable struct {
	Name     source.StringID
	Type     types.Primitive
	Global   bool
	Line     uint32
	Span     source.Span
	Value    string
	HasValue bool
}

func (v *Variable) SetValue(s string) {
	v.Value = s
	v.HasValue = true
}

// ClassTag labels a function after its body walk.
type ClassTag uint8

const (
	ClassNormal ClassTag = iota
	ClassEntry
	ClassRecursive
)

func (c ClassTag) String() string {
	switch c {
	case ClassEntry:
		return "entry"
	case ClassRecursive:
		return "recursive"
	case ClassNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// ControlKind enumerates the recorded control-structure shapes.
type ControlKind uint8

const (
	CtrlIf ControlKind = iota
	CtrlIfElse
	CtrlWhile
	CtrlFor
)

func (k ControlKind) String() string {
	switch k {
	case CtrlIf:
		return "if"
	case CtrlIfElse:
		return "if-else"
	case CtrlWhile:
		return "while"
	case CtrlFor:
		return "for"
	default:
		return "unknown"
	}
}

// ControlStructure is an append-only record of one conditional or loop
// inside a function body. Condition holds the raw source text of the
// condition (for a for loop: the loop test only, empty when absent).
// Depth counts enclosing recorded structures, 0 for an outermost one.
type ControlStructure struct {
	Kind      ControlKind
	StartLine uint32
	EndLine   uint32
	Depth     uint32
	Condition string
}

// Function is one declared function. Params and Locals keep source
// order; the two share a single namespace for duplicate checks.
type Function struct {
	Name     source.StringID
	Return   types.Primitive
	Line     uint32
	Span     source.Span
	Params   []*Variable
	Locals   []*Variable
	Controls []ControlStructure
	Class    ClassTag

	ownIndex map[source.StringID]*Variable
}

func NewFunction(name source.StringID, ret types.Primitive, line uint32, span source.Span) *Function {
	return &Function{
		Name:     name,
		Return:   ret,
		Line:     line,
		Span:     span,
		ownIndex: make(map[source.StringID]*Variable),
	}
}

// LookupOwn finds a parameter or local by name.
func (f *Function) LookupOwn(name source.StringID) (*Variable, bool) {
	v, ok := f.ownIndex[name]
	return v, ok
}

// AddParam inserts a parameter. It fails when the name already exists
// in the function's parameter+local namespace; the caller keeps the
// first declaration and discards this one.
func (f *Function) AddParam(v *Variable) bool {
	if _, exists := f.ownIndex[v.Name]; exists {
		return false
	}
	f.Params = append(f.Params, v)
	f.ownIndex[v.Name] = v
	return true
}

// AddLocal inserts a local, with the same first-wins collision rule as
// AddParam.
func (f *Function) AddLocal(v *Variable) bool {
	if _, exists := f.ownIndex[v.Name]; exists {
		return false
	}
	f.Locals = append(f.Locals, v)
	f.ownIndex[v.Name] = v
	return true
}

func (f *Function) AddControl(cs ControlStructure) {
	f.Controls = append(f.Controls, cs)
}

// Arity is the declared parameter count.
func (f *Function) Arity() int {
	return len(f.Params)
}
