package symbols

import (
	"sable/internal/source"
)

// Program is the root aggregate the analyzer produces: globals and
// functions in declaration order, plus name indexes for the duplicate
// checks and identifier lookup. Diagnostics travel separately through
// the diag package.
type Program struct {
	Globals   []*Variable
	Functions []*Function
	Strings   *source.Interner

	globalIndex map[source.StringID]*Variable
	fnIndex     map[source.StringID]*Function
}

// NewProgram builds an empty aggregate. If strings is nil a fresh
// interner is allocated.
func NewProgram(strings *source.Interner) *Program {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Program{
		Strings:     strings,
		globalIndex: make(map[source.StringID]*Variable),
		fnIndex:     make(map[source.StringID]*Function),
	}
}

// AddGlobal inserts a global variable; first declaration wins.
func (p *Program) AddGlobal(v *Variable) bool {
	if _, exists := p.globalIndex[v.Name]; exists {
		return false
	}
	p.Globals = append(p.Globals, v)
	p.globalIndex[v.Name] = v
	return true
}

// Global finds a global variable by name.
func (p *Program) Global(name source.StringID) (*Variable, bool) {
	v, ok := p.globalIndex[name]
	return v, ok
}

// AddFunction registers a fully walked function; first declaration
// wins.
func (p *Program) AddFunction(f *Function) bool {
	if _, exists := p.fnIndex[f.Name]; exists {
		return false
	}
	p.Functions = append(p.Functions, f)
	p.fnIndex[f.Name] = f
	return true
}

// Function finds a registered function by name.
func (p *Program) Function(name source.StringID) (*Function, bool) {
	f, ok := p.fnIndex[name]
	return f, ok
}

// HasFunction reports whether name is a registered function.
func (p *Program) HasFunction(name source.StringID) bool {
	_, ok := p.fnIndex[name]
	return ok
}

// LookupVariable resolves an identifier: the current function's
// parameters, then its locals, then globals. fn may be nil at top
// level; the first two steps are skipped.
func (p *Program) LookupVariable(fn *Function, name source.StringID) (*Variable, bool) {
	if fn != nil {
		if v, ok := fn.LookupOwn(name); ok {
			return v, ok
		}
	}
	v, ok := p.globalIndex[name]
	return v, ok
}

// Name resolves an interned name back to its text.
func (p *Program) Name(id source.StringID) string {
	return p.Strings.MustLookup(id)
}
