package ast

import (
	"sable/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder owns the arenas for one or more parsed files plus the
// interner all names and literal spellings go through.
type Builder struct {
	Files    *Files
	Items    *Items
	Stmts    *Stmts
	Exprs    *Exprs
	Interner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 6
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:    NewFiles(hints.Files),
		Items:    NewItems(hints.Items),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
		Interner: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Intern is a shorthand for the builder's interner.
func (b *Builder) Intern(s string) source.StringID {
	return b.Interner.Intern(s)
}

// Name resolves an interned name back to its text.
func (b *Builder) Name(id source.StringID) string {
	return b.Interner.MustLookup(id)
}
