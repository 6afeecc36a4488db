package ast

import "sable/internal/source"

// File is the root node of one parsed source file. Items appear in
// source order; top-level statements are wrapped as ItemStmt so the
// file keeps a single ordered item list.
type File struct {
	Span  source.Span
	Items []ItemID
}

// Files stores file roots. It exists for ID uniformity with the other
// node stores; a builder only ever allocates one.
type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
