// Package sema implements the semantic pass over one parsed file. It
// builds the symbols.Program aggregate (globals, functions with their
// parameters, locals and control structures), validates declarations,
// identifier uses and call arity, and classifies every function as
// entry, recursive or normal.
//
// The pass accumulates diagnostics through the configured Reporter and
// always walks the whole tree; nothing a user can write in source stops
// it early. The only hard failure is a type spelling the catalog does
// not know, which signals a parser/analyzer mismatch rather than a user
// error and aborts with a non-nil error.
package sema

import (
	"fmt"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/symbols"
	"sable/internal/types"
)

// DefaultEntryName is the reserved entry-function name.
const DefaultEntryName = "main"

// Options configure a semantic pass over a file.
type Options struct {
	// Reporter receives every diagnostic. Nil drops them.
	Reporter diag.Reporter
	// FileSet resolves spans to lines and slices condition text. Required.
	FileSet *source.FileSet
	// EntryName overrides the reserved entry-function name, compared
	// case-insensitively. Empty means DefaultEntryName.
	EntryName string
}

func (o Options) withDefaults() Options {
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	if o.EntryName == "" {
		o.EntryName = DefaultEntryName
	}
	return o
}

// Result carries the artefacts of a completed pass.
type Result struct {
	Program *symbols.Program
}

// Check walks every top-level item of the file in source order and
// returns the populated Program. Semantic problems become diagnostics
// on opts.Reporter, never errors; the returned error is non-nil only
// for contract violations with the front end (unknown type spelling,
// missing file), and then Program holds whatever was built before the
// abort.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) (Result, error) {
	opts = opts.withDefaults()
	program := symbols.NewProgram(builder.Interner)
	res := Result{Program: program}

	file := builder.Files.Get(fileID)
	if file == nil {
		return res, fmt.Errorf("sema: file node %d not found", fileID)
	}
	if opts.FileSet == nil {
		return res, fmt.Errorf("sema: options require a FileSet")
	}
	src := opts.FileSet.Get(file.Span.File)
	if src == nil {
		return res, fmt.Errorf("sema: source file %d not in file set", file.Span.File)
	}

	c := &checker{
		arenas:    builder,
		program:   program,
		fs:        opts.FileSet,
		src:       src,
		reporter:  opts.Reporter,
		entryName: opts.EntryName,
	}
	for _, itemID := range file.Items {
		if err := c.checkItem(itemID); err != nil {
			return res, err
		}
	}
	c.checkEntry(file.Span.File)
	return res, nil
}

// checker carries the pass-wide state. The active function travels as
// an explicit argument through the statement and expression walks, so
// "no current function" is simply fn == nil.
type checker struct {
	arenas    *ast.Builder
	program   *symbols.Program
	fs        *source.FileSet
	src       *source.File
	reporter  diag.Reporter
	entryName string
}

// checkEntry runs after the walk: some registered function must carry
// the entry tag. The diagnostic is program-level, so its span is empty
// and renders as line 0.
func (c *checker) checkEntry(file source.FileID) {
	for _, fn := range c.program.Functions {
		if fn.Class == symbols.ClassEntry {
			return
		}
	}
	c.errorf(diag.SemaMissingEntry, source.Span{File: file}, "no entry function")
}

func (c *checker) resolveType(ref ast.TypeRef) (types.Primitive, error) {
	typ, err := types.Resolve(c.name(ref.Name))
	if err != nil {
		return types.Invalid, fmt.Errorf("sema: %w", err)
	}
	return typ, nil
}

func (c *checker) name(id source.StringID) string {
	return c.arenas.Name(id)
}

func (c *checker) text(sp source.Span) string {
	return sp.Text(c.src)
}

func (c *checker) lineOf(sp source.Span) uint32 {
	start, _ := c.fs.Resolve(sp)
	return start.Line
}

func (c *checker) endLineOf(sp source.Span) uint32 {
	_, end := c.fs.Resolve(sp)
	return end.Line
}

func (c *checker) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(c.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}
