package driver

import (
	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/parser"
	"sable/internal/source"
)

// ParseResult carries the syntax tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse lexes and parses one file without running the analyzer.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Builder: ast.NewBuilder(ast.Hints{}),
		Bag:     diag.NewBag(maxDiagnostics),
	}

	// One reporter feeds both phases so lexical and syntax errors land
	// in a single bag in emission order.
	reporter := &diag.BagReporter{Bag: res.Bag}
	lx := lexer.New(res.File, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(fs, lx, res.Builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	res.FileID = parsed.File
	return res, nil
}
