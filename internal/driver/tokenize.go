package driver

import (
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/token"
)

// TokenizeResult carries the token stream of one file, EOF included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file to EOF, collecting every token and every
// lexical diagnostic.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	res := &TokenizeResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Bag:     diag.NewBag(maxDiagnostics),
	}

	lx := lexer.New(res.File, lexer.Options{Reporter: &diag.BagReporter{Bag: res.Bag}})
	for {
		tok := lx.Next()
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind.IsEOF() {
			return res, nil
		}
	}
}
