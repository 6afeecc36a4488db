package token

import "strings"

var keywords = map[string]Kind{
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"return": KwReturn,
	"main":   KwMain,
	"int":    KwInt,
	"float":  KwFloat,
	"double": KwDouble,
	"string": KwString,
	"void":   KwVoid,
}

// LookupKeyword returns the keyword kind for ident. Keywords are matched
// case-insensitively: IF, If, and if all lex as KwIf. The caller keeps the
// original spelling in Token.Text.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	if ok {
		return k, true
	}
	k, ok = keywords[strings.ToLower(ident)]
	return k, ok
}
