package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier. Ranges group codes by
// producing phase: 1xxx lexer, 2xxx parser, 3xxx semantic analysis,
// 4xxx I/O, 6xxx observability.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectType         Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynForBadHeader       Code = 2008
	SynUnexpectedTopLevel Code = 2009

	// Semantic
	SemaInfo               Code = 3000
	SemaDuplicateVariable  Code = 3001
	SemaDuplicateFunction  Code = 3002
	SemaUndeclaredVariable Code = 3003
	SemaUndefinedFunction  Code = 3004
	SemaArityMismatch      Code = 3005
	SemaInvalidInitializer Code = 3006
	SemaAssignUndeclared   Code = 3007
	SemaMissingEntry       Code = 3008

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectType:               "Expect type name",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectExpression:         "Expect expression",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynForBadHeader:             "Malformed for-loop header",
	SynUnexpectedTopLevel:       "Unexpected top-level token",
	SemaInfo:                    "Semantic information",
	SemaDuplicateVariable:       "Duplicate variable declaration",
	SemaDuplicateFunction:       "Duplicate function declaration",
	SemaUndeclaredVariable:      "Use of undeclared variable",
	SemaUndefinedFunction:       "Call to undefined function",
	SemaArityMismatch:           "Wrong number of call arguments",
	SemaInvalidInitializer:      "Invalid initializer value",
	SemaAssignUndeclared:        "Assignment to undeclared variable",
	SemaMissingEntry:            "No entry function",
	IOLoadFileError:             "I/O load file error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

// ID renders the code in its stable prefixed form, e.g. SEM3005.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Kind names the producing phase of the code's range, e.g. "semantic"
// for SEM3xxx.
func (c Code) Kind() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "lexical"
	case ic >= 2000 && ic < 3000:
		return "syntax"
	case ic >= 3000 && ic < 4000:
		return "semantic"
	case ic >= 4000 && ic < 5000:
		return "io"
	case ic >= 6000 && ic < 7000:
		return "observability"
	}
	return "unknown"
}

// Title returns the short human description registered for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
