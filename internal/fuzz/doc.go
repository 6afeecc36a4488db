// Package fuzztests holds fuzz targets for the lexer and parser.
//
// The targets never assert on diagnostics; they only require that
// arbitrary input cannot panic, hang, or read out of bounds. Seeds
// cover the language surface plus inputs that once broke error
// recovery.
package fuzztests
