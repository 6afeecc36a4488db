// Package token defines lexical token kinds and trivia for Sable source.
// Invariants:
//   - Token.Text carries the original spelling for identifiers, literals,
//     and keywords (keywords match case-insensitively; the raw spelling
//     survives for later type resolution).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments never appear in the main token stream; they ride along as
//     leading Trivia on the next token.
package token
