package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sable/internal/source"
	"sable/internal/token"
)

// TokenOutput is one token in the JSON token dump.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func leadingNames(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	names := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		names = append(names, trivia.Kind.String())
	}
	return names
}

// FormatTokensPretty writes one numbered line per token. Rendering
// stops after the EOF marker regardless of what follows it.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var line strings.Builder
	for i, tok := range tokenStream(tokens) {
		line.Reset()
		fmt.Fprintf(&line, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&line, " %q", tok.Text)
		}

		startPos, endPos := fs.Resolve(tok.Span)
		fmt.Fprintf(&line, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		if leading := leadingNames(tok); len(leading) > 0 {
			fmt.Fprintf(&line, " (leading: %s)", strings.Join(leading, ", "))
		}

		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array,
// stopping after the EOF marker.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokenStream(tokens) {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leadingNames(tok),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// tokenStream trims anything past the EOF marker so both renderers
// agree on where the stream ends.
func tokenStream(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind.IsEOF() {
			return tokens[:i+1]
		}
	}
	return tokens
}
