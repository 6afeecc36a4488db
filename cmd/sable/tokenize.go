package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/diagfmt"
	"sable/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sbl",
	Short: "Dump the token stream of a source file",
	Long:  `Tokenize runs only the lexer and prints every token it produces, along with any diagnostics the lexer reported.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, maxDiagnostics, err := dumpFlags(cmd)
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := stderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	if format == "json" {
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	}
	return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
}
