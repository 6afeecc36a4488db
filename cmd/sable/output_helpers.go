package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/driver"
	"sable/internal/source"
)

// dumpFlags reads the pair of flags the token and AST dump commands
// share.
func dumpFlags(cmd *cobra.Command) (format string, maxDiagnostics int, err error) {
	format, err = cmd.Flags().GetString("format")
	if err != nil {
		return "", 0, fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return "", 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return format, maxDiagnostics, nil
}

// stderrDiagnostics pretty-prints the bag to stderr so stdout stays
// parseable for the token and AST dumps.
func stderrDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return nil
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:   colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
		Context: 2,
	})
	return nil
}

// dirDisplayPath picks the path shown for one directory slot. Loaded
// files render through the file set so path mode applies; slots that
// never loaded only have the walk path.
func dirDisplayPath(fs *source.FileSet, r driver.DirResult, mode string) string {
	if r.LoadErr != nil || fs == nil {
		return r.Path
	}
	file := fs.Get(r.FileID)
	if file == nil {
		return r.Path
	}
	return file.FormatPath(mode, fs.BaseDir())
}
