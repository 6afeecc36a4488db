package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"sable/internal/diagfmt"
	"sable/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.sbl|directory>",
	Short: "Parse a sable source file or directory and output AST",
	Long:  `Parse analyzes a sable source file or all *.sbl files in a directory and outputs their Abstract Syntax Trees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, maxDiagnostics, err := dumpFlags(cmd)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		var result *driver.ParseResult
		result, err = driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := stderrDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}

		switch format {
		case "pretty":
			return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.FileID, result.FileSet)
		case "json":
			return diagfmt.FormatASTJSON(os.Stdout, result.Builder, result.FileID)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	opts := driver.AnalyzeOptions{
		Stage:          driver.AnalyzeStageParse,
		MaxDiagnostics: maxDiagnostics,
	}
	fs, results, err := driver.AnalyzeDir(cmd.Context(), filePath, opts, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, r := range results {
		if err := stderrDiagnostics(cmd, r.Bag, fs); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		for idx, r := range results {
			if !quiet {
				_, printErr := fmt.Fprintf(os.Stdout, "== %s ==\n", dirDisplayPath(fs, r, "auto"))
				if printErr != nil {
					return printErr
				}
			}

			if r.Builder != nil {
				if err := diagfmt.FormatASTPretty(os.Stdout, r.Builder, r.ASTFile, fs); err != nil {
					return err
				}
			}

			if !quiet && idx < len(results)-1 {
				_, printErr := fmt.Fprintln(os.Stdout)
				if printErr != nil {
					return printErr
				}
			}
		}
	case "json":
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			displayPath := dirDisplayPath(fs, r, "auto")
			if r.Builder == nil {
				output[displayPath] = nil
				continue
			}

			node, err := diagfmt.BuildASTJSON(r.Builder, r.ASTFile)
			if err != nil {
				return err
			}
			// Ensure distinct pointer per iteration
			nodeCopy := node
			output[displayPath] = &nodeCopy
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
