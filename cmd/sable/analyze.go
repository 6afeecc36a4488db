package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sable/internal/buildpipeline"
	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/driver"
	"sable/internal/project"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.sbl|directory>",
	Short: "Analyze a sable source file or directory",
	Long:  `Analyze runs the pipeline over a sable source file or all *.sbl files within a directory and reports lexical, syntax and semantic diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("stage", "all", "pipeline stage to stop after (tokenize|parse|check|all)")
	analyzeCmd.Flags().Bool("json", false, "emit output as JSON")
	analyzeCmd.Flags().Bool("summary", false, "print the collected program summary instead of raw diagnostics")
	analyzeCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	analyzeCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	analyzeCmd.Flags().String("entry", "", "entry function the program must define (default from sable.toml, else main)")
	analyzeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	analyzeCmd.Flags().String("ui", "off", "interactive progress for directory runs (auto|on|off)")
	analyzeCmd.Flags().Bool("no-cache", false, "bypass the analysis disk cache")
	analyzeCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	analyzeCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	stageStr, err := cmd.Flags().GetString("stage")
	if err != nil {
		return fmt.Errorf("failed to get stage flag: %w", err)
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	summaryOut, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	entryName, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	stage, err := driver.ParseAnalyzeStage(stageStr)
	if err != nil {
		return err
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	// Manifest settings fill in what flags left unset.
	manifestStart := filePath
	if !st.IsDir() {
		manifestStart = filepath.Dir(filePath)
	}
	manifest, found, err := project.Discover(manifestStart)
	if err != nil {
		return fmt.Errorf("failed to read project manifest: %w", err)
	}
	if found {
		if entryName == "" {
			entryName = manifest.Config.Analyze.Entry
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.Config.Analyze.MaxErrors > 0 {
			maxDiagnostics = manifest.Config.Analyze.MaxErrors
		}
	}

	opts := driver.AnalyzeOptions{
		Stage:            stage,
		MaxDiagnostics:   maxDiagnostics,
		EntryName:        entryName,
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: warningsAsErrors,
		EnableTimings:    showTimings,
		NoCache:          noCache,
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		PathMode:  pathMode,
		ShowNotes: withNotes,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}

	runFile := func() (int, error) {
		result, err := driver.AnalyzeWithOptions(filePath, opts)
		if err != nil {
			return 0, fmt.Errorf("analysis failed: %w", err)
		}

		exit := 0
		if result.Bag.HasErrors() {
			exit = 1
		}

		switch {
		case summaryOut && jsonOut:
			if err := diagfmt.SummaryJSON(os.Stdout, result.Program, result.Bag, result.FileSet); err != nil {
				return 0, fmt.Errorf("failed to format summary: %w", err)
			}
		case summaryOut:
			diagfmt.Summary(os.Stdout, result.Program, result.Bag, result.FileSet)
		case jsonOut:
			if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
				return 0, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		default:
			diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, prettyOpts)
		}

		return exit, nil
	}

	runDir := func() (int, error) {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return 0, fmt.Errorf("failed to get jobs flag: %w", err)
		}

		uiFlag, err := cmd.Flags().GetString("ui")
		if err != nil {
			return 0, fmt.Errorf("failed to get ui flag: %w", err)
		}
		liveUI, err := resolveUIMode(uiFlag)
		if err != nil {
			return 0, err
		}

		dirOpts := opts
		if summaryOut {
			// Cached slots replay diagnostics only; the summary needs
			// the checked program.
			dirOpts.NoCache = true
		}

		files, err := project.SourceFiles(filePath)
		if err != nil {
			return 0, fmt.Errorf("failed to list source files: %w", err)
		}

		req := &buildpipeline.AnalyzeRequest{
			Dir:     filePath,
			Files:   files,
			Options: dirOpts,
			Jobs:    jobs,
		}

		// The progress view and machine output fight over stdout.
		useTUI := liveUI && !jsonOut && !summaryOut
		var res buildpipeline.AnalyzeResult
		if useTUI {
			res, err = runAnalyzeWithUI(cmd.Context(), "analyze "+filePath, files, req)
		} else {
			res, err = buildpipeline.Analyze(cmd.Context(), req)
		}
		if err != nil {
			return 0, fmt.Errorf("analysis failed: %w", err)
		}

		exit := 0
		if res.HasErrors() {
			exit = 1
		}

		fs := res.FileSet
		displayMode := "auto"
		if fullPath {
			displayMode = "absolute"
		}

		switch {
		case summaryOut && jsonOut:
			output := make(map[string]diagfmt.ProgramSummary, len(res.Results))
			for _, r := range res.Results {
				output[dirDisplayPath(fs, r, displayMode)] = diagfmt.BuildSummary(r.Program, r.Bag, fs)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode summary output: %w", err)
			}
		case summaryOut:
			for idx, r := range res.Results {
				if idx > 0 {
					fmt.Fprintln(os.Stdout)
				}
				fmt.Fprintf(os.Stdout, "== %s ==\n", dirDisplayPath(fs, r, displayMode))
				diagfmt.Summary(os.Stdout, r.Program, r.Bag, fs)
			}
		case jsonOut:
			output := make(map[string]diagfmt.DiagnosticsOutput, len(res.Results))
			for _, r := range res.Results {
				displayPath := dirDisplayPath(fs, r, displayMode)
				if r.Cached != nil {
					output[displayPath] = cachedDiagnosticsOutput(r.Cached, displayPath)
					continue
				}
				output[displayPath] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		default:
			for idx, r := range res.Results {
				if idx > 0 {
					fmt.Fprintln(os.Stdout)
				}
				displayPath := dirDisplayPath(fs, r, displayMode)
				if r.Cached != nil {
					fmt.Fprintf(os.Stdout, "== %s (cached) ==\n", displayPath)
					printCachedDiagnostics(os.Stdout, r.Cached, displayPath)
					continue
				}
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath)
				diagfmt.Pretty(os.Stdout, r.Bag, fs, prettyOpts)
			}
		}

		if showTimings {
			printStageTimings(os.Stderr, res.Timings)
		}

		return exit, nil
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}

	var (
		exitCode  int
		resultErr error
	)
	if !st.IsDir() {
		exitCode, resultErr = runFile()
	} else {
		exitCode, resultErr = runDir()
	}

	cleanup()

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// printCachedDiagnostics replays cached rows in the pretty header
// format. Cache hits skip loading file content, so there is no source
// context to show.
func printCachedDiagnostics(w io.Writer, payload *driver.DiskPayload, displayPath string) {
	for _, d := range payload.Diagnostics {
		fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n",
			displayPath, d.Line, d.Col,
			diag.Severity(d.Severity).String(), diag.Code(d.Code).ID(), d.Message)
	}
}

// cachedDiagnosticsOutput shapes cached rows like a fresh JSON
// document. Byte offsets are not cached and stay zero.
func cachedDiagnosticsOutput(payload *driver.DiskPayload, displayPath string) diagfmt.DiagnosticsOutput {
	rows := make([]diagfmt.DiagnosticJSON, 0, len(payload.Diagnostics))
	for _, d := range payload.Diagnostics {
		rows = append(rows, diagfmt.DiagnosticJSON{
			Severity: diag.Severity(d.Severity).String(),
			Code:     diag.Code(d.Code).ID(),
			Message:  d.Message,
			Location: diagfmt.LocationJSON{
				File:      displayPath,
				StartLine: d.Line,
				StartCol:  d.Col,
				EndLine:   d.Line,
				EndCol:    d.Col,
			},
		})
	}
	return diagfmt.DiagnosticsOutput{Diagnostics: rows, Count: len(rows)}
}
