// Package driver assembles the pipeline phases into runnable operations:
// tokenize, parse, and full analysis of single files or directories. It
// owns phase timing, the disk cache for directory runs, and the mapping
// of load failures onto I/O diagnostics.
package driver

import (
	"fmt"
	"time"

	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/observ"
	"sable/internal/parser"
	"sable/internal/sema"
	"sable/internal/source"
	"sable/internal/symbols"
)

// AnalyzeStage names the point where an analysis run stops.
type AnalyzeStage string

const (
	AnalyzeStageTokenize AnalyzeStage = "tokenize"
	AnalyzeStageParse    AnalyzeStage = "parse"
	AnalyzeStageCheck    AnalyzeStage = "check"
	AnalyzeStageAll      AnalyzeStage = "all"
)

// ParseAnalyzeStage validates a stage name coming from a flag value.
func ParseAnalyzeStage(s string) (AnalyzeStage, error) {
	switch AnalyzeStage(s) {
	case AnalyzeStageTokenize, AnalyzeStageParse, AnalyzeStageCheck, AnalyzeStageAll:
		return AnalyzeStage(s), nil
	case "":
		return AnalyzeStageAll, nil
	}
	return "", fmt.Errorf("unknown stage %q (want tokenize, parse, check, or all)", s)
}

// AnalyzeOptions configure a run. The zero value analyzes fully with an
// unlimited diagnostic budget and the default entry name.
type AnalyzeOptions struct {
	Stage          AnalyzeStage
	MaxDiagnostics int
	// EntryName overrides the function name that marks the program
	// entry point. Empty means "main".
	EntryName        string
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// NoCache makes AnalyzeDir skip the disk cache entirely.
	NoCache bool
	// PhaseObserver sees phase boundaries of a single-file run.
	PhaseObserver PhaseObserver
	// FileObserver sees per-file progress during AnalyzeDir.
	FileObserver FileObserver
}

func (o AnalyzeOptions) withDefaults() AnalyzeOptions {
	if o.Stage == "" {
		o.Stage = AnalyzeStageAll
	}
	if o.MaxDiagnostics < 0 {
		o.MaxDiagnostics = 0
	}
	return o
}

// AnalyzeResult carries everything a run produced. Builder and Program
// stay nil for stages that stop before they exist.
type AnalyzeResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  ast.FileID
	Bag     *diag.Bag
	Builder *ast.Builder
	Program *symbols.Program
	Timing  observ.Report
}

// Analyze runs the full pipeline over one file.
func Analyze(path string, maxDiagnostics int) (*AnalyzeResult, error) {
	return AnalyzeWithOptions(path, AnalyzeOptions{MaxDiagnostics: maxDiagnostics})
}

// AnalyzeWithOptions loads path into a fresh FileSet and runs the
// pipeline up to the configured stage. I/O failures come back as errors;
// everything the language pipeline finds lands in the result's Bag.
func AnalyzeWithOptions(path string, opts AnalyzeOptions) (*AnalyzeResult, error) {
	opts = opts.withDefaults()
	run := newPhaseRun(opts)

	end := run.begin("load_file")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	end("")
	if err != nil {
		return nil, err
	}
	return analyzeLoadedRun(fs, fs.Get(fileID), opts, run)
}

// phaseRun couples the optional timer with the optional phase observer
// so every phase boundary reaches both through one begin call.
type phaseRun struct {
	timer    *observ.Timer
	observer PhaseObserver
}

func newPhaseRun(opts AnalyzeOptions) *phaseRun {
	r := &phaseRun{observer: opts.PhaseObserver}
	if opts.EnableTimings {
		r.timer = observ.NewTimer()
	}
	return r
}

func (r *phaseRun) begin(name string) func(note string) {
	if r.observer != nil {
		r.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	start := time.Now()
	var seal func(string)
	if r.timer != nil {
		seal = r.timer.Begin(name)
	}
	return func(note string) {
		if seal != nil {
			seal(note)
		}
		if r.observer != nil {
			r.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
		}
	}
}

// analyzeLoaded runs the pipeline over a file already registered in fs.
// AnalyzeDir shares one FileSet across files and calls this per slot;
// its files are preloaded, so their runs carry no load phase.
func analyzeLoaded(fs *source.FileSet, file *source.File, opts AnalyzeOptions) (*AnalyzeResult, error) {
	return analyzeLoadedRun(fs, file, opts, newPhaseRun(opts))
}

func analyzeLoadedRun(fs *source.FileSet, file *source.File, opts AnalyzeOptions, run *phaseRun) (*AnalyzeResult, error) {
	begin := run.begin

	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &AnalyzeResult{
		FileSet: fs,
		File:    file,
		FileID:  ast.NoFileID,
		Bag:     bag,
	}

	end := begin("tokenize")
	tokenCount := scanTokens(file, bag)
	end(fmt.Sprintf("tokens=%d diags=%d", tokenCount, bag.Len()))

	if opts.Stage != AnalyzeStageTokenize {
		end = begin("parse")
		builder, astFile, err := runParse(fs, file, bag)
		if err != nil {
			end("")
			return nil, err
		}
		res.Builder = builder
		res.FileID = astFile
		end(fmt.Sprintf("items=%d", len(builder.Files.Get(astFile).Items)))

		if opts.Stage == AnalyzeStageCheck || opts.Stage == AnalyzeStageAll {
			end = begin("check")
			program, err := runCheck(builder, astFile, fs, bag, opts.EntryName)
			if err != nil {
				end("")
				return nil, err
			}
			res.Program = program
			end(fmt.Sprintf("functions=%d globals=%d",
				len(program.Functions), len(program.Globals)))
		}
	}

	if opts.IgnoreWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity == diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) *diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
		bag.Sort()
	}

	if run.timer != nil {
		res.Timing = run.timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}

	return res, nil
}

// scanTokens drains the lexer once so lexical diagnostics are reported
// exactly here. Later phases run their own lexer without a reporter.
func scanTokens(file *source.File, bag *diag.Bag) int {
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	count := 0
	for {
		tok := lx.Next()
		if tok.Kind.IsEOF() {
			return count
		}
		count++
	}
}

func runParse(fs *source.FileSet, file *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID, error) {
	lx := lexer.New(file, lexer.Options{})
	arenas := ast.NewBuilder(ast.Hints{})

	maxErrors, err := safecast.Conv[uint](int(bag.Cap()))
	if err != nil {
		return nil, ast.NoFileID, fmt.Errorf("diagnostic budget overflow: %w", err)
	}
	result := parser.ParseFile(fs, lx, arenas, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return arenas, result.File, nil
}

func runCheck(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet, bag *diag.Bag, entryName string) (*symbols.Program, error) {
	res, err := sema.Check(builder, fileID, sema.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		FileSet:   fs,
		EntryName: entryName,
	})
	if err != nil {
		return nil, err
	}
	return res.Program, nil
}
