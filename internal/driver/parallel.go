package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/observ"
	"sable/internal/project"
	"sable/internal/source"
	"sable/internal/symbols"
)

// DirResult is one file's slot in a directory run. Exactly one of two
// shapes: a fresh analysis (Builder/Program set, Cached nil) or a disk
// cache hit (Cached set, Bag empty). Load failures leave both empty
// with the I/O diagnostic in Bag and the raw error in LoadErr.
type DirResult struct {
	Path    string
	FileID  source.FileID
	ASTFile ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
	Program *symbols.Program
	Timing  observ.Report
	Cached  *DiskPayload
	LoadErr error
}

// HasErrors reports whether the slot carries any error diagnostic,
// cached or fresh.
func (r *DirResult) HasErrors() bool {
	if r.Cached != nil {
		return r.Cached.HasErrors()
	}
	return r.Bag != nil && r.Bag.HasErrors()
}

// AnalyzeDir analyzes every .sbl file under dir in parallel. Results
// come back in sorted path order regardless of scheduling. jobs <= 0
// means GOMAXPROCS. The disk cache serves files whose content hash was
// seen by an earlier full run; opts.NoCache bypasses it.
func AnalyzeDir(ctx context.Context, dir string, opts AnalyzeOptions, jobs int) (*source.FileSet, []DirResult, error) {
	opts = opts.withDefaults()

	files, err := project.SourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially; FileSet is not safe for concurrent Add.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	// The cached payload assumes a full analysis; partial stages always
	// run fresh.
	var cache *DiskCache
	if !opts.NoCache && (opts.Stage == AnalyzeStageCheck || opts.Stage == AnalyzeStageAll) {
		if c, err := OpenDiskCache("sable"); err == nil {
			cache = c
		}
	}

	notify := func(ev FileEvent) {
		if opts.FileObserver != nil {
			opts.FileObserver(ev)
		}
	}

	// Per-file options: phase and file observers stay with the
	// directory run, everything else passes through.
	fileOpts := opts
	fileOpts.PhaseObserver = nil
	fileOpts.FileObserver = nil

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slot indexes are unique per goroutine; no mutex needed.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	total := len(files)
	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				notify(FileEvent{Path: path, Index: i, Total: total, Status: PhaseStart})
				started := time.Now()

				bag := diag.NewBag(opts.MaxDiagnostics)
				if loadErr, failed := loadErrors[path]; failed {
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = DirResult{Path: path, Bag: bag, LoadErr: loadErr}
					notify(FileEvent{Path: path, Index: i, Total: total,
						Status: PhaseEnd, Err: loadErr, Elapsed: time.Since(started)})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)

				if cache != nil {
					var payload DiskPayload
					if hit, _ := cache.Get(file.Hash, &payload); hit {
						// The empty bag keeps the slot shape uniform.
						results[i] = DirResult{Path: path, FileID: fileID, Bag: bag, Cached: &payload}
						notify(FileEvent{Path: path, Index: i, Total: total,
							Status: PhaseEnd, Elapsed: time.Since(started), FromCache: true})
						return nil
					}
				}

				res, err := analyzeLoaded(fileSet, file, fileOpts)
				if err != nil {
					notify(FileEvent{Path: path, Index: i, Total: total,
						Status: PhaseEnd, Err: err, Elapsed: time.Since(started)})
					return err
				}
				results[i] = DirResult{
					Path:    path,
					FileID:  fileID,
					ASTFile: res.FileID,
					Builder: res.Builder,
					Bag:     res.Bag,
					Program: res.Program,
					Timing:  res.Timing,
				}
				if cache != nil {
					// Best effort; a failed write just means a future miss.
					_ = cache.Put(file.Hash, payloadFromResult(res))
				}
				notify(FileEvent{Path: path, Index: i, Total: total,
					Status: PhaseEnd, Elapsed: time.Since(started)})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
