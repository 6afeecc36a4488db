package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"sable/internal/driver"
	"sable/internal/observ"
	"sable/internal/source"
)

// AnalyzeRequest configures a directory analysis run with progress.
type AnalyzeRequest struct {
	Dir string
	// Files is the sorted file list shown as queued before the run
	// starts. The driver discovers the same list itself.
	Files    []string
	Options  driver.AnalyzeOptions
	Jobs     int
	Progress ProgressSink
}

// AnalyzeResult carries the per-file slots plus run timings.
type AnalyzeResult struct {
	FileSet *source.FileSet
	Results []driver.DirResult
	Timings Timings
}

// HasErrors reports whether any file in the run carries errors.
func (r *AnalyzeResult) HasErrors() bool {
	for i := range r.Results {
		if r.Results[i].HasErrors() {
			return true
		}
	}
	return false
}

// Analyze runs the driver over a directory, translating its per-file
// events for the configured sink.
func Analyze(ctx context.Context, req *AnalyzeRequest) (AnalyzeResult, error) {
	var result AnalyzeResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing analyze request")
	}
	if req.Dir == "" {
		return result, fmt.Errorf("missing target directory")
	}

	stage := stageFor(req.Options.Stage)
	if req.Progress != nil {
		for i, file := range req.Files {
			req.Progress.OnEvent(Event{
				Path: file, Index: i, Total: len(req.Files),
				Stage: stage, Status: StatusQueued,
			})
		}
	}

	opts := req.Options
	opts.FileObserver = forwardFileEvents(req.Progress, stage)

	started := time.Now()
	fs, results, err := driver.AnalyzeDir(ctx, req.Dir, opts, req.Jobs)
	result.FileSet = fs
	result.Results = results
	result.Timings.Set(stage, time.Since(started))
	return result, err
}

// stageFor maps the driver's terminal stage onto the event stage label.
func stageFor(s driver.AnalyzeStage) Stage {
	switch s {
	case driver.AnalyzeStageTokenize:
		return StageTokenize
	case driver.AnalyzeStageParse:
		return StageParse
	default:
		return StageCheck
	}
}

func forwardFileEvents(sink ProgressSink, stage Stage) driver.FileObserver {
	if sink == nil {
		return nil
	}
	return func(ev driver.FileEvent) {
		out := Event{
			Path:    ev.Path,
			Index:   ev.Index,
			Total:   ev.Total,
			Stage:   stage,
			Elapsed: ev.Elapsed,
		}
		switch {
		case ev.Status == driver.PhaseStart:
			out.Status = StatusWorking
		case ev.Err != nil:
			out.Status = StatusError
			out.Err = ev.Err
		case ev.FromCache:
			out.Status = StatusCached
		default:
			out.Status = StatusDone
		}
		sink.OnEvent(out)
	}
}

// TimingsFromReport folds a single-file phase report into stage
// timings: loading and parsing fold together, checking stands alone.
func TimingsFromReport(report observ.Report) Timings {
	var t Timings
	if len(report.Phases) == 0 {
		return t
	}
	parse := sumPhases(report, "load_file", "tokenize", "parse")
	check := sumPhases(report, "check")
	t.Set(StageParse, parse)
	t.Set(StageCheck, check)
	return t
}

func sumPhases(report observ.Report, names ...string) time.Duration {
	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		nameSet[name] = struct{}{}
	}
	var total time.Duration
	for _, phase := range report.Phases {
		if _, ok := nameSet[phase.Name]; !ok {
			continue
		}
		total += durationFromMillis(phase.DurationMS)
	}
	return total
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
