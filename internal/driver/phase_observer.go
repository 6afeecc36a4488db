package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary inside one file's analysis.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during AnalyzeWithOptions.
type PhaseObserver func(PhaseEvent)

// FileEvent describes one file's progress through a directory run.
// Index counts from zero in the sorted file order; Total is the run size.
type FileEvent struct {
	Path      string
	Index     int
	Total     int
	Status    PhaseStatus
	Err       error
	Elapsed   time.Duration
	FromCache bool
}

// FileObserver receives per-file events emitted during AnalyzeDir.
type FileObserver func(FileEvent)
