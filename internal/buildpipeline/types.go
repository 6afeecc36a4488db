// Package buildpipeline wraps driver runs with progress reporting:
// stages, per-file lifecycle events, and stage timings for the CLI and
// the terminal UI.
package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad is the file loading stage.
	StageLoad Stage = "load"
	// StageTokenize is the lexing stage.
	StageTokenize Stage = "tokenize"
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageCheck is the semantic analysis stage.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being analyzed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
	// StatusCached indicates the file was served from the disk cache.
	StatusCached Status = "cached"
)

// Event reports progress for one file of a run. Index counts from zero
// in sorted file order; Total is the run size.
type Event struct {
	Path    string
	Index   int
	Total   int
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel. Sends block when the
// channel is full, so consumers that render slowly should buffer.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch != nil {
		s.Ch <- evt
	}
}

// Timings holds stage durations for one run. The zero value is ready
// to use; reads from an unset Timings report nothing recorded.
type Timings struct {
	durs map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.durs == nil {
		t.durs = make(map[Stage]time.Duration, 4)
	}
	t.durs[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.durs[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.durs[stage]
}

// Sum adds up the durations recorded for the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.durs[stage]
	}
	return total
}
