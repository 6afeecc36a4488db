package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records one timed stage of a pipeline run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects per-stage durations for one run. It is not safe for
// concurrent use; parallel analyses each carry their own.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns the closer that seals its duration.
// The note lands next to the phase in the report; empty is fine.
func (t *Timer) Begin(name string) func(note string) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return func(note string) {
		p := &t.phases[idx]
		p.Dur = time.Since(p.Start)
		p.Note = note
	}
}

// Phases exposes the recorded slice in begin order.
func (t *Timer) Phases() []Phase { return t.phases }

// PhaseReport is the serialized form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates every phase plus the total, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report folds the recorded phases into their serialized form.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}

	var total time.Duration
	rows := make([]PhaseReport, 0, len(t.phases))
	for _, phase := range t.phases {
		total += phase.Dur
		rows = append(rows, PhaseReport{
			Name:       phase.Name,
			DurationMS: millis(phase.Dur),
			Note:       phase.Note,
		})
	}
	return Report{TotalMS: millis(total), Phases: rows}
}

// Summary renders the report as indented text for --timings output.
func (t *Timer) Summary() string {
	report := t.Report()

	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
