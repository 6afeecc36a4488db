// Package prof wires runtime profiling into analyzer runs. A Session
// owns every artifact requested for one run and tears them down in
// reverse start order.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options names the artifact paths. Empty fields are skipped.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session is one active profiling run. The zero value is inert.
type Session struct {
	memPath string
	cpu     *os.File
	trace   *os.File
}

// Start opens the requested profiles. When a later profile fails to
// start, whatever already started is stopped before returning.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.MemPath}
	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpu = f
	}
	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("failed to create runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		s.trace = f
	}
	return s, nil
}

// Stop ends the trace and CPU profile, then takes the heap snapshot
// when one was requested. Safe to call more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopTrace()
	s.stopCPU()
	if s.memPath == "" {
		return nil
	}
	memPath := s.memPath
	s.memPath = ""
	return writeHeap(memPath)
}

func (s *Session) stopCPU() {
	if s.cpu == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpu.Close()
	s.cpu = nil
}

func (s *Session) stopTrace() {
	if s.trace == nil {
		return
	}
	trace.Stop()
	_ = s.trace.Close()
	s.trace = nil
}

// writeHeap collects first so the snapshot reflects live objects
// rather than garbage.
func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return f.Close()
}
