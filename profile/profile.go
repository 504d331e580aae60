package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// ErrProfile indicates a profile could not be started or written.
var ErrProfile = errors.New("profile")

// Profiler runs one profiling session.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile  *os.File
	cpuPath  string
	heapPath string
}

// Start begins CPU profiling when a CPU profile path is set.
func (p *Profiler) Start() error {
	if p.cpuPath == "" {
		return nil
	}

	f, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("%w: cpu: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: cpu: %w", ErrProfile, err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the heap profile when enabled. It is
// safe to call Stop without a successful [Profiler.Start].
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: cpu: %w", ErrProfile, err))
		}

		p.cpuFile = nil
	}

	if p.heapPath != "" {
		err := writeHeap(p.heapPath)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: heap: %w", ErrProfile, err)
	}

	// Up-to-date allocation statistics.
	runtime.GC()

	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: heap: %w", ErrProfile, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: heap: %w", ErrProfile, err)
	}

	return nil
}
