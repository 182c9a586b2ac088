// Package pipeline loads schedule files into units in parallel.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// Source is one schedule file and the unit it is loaded into.
type Source struct {
	Path string
	Unit string
}

// ReadFunc loads a single source. It is called from several goroutines.
type ReadFunc func(src Source) (model.Unit, error)

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load reads every source with a bounded worker pool. Units come back in
// source order. When any file fails, the error of the first failing source
// is returned and no units.
func Load(sources []Source, read ReadFunc, progressFn ProgressFunc) ([]model.Unit, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	seen := make(map[string]string, len(sources))
	for _, s := range sources {
		if prev, ok := seen[s.Unit]; ok {
			return nil, fmt.Errorf("%s and %s both load unit %q", prev, s.Path, s.Unit)
		}
		seen[s.Unit] = s.Path
	}

	numWorkers := min(max(runtime.GOMAXPROCS(0), 1), len(sources))

	work := make(chan int, len(sources))
	units := make([]model.Unit, len(sources))
	errs := make([]error, len(sources))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range sources {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for idx := range work {
				units[idx], errs[idx] = read(sources[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(sources))
				}
			}
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return units, nil
}
