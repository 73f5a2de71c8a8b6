package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
)

// Parallelize divides items into one contiguous range per CPU core and runs
// fn(start, end) for each range concurrently.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially over [0, items) when items
// does not exceed threshold, and in parallel otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ForEach calls fn(i) for every i in [0, items), in parallel above threshold.
// It returns the error of the lowest failing index, so the reported failure
// does not depend on scheduling. Panics inside fn are converted to errors
// tagged with operation.
func ForEach(items, threshold int, operation string, fn func(i int) error) error {
	errs := make([]error, items)
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = safeCall(operation, i, fn)
			if errs[i] != nil {
				return
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func safeCall(operation string, i int, fn func(int) error) (err error) {
	defer errors.Recover(&err, operation)
	return fn(i)
}
