package md2txt

import "runtime"

// Worker sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps parallel conversions; each holds a whole document in memory.
	MaxPoolSize = 32
)

// ResolvePoolSize determines how many documents to convert in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return min(workers, MaxPoolSize)
	}

	// Conversion is CPU-bound: one worker per available CPU
	// (GOMAXPROCS is adjusted by automaxprocs for containers).
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
