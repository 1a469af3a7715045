package pipeline

import (
	"fmt"
	"strings"
	"time"

	"salmap/internal/debug/timing"
)

// Report summarizes one run for the user.
type Report struct {
	FixationsPath string
	Lines         int
	Skipped       int // malformed lines
	OutOfBounds   int
	Accepted      int
	Max           float32

	Blended    bool
	ImagePath  string
	BlendRatio float64

	OutputPath    string
	OutputWritten bool

	Timings []timing.StageTiming
}

// Summary renders the lines printed at the end of a run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %q: %d fixation points\n", r.FixationsPath, r.Accepted)
	if r.Blended {
		fmt.Fprintf(&b, "Blended saliency map with %q (%v).\n", r.ImagePath, r.BlendRatio)
	}
	if r.OutputWritten {
		fmt.Fprintf(&b, "Output: %s\n", r.OutputPath)
	}
	return b.String()
}

func (r *Report) TotalTime() time.Duration {
	var total time.Duration
	for _, t := range r.Timings {
		total += t.Duration
	}
	return total
}
