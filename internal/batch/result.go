package batch

import (
	"fmt"
	"time"
)

// Failure records one file that could not be linked, with a human-readable
// cause suitable for display and persistence.
type Failure struct {
	Source  string
	Message string
}

// Result aggregates one outcome per input file. Every source appears in
// exactly one of Processed or Failed, so
// len(Processed)+len(Failed) == len(input). Ordering within each list is
// nondeterministic.
type Result struct {
	RunID     string
	Success   bool
	Summary   string
	Processed []string
	Failed    []Failure
	Started   time.Time
	Duration  time.Duration
}

func (r *Result) finalize(total int) {
	r.Success = len(r.Failed) == 0
	r.Summary = fmt.Sprintf(
		"%d total, %d succeeded, %d failed",
		total, len(r.Processed), len(r.Failed),
	)
}
