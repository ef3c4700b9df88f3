package sorter

import "time"

// Outcome classifies what happened to one file.
type Outcome int

const (
	// OutcomeLinked means a new link was created.
	OutcomeLinked Outcome = iota
	// OutcomeExists means the destination was already occupied.
	// Re-running over an unchanged tree ends here for every linked file.
	OutcomeExists
	// OutcomeSkipped means no recognizable capture metadata; nothing was touched.
	OutcomeSkipped
	// OutcomeUnreadable means the file could not be opened or read.
	OutcomeUnreadable
	// OutcomeFailed means directory or link creation failed.
	OutcomeFailed
	// OutcomeCancelled means the run was interrupted before the file was dispatched.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLinked:
		return "linked"
	case OutcomeExists:
		return "exists"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the outcome of processing one file.
type Result struct {
	File    FileHandle
	Ordinal int    // disambiguating ordinal chosen for the file
	Dest    string // absolute link path; empty when no destination applied
	Outcome Outcome
	Err     error
}

// Report summarizes a full run.
type Report struct {
	Input      string
	Output     string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result

	Total       int
	Linked      int
	Exists      int
	Skipped     int
	Unreadable  int
	Failed      int
	Cancelled   int
	LinkedBytes int64
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Problems returns the results that carry a diagnostic.
func (r *Report) Problems() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeUnreadable || res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) tally() {
	r.Total = len(r.Results)
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeLinked:
			r.Linked++
			r.LinkedBytes += res.File.Size
		case OutcomeExists:
			r.Exists++
		case OutcomeSkipped:
			r.Skipped++
		case OutcomeUnreadable:
			r.Unreadable++
		case OutcomeFailed:
			r.Failed++
		case OutcomeCancelled:
			r.Cancelled++
		}
	}
}
