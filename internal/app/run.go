package app

import "strings"

// RunRecord describes one CLI invocation. It is logged when the app closes
// so every log file ends each run with its command and final status.
type RunRecord struct {
	ID         string
	Command    string
	Parameters string
	Status     string // "success", "partial", "cancelled" or "error"
}

// NewRunRecord creates a record for command with the given arguments.
func NewRunRecord(id, command string, args ...string) *RunRecord {
	return &RunRecord{
		ID:         id,
		Command:    command,
		Parameters: strings.Join(args, " "),
		Status:     "success",
	}
}

// Finish sets the final status from a run's error and report counts.
func (r *RunRecord) Finish(err error, failed, cancelled int) {
	switch {
	case err != nil:
		r.Status = "error"
	case cancelled > 0:
		r.Status = "cancelled"
	case failed > 0:
		r.Status = "partial"
	default:
		r.Status = "success"
	}
}
