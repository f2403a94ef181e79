package model

import "time"

// RunStatus is the terminal state of one pipeline run.
type RunStatus string

const (
	RunSucceeded RunStatus = "SUCCEEDED"
	RunFailed    RunStatus = "FAILED"
)

// RunRecord holds the outcome of one scheduled (or manual) run.
type RunRecord struct {
	ID         string
	DAG        string
	Owner      string
	StartedAt  time.Time
	FinishedAt time.Time
	Attempts   int
	Status     RunStatus
	PriceUSD   float64
	StorePath  string
	ImagePath  string
	Error      string
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
