package pipeline

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the state of a crag extraction run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Report summarises one run of the pipeline.
type Report struct {
	ID     string    `json:"run_id"`
	Status RunStatus `json:"status"`
	Phase  string    `json:"phase"`

	Collected int `json:"collected"`
	Exported  int `json:"exported"`
	Succeeded int `json:"succeeded"`
	EmptyPath int `json:"empty_path"`
	Exhausted int `json:"exhausted"`
	Fatal     int `json:"fatal"`
	Skipped   int `json:"skipped"`
	Attempts  int `json:"attempts"`

	Errors []string `json:"errors"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func newReport() *Report {
	return &Report{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		Phase:     "starting",
		StartedAt: time.Now(),
	}
}

// SetPhase records the stage the run is in.
func (r *Report) SetPhase(phase string) {
	r.Phase = phase
}

// Fail marks the run failed in its current phase.
func (r *Report) Fail(err error) {
	r.Status = StatusFailed
	r.Errors = append(r.Errors, err.Error())
	r.FinishedAt = time.Now()
}

// Complete marks the run done.
func (r *Report) Complete() {
	r.Status = StatusCompleted
	r.Phase = "done"
	r.FinishedAt = time.Now()
}

// AddOutcomes tallies download outcomes. paths must line up with outcomes.
func (r *Report) AddOutcomes(outcomes []Outcome, paths []string) {
	for i, o := range outcomes {
		r.Attempts += o.Attempts
		switch o.State {
		case StateSucceeded:
			r.Succeeded++
			if i < len(paths) && paths[i] == "" {
				r.EmptyPath++
			}
		case StateExhausted:
			r.Exhausted++
		case StateFailedFatal:
			r.Fatal++
		case StateSkipped:
			r.Skipped++
		}
	}
}

// Duration returns how long the run took, or has taken so far.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
