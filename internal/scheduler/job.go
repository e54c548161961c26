package scheduler

import (
	"context"
	"time"
)

// Job is a unit of scheduled work, such as the watchlist cache warmer.
type Job interface {
	// Name identifies the job in logs and history.
	Name() string

	// Run executes the job. Returning an error triggers the scheduler's
	// retry policy.
	Run(ctx context.Context) error

	// Schedule returns the cron expression, with a seconds field.
	// "0 */30 * * * *" runs every half hour; "@daily" works too.
	Schedule() string
}

// JobResult records one execution.
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// historyLimit bounds per-job history so a long-lived process with a
// half-hourly warm schedule does not grow without bound.
const historyLimit = 100

// JobHistory keeps the most recent executions of one job.
type JobHistory struct {
	Results []JobResult
}

// AddResult appends a result, dropping the oldest past the limit.
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)

	if len(h.Results) > historyLimit {
		h.Results = h.Results[len(h.Results)-historyLimit:]
	}
}

// Last returns the most recent result, or false when the job has never run.
func (h *JobHistory) Last() (JobResult, bool) {
	if len(h.Results) == 0 {
		return JobResult{}, false
	}
	return h.Results[len(h.Results)-1], true
}
