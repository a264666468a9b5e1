package models

import "time"

// Trigger types for a step check invocation
const (
	TriggerTypeScheduled = "scheduled"
	TriggerTypeManual    = "manual"
)

// HourWindow identifies the user-local clock window queried for intraday steps
type HourWindow struct {
	Date     string    `json:"date"`  // ISO date (YYYY-MM-DD), user-local
	Start    string    `json:"start"` // HH:MM, start of the local hour
	End      string    `json:"end"`   // HH:MM, current local minute
	LocalNow time.Time `json:"-"`     // local wall clock, for logs
}

// StepReport summarizes a single step check invocation. It exists only for
// the invocation's lifetime (response payload and logs), never persisted.
type StepReport struct {
	RunID       string     `json:"run_id"`
	Window      HourWindow `json:"window"`
	StepTotal   int        `json:"step_total"`
	Threshold   int        `json:"threshold"`
	Notified    bool       `json:"notified"`
	TriggerType string     `json:"trigger_type"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// BelowThreshold reports whether the total misses the threshold.
// The comparison is strict: hitting the threshold exactly counts as meeting it.
func (r *StepReport) BelowThreshold() bool {
	return r.StepTotal < r.Threshold
}
