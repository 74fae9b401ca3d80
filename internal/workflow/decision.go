package workflow

import (
	"github.com/google/uuid"
)

// DecisionKind names the event emitted for a scored task. The value doubles
// as the topic the event is published on.
type DecisionKind string

const (
	AutoSubmitted DecisionKind = "ats:auto_submitted"
	NeedsReview   DecisionKind = "ats:needs_review"
)

// Decision is the single outcome of a scored task.
type Decision struct {
	Kind        DecisionKind `json:"-"`
	TaskID      uuid.UUID    `json:"task_id"`
	CandidateID uuid.UUID    `json:"candidate_id"`
	JobID       uuid.UUID    `json:"job_id"`
	Score       float64      `json:"score"`
}

// Topic returns where the decision is published.
func (d Decision) Topic() string { return string(d.Kind) }
