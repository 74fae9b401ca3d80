package workflow

import "fmt"

// Status is the lifecycle state of a scoring task.
type Status string

const (
	StatusQueued          Status = "queued"
	StatusScored          Status = "scored"
	StatusCompleted       Status = "completed"
	StatusQueuedForReview Status = "queued_for_review"
	StatusFailed          Status = "failed"
)

var transitions = map[Status][]Status{
	StatusQueued: {StatusScored, StatusFailed},
	StatusScored: {StatusCompleted, StatusQueuedForReview},
}

// Transition checks that a task may move from one status to the next.
func Transition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid task transition %s -> %s", from, to)
}

// Stored is the value written to the task row. Tasks waiting for review stay
// in the queued backlog.
func (s Status) Stored() string {
	if s == StatusQueuedForReview {
		return string(StatusQueued)
	}
	return string(s)
}
