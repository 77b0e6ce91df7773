package planner

import (
	"fmt"
	"time"
)

// ValidationError reports malformed input. It is raised before any
// persistence attempt, so a validation failure guarantees zero state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictSummary is the caller-facing shape of a colliding block, enough to
// render the conflict without a follow-up fetch.
type ConflictSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictError reports an interval overlap with one or more existing blocks
// owned by the same user.
type ConflictError struct {
	Conflicts []ConflictSummary
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time block conflicts with %d existing block(s)", len(e.Conflicts))
}

// NotFoundError covers both a missing block and a block owned by someone
// else; the two cases are indistinguishable to the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
