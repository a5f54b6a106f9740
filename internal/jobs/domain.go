package jobs

import (
	"time"

	"github.com/apiarycd/memberships/internal/storage"
)

type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "inProgress"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Status tracks one background job.
type Status struct {
	storage.BaseEntity

	JobID     string    `json:"jobId,omitempty"`
	UserID    int64     `json:"userId"`
	State     State     `json:"state"`
	Result    string    `json:"result,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusUpdate lists the fields to change. Nil fields are kept.
type StatusUpdate struct {
	JobID  *string
	State  *State
	Result *string
}
