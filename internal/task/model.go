package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task. The coordination core only ever
// creates tasks in StatusPending; transitions happen in surfaces outside it.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Task represents a row in the tasks table.
type Task struct {
	ID         uuid.UUID
	Title      string
	TeamID     *uuid.UUID // nil when created without an active team context
	AssignedTo uuid.UUID  // profile the task is assigned to
	CreatedBy  uuid.UUID  // profile that created the task
	Status     Status
	CreatedAt  time.Time
}
