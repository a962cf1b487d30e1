package task

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides operations on the tasks table.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]Task, error)
}
