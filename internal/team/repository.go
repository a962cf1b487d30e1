package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// Repository provides operations on the teams and team_members tables.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]Team, error)
	// AddMember upserts the (teamID, userID) membership pair. Re-adding an
	// existing member is a no-op, never an error.
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}
