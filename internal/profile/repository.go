package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile record is not found.
var ErrProfileNotFound = errors.New("profile not found")

// Repository provides operations on the profiles table.
type Repository interface {
	// Upsert inserts the profile or, when a row with the same external ID
	// already exists, refreshes its handle and display name. The stored
	// role always wins over the one suggested on p. Returns true when a
	// new row was created.
	Upsert(ctx context.Context, p *Profile) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByExternalID(ctx context.Context, externalID string) (*Profile, error)
	GetByHandle(ctx context.Context, handle string) (*Profile, error)
	SetRole(ctx context.Context, id uuid.UUID, role Role) error
	SetActiveTeam(ctx context.Context, id uuid.UUID, teamID uuid.UUID) error
}
