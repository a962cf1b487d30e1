package profile

import (
	"time"

	"github.com/google/uuid"
)

// Role is the privilege level attached to a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Profile represents a row in the profiles table. A profile is created on a
// user's first contact and never deleted.
type Profile struct {
	ID           uuid.UUID
	ExternalID   string // stable identifier assigned by the chat transport
	Handle       string // mutable display alias, may be empty
	DisplayName  string
	Role         Role
	ActiveTeamID *uuid.UUID // nil until a team is selected
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
