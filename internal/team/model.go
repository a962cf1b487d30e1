package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table. Team names are not unique; two
// teams with the same name may coexist.
type Team struct {
	ID        uuid.UUID
	Name      string
	CreatedBy uuid.UUID // profile that created the team
	CreatedAt time.Time
}
