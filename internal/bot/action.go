package bot

import (
	"strings"

	"github.com/google/uuid"
)

// ActionKind discriminates the callback actions a button click can carry.
type ActionKind string

const (
	// ActionPromote promotes the target user to admin.
	ActionPromote ActionKind = "promote"
	// ActionAssignTeam lists teams the target user can be added to.
	ActionAssignTeam ActionKind = "assign_team"
	// ActionConfirmTeam adds the target user to the chosen team.
	ActionConfirmTeam ActionKind = "confirm_team"
	// ActionSwitchTeam selects the caller's active team context.
	ActionSwitchTeam ActionKind = "switch_team"
)

// Action is a decoded callback token: one kind plus its typed payload. The
// full round-trip state of two-phase flows travels in here, never in server
// memory.
type Action struct {
	Kind             ActionKind
	TargetExternalID string    // promote, assign_team, confirm_team
	TeamID           uuid.UUID // confirm_team, switch_team
}

// Token encodes the action for embedding in a button payload.
func (a Action) Token() string {
	switch a.Kind {
	case ActionPromote:
		return "promote:" + a.TargetExternalID
	case ActionAssignTeam:
		return "teams:" + a.TargetExternalID
	case ActionConfirmTeam:
		return "join:" + a.TeamID.String() + ":" + a.TargetExternalID
	case ActionSwitchTeam:
		return "use:" + a.TeamID.String()
	}
	return ""
}

// ParseActionToken decodes a callback token coming back from the transport.
// Tokens are decoded exactly once, at this boundary; the engine only ever
// sees typed actions. Unknown prefixes and malformed payloads return
// ErrMalformedCommand.
func ParseActionToken(token string) (Action, error) {
	kind, payload, ok := strings.Cut(token, ":")
	if !ok || payload == "" {
		return Action{}, ErrMalformedCommand
	}

	switch kind {
	case "promote":
		return Action{Kind: ActionPromote, TargetExternalID: payload}, nil

	case "teams":
		return Action{Kind: ActionAssignTeam, TargetExternalID: payload}, nil

	case "join":
		rawTeam, target, ok := strings.Cut(payload, ":")
		if !ok || target == "" {
			return Action{}, ErrMalformedCommand
		}
		teamID, err := uuid.Parse(rawTeam)
		if err != nil {
			return Action{}, ErrMalformedCommand
		}
		return Action{Kind: ActionConfirmTeam, TeamID: teamID, TargetExternalID: target}, nil

	case "use":
		teamID, err := uuid.Parse(payload)
		if err != nil {
			return Action{}, ErrMalformedCommand
		}
		return Action{Kind: ActionSwitchTeam, TeamID: teamID}, nil
	}

	return Action{}, ErrMalformedCommand
}
