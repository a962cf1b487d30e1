package bot

import (
	"github.com/taskcrew/taskcrew/internal/notify"
	"github.com/taskcrew/taskcrew/internal/profile"
	"github.com/taskcrew/taskcrew/internal/task"
	"github.com/taskcrew/taskcrew/internal/team"
)

// Command is the normalized inbound event the transport layer hands to the
// engine: a verb with argument tokens, or a decoded callback action.
type Command struct {
	CallerExternalID    string
	CallerHandle        string
	CallerDisplayName   string
	Verb                string
	Args                []string
	RepliedToExternalID string  // author of the replied-to message, if any
	Action              *Action // set for button clicks, decoded at the boundary
}

// ResultKind names the outcome of a successfully handled command.
type ResultKind string

const (
	ResultProfileReady ResultKind = "profile_ready"
	ResultPromoted     ResultKind = "promoted"
	ResultPromoteNoop  ResultKind = "promote_noop"
	ResultTeamCreated  ResultKind = "team_created"
	ResultTeamChoices  ResultKind = "team_choices"
	ResultNoTeams      ResultKind = "no_teams"
	ResultMemberAdded  ResultKind = "member_added"
	ResultTeamSelected ResultKind = "team_selected"
	ResultTaskCreated  ResultKind = "task_created"
	ResultTaskList     ResultKind = "task_list"
)

// Result is the outcome the transport renders. Notifications are the
// messages the transport must deliver to third parties; Choices are the
// buttons of a pending two-phase flow.
type Result struct {
	Kind          ResultKind
	Profile       *profile.Profile
	Target        *profile.Profile
	Team          *team.Team
	Teams         []team.Team
	Task          *task.Task
	Tasks         []task.Task
	Choices       []notify.Action
	Notifications []notify.Message
}
